package cartsync

import (
	"context"
	"sync"
	"time"

	pkgerrors "github.com/angelmondragon/packfinderz-storefront/pkg/errors"
)

// ControlState is the lifecycle of one mutating control, e.g. an add-to-cart
// button.
type ControlState string

const (
	StateIdle       ControlState = "idle"
	StateSubmitting ControlState = "submitting"
	StateConfirmed  ControlState = "confirmed"
)

// DefaultConfirmRevert is how long the transient confirmed state shows
// before the control reverts to idle.
const DefaultConfirmRevert = 2 * time.Second

// Control guards one mutating UI control. While a call is in flight the
// control refuses to re-fire; a confirmed call shows a transient success
// state that reverts on a timer. Failures surface to the caller and drop the
// control straight back to idle.
type Control struct {
	mu            sync.Mutex
	state         ControlState
	confirmRevert time.Duration
	revertTimer   *time.Timer
	closed        bool
}

// NewControl builds an idle control. A non-positive revert interval falls
// back to DefaultConfirmRevert.
func NewControl(confirmRevert time.Duration) *Control {
	if confirmRevert <= 0 {
		confirmRevert = DefaultConfirmRevert
	}
	return &Control{
		state:         StateIdle,
		confirmRevert: confirmRevert,
	}
}

// Trigger runs the mutation behind this control. Re-entrant triggers while
// submitting are rejected without touching the in-flight call. A trigger
// during the confirmed display cancels the pending revert and fires again.
func (c *Control) Trigger(ctx context.Context, action func(context.Context) error) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeConflict, "control is torn down")
	}
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeConflict, "mutation already in flight")
	}
	c.stopRevertLocked()
	c.state = StateSubmitting
	c.mu.Unlock()

	err := action(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return err
	}
	if err != nil {
		c.state = StateIdle
		return err
	}

	c.state = StateConfirmed
	c.revertTimer = time.AfterFunc(c.confirmRevert, c.revert)
	return nil
}

// State returns the control's current state.
func (c *Control) State() ControlState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close tears the control down and cancels any pending revert timer so it
// cannot fire against torn-down state.
func (c *Control) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopRevertLocked()
	c.closed = true
	c.state = StateIdle
}

func (c *Control) revert() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state != StateConfirmed {
		return
	}
	c.state = StateIdle
	c.revertTimer = nil
}

func (c *Control) stopRevertLocked() {
	if c.revertTimer != nil {
		c.revertTimer.Stop()
		c.revertTimer = nil
	}
}
