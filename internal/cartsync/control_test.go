package cartsync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	pkgerrors "github.com/angelmondragon/packfinderz-storefront/pkg/errors"
)

func TestTriggerConfirmsAndAutoReverts(t *testing.T) {
	t.Parallel()

	control := NewControl(30 * time.Millisecond)
	t.Cleanup(control.Close)

	if err := control.Trigger(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := control.State(); got != StateConfirmed {
		t.Fatalf("expected confirmed state, got %s", got)
	}

	time.Sleep(80 * time.Millisecond)
	if got := control.State(); got != StateIdle {
		t.Fatalf("expected auto-revert to idle, got %s", got)
	}
}

func TestTriggerFailureRevertsImmediately(t *testing.T) {
	t.Parallel()

	control := NewControl(time.Hour)
	t.Cleanup(control.Close)

	boom := errors.New("boom")
	err := control.Trigger(context.Background(), func(context.Context) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected action error surfaced, got %v", err)
	}
	if got := control.State(); got != StateIdle {
		t.Fatalf("expected idle after failure, got %s", got)
	}
}

func TestReentrantTriggerIsRejected(t *testing.T) {
	t.Parallel()

	control := NewControl(time.Hour)
	t.Cleanup(control.Close)

	release := make(chan struct{})
	started := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = control.Trigger(context.Background(), func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	err := control.Trigger(context.Background(), func(context.Context) error { return nil })
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict while submitting, got %v", err)
	}

	close(release)
	wg.Wait()
}

func TestTriggerDuringConfirmedCancelsRevertAndFires(t *testing.T) {
	t.Parallel()

	control := NewControl(40 * time.Millisecond)
	t.Cleanup(control.Close)

	ctx := context.Background()
	if err := control.Trigger(ctx, func(context.Context) error { return nil }); err != nil {
		t.Fatalf("first trigger: %v", err)
	}

	calls := 0
	if err := control.Trigger(ctx, func(context.Context) error { calls++; return nil }); err != nil {
		t.Fatalf("second trigger during confirmed display: %v", err)
	}
	if calls != 1 {
		t.Fatal("expected the second action to run")
	}
	if got := control.State(); got != StateConfirmed {
		t.Fatalf("expected confirmed after refire, got %s", got)
	}
}

func TestCloseCancelsPendingRevert(t *testing.T) {
	t.Parallel()

	control := NewControl(20 * time.Millisecond)
	if err := control.Trigger(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("trigger: %v", err)
	}

	control.Close()
	time.Sleep(50 * time.Millisecond)

	if got := control.State(); got != StateIdle {
		t.Fatalf("expected idle after close, got %s", got)
	}

	err := control.Trigger(context.Background(), func(context.Context) error { return nil })
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected torn-down control to reject triggers, got %v", err)
	}
}
