package suggest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/packfinderz-storefront/internal/recency"
	"github.com/angelmondragon/packfinderz-storefront/pkg/metrics"
)

// RenderFunc receives the computed suggestion rows for display.
type RenderFunc func([]Suggestion)

// SearchFunc is the external search callback fired on commit with the
// literal committed term.
type SearchFunc func(term string)

// InputOptions wires an Input.
type InputOptions struct {
	Ranker   *Ranker
	Recent   *recency.Store
	OnRender RenderFunc
	OnSearch SearchFunc
	// Debounce delays lookups while the user types. Zero or negative means
	// every keystroke computes synchronously.
	Debounce time.Duration
	Metrics  *metrics.StorefrontMetrics
}

// Input drives the suggestion surface for one search box: keystrokes in,
// rendered rows out, commits into the recency store and search callback.
type Input struct {
	mu         sync.Mutex
	ranker     *Ranker
	recent     *recency.Store
	onRender   RenderFunc
	onSearch   SearchFunc
	debounce   time.Duration
	metrics    *metrics.StorefrontMetrics
	timer      *time.Timer
	generation uint64
	query      string
	open       bool
	closed     bool
}

// NewInput builds the surface controller.
func NewInput(opts InputOptions) *Input {
	return &Input{
		ranker:   opts.Ranker,
		recent:   opts.Recent,
		onRender: opts.OnRender,
		onSearch: opts.OnSearch,
		debounce: opts.Debounce,
		metrics:  opts.Metrics,
	}
}

// SetQuery records a keystroke. Each call cancels any pending lookup before
// arming a fresh delay, so only the lookup for the latest text can resolve;
// a stale computation never overwrites a newer one.
func (i *Input) SetQuery(ctx context.Context, query string) {
	i.mu.Lock()
	if i.closed {
		i.mu.Unlock()
		return
	}
	i.query = query
	i.open = true
	i.generation++
	generation := i.generation

	if i.timer != nil {
		i.timer.Stop()
		i.timer = nil
		i.metrics.IncSuggestionSuperseded()
	}

	if i.debounce <= 0 {
		i.mu.Unlock()
		i.deliver(generation, query)
		return
	}

	i.timer = time.AfterFunc(i.debounce, func() {
		i.deliver(generation, query)
	})
	i.mu.Unlock()
}

// Commit finalizes a search: the term goes to the front of the recency list,
// the updated list is persisted, the external search callback fires with the
// literal term, and the surface clears and closes.
func (i *Input) Commit(ctx context.Context, term string) {
	if strings.TrimSpace(term) == "" {
		return
	}

	i.mu.Lock()
	if i.closed {
		i.mu.Unlock()
		return
	}
	i.stopTimerLocked()
	i.query = ""
	i.open = false
	i.mu.Unlock()

	if i.recent != nil {
		i.recent.Push(ctx, term)
	}
	if i.onSearch != nil {
		i.onSearch(term)
	}
}

// Dismiss closes the surface without touching the recency list: the
// outside-click and escape-key path.
func (i *Input) Dismiss() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.stopTimerLocked()
	i.open = false
}

// Close tears the surface down and cancels any pending lookup.
func (i *Input) Close() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.stopTimerLocked()
	i.closed = true
	i.open = false
}

// Open reports whether the suggestion surface is showing.
func (i *Input) Open() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.open
}

// Query returns the current input text.
func (i *Input) Query() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.query
}

func (i *Input) stopTimerLocked() {
	if i.timer != nil {
		i.timer.Stop()
		i.timer = nil
	}
}

func (i *Input) deliver(generation uint64, query string) {
	rows := i.ranker.Suggest(query)

	i.mu.Lock()
	if i.closed || generation != i.generation {
		i.mu.Unlock()
		i.metrics.IncSuggestionSuperseded()
		return
	}
	i.timer = nil
	render := i.onRender
	i.mu.Unlock()

	// Rendering happens outside the lock so the callback can re-enter the
	// input. Keystrokes for one surface arrive serialized; the generation
	// guard does not order renders across truly parallel SetQuery callers.
	i.metrics.IncSuggestionServed()
	if render != nil {
		render(rows)
	}
}
