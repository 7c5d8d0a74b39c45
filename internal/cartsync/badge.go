package cartsync

import (
	"context"
	"sync"

	"github.com/angelmondragon/packfinderz-storefront/internal/eventbus"
	"github.com/angelmondragon/packfinderz-storefront/pkg/logger"
)

// CountFetcher re-derives the authoritative cart count.
type CountFetcher interface {
	CartItemCount(ctx context.Context) (int, error)
}

// BadgeOptions wires a Badge.
type BadgeOptions struct {
	Bus     *eventbus.Bus
	Topic   string
	Fetcher CountFetcher
	Logger  *logger.Logger
}

// Badge is the cart-count indicator. It shares no state with the controls
// that mutate the cart; it only subscribes to the staleness topic and
// re-queries its own count when signaled. A failed fetch degrades to zero
// and is never surfaced.
type Badge struct {
	mu      sync.Mutex
	fetcher CountFetcher
	log     *logger.Logger
	count   int
	sub     *eventbus.Subscription
}

// NewBadge subscribes to the topic and primes the count with an initial
// fetch.
func NewBadge(ctx context.Context, opts BadgeOptions) *Badge {
	topic := opts.Topic
	if topic == "" {
		topic = eventbus.TopicCartUpdated
	}
	b := &Badge{
		fetcher: opts.Fetcher,
		log:     opts.Logger,
	}
	if opts.Bus != nil {
		b.sub = opts.Bus.Subscribe(topic, func() {
			b.Refresh(context.Background())
		})
	}
	b.Refresh(ctx)
	return b
}

// Refresh re-queries the count from the authoritative source. The staleness
// event that triggers it carries no data on purpose; this is the only way
// the badge learns anything. A missing fetcher behaves like a failed fetch
// and shows zero.
func (b *Badge) Refresh(ctx context.Context) {
	if b.fetcher == nil {
		b.mu.Lock()
		b.count = 0
		b.mu.Unlock()
		return
	}
	count, err := b.fetcher.CartItemCount(ctx)
	if err != nil {
		if b.log != nil {
			b.log.Warn(ctx, "cart count unavailable, showing zero")
		}
		count = 0
	}

	b.mu.Lock()
	b.count = count
	b.mu.Unlock()
}

// Count returns the last derived count.
func (b *Badge) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Close unsubscribes the badge from the bus on fragment teardown.
func (b *Badge) Close() {
	b.sub.Close()
}
