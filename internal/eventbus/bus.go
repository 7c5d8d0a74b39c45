package eventbus

import (
	"context"
	"sync"

	"github.com/angelmondragon/packfinderz-storefront/pkg/logger"
	"github.com/angelmondragon/packfinderz-storefront/pkg/metrics"
)

// Topics the storefront publishes on. Events carry no payload; they only mean
// "your cached view of this resource is stale, re-fetch it".
const (
	TopicCartUpdated     = "cart:updated"
	TopicWishlistUpdated = "wishlist:updated"
)

// Handler reacts to a staleness signal. It must re-derive state from the
// authoritative source, never from the event.
type Handler func()

// Bus is a process-local broadcast channel between UI fragments that share no
// common owner. It is built by the composition root and injected; nothing
// reaches it through a package-level global. Dispatch is synchronous, in
// registration order, and fire-and-forget.
type Bus struct {
	mu      sync.Mutex
	nextID  uint64
	subs    map[string][]*Subscription
	log     *logger.Logger
	metrics *metrics.StorefrontMetrics
}

// New builds an empty bus. Both logger and metrics may be nil.
func New(log *logger.Logger, m *metrics.StorefrontMetrics) *Bus {
	return &Bus{
		subs:    make(map[string][]*Subscription),
		log:     log,
		metrics: m,
	}
}

// Subscription ties a handler's registration to its owning fragment's
// lifetime. Close is idempotent and must run on fragment teardown so a
// publish never reaches torn-down state.
type Subscription struct {
	bus     *Bus
	topic   string
	id      uint64
	handler Handler
}

// Close removes the subscription from the bus.
func (s *Subscription) Close() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.unsubscribe(s)
}

// Subscribe registers a handler for the topic and returns its lifetime handle.
func (b *Bus) Subscribe(topic string, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{bus: b, topic: topic, id: b.nextID, handler: handler}
	b.subs[topic] = append(b.subs[topic], sub)
	return sub
}

// Publish dispatches to every listener registered for the topic at call time.
// Zero listeners is a no-op. Listeners registered during dispatch do not see
// the in-flight event.
func (b *Bus) Publish(ctx context.Context, topic string) {
	b.mu.Lock()
	listeners := append([]*Subscription(nil), b.subs[topic]...)
	b.mu.Unlock()

	b.metrics.IncPublish(topic)
	b.metrics.AddDeliveries(topic, len(listeners))
	if b.log != nil {
		b.log.Debug(b.log.WithTopic(ctx, topic), "event published")
	}

	for _, sub := range listeners {
		sub.handler()
	}
}

func (b *Bus) unsubscribe(target *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	listeners := b.subs[target.topic]
	for i, sub := range listeners {
		if sub.id == target.id {
			b.subs[target.topic] = append(listeners[:i:i], listeners[i+1:]...)
			return
		}
	}
}

// ListenerCount reports how many live subscriptions a topic has.
func (b *Bus) ListenerCount(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}
