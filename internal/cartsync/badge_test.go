package cartsync

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/packfinderz-storefront/internal/eventbus"
	pkgerrors "github.com/angelmondragon/packfinderz-storefront/pkg/errors"
)

func TestBadgeRefreshesOnCartBroadcast(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	api := &stubAPI{count: 2}
	bus := eventbus.New(nil, nil)
	badge := NewBadge(ctx, BadgeOptions{Bus: bus, Fetcher: api})
	t.Cleanup(badge.Close)

	if badge.Count() != 2 {
		t.Fatalf("expected primed count 2, got %d", badge.Count())
	}

	// The authoritative cart changed; the event itself carries nothing.
	api.count = 5
	bus.Publish(ctx, eventbus.TopicCartUpdated)

	if badge.Count() != 5 {
		t.Fatalf("expected re-derived count 5, got %d", badge.Count())
	}
}

func TestBadgeEndToEndWithMutator(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	api := &stubAPI{}
	bus := eventbus.New(nil, nil)
	mutator, err := NewMutator(MutatorOptions{API: api, Bus: bus})
	if err != nil {
		t.Fatalf("build mutator: %v", err)
	}
	badge := NewBadge(ctx, BadgeOptions{Bus: bus, Fetcher: api})
	t.Cleanup(badge.Close)

	api.count = 1
	if err := mutator.AddToCart(ctx, uuid.New(), uuid.New(), 1); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if badge.Count() != 1 {
		t.Fatalf("expected badge to follow successful mutation, got %d", badge.Count())
	}

	// Failure path: the badge must keep its last-known-good value.
	api.cartErr = pkgerrors.New(pkgerrors.CodeDependency, "backend down")
	api.count = 99
	if err := mutator.AddToCart(ctx, uuid.New(), uuid.New(), 1); err == nil {
		t.Fatal("expected failure")
	}
	if badge.Count() != 1 {
		t.Fatalf("badge must stay stale-safe after failed mutation, got %d", badge.Count())
	}
}

func TestBadgeCountFetchFailureDegradesToZero(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	api := &stubAPI{count: 7}
	bus := eventbus.New(nil, nil)
	badge := NewBadge(ctx, BadgeOptions{Bus: bus, Fetcher: api})
	t.Cleanup(badge.Close)

	api.countErr = errors.New("network gone")
	bus.Publish(ctx, eventbus.TopicCartUpdated)

	if badge.Count() != 0 {
		t.Fatalf("expected silent degradation to zero, got %d", badge.Count())
	}
}

func TestBadgeWithoutFetcherShowsZero(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	bus := eventbus.New(nil, nil)
	badge := NewBadge(ctx, BadgeOptions{Bus: bus})
	t.Cleanup(badge.Close)

	if badge.Count() != 0 {
		t.Fatalf("expected zero without a fetcher, got %d", badge.Count())
	}

	// Broadcasts must not panic either; it still has nothing to ask.
	bus.Publish(ctx, eventbus.TopicCartUpdated)
	if badge.Count() != 0 {
		t.Fatalf("expected zero after broadcast, got %d", badge.Count())
	}
}

func TestClosedBadgeStopsListening(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	api := &stubAPI{count: 1}
	bus := eventbus.New(nil, nil)
	badge := NewBadge(ctx, BadgeOptions{Bus: bus, Fetcher: api})

	badge.Close()
	api.count = 10
	bus.Publish(ctx, eventbus.TopicCartUpdated)

	if badge.Count() != 1 {
		t.Fatalf("torn-down badge must not refresh, got %d", badge.Count())
	}
	if bus.ListenerCount(eventbus.TopicCartUpdated) != 0 {
		t.Fatal("expected unsubscription on close")
	}
}
