package cartsync

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/angelmondragon/packfinderz-storefront/internal/eventbus"
	pkgerrors "github.com/angelmondragon/packfinderz-storefront/pkg/errors"
	"github.com/angelmondragon/packfinderz-storefront/pkg/logger"
	"github.com/angelmondragon/packfinderz-storefront/pkg/metrics"
)

// API is the remote surface consumed for cart and wishlist mutations.
type API interface {
	AddToCart(ctx context.Context, productID, shopID uuid.UUID, quantity int) error
	CartItemCount(ctx context.Context) (int, error)
	AddToWishlist(ctx context.Context, productID uuid.UUID) error
	RemoveFromWishlist(ctx context.Context, productID uuid.UUID) error
}

// SessionPredicate answers "is the caller signed in" before a mutation fires.
type SessionPredicate interface {
	IsAuthenticated() bool
}

// MutatorOptions wires a Mutator.
type MutatorOptions struct {
	API     API
	Bus     *eventbus.Bus
	Session SessionPredicate
	// RequireAuth gates every mutation behind the session predicate.
	RequireAuth   bool
	CartTopic     string
	WishlistTopic string
	Logger        *logger.Logger
	Metrics       *metrics.StorefrontMetrics
}

// Mutator performs remote state-changing calls and, on success only,
// broadcasts the matching staleness topic. A failed call never publishes:
// listeners keep their last-known-good value instead of refreshing on a
// no-op.
type Mutator struct {
	api           API
	bus           *eventbus.Bus
	session       SessionPredicate
	requireAuth   bool
	cartTopic     string
	wishlistTopic string
	log           *logger.Logger
	metrics       *metrics.StorefrontMetrics
}

// NewMutator validates the wiring and builds a Mutator.
func NewMutator(opts MutatorOptions) (*Mutator, error) {
	if opts.API == nil {
		return nil, fmt.Errorf("backend api required")
	}
	if opts.Bus == nil {
		return nil, fmt.Errorf("event bus required")
	}
	if opts.RequireAuth && opts.Session == nil {
		return nil, fmt.Errorf("session predicate required when auth is enforced")
	}
	cartTopic := opts.CartTopic
	if cartTopic == "" {
		cartTopic = eventbus.TopicCartUpdated
	}
	wishlistTopic := opts.WishlistTopic
	if wishlistTopic == "" {
		wishlistTopic = eventbus.TopicWishlistUpdated
	}
	return &Mutator{
		api:           opts.API,
		bus:           opts.Bus,
		session:       opts.Session,
		requireAuth:   opts.RequireAuth,
		cartTopic:     cartTopic,
		wishlistTopic: wishlistTopic,
		log:           opts.Logger,
		metrics:       opts.Metrics,
	}, nil
}

// AddToCart performs the remote cart mutation and broadcasts on success.
func (m *Mutator) AddToCart(ctx context.Context, productID, shopID uuid.UUID, quantity int) error {
	return m.mutate(ctx, "add_to_cart", m.cartTopic, func(ctx context.Context) error {
		return m.api.AddToCart(ctx, productID, shopID, quantity)
	})
}

// AddToWishlist likes a product and broadcasts on success.
func (m *Mutator) AddToWishlist(ctx context.Context, productID uuid.UUID) error {
	return m.mutate(ctx, "add_to_wishlist", m.wishlistTopic, func(ctx context.Context) error {
		return m.api.AddToWishlist(ctx, productID)
	})
}

// RemoveFromWishlist unlikes a product and broadcasts on success.
func (m *Mutator) RemoveFromWishlist(ctx context.Context, productID uuid.UUID) error {
	return m.mutate(ctx, "remove_from_wishlist", m.wishlistTopic, func(ctx context.Context) error {
		return m.api.RemoveFromWishlist(ctx, productID)
	})
}

// CartTopic returns the topic cart mutations broadcast on.
func (m *Mutator) CartTopic() string {
	return m.cartTopic
}

// WishlistTopic returns the topic wishlist mutations broadcast on.
func (m *Mutator) WishlistTopic() string {
	return m.wishlistTopic
}

func (m *Mutator) mutate(ctx context.Context, action, topic string, call func(context.Context) error) error {
	if m.requireAuth && !m.session.IsAuthenticated() {
		m.metrics.IncMutationFailure(action)
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to continue")
	}

	if err := call(ctx); err != nil {
		m.metrics.IncMutationFailure(action)
		if m.log != nil {
			m.log.Error(m.log.WithField(ctx, "action", action), "mutation failed", err)
		}
		return err
	}

	m.metrics.IncMutationSuccess(action)
	m.bus.Publish(ctx, topic)
	return nil
}
