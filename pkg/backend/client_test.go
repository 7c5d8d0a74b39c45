package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/packfinderz-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/packfinderz-storefront/pkg/errors"
	"github.com/angelmondragon/packfinderz-storefront/pkg/logger"
	"github.com/angelmondragon/packfinderz-storefront/pkg/session"
)

// fakeMarketplace is a minimal stand-in for the backend API.
type fakeMarketplace struct {
	mu          sync.Mutex
	cartCount   int
	failCartAdd bool
	lastAuth    string
	lastBody    []byte
}

func (f *fakeMarketplace) router() http.Handler {
	r := chi.NewRouter()
	r.Post("/cart/items", func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.lastAuth = req.Header.Get("Authorization")
		f.lastBody, _ = io.ReadAll(req.Body)
		if f.failCartAdd {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"error":{"code":"CONFLICT","message":"product unavailable"}}`))
			return
		}
		f.cartCount++
		w.WriteHeader(http.StatusCreated)
	})
	r.Get("/cart/count", func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]int{"count": f.cartCount}})
	})
	r.Post("/wishlist/items", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	r.Delete("/wishlist/items/{productID}", func(w http.ResponseWriter, req *http.Request) {
		if _, err := uuid.Parse(chi.URLParam(req, "productID")); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func newTestClient(t *testing.T, fake *fakeMarketplace, tokens session.TokenSource) *Client {
	t.Helper()

	server := httptest.NewServer(fake.router())
	t.Cleanup(server.Close)

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	client, err := NewClient(config.BackendConfig{BaseURL: server.URL}, tokens, logg)
	if err != nil {
		t.Fatalf("build client: %v", err)
	}
	return client
}

func TestAddToCartAndCount(t *testing.T) {
	t.Parallel()

	fake := &fakeMarketplace{}
	client := newTestClient(t, fake, session.StaticToken("token-abc"))
	ctx := context.Background()

	if err := client.AddToCart(ctx, uuid.New(), uuid.New(), 3); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	count, err := client.CartItemCount(ctx)
	if err != nil {
		t.Fatalf("cart count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}

	if fake.lastAuth != "Bearer token-abc" {
		t.Fatalf("expected bearer header, got %q", fake.lastAuth)
	}
	var body map[string]any
	if err := json.Unmarshal(fake.lastBody, &body); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
	if body["quantity"].(float64) != 3 {
		t.Fatalf("unexpected quantity in body: %v", body)
	}
}

func TestAddToCartMapsBackendError(t *testing.T) {
	t.Parallel()

	fake := &fakeMarketplace{failCartAdd: true}
	client := newTestClient(t, fake, nil)

	err := client.AddToCart(context.Background(), uuid.New(), uuid.New(), 1)
	if err == nil {
		t.Fatal("expected error from backend")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", err)
	}
	if typed.Message() != "product unavailable" {
		t.Fatalf("expected backend message to surface, got %q", typed.Message())
	}
}

func TestWishlistLifecycle(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, &fakeMarketplace{}, nil)
	ctx := context.Background()
	productID := uuid.New()

	if err := client.AddToWishlist(ctx, productID); err != nil {
		t.Fatalf("add to wishlist: %v", err)
	}
	if err := client.RemoveFromWishlist(ctx, productID); err != nil {
		t.Fatalf("remove from wishlist: %v", err)
	}
}

func TestAnonymousRequestsOmitAuthHeader(t *testing.T) {
	t.Parallel()

	fake := &fakeMarketplace{}
	client := newTestClient(t, fake, nil)

	if err := client.AddToCart(context.Background(), uuid.New(), uuid.New(), 1); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if fake.lastAuth != "" {
		t.Fatalf("expected no auth header, got %q", fake.lastAuth)
	}
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	if _, err := NewClient(config.BackendConfig{BaseURL: ""}, nil, logg); err == nil {
		t.Fatal("expected error for empty base url")
	}
	if _, err := NewClient(config.BackendConfig{BaseURL: "/relative"}, nil, logg); err == nil {
		t.Fatal("expected error for relative base url")
	}
	if _, err := NewClient(config.BackendConfig{BaseURL: "https://api.test"}, nil, nil); err == nil {
		t.Fatal("expected error for missing logger")
	}
}

func TestUnreachableBackendMapsToDependencyError(t *testing.T) {
	t.Parallel()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	client, err := NewClient(config.BackendConfig{BaseURL: "http://127.0.0.1:1"}, nil, logg)
	if err != nil {
		t.Fatalf("build client: %v", err)
	}

	callErr := client.AddToCart(context.Background(), uuid.New(), uuid.New(), 1)
	typed := pkgerrors.As(callErr)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", callErr)
	}
}
