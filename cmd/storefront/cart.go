package main

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/packfinderz-storefront/internal/cartsync"
	"github.com/angelmondragon/packfinderz-storefront/pkg/errors"
)

type addToCartRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	ShopID    uuid.UUID `json:"shop_id"`
	Quantity  int       `json:"quantity"`
}

type wishlistRequest struct {
	ProductID uuid.UUID `json:"product_id"`
}

// cartRoutes fronts the mutator with the same control discipline the add
// button enforces: one in-flight cart mutation at a time, confirm state
// reverting on its own after the configured window.
func cartRoutes(router chi.Router, mutator *cartsync.Mutator, addControl *cartsync.Control, badge *cartsync.Badge) {
	router.Post("/cart/items", func(w http.ResponseWriter, r *http.Request) {
		var req addToCartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, errors.Wrap(errors.CodeValidation, err, "invalid cart payload"))
			return
		}
		if req.Quantity < 1 {
			req.Quantity = 1
		}
		err := addControl.Trigger(r.Context(), func(ctx context.Context) error {
			return mutator.AddToCart(ctx, req.ProductID, req.ShopID, req.Quantity)
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, map[string]string{"state": string(addControl.State())})
	})

	router.Get("/cart/count", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]int{"count": badge.Count()})
	})

	router.Post("/wishlist/items", func(w http.ResponseWriter, r *http.Request) {
		var req wishlistRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, errors.Wrap(errors.CodeValidation, err, "invalid wishlist payload"))
			return
		}
		if err := mutator.AddToWishlist(r.Context(), req.ProductID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	router.Delete("/wishlist/items/{productID}", func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			writeError(w, errors.Wrap(errors.CodeValidation, err, "invalid product id"))
			return
		}
		if err := mutator.RemoveFromWishlist(r.Context(), productID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.CodeInternal
	message := "something went wrong"
	if typed := errors.As(err); typed != nil {
		code = typed.Code()
		message = typed.Message()
	}
	meta := errors.MetadataFor(code)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(meta.HTTPStatus)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    string(code),
			"message": message,
		},
	})
}
