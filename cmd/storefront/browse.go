package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-storefront/internal/catalog"
	"github.com/angelmondragon/packfinderz-storefront/pkg/enums"
	"github.com/angelmondragon/packfinderz-storefront/pkg/logger"
)

// browseRoutes exposes the listing engine for manual poking while the shell
// runs. The engine holds the session's current criteria, so consecutive
// requests see the same listing state a browsing user would.
func browseRoutes(router chi.Router, engine *catalog.Engine, presets []catalog.Preset, logg *logger.Logger) {
	router.Get("/browse", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		engine.Update(func(criteria *catalog.Criteria) {
			if query.Has("location") {
				criteria.Location = query.Get("location")
			}
			if query.Has("min_rating") {
				criteria.MinRating = catalog.ParseBound(query.Get("min_rating"))
			}
			if query.Has("min_sales") {
				criteria.Sales.Min = catalog.ParseBound(query.Get("min_sales"))
			}
			if query.Has("max_sales") {
				criteria.Sales.Max = catalog.ParseBound(query.Get("max_sales"))
			}
			if query.Has("min_orders") {
				criteria.Orders.Min = catalog.ParseBound(query.Get("min_orders"))
			}
			if query.Has("max_orders") {
				criteria.Orders.Max = catalog.ParseBound(query.Get("max_orders"))
			}
			if query.Has("status") {
				criteria.Statuses = nil
				for _, raw := range query["status"] {
					if status, err := enums.ParseShopStatus(raw); err == nil {
						criteria.Statuses = append(criteria.Statuses, status)
					}
				}
			}
			if key, err := enums.ParseSortKey(query.Get("sort")); err == nil {
				criteria.SortKey = key
			}
			if dir, err := enums.ParseSortDirection(query.Get("dir")); err == nil {
				criteria.SortDir = dir
			}
		})
		writeJSON(w, engine.Visible())
	})

	router.Post("/browse/clear", func(w http.ResponseWriter, r *http.Request) {
		engine.Clear()
		writeJSON(w, engine.Visible())
	})

	router.Post("/browse/presets/{name}", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		for _, preset := range presets {
			if preset.Name == name {
				engine.ApplyPreset(preset)
				writeJSON(w, engine.Visible())
				return
			}
		}
		logg.Warn(logg.WithField(r.Context(), "preset", name), "unknown preset requested")
		w.WriteHeader(http.StatusNotFound)
	})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

// seedPresets ships the authored quick filters the storefront renders as
// chips. Authored content goes through the same validation path as presets
// fetched from the backend would.
func seedPresets() ([]catalog.Preset, error) {
	return catalog.ParsePresets([]byte(`[
		{"name": "Top rated", "min_rating": 4, "sort_key": "rating", "sort_dir": "desc"},
		{"name": "Active shops", "statuses": ["active"]},
		{"name": "High volume", "sales": {"min": 1000}, "sort_key": "sales", "sort_dir": "desc"}
	]`))
}

// seedShops is the static listing the shell serves until a backend catalog
// fetch replaces it.
func seedShops() []catalog.Item {
	created := func(daysAgo int) time.Time {
		return time.Now().AddDate(0, 0, -daysAgo)
	}
	return []catalog.Item{
		{
			ID:        uuid.New(),
			Name:      "Green Valley Collective",
			Location:  "Sacramento, CA",
			Rating:    5,
			Sales:     1500,
			Orders:    420,
			Status:    enums.ShopStatusActive,
			Price:     decimal.NewFromFloat(45.00),
			CreatedAt: created(400),
		},
		{
			ID:        uuid.New(),
			Name:      "Pacific Leaf",
			Location:  "Portland, OR",
			Rating:    4,
			Sales:     870,
			Orders:    230,
			Status:    enums.ShopStatusActive,
			Price:     decimal.NewFromFloat(38.50),
			CreatedAt: created(210),
		},
		{
			ID:        uuid.New(),
			Name:      "Desert Bloom Supply",
			Location:  "Phoenix, AZ",
			Rating:    3,
			Sales:     1200,
			Orders:    310,
			Status:    enums.ShopStatusPending,
			Price:     decimal.NewFromFloat(29.99),
			CreatedAt: created(45),
		},
		{
			ID:        uuid.New(),
			Name:      "Emerald Coast Farms",
			Location:  "Eureka, CA",
			Rating:    5,
			Sales:     640,
			Orders:    150,
			Status:    enums.ShopStatusActive,
			Price:     decimal.NewFromFloat(52.25),
			CreatedAt: created(820),
		},
		{
			ID:        uuid.New(),
			Name:      "Mile High Botanicals",
			Location:  "Denver, CO",
			Rating:    2,
			Sales:     310,
			Orders:    95,
			Status:    enums.ShopStatusSuspended,
			Price:     decimal.NewFromFloat(19.00),
			CreatedAt: created(130),
		},
	}
}
