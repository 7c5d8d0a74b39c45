package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/packfinderz-storefront/internal/suggest"
	"github.com/angelmondragon/packfinderz-storefront/pkg/errors"
)

type searchCommitRequest struct {
	Term string `json:"term"`
}

// searchRoutes drives the search box from HTTP. Typing goes through the
// debounced input, so rapid queries coalesce exactly as they would under a
// keystroke stream; commits record recency and close the surface.
func searchRoutes(router chi.Router, input *suggest.Input, ranker *suggest.Ranker) {
	router.Get("/search/suggest", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		input.SetQuery(r.Context(), query)
		rows := ranker.Suggest(query)
		if rows == nil {
			rows = []suggest.Suggestion{}
		}
		writeJSON(w, rows)
	})

	router.Post("/search", func(w http.ResponseWriter, r *http.Request) {
		var req searchCommitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, errors.Wrap(errors.CodeValidation, err, "invalid search payload"))
			return
		}
		input.Commit(r.Context(), req.Term)
		w.WriteHeader(http.StatusNoContent)
	})

	router.Post("/search/dismiss", func(w http.ResponseWriter, r *http.Request) {
		input.Dismiss()
		w.WriteHeader(http.StatusNoContent)
	})
}
