package main

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/packfinderz-storefront/internal/suggest"
	"github.com/angelmondragon/packfinderz-storefront/pkg/enums"
)

// seedCorpus is the static trending corpus the suggestion surface falls back
// to until a backend-fed one replaces it.
func seedCorpus() []suggest.Suggestion {
	return []suggest.Suggestion{
		{ID: uuid.New(), Text: "OG Kush", Kind: enums.SuggestionKindTrending, Popularity: 340},
		{ID: uuid.New(), Text: "Sour Diesel", Kind: enums.SuggestionKindTrending, Popularity: 210},
		{ID: uuid.New(), Text: "Blue Dream", Kind: enums.SuggestionKindTrending, Popularity: 120},
		{ID: uuid.New(), Text: "Gelato", Kind: enums.SuggestionKindTrending, Popularity: 95},
		{ID: uuid.New(), Text: "Pre-rolls", Kind: enums.SuggestionKindTrending, Popularity: 80},
	}
}
