package suggest

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/packfinderz-storefront/internal/recency"
	"github.com/angelmondragon/packfinderz-storefront/pkg/enums"
)

// Suggestion is one row of the typeahead surface.
type Suggestion struct {
	ID         uuid.UUID
	Text       string
	Kind       enums.SuggestionKind
	Popularity int
}

// Ranker turns a query plus the recency list into the ordered suggestion
// rows to display. The corpus is static or backend-fed; lookups against it
// are synchronous and in-memory.
type Ranker struct {
	corpus []Suggestion
	recent *recency.Store
}

// NewRanker builds a ranker over the given corpus and recency store.
func NewRanker(corpus []Suggestion, recent *recency.Store) *Ranker {
	return &Ranker{
		corpus: append([]Suggestion(nil), corpus...),
		recent: recent,
	}
}

// Suggest computes the rows for the current query.
//
// Empty query: the recency list when it has entries (most recent first, as
// stored), otherwise the trending slice of the corpus by descending
// popularity. Non-empty query: corpus entries containing the query as a
// case-insensitive substring, in corpus order; recency rows are never mixed
// into query results.
func (r *Ranker) Suggest(query string) []Suggestion {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		if recentRows := r.recentRows(); len(recentRows) > 0 {
			return recentRows
		}
		return r.trendingRows()
	}

	needle := strings.ToLower(trimmed)
	matches := make([]Suggestion, 0, len(r.corpus))
	for _, entry := range r.corpus {
		if strings.Contains(strings.ToLower(entry.Text), needle) {
			matches = append(matches, entry)
		}
	}
	return matches
}

func (r *Ranker) recentRows() []Suggestion {
	if r.recent == nil {
		return nil
	}
	terms := r.recent.Terms()
	rows := make([]Suggestion, 0, len(terms))
	for _, term := range terms {
		rows = append(rows, Suggestion{
			ID:   uuid.New(),
			Text: term,
			Kind: enums.SuggestionKindRecent,
		})
	}
	return rows
}

func (r *Ranker) trendingRows() []Suggestion {
	rows := make([]Suggestion, 0, len(r.corpus))
	for _, entry := range r.corpus {
		if entry.Kind == enums.SuggestionKindTrending {
			rows = append(rows, entry)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Popularity > rows[j].Popularity
	})
	return rows
}
