package catalog

import (
	"sort"
	"strings"
	"sync"

	"github.com/angelmondragon/packfinderz-storefront/pkg/enums"
)

// Engine owns the visible slice of a browse listing. Every criteria mutation
// recomputes the whole thing; listings are page-scale so a full pass beats
// incremental bookkeeping.
type Engine struct {
	mu       sync.Mutex
	items    []Item
	criteria Criteria
	visible  []Item
}

// NewEngine starts an engine with unconstrained criteria over the given
// collection.
func NewEngine(items []Item) *Engine {
	e := &Engine{
		items:    append([]Item(nil), items...),
		criteria: DefaultCriteria(),
	}
	e.recompute()
	return e
}

// SetItems replaces the backing collection, e.g. after a fresh catalog fetch.
func (e *Engine) SetItems(items []Item) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = append([]Item(nil), items...)
	e.recompute()
}

// Criteria returns a copy of the current criteria.
func (e *Engine) Criteria() Criteria {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.criteria
}

// Update mutates the criteria through fn and recomputes the visible slice.
func (e *Engine) Update(fn func(*Criteria)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.criteria)
	e.recompute()
}

// Clear resets every facet to its unconstrained default in one replacement.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.criteria = DefaultCriteria()
	e.recompute()
}

// ApplyPreset overwrites only the facets the preset names.
func (e *Engine) ApplyPreset(preset Preset) {
	e.mu.Lock()
	defer e.mu.Unlock()
	preset.applyTo(&e.criteria)
	e.recompute()
}

// Visible returns the current filtered, sorted listing.
func (e *Engine) Visible() []Item {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Item(nil), e.visible...)
}

func (e *Engine) recompute() {
	e.visible = Apply(e.items, e.criteria)
}

// Apply filters items through the criteria's AND predicate and sorts the
// survivors by the chosen key and direction. Equal sort keys keep whatever
// relative order the sort primitive leaves; no tie-break is defined.
func Apply(items []Item, criteria Criteria) []Item {
	result := make([]Item, 0, len(items))
	for _, item := range items {
		if criteria.Matches(item) {
			result = append(result, item)
		}
	}

	less := lessFor(criteria.SortKey)
	descending := criteria.SortDir == enums.SortDescending
	sort.Slice(result, func(i, j int) bool {
		if descending {
			return less(result[j], result[i])
		}
		return less(result[i], result[j])
	})
	return result
}

func lessFor(key enums.SortKey) func(a, b Item) bool {
	switch key {
	case enums.SortKeyRating:
		return func(a, b Item) bool { return a.Rating < b.Rating }
	case enums.SortKeySales:
		return func(a, b Item) bool { return a.Sales < b.Sales }
	case enums.SortKeyOrders:
		return func(a, b Item) bool { return a.Orders < b.Orders }
	case enums.SortKeyCreatedAt:
		return func(a, b Item) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return func(a, b Item) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}
}
