package catalog

import (
	"strconv"
	"strings"

	"github.com/angelmondragon/packfinderz-storefront/pkg/enums"
)

// Range is one numeric facet with independently optional bounds. A nil bound
// constrains nothing; both nil means the facet is inactive. Bounds are
// inclusive.
type Range struct {
	Min *int
	Max *int
}

// Active reports whether either bound is set.
func (r Range) Active() bool {
	return r.Min != nil || r.Max != nil
}

// Contains reports whether value satisfies the set bounds.
func (r Range) Contains(value int) bool {
	if r.Min != nil && value < *r.Min {
		return false
	}
	if r.Max != nil && value > *r.Max {
		return false
	}
	return true
}

// Criteria holds every facet of a listing filter plus the sort choice. Facets
// at their zero value impose no constraint.
type Criteria struct {
	Location  string
	MinRating *int
	Sales     Range
	Orders    Range
	Statuses  []enums.ShopStatus
	SortKey   enums.SortKey
	SortDir   enums.SortDirection
}

// DefaultCriteria returns the unconstrained state every listing starts from.
func DefaultCriteria() Criteria {
	return Criteria{
		SortKey: enums.SortKeyName,
		SortDir: enums.SortAscending,
	}
}

// Matches evaluates the AND of all active facets against one item.
func (c Criteria) Matches(item Item) bool {
	if location := strings.TrimSpace(c.Location); location != "" {
		if !strings.Contains(strings.ToLower(item.Location), strings.ToLower(location)) {
			return false
		}
	}
	if c.MinRating != nil && item.Rating < *c.MinRating {
		return false
	}
	if c.Sales.Active() && !c.Sales.Contains(item.Sales) {
		return false
	}
	if c.Orders.Active() && !c.Orders.Contains(item.Orders) {
		return false
	}
	if len(c.Statuses) > 0 && !statusIn(item.Status, c.Statuses) {
		return false
	}
	return true
}

func statusIn(status enums.ShopStatus, set []enums.ShopStatus) bool {
	for _, candidate := range set {
		if candidate == status {
			return true
		}
	}
	return false
}

// ParseBound converts raw user input into an optional numeric bound. Anything
// that does not parse as an integer drops the bound entirely; the engine
// never coerces bad input to zero.
func ParseBound(value string) *int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil
	}
	return &parsed
}
