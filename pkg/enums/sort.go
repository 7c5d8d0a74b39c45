package enums

import "fmt"

// SortKey names the single sortable attribute of a catalog listing.
type SortKey string

const (
	SortKeyName      SortKey = "name"
	SortKeyRating    SortKey = "rating"
	SortKeySales     SortKey = "sales"
	SortKeyOrders    SortKey = "orders"
	SortKeyCreatedAt SortKey = "created_at"
)

var validSortKeys = []SortKey{
	SortKeyName,
	SortKeyRating,
	SortKeySales,
	SortKeyOrders,
	SortKeyCreatedAt,
}

// String implements fmt.Stringer.
func (s SortKey) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortKey.
func (s SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey.
func ParseSortKey(value string) (SortKey, error) {
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}

// SortDirection orders a sorted listing ascending or descending.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

var validSortDirections = []SortDirection{
	SortAscending,
	SortDescending,
}

// String implements fmt.Stringer.
func (s SortDirection) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortDirection.
func (s SortDirection) IsValid() bool {
	for _, candidate := range validSortDirections {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortDirection converts raw input into a SortDirection.
func ParseSortDirection(value string) (SortDirection, error) {
	for _, candidate := range validSortDirections {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort direction %q", value)
}
