package enums

import "fmt"

// SuggestionKind tags where a search suggestion came from.
type SuggestionKind string

const (
	SuggestionKindRecent   SuggestionKind = "recent"
	SuggestionKindTrending SuggestionKind = "trending"
	SuggestionKindCatalog  SuggestionKind = "catalog"
)

var validSuggestionKinds = []SuggestionKind{
	SuggestionKindRecent,
	SuggestionKindTrending,
	SuggestionKindCatalog,
}

// String implements fmt.Stringer.
func (s SuggestionKind) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SuggestionKind.
func (s SuggestionKind) IsValid() bool {
	for _, candidate := range validSuggestionKinds {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSuggestionKind converts raw input into a SuggestionKind.
func ParseSuggestionKind(value string) (SuggestionKind, error) {
	for _, candidate := range validSuggestionKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid suggestion kind %q", value)
}
