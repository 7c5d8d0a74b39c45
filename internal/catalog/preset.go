package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/angelmondragon/packfinderz-storefront/pkg/enums"
)

var presetValidator = validator.New(validator.WithRequiredStructEnabled())

// RangeSpec is the serialized form of one numeric range facet in a preset.
type RangeSpec struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// Preset is an authored partial filter, e.g. "Top rated" or "Active shops".
// Nil fields leave the corresponding facet untouched when applied.
type Preset struct {
	Name      string               `json:"name" validate:"required"`
	Location  *string              `json:"location,omitempty"`
	MinRating *int                 `json:"min_rating,omitempty" validate:"omitempty,min=1,max=5"`
	Sales     *RangeSpec           `json:"sales,omitempty"`
	Orders    *RangeSpec           `json:"orders,omitempty"`
	Statuses  *[]enums.ShopStatus  `json:"statuses,omitempty" validate:"omitempty,dive,oneof=active pending suspended closed"`
	SortKey   *enums.SortKey       `json:"sort_key,omitempty" validate:"omitempty,oneof=name rating sales orders created_at"`
	SortDir   *enums.SortDirection `json:"sort_dir,omitempty" validate:"omitempty,oneof=asc desc"`
}

// ParsePresets decodes and validates an authored preset list. Presets are
// curated content, so unlike user-typed facet input they are rejected when
// out of domain.
func ParsePresets(data []byte) ([]Preset, error) {
	var presets []Preset
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("decoding presets: %w", err)
	}
	for i := range presets {
		if err := presetValidator.Struct(&presets[i]); err != nil {
			return nil, fmt.Errorf("validating preset %q: %w", presets[i].Name, err)
		}
	}
	return presets, nil
}

func (p Preset) applyTo(criteria *Criteria) {
	if p.Location != nil {
		criteria.Location = *p.Location
	}
	if p.MinRating != nil {
		rating := *p.MinRating
		criteria.MinRating = &rating
	}
	if p.Sales != nil {
		criteria.Sales = Range{Min: copyBound(p.Sales.Min), Max: copyBound(p.Sales.Max)}
	}
	if p.Orders != nil {
		criteria.Orders = Range{Min: copyBound(p.Orders.Min), Max: copyBound(p.Orders.Max)}
	}
	if p.Statuses != nil {
		criteria.Statuses = append([]enums.ShopStatus(nil), (*p.Statuses)...)
	}
	if p.SortKey != nil {
		criteria.SortKey = *p.SortKey
	}
	if p.SortDir != nil {
		criteria.SortDir = *p.SortDir
	}
}

func copyBound(bound *int) *int {
	if bound == nil {
		return nil
	}
	value := *bound
	return &value
}
