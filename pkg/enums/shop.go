package enums

import "fmt"

// ShopStatus is the lifecycle tag attached to shop and product listings.
type ShopStatus string

const (
	ShopStatusActive    ShopStatus = "active"
	ShopStatusPending   ShopStatus = "pending"
	ShopStatusSuspended ShopStatus = "suspended"
	ShopStatusClosed    ShopStatus = "closed"
)

var validShopStatuses = []ShopStatus{
	ShopStatusActive,
	ShopStatusPending,
	ShopStatusSuspended,
	ShopStatusClosed,
}

// String implements fmt.Stringer.
func (s ShopStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ShopStatus.
func (s ShopStatus) IsValid() bool {
	for _, candidate := range validShopStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseShopStatus converts raw input into a ShopStatus.
func ParseShopStatus(value string) (ShopStatus, error) {
	for _, candidate := range validShopStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shop status %q", value)
}
