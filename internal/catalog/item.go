package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-storefront/pkg/enums"
)

// Item is one row of a browse listing: a shop card or a product card. The
// engine only reads it; ownership stays with whatever fed the listing.
type Item struct {
	ID        uuid.UUID
	Name      string
	Location  string
	Rating    int
	Sales     int
	Orders    int
	Status    enums.ShopStatus
	Price     decimal.Decimal
	CreatedAt time.Time
}
