// AngelaMos | 2026
// entity.go

package purchase

import (
	"time"

	"github.com/vipinpawar/jeopardy-app/internal/pricing"
)

const StatusCompleted = "COMPLETED"

// Record is one purchased line. PricePaid is always UnitPrice * Quantity.
type Record struct {
	ID          string       `db:"id"`
	UserID      string       `db:"user_id"`
	ItemID      string       `db:"item_id"`
	Quantity    int          `db:"quantity"`
	UnitPrice   int64        `db:"unit_price"`
	PricePaid   int64        `db:"price_paid"`
	Membership  pricing.Tier `db:"membership"`
	Status      string       `db:"status"`
	PurchasedAt time.Time    `db:"purchased_at"`
}

// Order is a Record joined with the item it refers to.
type Order struct {
	Record
	ItemName     string `db:"item_name"`
	ItemCategory string `db:"item_category"`
	ItemImageURL string `db:"item_image_url"`
}

// ItemRef is a requested line before pricing.
type ItemRef struct {
	ItemID   string
	Quantity int
}
