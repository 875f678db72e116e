// AngelaMos | 2026
// dto.go

package wishlist

import (
	"time"
)

type ItemRequest struct {
	ItemID string `json:"itemId" validate:"required"`
}

type ItemSummary struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	BasePrice     int64  `json:"basePrice"`
	MonthlyPrice  int64  `json:"monthlyPrice"`
	YearlyPrice   int64  `json:"yearlyPrice"`
	LifetimePrice int64  `json:"lifetimePrice"`
	ImageURL      string `json:"imageUrl"`
	Price         int64  `json:"price"`
}

// EntryResponse carries Item only when the catalog item still resolves.
type EntryResponse struct {
	ItemID    string       `json:"itemId"`
	Available bool         `json:"available"`
	Item      *ItemSummary `json:"item,omitempty"`
	AddedAt   time.Time    `json:"addedAt"`
}

type MoveResult struct {
	ItemID        string `json:"itemId"`
	AlreadyInCart bool   `json:"alreadyInCart"`
}
