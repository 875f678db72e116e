// AngelaMos | 2026
// dto.go

package cart

import (
	"time"

	"github.com/vipinpawar/jeopardy-app/internal/pricing"
)

type AddRequest struct {
	ItemID string `json:"itemId" validate:"required"`
}

type UpdateQuantityRequest struct {
	CartItemID string `json:"cartItemId" validate:"required"`
	Quantity   int    `json:"quantity"   validate:"lte=10000"`
}

type RemoveRequest struct {
	CartItemID string `json:"cartItemId" validate:"required"`
}

type ClearRequest struct {
	ItemIDs []string `json:"itemIds"`
}

type CartItemResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"itemId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

type LineResponse struct {
	CartItemID    string `json:"cartItemId"`
	ItemID        string `json:"itemId"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	ImageURL      string `json:"imageUrl"`
	Quantity      int    `json:"quantity"`
	BasePrice     int64  `json:"basePrice"`
	MonthlyPrice  int64  `json:"monthlyPrice"`
	YearlyPrice   int64  `json:"yearlyPrice"`
	LifetimePrice int64  `json:"lifetimePrice"`
	UnitPrice     int64  `json:"unitPrice"`
	LineTotal     int64  `json:"lineTotal"`
}

type CartResponse struct {
	Items      []LineResponse `json:"items"`
	Total      int64          `json:"total"`
	Membership string         `json:"membership"`
}

func toCartItemResponse(c *CartItem) CartItemResponse {
	return CartItemResponse{
		ID:        c.ID,
		ItemID:    c.ItemID,
		Quantity:  c.Quantity,
		CreatedAt: c.CreatedAt,
	}
}

func toLineResponse(l *Line, tier pricing.Tier) (LineResponse, bool) {
	unit := pricing.ResolveFor(l, tier)
	lineTotal, ok := pricing.LineTotal(unit, l.Quantity)
	return LineResponse{
		CartItemID:    l.CartItemID,
		ItemID:        l.ItemID,
		Name:          l.Name,
		Category:      l.Category,
		ImageURL:      l.ImageURL,
		Quantity:      l.Quantity,
		BasePrice:     l.BasePrice,
		MonthlyPrice:  l.MonthlyPrice,
		YearlyPrice:   l.YearlyPrice,
		LifetimePrice: l.LifetimePrice,
		UnitPrice:     unit,
		LineTotal:     lineTotal,
	}, ok
}
