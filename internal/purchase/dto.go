// AngelaMos | 2026
// dto.go

package purchase

import (
	"time"
)

type CheckoutLine struct {
	ItemID   string `json:"itemId"   validate:"required"`
	Quantity int    `json:"quantity" validate:"omitempty,gte=0,lte=10000"`
}

type CheckoutRequest struct {
	CartItems []CheckoutLine `json:"cartItems" validate:"required,min=1,dive"`
}

func (r CheckoutRequest) refs() []ItemRef {
	refs := make([]ItemRef, 0, len(r.CartItems))
	for _, line := range r.CartItems {
		refs = append(refs, ItemRef{ItemID: line.ItemID, Quantity: line.Quantity})
	}
	return refs
}

type RecordResponse struct {
	ID          string    `json:"id"`
	ItemID      string    `json:"itemId"`
	Quantity    int       `json:"quantity"`
	UnitPrice   int64     `json:"unitPrice"`
	PricePaid   int64     `json:"pricePaid"`
	Membership  string    `json:"membership"`
	Status      string    `json:"status"`
	PurchasedAt time.Time `json:"purchasedAt"`
}

type CheckoutResponse struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message"`
	Purchases []RecordResponse `json:"purchases"`
}

type OrderResponse struct {
	RecordResponse
	ItemName     string `json:"itemName"`
	ItemCategory string `json:"itemCategory"`
	ItemImageURL string `json:"itemImageUrl"`
}

func toRecordResponse(r *Record) RecordResponse {
	return RecordResponse{
		ID:          r.ID,
		ItemID:      r.ItemID,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
		PricePaid:   r.PricePaid,
		Membership:  r.Membership.String(),
		Status:      r.Status,
		PurchasedAt: r.PurchasedAt,
	}
}

func toOrderResponses(orders []Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, OrderResponse{
			RecordResponse: toRecordResponse(&orders[i].Record),
			ItemName:       orders[i].ItemName,
			ItemCategory:   orders[i].ItemCategory,
			ItemImageURL:   orders[i].ItemImageURL,
		})
	}
	return out
}
