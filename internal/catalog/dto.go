// AngelaMos | 2026
// dto.go

package catalog

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vipinpawar/jeopardy-app/internal/pricing"
)

// ItemRequest is the full item body for both create and update.
type ItemRequest struct {
	Name          string  `json:"name"          validate:"required,max=200"`
	Category      string  `json:"category"      validate:"required,max=100"`
	BasePrice     int64   `json:"basePrice"     validate:"gte=0,lte=1000000000000"`
	MonthlyPrice  int64   `json:"monthlyPrice"  validate:"gte=0,lte=1000000000000"`
	YearlyPrice   int64   `json:"yearlyPrice"   validate:"gte=0,lte=1000000000000"`
	LifetimePrice int64   `json:"lifetimePrice" validate:"gte=0,lte=1000000000000"`
	DownloadURL   *string `json:"downloadUrl"   validate:"omitempty,url"`
}

func (r *ItemRequest) prices() pricing.Prices {
	return pricing.Prices{
		Base:     r.BasePrice,
		Monthly:  r.MonthlyPrice,
		Yearly:   r.YearlyPrice,
		Lifetime: r.LifetimePrice,
	}
}

func (r *ItemRequest) apply(item *Item) {
	item.Name = strings.TrimSpace(r.Name)
	item.Category = strings.TrimSpace(r.Category)
	item.BasePrice = r.BasePrice
	item.MonthlyPrice = r.MonthlyPrice
	item.YearlyPrice = r.YearlyPrice
	item.LifetimePrice = r.LifetimePrice
	item.DownloadURL = r.DownloadURL
	if item.DownloadURL != nil && strings.TrimSpace(*item.DownloadURL) == "" {
		item.DownloadURL = nil
	}
}

// validateItemPrices enforces monthly <= yearly <= lifetime <= base over
// the tier prices that are set.
func validateItemPrices(sl validator.StructLevel) {
	req, ok := sl.Current().Interface().(ItemRequest)
	if !ok {
		return
	}
	if !req.prices().Ordered() {
		sl.ReportError(req.BasePrice, "basePrice", "BasePrice", "price_order", "")
	}
}

// NewValidator returns a validator with the item price rules registered.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateItemPrices, ItemRequest{})
	return v
}

type ItemResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	BasePrice     int64  `json:"basePrice"`
	MonthlyPrice  int64  `json:"monthlyPrice"`
	YearlyPrice   int64  `json:"yearlyPrice"`
	LifetimePrice int64  `json:"lifetimePrice"`
	ImageURL      string `json:"imageUrl"`
	Price         int64  `json:"price"`
}

type AdminItemResponse struct {
	ItemResponse
	DownloadURL *string `json:"downloadUrl"`
}

func ToItemResponse(item *Item, tier pricing.Tier) ItemResponse {
	return ItemResponse{
		ID:            item.ID,
		Name:          item.Name,
		Category:      item.Category,
		BasePrice:     item.BasePrice,
		MonthlyPrice:  item.MonthlyPrice,
		YearlyPrice:   item.YearlyPrice,
		LifetimePrice: item.LifetimePrice,
		ImageURL:      item.ImageURL,
		Price:         pricing.ResolveFor(item, tier),
	}
}

func toAdminItemResponse(item *Item) AdminItemResponse {
	return AdminItemResponse{
		ItemResponse: ToItemResponse(item, pricing.TierFree),
		DownloadURL:  item.DownloadURL,
	}
}
