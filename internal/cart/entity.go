// AngelaMos | 2026
// entity.go

package cart

import (
	"time"

	"github.com/vipinpawar/jeopardy-app/internal/pricing"
)

type CartItem struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	ItemID    string    `db:"item_id"`
	Quantity  int       `db:"quantity"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Line is a cart entry joined with the catalog item it refers to.
type Line struct {
	CartItemID    string    `db:"cart_item_id"`
	ItemID        string    `db:"item_id"`
	Quantity      int       `db:"quantity"`
	Name          string    `db:"name"`
	Category      string    `db:"category"`
	BasePrice     int64     `db:"base_price"`
	MonthlyPrice  int64     `db:"monthly_price"`
	YearlyPrice   int64     `db:"yearly_price"`
	LifetimePrice int64     `db:"lifetime_price"`
	ImageURL      string    `db:"image_url"`
	AddedAt       time.Time `db:"created_at"`
}

func (l *Line) PriceSheet() pricing.Prices {
	return pricing.Prices{
		Base:     l.BasePrice,
		Monthly:  l.MonthlyPrice,
		Yearly:   l.YearlyPrice,
		Lifetime: l.LifetimePrice,
	}
}
