// AngelaMos | 2026
// entity.go

package wishlist

import (
	"time"
)

// Saved is what a wishlist row resolves to. It is either a live catalog
// item or a bare wishlisted reference whose item row is gone.
type Saved interface {
	savedItemID() string
}

// CatalogItem is a wishlist entry joined with its catalog item.
type CatalogItem struct {
	ItemID        string
	Name          string
	Category      string
	BasePrice     int64
	MonthlyPrice  int64
	YearlyPrice   int64
	LifetimePrice int64
	ImageURL      string
	AddedAt       time.Time
}

// WishlistedItem is an entry whose item row did not join. The items
// foreign key cascades, so the current schema does not produce it.
type WishlistedItem struct {
	ItemID  string
	AddedAt time.Time
}

func (c CatalogItem) savedItemID() string    { return c.ItemID }
func (w WishlistedItem) savedItemID() string { return w.ItemID }

// row is the LEFT JOIN shape; item columns are NULL when unresolved.
type row struct {
	ItemID        string    `db:"item_id"`
	AddedAt       time.Time `db:"created_at"`
	Name          *string   `db:"name"`
	Category      *string   `db:"category"`
	BasePrice     *int64    `db:"base_price"`
	MonthlyPrice  *int64    `db:"monthly_price"`
	YearlyPrice   *int64    `db:"yearly_price"`
	LifetimePrice *int64    `db:"lifetime_price"`
	ImageURL      *string   `db:"image_url"`
}

func (r row) resolve() Saved {
	if r.Name == nil {
		return WishlistedItem{ItemID: r.ItemID, AddedAt: r.AddedAt}
	}
	return CatalogItem{
		ItemID:        r.ItemID,
		Name:          *r.Name,
		Category:      deref(r.Category),
		BasePrice:     deref(r.BasePrice),
		MonthlyPrice:  deref(r.MonthlyPrice),
		YearlyPrice:   deref(r.YearlyPrice),
		LifetimePrice: deref(r.LifetimePrice),
		ImageURL:      deref(r.ImageURL),
		AddedAt:       r.AddedAt,
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
