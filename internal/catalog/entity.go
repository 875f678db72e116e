// AngelaMos | 2026
// entity.go

package catalog

import (
	"time"

	"github.com/vipinpawar/jeopardy-app/internal/pricing"
)

type Item struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	Category      string    `db:"category"`
	BasePrice     int64     `db:"base_price"`
	MonthlyPrice  int64     `db:"monthly_price"`
	YearlyPrice   int64     `db:"yearly_price"`
	LifetimePrice int64     `db:"lifetime_price"`
	DownloadURL   *string   `db:"download_url"`
	ImageURL      string    `db:"image_url"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (i *Item) PriceSheet() pricing.Prices {
	return pricing.Prices{
		Base:     i.BasePrice,
		Monthly:  i.MonthlyPrice,
		Yearly:   i.YearlyPrice,
		Lifetime: i.LifetimePrice,
	}
}

func (i *Item) HasDownload() bool {
	return i.DownloadURL != nil && *i.DownloadURL != ""
}
