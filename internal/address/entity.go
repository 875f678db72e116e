// AngelaMos | 2026
// entity.go

package address

import (
	"time"
)

const DefaultType = "Home"

type Address struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Type      string    `db:"type"`
	Street    string    `db:"street"`
	City      string    `db:"city"`
	State     string    `db:"state"`
	Pin       string    `db:"pin"`
	Mobile    string    `db:"mobile"`
	Country   string    `db:"country"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
