// AngelaMos | 2026
// entity.go

package blog

import (
	"time"
)

type Category struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type Post struct {
	ID           string    `db:"id"`
	Title        string    `db:"title"`
	Image        string    `db:"image"`
	Content      string    `db:"content"`
	CategoryID   string    `db:"category_id"`
	CategoryName string    `db:"category_name"`
	CreatedAt    time.Time `db:"created_at"`
}
