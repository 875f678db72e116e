// AngelaMos | 2026
// repository.go

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/vipinpawar/jeopardy-app/internal/core"
)

type Repository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	GetByIDs(ctx context.Context, ids []string) ([]Item, error)
	List(ctx context.Context, category string) ([]Item, error)
	Categories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, item *Item) error
	SetImage(ctx context.Context, id, imageURL string) (previous string, err error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const itemColumns = `id, name, category, base_price, monthly_price, yearly_price,
	lifetime_price, download_url, image_url, created_at, updated_at`

func (r *repository) Create(ctx context.Context, item *Item) error {
	query := `
		INSERT INTO items (id, name, category, base_price, monthly_price,
			yearly_price, lifetime_price, download_url, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, item, query,
		item.ID,
		item.Name,
		item.Category,
		item.BasePrice,
		item.MonthlyPrice,
		item.YearlyPrice,
		item.LifetimePrice,
		item.DownloadURL,
		item.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	var item Item
	err := r.db.GetContext(ctx, &item, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	return &item, nil
}

// GetByIDs resolves ids in one round trip. Unknown ids are skipped.
func (r *repository) GetByIDs(ctx context.Context, ids []string) ([]Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ANY($1::uuid[])`

	var items []Item
	if err := r.db.SelectContext(ctx, &items, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}

	return items, nil
}

func (r *repository) List(ctx context.Context, category string) ([]Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	args := []any{}

	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY category ASC, name ASC, id ASC`

	var items []Item
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	return items, nil
}

func (r *repository) Categories(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT category FROM items ORDER BY category ASC`

	var categories []string
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

func (r *repository) Update(ctx context.Context, item *Item) error {
	query := `
		UPDATE items
		SET name = $2, category = $3, base_price = $4, monthly_price = $5,
		    yearly_price = $6, lifetime_price = $7, download_url = $8,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &item.UpdatedAt, query,
		item.ID,
		item.Name,
		item.Category,
		item.BasePrice,
		item.MonthlyPrice,
		item.YearlyPrice,
		item.LifetimePrice,
		item.DownloadURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrItemNotFound
	}
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}

	return nil
}

func (r *repository) SetImage(ctx context.Context, id, imageURL string) (string, error) {
	query := `
		UPDATE items AS i
		SET image_url = $2, updated_at = NOW()
		FROM (SELECT id, image_url FROM items WHERE id = $1 FOR UPDATE) AS old
		WHERE i.id = old.id
		RETURNING old.image_url`

	var previous string
	err := r.db.GetContext(ctx, &previous, query, id, imageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrItemNotFound
	}
	if err != nil {
		return "", fmt.Errorf("set item image: %w", err)
	}

	return previous, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		if core.IsForeignKeyError(err) {
			return ErrItemInUse
		}
		return fmt.Errorf("delete item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if rows == 0 {
		return ErrItemNotFound
	}

	return nil
}
