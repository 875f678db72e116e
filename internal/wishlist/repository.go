// AngelaMos | 2026
// repository.go

package wishlist

import (
	"context"
	"fmt"

	"github.com/vipinpawar/jeopardy-app/internal/core"
)

type Repository interface {
	// Insert returns inserted=false when the entry already exists.
	Insert(ctx context.Context, userID, itemID string) (inserted bool, err error)
	Delete(ctx context.Context, userID, itemID string) (int64, error)
	List(ctx context.Context, userID string) ([]Saved, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, userID, itemID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO wishlist_items (user_id, item_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, item_id) DO NOTHING`,
		userID, itemID,
	)
	if err != nil {
		if core.IsForeignKeyError(err) {
			return false, ErrItemNotFound
		}
		return false, fmt.Errorf("insert wishlist item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert wishlist item: %w", err)
	}

	return rows == 1, nil
}

func (r *repository) Delete(ctx context.Context, userID, itemID string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM wishlist_items WHERE user_id = $1 AND item_id = $2`,
		userID, itemID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete wishlist item: %w", err)
	}

	return result.RowsAffected()
}

// List resolves each entry to a Saved variant here so callers never
// inspect raw join columns.
func (r *repository) List(ctx context.Context, userID string) ([]Saved, error) {
	query := `
		SELECT w.item_id, w.created_at, i.name, i.category, i.base_price,
		       i.monthly_price, i.yearly_price, i.lifetime_price, i.image_url
		FROM wishlist_items w
		LEFT JOIN items i ON i.id = w.item_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC, w.id ASC`

	var rows []row
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}

	saved := make([]Saved, 0, len(rows))
	for _, row := range rows {
		saved = append(saved, row.resolve())
	}
	return saved, nil
}
