// AngelaMos | 2026
// repository.go

package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/vipinpawar/jeopardy-app/internal/core"
)

type Repository interface {
	// Insert adds itemID with quantity 1. inserted is false when the user
	// already has the item in the cart; the existing row is left untouched.
	Insert(ctx context.Context, userID, itemID string) (item *CartItem, inserted bool, err error)
	UpdateQuantity(ctx context.Context, userID, cartItemID string, quantity int) (*CartItem, error)
	Remove(ctx context.Context, userID, cartItemID string) error
	List(ctx context.Context, userID string) ([]Line, error)
	Clear(ctx context.Context, userID string, itemIDs []string) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const cartColumns = `id, user_id, item_id, quantity, created_at, updated_at`

func (r *repository) Insert(
	ctx context.Context,
	userID, itemID string,
) (*CartItem, bool, error) {
	query := `
		INSERT INTO cart_items (user_id, item_id, quantity)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, item_id) DO NOTHING
		RETURNING ` + cartColumns

	var item CartItem
	err := r.db.GetContext(ctx, &item, query, userID, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		if core.IsForeignKeyError(err) {
			return nil, false, ErrItemNotFound
		}
		return nil, false, fmt.Errorf("insert cart item: %w", err)
	}

	return &item, true, nil
}

func (r *repository) UpdateQuantity(
	ctx context.Context,
	userID, cartItemID string,
	quantity int,
) (*CartItem, error) {
	query := `
		UPDATE cart_items
		SET quantity = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + cartColumns

	var item CartItem
	err := r.db.GetContext(ctx, &item, query, cartItemID, userID, quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update cart quantity: %w", err)
	}

	return &item, nil
}

func (r *repository) Remove(ctx context.Context, userID, cartItemID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`,
		cartItemID, userID,
	)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	if rows == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *repository) List(ctx context.Context, userID string) ([]Line, error) {
	query := `
		SELECT c.id AS cart_item_id, c.item_id, c.quantity, c.created_at,
		       i.name, i.category, i.base_price, i.monthly_price,
		       i.yearly_price, i.lifetime_price, i.image_url
		FROM cart_items c
		JOIN items i ON i.id = c.item_id
		WHERE c.user_id = $1
		ORDER BY c.created_at ASC, c.id ASC`

	var lines []Line
	if err := r.db.SelectContext(ctx, &lines, query, userID); err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}

	return lines, nil
}

// Clear removes the given items, or every item when itemIDs is empty.
func (r *repository) Clear(ctx context.Context, userID string, itemIDs []string) (int64, error) {
	query := `DELETE FROM cart_items WHERE user_id = $1`
	args := []any{userID}

	if len(itemIDs) > 0 {
		query += ` AND item_id = ANY($2::uuid[])`
		args = append(args, pq.Array(itemIDs))
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}

	return result.RowsAffected()
}
