// AngelaMos | 2026
// repository.go

package purchase

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vipinpawar/jeopardy-app/internal/core"
)

type Repository interface {
	Insert(ctx context.Context, rec *Record) error
	ListByUser(ctx context.Context, userID string) ([]Order, error)
}

// Store opens repositories bound to a single transaction.
type Store interface {
	Repository
	InTx(ctx context.Context, fn func(repo Repository) error) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, rec *Record) error {
	query := `
		INSERT INTO purchases (user_id, item_id, quantity, unit_price, price_paid, membership, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, purchased_at`

	err := r.db.QueryRowxContext(ctx, query,
		rec.UserID,
		rec.ItemID,
		rec.Quantity,
		rec.UnitPrice,
		rec.PricePaid,
		rec.Membership,
		rec.Status,
	).Scan(&rec.ID, &rec.PurchasedAt)
	if err != nil {
		if core.IsForeignKeyError(err) {
			return ErrItemNotFound
		}
		return fmt.Errorf("insert purchase: %w", err)
	}

	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	query := `
		SELECT p.id, p.user_id, p.item_id, p.quantity, p.unit_price, p.price_paid,
		       p.membership, p.status, p.purchased_at,
		       i.name AS item_name, i.category AS item_category, i.image_url AS item_image_url
		FROM purchases p
		JOIN items i ON i.id = p.item_id
		WHERE p.user_id = $1
		ORDER BY p.purchased_at DESC, p.id ASC`

	var orders []Order
	if err := r.db.SelectContext(ctx, &orders, query, userID); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}

	return orders, nil
}

type store struct {
	Repository
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) Store {
	return &store{Repository: NewRepository(db), db: db}
}

func (s *store) InTx(ctx context.Context, fn func(repo Repository) error) error {
	return core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return fn(NewRepository(tx))
	})
}
