// AngelaMos | 2026
// repository.go

package address

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vipinpawar/jeopardy-app/internal/core"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]Address, error)
	Create(ctx context.Context, a *Address) error
	Update(ctx context.Context, a *Address) error
	Delete(ctx context.Context, userID, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const addressColumns = `id, user_id, type, street, city, state, pin, mobile, country,
	created_at, updated_at`

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC`

	var addresses []Address
	if err := r.db.SelectContext(ctx, &addresses, query, userID); err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}

	return addresses, nil
}

func (r *repository) Create(ctx context.Context, a *Address) error {
	query := `
		INSERT INTO addresses (user_id, type, street, city, state, pin, mobile, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + addressColumns

	err := r.db.GetContext(ctx, a, query,
		a.UserID, a.Type, a.Street, a.City, a.State, a.Pin, a.Mobile, a.Country,
	)
	if err != nil {
		return fmt.Errorf("create address: %w", err)
	}

	return nil
}

// Update only touches an address owned by a.UserID.
func (r *repository) Update(ctx context.Context, a *Address) error {
	query := `
		UPDATE addresses
		SET street = $3, city = $4, state = $5, pin = $6, mobile = $7,
		    country = $8, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + addressColumns

	err := r.db.GetContext(ctx, a, query,
		a.ID, a.UserID, a.Street, a.City, a.State, a.Pin, a.Mobile, a.Country,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAddressNotFound
	}
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM addresses WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if rows == 0 {
		return ErrAddressNotFound
	}

	return nil
}
