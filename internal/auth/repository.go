// AngelaMos | 2026
// repository.go

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vipinpawar/jeopardy-app/internal/core"
)

// Repository stores refresh token chains.
type Repository interface {
	Create(ctx context.Context, token *RefreshToken) error
	// Rotate consumes the live link oldID and stores next as its successor in
	// one statement. ErrTokenReuse means oldID was already consumed or revoked.
	Rotate(ctx context.Context, oldID string, next *RefreshToken) error
	FindByHash(ctx context.Context, tokenHash string) (*RefreshToken, error)
	FindByID(ctx context.Context, id string) (*RefreshToken, error)
	Revoke(ctx context.Context, id string) error
	RevokeFamily(ctx context.Context, familyID string) error
	RevokeUser(ctx context.Context, userID string) error
	ListActive(ctx context.Context, userID string) ([]RefreshToken, error)
	// DeleteExpired removes links that expired before cutoff.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const tokenColumns = `id, user_id, token_hash, family_id, expires_at, created_at,
	is_used, used_at, revoked_at, replaced_by_id, user_agent, ip_address`

func (r *repository) Create(ctx context.Context, token *RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (
			id, user_id, token_hash, family_id, expires_at, user_agent, ip_address
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	if err := r.db.GetContext(ctx, &token.CreatedAt, query, insertArgs(token)...); err != nil {
		return fmt.Errorf("create refresh token: %w", err)
	}
	return nil
}

func (r *repository) Rotate(ctx context.Context, oldID string, next *RefreshToken) error {
	query := `
		WITH consumed AS (
			UPDATE refresh_tokens
			SET is_used = true, used_at = NOW(), replaced_by_id = $1
			WHERE id = $8 AND is_used = false AND revoked_at IS NULL
			RETURNING id
		)
		INSERT INTO refresh_tokens (
			id, user_id, token_hash, family_id, expires_at, user_agent, ip_address
		)
		SELECT $1, $2, $3, $4, $5, $6, $7 FROM consumed
		RETURNING created_at`

	args := append(insertArgs(next), oldID)

	err := r.db.GetContext(ctx, &next.CreatedAt, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTokenReuse
	}
	if err != nil {
		return fmt.Errorf("rotate refresh token: %w", err)
	}
	return nil
}

func insertArgs(t *RefreshToken) []any {
	return []any{
		t.ID,
		t.UserID,
		t.TokenHash,
		t.FamilyID,
		t.ExpiresAt,
		t.UserAgent,
		t.IPAddress,
	}
}

func (r *repository) FindByHash(ctx context.Context, tokenHash string) (*RefreshToken, error) {
	return r.findOne(ctx, "token_hash = $1", tokenHash)
}

func (r *repository) FindByID(ctx context.Context, id string) (*RefreshToken, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *repository) findOne(ctx context.Context, where string, arg any) (*RefreshToken, error) {
	query := `SELECT ` + tokenColumns + ` FROM refresh_tokens WHERE ` + where

	var token RefreshToken
	err := r.db.GetContext(ctx, &token, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find refresh token: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return &token, nil
}

func (r *repository) Revoke(ctx context.Context, id string) error {
	rows, err := r.revokeWhere(ctx, "id = $1", id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("revoke refresh token: %w", core.ErrNotFound)
	}
	return nil
}

func (r *repository) RevokeFamily(ctx context.Context, familyID string) error {
	_, err := r.revokeWhere(ctx, "family_id = $1", familyID)
	return err
}

func (r *repository) RevokeUser(ctx context.Context, userID string) error {
	_, err := r.revokeWhere(ctx, "user_id = $1", userID)
	return err
}

func (r *repository) revokeWhere(ctx context.Context, where string, arg any) (int64, error) {
	query := `UPDATE refresh_tokens SET revoked_at = NOW()
		WHERE revoked_at IS NULL AND ` + where

	result, err := r.db.ExecContext(ctx, query, arg)
	if err != nil {
		return 0, fmt.Errorf("revoke refresh tokens: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return rows, nil
}

func (r *repository) ListActive(ctx context.Context, userID string) ([]RefreshToken, error) {
	query := `SELECT ` + tokenColumns + `
		FROM refresh_tokens
		WHERE user_id = $1
			AND revoked_at IS NULL
			AND is_used = false
			AND expires_at > NOW()
		ORDER BY created_at DESC`

	var tokens []RefreshToken
	if err := r.db.SelectContext(ctx, &tokens, query, userID); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return tokens, nil
}

func (r *repository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}
	return result.RowsAffected()
}
