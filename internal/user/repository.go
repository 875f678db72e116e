// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/pricing"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	IncrementTokenVersion(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListUsersParams) ([]User, int, error)
	UpdateMembership(
		ctx context.Context,
		id string,
		tier pricing.Tier,
		start time.Time,
		end *time.Time,
	) (*User, error)
	AddScore(ctx context.Context, id string, delta int64) (*User, error)
	SetScore(ctx context.Context, id string, total int64) (*User, error)
	ListByScore(ctx context.Context, limit int) ([]User, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const userColumns = `id, username, email, password_hash, role, membership,
	membership_start_date, membership_end_date, total_amount, token_version,
	created_at, updated_at`

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, role, membership)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING total_amount, token_version, created_at, updated_at`

	err := r.db.GetContext(ctx, user, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Membership,
	)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET username = $2, role = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &user.UpdatedAt, query,
		user.ID,
		user.Username,
		user.Role,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1`

	return r.execOne(ctx, "update password", query, id, passwordHash)
}

func (r *repository) IncrementTokenVersion(
	ctx context.Context,
	id string,
) error {
	query := `
		UPDATE users
		SET token_version = token_version + 1, updated_at = NOW()
		WHERE id = $1`

	return r.execOne(ctx, "increment token version", query, id)
}

// Delete removes the user row. Cart, wishlist, address, purchase and
// session rows go with it through ON DELETE CASCADE.
func (r *repository) Delete(ctx context.Context, id string) error {
	return r.execOne(ctx, "delete user", `DELETE FROM users WHERE id = $1`, id)
}

func (r *repository) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "TRUE")

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(email ILIKE $%d OR username ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Role != "" {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, params.Role)
		argIdx++
	}

	if params.Membership != "" {
		conditions = append(conditions, fmt.Sprintf("membership = $%d", argIdx))
		args = append(args, params.Membership)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM users WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		userColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var users []User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return users, total, nil
}

func (r *repository) UpdateMembership(
	ctx context.Context,
	id string,
	tier pricing.Tier,
	start time.Time,
	end *time.Time,
) (*User, error) {
	query := `
		UPDATE users
		SET membership = $2,
		    membership_start_date = $3,
		    membership_end_date = $4,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	return r.getOne(ctx, "update membership", query, id, tier, start, end)
}

// AddScore increments in the database so concurrent awards never lose
// points to a read-modify-write race.
func (r *repository) AddScore(
	ctx context.Context,
	id string,
	delta int64,
) (*User, error) {
	query := `
		UPDATE users
		SET total_amount = total_amount + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	return r.getOne(ctx, "add score", query, id, delta)
}

func (r *repository) SetScore(
	ctx context.Context,
	id string,
	total int64,
) (*User, error) {
	query := `
		UPDATE users
		SET total_amount = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	return r.getOne(ctx, "set score", query, id, total)
}

// ListByScore ranks users by total, oldest account first among ties. A
// limit of zero or less returns every user.
func (r *repository) ListByScore(ctx context.Context, limit int) ([]User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY total_amount DESC, created_at ASC, id ASC`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	var users []User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("list users by score: %w", err)
	}

	return users, nil
}

func (r *repository) getOne(
	ctx context.Context,
	op, query string,
	args ...any,
) (*User, error) {
	var user User
	err := r.db.GetContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

func (r *repository) execOne(
	ctx context.Context,
	op, query string,
	args ...any,
) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
