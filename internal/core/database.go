// AngelaMos | 2026
// database.go

package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/vipinpawar/jeopardy-app/internal/config"
)

// DBTX is satisfied by both *sqlx.DB and *sqlx.Tx, so repositories run the
// same code inside and outside transactions.
type DBTX interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

type Database struct {
	DB *sqlx.DB
}

const (
	pingTimeout     = 5 * time.Second
	connectAttempts = 5
)

// NewDatabase connects and pings, retrying with backoff while the server is
// still coming up.
func NewDatabase(ctx context.Context, cfg config.DatabaseConfig) (*Database, error) {
	db, err := sqlx.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(withJitter(cfg.ConnMaxLifetime))
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	d := &Database{DB: db}
	backoff := 500 * time.Millisecond
	for attempt := 1; ; attempt++ {
		err = d.Ping(ctx)
		if err == nil {
			return d, nil
		}
		if attempt == connectAttempts {
			break
		}

		select {
		case <-ctx.Done():
			err = ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
			continue
		}
		break
	}

	_ = db.Close() //nolint:errcheck // already failing
	return nil, fmt.Errorf("connect to database: %w", err)
}

func (d *Database) Close() error {
	return d.DB.Close()
}

func (d *Database) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := d.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	return nil
}

func (d *Database) Stats() sql.DBStats {
	return d.DB.Stats()
}

const txAttempts = 3

// InTx runs fn inside a transaction, committing only when fn returns nil.
// Serialization failures and deadlocks are retried, so fn must be safe to
// run more than once.
func InTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	var err error
	for range txAttempts {
		if err = runTx(ctx, db, fn); !isRetryable(err) {
			return err
		}
	}
	return fmt.Errorf("transaction retries exhausted: %w", err)
}

func runTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback() //nolint:errcheck // re-panicking
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// isRetryable reports serialization_failure and deadlock_detected.
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && (pgErr.Code == "40001" || pgErr.Code == "40P01")
}

// Count runs SELECT COUNT(*) on one of the dashboard tables.
func (d *Database) Count(ctx context.Context, table string) (int64, error) {
	if _, ok := countableTables[table]; !ok {
		return 0, fmt.Errorf("count %s: %w", table, ErrInvalidInput)
	}

	var n int64
	if err := d.DB.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

var countableTables = map[string]struct{}{
	"users":          {},
	"items":          {},
	"purchases":      {},
	"questions":      {},
	"cart_items":     {},
	"wishlist_items": {},
	"blog_posts":     {},
}

// withJitter spreads connection recycling so the pool does not reconnect
// all at once.
func withJitter(base time.Duration) time.Duration {
	if base <= 0 {
		return base
	}
	//nolint:gosec // G404: jitter only
	return base + time.Duration(rand.Int64N(int64(base/7)+1))
}
