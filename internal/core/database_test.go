// AngelaMos | 2026
// database_test.go

package core

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(&pgconn.PgError{Code: "40001"}))
	assert.True(t, isRetryable(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "40P01"})))
	assert.False(t, isRetryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isRetryable(errors.New("boom")))
	assert.False(t, isRetryable(nil))
}

func TestWithJitter(t *testing.T) {
	base := 70 * time.Minute
	for range 50 {
		got := withJitter(base)
		assert.GreaterOrEqual(t, got, base)
		assert.LessOrEqual(t, got, base+base/7)
	}
	assert.Equal(t, time.Duration(0), withJitter(0))
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "jeopardy:quiz:answered:u1", RedisKey("jeopardy", "quiz", "answered", "u1"))
	assert.Equal(t, "quiz:answered", RedisKey("", "quiz", "answered"))
}
