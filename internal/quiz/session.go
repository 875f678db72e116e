// AngelaMos | 2026
// session.go

package quiz

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Tracker remembers which questions a user has answered in the current
// play session.
type Tracker interface {
	// MarkAnswered reports false when questionID was already recorded.
	MarkAnswered(ctx context.Context, userID, questionID string) (bool, error)
	// Unmark releases a question whose points could not be credited.
	Unmark(ctx context.Context, userID, questionID string) error
	Answered(ctx context.Context, userID string) (map[string]bool, error)
	Reset(ctx context.Context, userID string) error
}

type KeyFunc func(parts ...string) string

type RedisTracker struct {
	client redis.Cmdable
	key    KeyFunc
	ttl    time.Duration
}

func NewRedisTracker(client redis.Cmdable, key KeyFunc, ttl time.Duration) *RedisTracker {
	return &RedisTracker{client: client, key: key, ttl: ttl}
}

func (t *RedisTracker) sessionKey(userID string) string {
	return t.key("quiz", "answered", userID)
}

// MarkAnswered adds the question to the session set and refreshes its TTL in
// one MULTI so a session never outlives its expiry.
func (t *RedisTracker) MarkAnswered(ctx context.Context, userID, questionID string) (bool, error) {
	key := t.sessionKey(userID)

	var added *redis.IntCmd
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		added = pipe.SAdd(ctx, key, questionID)
		pipe.Expire(ctx, key, t.ttl)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("mark answered: %w", err)
	}

	return added.Val() == 1, nil
}

func (t *RedisTracker) Unmark(ctx context.Context, userID, questionID string) error {
	if err := t.client.SRem(ctx, t.sessionKey(userID), questionID).Err(); err != nil {
		return fmt.Errorf("unmark answered: %w", err)
	}
	return nil
}

func (t *RedisTracker) Answered(ctx context.Context, userID string) (map[string]bool, error) {
	ids, err := t.client.SMembers(ctx, t.sessionKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("answered questions: %w", err)
	}

	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func (t *RedisTracker) Reset(ctx context.Context, userID string) error {
	if err := t.client.Del(ctx, t.sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	return nil
}
