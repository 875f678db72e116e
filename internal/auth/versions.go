// AngelaMos | 2026
// versions.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/middleware"
)

// versionCacheTTL bounds how long a bump made outside this service, such as
// an admin role change, can go unnoticed.
const versionCacheTTL = time.Minute

// VersionCache remembers each user's current token version so access token
// checks do not hit the database on every request.
type VersionCache interface {
	Get(ctx context.Context, userID string) (int, bool, error)
	Set(ctx context.Context, userID string, version int) error
	Forget(ctx context.Context, userID string) error
}

type redisVersions struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisVersionCache(rdb *redis.Client, prefix string) VersionCache {
	return &redisVersions{rdb: rdb, prefix: prefix}
}

func (c *redisVersions) key(userID string) string {
	return core.RedisKey(c.prefix, "auth", "token_version", userID)
}

func (c *redisVersions) Get(ctx context.Context, userID string) (int, bool, error) {
	v, err := c.rdb.Get(ctx, c.key(userID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get token version: %w", err)
	}
	return v, true, nil
}

func (c *redisVersions) Set(ctx context.Context, userID string, version int) error {
	if err := c.rdb.Set(ctx, c.key(userID), strconv.Itoa(version), versionCacheTTL).Err(); err != nil {
		return fmt.Errorf("set token version: %w", err)
	}
	return nil
}

func (c *redisVersions) Forget(ctx context.Context, userID string) error {
	if err := c.rdb.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("forget token version: %w", err)
	}
	return nil
}

// VerifyAccessToken checks the signature and then rejects tokens minted
// before the user's last logout-all or password change.
func (s *Service) VerifyAccessToken(ctx context.Context, token string) (*middleware.AccessTokenClaims, error) {
	claims, err := s.jwt.VerifyAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}

	current, err := s.currentVersion(ctx, claims.UserID)
	if errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("verify token: user gone: %w", core.ErrTokenInvalid)
	}
	if err != nil {
		return nil, err
	}
	if claims.TokenVersion != current {
		return nil, fmt.Errorf("verify token: stale version: %w", core.ErrTokenRevoked)
	}
	return claims, nil
}

func (s *Service) currentVersion(ctx context.Context, userID string) (int, error) {
	if s.versions != nil {
		v, ok, err := s.versions.Get(ctx, userID)
		if err != nil {
			s.logger.WarnContext(ctx, "token version cache unavailable", "error", err)
		} else if ok {
			return v, nil
		}
	}

	u, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.versions != nil {
		if err := s.versions.Set(ctx, userID, u.TokenVersion); err != nil {
			s.logger.WarnContext(ctx, "token version not cached", "error", err)
		}
	}
	return u.TokenVersion, nil
}

func (s *Service) forgetVersion(ctx context.Context, userID string) {
	if s.versions == nil {
		return
	}
	if err := s.versions.Forget(ctx, userID); err != nil {
		s.logger.WarnContext(ctx, "token version not evicted", "user_id", userID, "error", err)
	}
}

var _ middleware.TokenVerifier = (*Service)(nil)
