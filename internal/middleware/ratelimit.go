// AngelaMos | 2026
// ratelimit.go

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/pricing"
)

// KeyFunc identifies the caller a request is counted against.
type KeyFunc func(*http.Request) string

type RateLimitConfig struct {
	// Scope separates counters of different limiters, e.g. "global" or "auth".
	Scope string
	// Prefix is the Redis key namespace.
	Prefix   string
	Limit    redis_rate.Limit
	KeyFunc  KeyFunc
	FailOpen bool
	// Bypass skips counting for matching requests such as probes.
	Bypass func(*http.Request) bool
}

type RateLimiter struct {
	limiter  *redis_rate.Limiter
	fallback *localLimiter
	config   RateLimitConfig
}

// NewRateLimiter counts in Redis and falls back to an in-process token
// bucket when Redis cannot be reached.
func NewRateLimiter(rdb *redis.Client, cfg RateLimitConfig) *RateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = KeyByIP
	}
	if cfg.Scope == "" {
		cfg.Scope = "global"
	}

	return &RateLimiter{
		limiter:  redis_rate.NewLimiter(rdb),
		fallback: newLocalLimiter(),
		config:   cfg,
	}
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.config.Bypass != nil && rl.config.Bypass(r) {
			next.ServeHTTP(w, r)
			return
		}

		key := core.RedisKey(rl.config.Prefix, "ratelimit", rl.config.Scope, rl.config.KeyFunc(r))
		res, err := allow(r.Context(), rl.limiter, rl.fallback, key, rl.config.Limit)
		if err != nil {
			if rl.config.FailOpen {
				slog.WarnContext(r.Context(), "rate limiter error, failing open",
					"error", err,
					"key", key,
				)
				next.ServeHTTP(w, r)
				return
			}
			core.JSONError(w, core.UnavailableError("rate limiter unavailable"))
			return
		}

		setRateLimitHeaders(w, res, rl.config.Limit)

		if res.Allowed == 0 {
			writeRateLimitExceeded(w, res)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func allow(
	ctx context.Context,
	limiter *redis_rate.Limiter,
	fallback *localLimiter,
	key string,
	limit redis_rate.Limit,
) (*redis_rate.Result, error) {
	res, err := limiter.Allow(ctx, key, limit)
	if err != nil {
		return fallback.allow(key, limit)
	}
	return res, nil
}

// BypassPaths skips the listed exact paths.
func BypassPaths(paths ...string) func(*http.Request) bool {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return func(r *http.Request) bool {
		_, ok := set[r.URL.Path]
		return ok
	}
}

func KeyByIP(r *http.Request) string {
	return "ip:" + ClientIP(r)
}

// ClientIP uses the right-most X-Forwarded-For hop, which is the address the
// trusted proxy saw.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[len(ips)-1])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func KeyByUser(r *http.Request) string {
	if userID := GetUserID(r.Context()); userID != "" {
		return "user:" + userID
	}
	return KeyByIP(r)
}

// KeyByEndpoint counts each caller separately per route shape, so login
// attempts do not consume the refresh allowance.
func KeyByEndpoint(r *http.Request) string {
	return KeyByUser(r) + ":endpoint:" + normalizeEndpoint(r.URL.Path)
}

func normalizeEndpoint(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	normalized := make([]string, 0, len(parts))

	for _, part := range parts {
		if isUUID(part) || isNumeric(part) {
			normalized = append(normalized, "{id}")
		} else {
			normalized = append(normalized, part)
		}
	}

	return "/" + strings.Join(normalized, "/")
}

func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	return s[8] == '-' && s[13] == '-' && s[18] == '-' && s[23] == '-'
}

func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

func setRateLimitHeaders(
	w http.ResponseWriter,
	res *redis_rate.Result,
	limit redis_rate.Limit,
) {
	h := w.Header()

	h.Set("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(
		time.Now().Add(res.ResetAfter).Unix(), 10))

	windowSecs := int(limit.Period.Seconds())
	h.Set("RateLimit-Policy", fmt.Sprintf(`%d;w=%d`, limit.Rate, windowSecs))
	h.Set(
		"RateLimit",
		fmt.Sprintf(`%d;t=%d`, res.Remaining, int(res.ResetAfter.Seconds())),
	)
}

func writeRateLimitExceeded(w http.ResponseWriter, res *redis_rate.Result) {
	retryAfter := int(res.RetryAfter.Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}

	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	core.JSON(w, http.StatusTooManyRequests, core.Response{
		Success: false,
		Error: &core.ErrorBody{
			Code: "RATE_LIMITED",
			Message: fmt.Sprintf(
				"rate limit exceeded, retry after %d seconds",
				retryAfter,
			),
		},
	})
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess int64
}

type localLimiter struct {
	limiters sync.Map
}

const (
	cleanupInterval = 5 * time.Minute
	entryTTL        = 10 * time.Minute
)

func newLocalLimiter() *localLimiter {
	l := &localLimiter{}
	go l.cleanup()
	return l
}

func (l *localLimiter) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-entryTTL).Unix()
		l.limiters.Range(func(key, value any) bool {
			entry, ok := value.(*limiterEntry)
			if ok && entry.lastAccess < cutoff {
				l.limiters.Delete(key)
			}
			return true
		})
	}
}

func (l *localLimiter) allow(
	key string,
	limit redis_rate.Limit,
) (*redis_rate.Result, error) {
	ratePerSec := float64(limit.Rate) / limit.Period.Seconds()
	now := time.Now().Unix()

	entryI, loaded := l.limiters.Load(key)
	if !loaded {
		entryI, _ = l.limiters.LoadOrStore(key, &limiterEntry{
			limiter:    rate.NewLimiter(rate.Limit(ratePerSec), limit.Burst),
			lastAccess: now,
		})
	}

	entry, ok := entryI.(*limiterEntry)
	if !ok {
		return nil, fmt.Errorf("invalid limiter entry type")
	}
	entry.lastAccess = now

	res := &redis_rate.Result{
		Limit:      limit,
		RetryAfter: -1,
		ResetAfter: time.Duration(float64(time.Second) / ratePerSec),
	}
	if entry.limiter.Allow() {
		res.Allowed = 1
	} else {
		res.RetryAfter = res.ResetAfter
	}
	res.Remaining = max(int(entry.limiter.Tokens()), 0)

	return res, nil
}

// MembershipLimits maps a pricing tier to its request allowance. Paying
// members get more headroom on cart, checkout and quiz traffic.
type MembershipLimits map[pricing.Tier]redis_rate.Limit

var DefaultMembershipLimits = MembershipLimits{
	pricing.TierFree:     PerMinute(60, 10),
	pricing.TierMonthly:  PerMinute(300, 50),
	pricing.TierYearly:   PerMinute(600, 100),
	pricing.TierLifetime: PerMinute(1200, 200),
}

// MembershipRateLimiter must run after Authenticator. The tier comes from
// the access token; unknown or missing tiers get the FREE allowance.
func MembershipRateLimiter(
	rdb *redis.Client,
	prefix string,
	limits MembershipLimits,
) func(http.Handler) http.Handler {
	limiter := redis_rate.NewLimiter(rdb)
	fallback := newLocalLimiter()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tier, _ := pricing.ParseTier(GetUserMembership(r.Context()))

			limit, ok := limits[tier]
			if !ok {
				tier = pricing.TierFree
				limit = limits[tier]
			}

			key := core.RedisKey(prefix, "ratelimit", "member", KeyByUser(r))

			//nolint:errcheck // fallback never fails
			res, _ := allow(r.Context(), limiter, fallback, key, limit)

			w.Header().Set("X-RateLimit-Membership", tier.String())
			setRateLimitHeaders(w, res, limit)

			if res.Allowed == 0 {
				writeRateLimitExceeded(w, res)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func PerMinute(rate, burst int) redis_rate.Limit {
	return PerWindow(rate, burst, time.Minute)
}

// PerWindow allows rate requests per window with the given burst. A
// non-positive window means one minute.
func PerWindow(rate, burst int, window time.Duration) redis_rate.Limit {
	if window <= 0 {
		window = time.Minute
	}
	return redis_rate.Limit{
		Rate:   rate,
		Burst:  burst,
		Period: window,
	}
}
