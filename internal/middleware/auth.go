// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vipinpawar/jeopardy-app/internal/core"
)

type contextKey string

const claimsKey contextKey = "jwt_claims"

const roleAdmin = "admin"

type TokenVerifier interface {
	VerifyAccessToken(
		ctx context.Context,
		token string,
	) (*AccessTokenClaims, error)
}

// AccessTokenClaims is what a verified access token says about its bearer.
// Membership is the tier at issue time; it is refreshed on the next login or
// refresh, not mid-token.
type AccessTokenClaims struct {
	UserID       string
	Role         string
	Membership   string
	TokenVersion int
}

func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				core.JSONError(w, core.UnauthorizedError("missing authorization token"))
				return
			}

			claims, err := verifier.VerifyAccessToken(r.Context(), token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

// OptionalAuth attaches claims when a valid token is present and otherwise
// lets the request through anonymously. A bad token is not an error here.
func OptionalAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				if claims, err := verifier.VerifyAccessToken(r.Context(), token); err == nil {
					r = r.WithContext(ContextWithClaims(r.Context(), claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r.Context())
		switch {
		case claims == nil:
			core.JSONError(w, core.UnauthorizedError("authentication required"))
		case claims.Role != roleAdmin:
			core.JSONError(w, core.ForbiddenError("admin access required"))
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func handleAuthError(w http.ResponseWriter, err error) {
	switch {
	case core.IsAppError(err):
		core.JSONError(w, err)
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	case errors.Is(err, core.ErrTokenRevoked):
		core.JSONError(w, core.TokenRevokedError())
	default:
		core.JSONError(w, core.TokenInvalidError())
	}
}

// ContextWithClaims stores verified token claims on ctx.
func ContextWithClaims(ctx context.Context, claims *AccessTokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func claimsFrom(ctx context.Context) *AccessTokenClaims {
	claims, _ := ctx.Value(claimsKey).(*AccessTokenClaims)
	return claims
}

// GetUserID returns "" for anonymous requests.
func GetUserID(ctx context.Context) string {
	if c := claimsFrom(ctx); c != nil {
		return c.UserID
	}
	return ""
}

func GetUserMembership(ctx context.Context) string {
	if c := claimsFrom(ctx); c != nil {
		return c.Membership
	}
	return ""
}
