// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipinpawar/jeopardy-app/internal/config"
	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/middleware"
)

func newTestManager(t *testing.T, dir string) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:     filepath.Join(dir, "private.pem"),
		PublicKeyPath:      filepath.Join(dir, "public.pem"),
		AccessTokenExpire:  time.Minute,
		RefreshTokenExpire: time.Hour,
		ResetTokenExpire:   time.Minute,
		Issuer:             "jeopardy-test",
		Audience:           "jeopardy-test",
	})
	require.NoError(t, err)
	return m
}

func TestKeyIDStableForSameKey(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, GenerateKeyPair(filepath.Join(dir, "private.pem"), filepath.Join(dir, "public.pem")))

	a := newTestManager(t, dir)
	b := newTestManager(t, dir)
	assert.NotEmpty(t, a.GetKeyID())
	assert.Equal(t, a.GetKeyID(), b.GetKeyID())
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, GenerateKeyPair(filepath.Join(dir, "private.pem"), filepath.Join(dir, "public.pem")))
	m := newTestManager(t, dir)

	access, err := m.CreateAccessToken(middleware.AccessTokenClaims{
		UserID:       "u1",
		Role:         "user",
		Membership:   "MONTHLY",
		TokenVersion: 3,
	})
	require.NoError(t, err)

	claims, err := m.VerifyAccessToken(context.Background(), access)
	require.NoError(t, err)
	assert.Equal(t, "MONTHLY", claims.Membership)
	assert.Equal(t, 3, claims.TokenVersion)

	_, _, err = m.VerifyResetToken(access)
	require.ErrorIs(t, err, core.ErrTokenInvalid)

	reset, err := m.CreateResetToken("u1", 3)
	require.NoError(t, err)
	_, err = m.VerifyAccessToken(context.Background(), reset)
	require.ErrorIs(t, err, core.ErrTokenInvalid)

	_, err = m.VerifyAccessToken(context.Background(), "not.a.jwt")
	require.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestJWKSHandler(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, GenerateKeyPair(filepath.Join(dir, "private.pem"), filepath.Join(dir, "public.pem")))
	m := newTestManager(t, dir)

	rec := httptest.NewRecorder()
	m.GetJWKSHandler()(rec, httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var set struct {
		Keys []map[string]any `json:"keys"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&set))
	require.Len(t, set.Keys, 1)
	assert.Equal(t, m.GetKeyID(), set.Keys[0]["kid"])
	assert.NotContains(t, set.Keys[0], "d", "private part must not leak")
}
