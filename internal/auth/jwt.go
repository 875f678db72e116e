// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/vipinpawar/jeopardy-app/internal/config"
	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/middleware"
)

const (
	tokenTypeAccess = "access"
	tokenTypeReset  = "password_reset"

	claimType    = "type"
	claimRole    = "role"
	claimTier    = "membership"
	claimVersion = "token_version"
)

// JWTManager signs ES256 tokens with a single key and publishes its public
// half as a JWKS.
type JWTManager struct {
	signing jwk.Key
	verify  jwk.Key
	jwks    jwk.Set
	cfg     config.JWTConfig
}

func NewJWTManager(cfg config.JWTConfig) (*JWTManager, error) {
	pem, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}

	signing, err := jwk.ParseKey(pem, jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	kid, err := keyID(signing)
	if err != nil {
		return nil, err
	}
	for name, value := range map[string]any{
		jwk.AlgorithmKey: jwa.ES256(),
		jwk.KeyIDKey:     kid,
	} {
		if err := signing.Set(name, value); err != nil {
			return nil, fmt.Errorf("set %s: %w", name, err)
		}
	}

	verify, err := signing.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("derive public key: %w", err)
	}
	if err := verify.Set(jwk.KeyUsageKey, "sig"); err != nil {
		return nil, fmt.Errorf("set key usage: %w", err)
	}

	jwks := jwk.NewSet()
	if err := jwks.AddKey(verify); err != nil {
		return nil, fmt.Errorf("add key to set: %w", err)
	}

	return &JWTManager{signing: signing, verify: verify, jwks: jwks, cfg: cfg}, nil
}

// keyID is derived from the RFC 7638 thumbprint so it survives restarts
// and changes only when the key does.
func keyID(key jwk.Key) (string, error) {
	thumb, err := key.Thumbprint(crypto.SHA256)
	if err != nil {
		return "", fmt.Errorf("key thumbprint: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(thumb[:8]), nil
}

// GenerateKeyPair writes a fresh P-256 key pair as PEM files.
func GenerateKeyPair(privateKeyPath, publicKeyPath string) error {
	raw, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}

	private, err := jwk.Import(raw)
	if err != nil {
		return fmt.Errorf("import private key: %w", err)
	}
	public, err := private.PublicKey()
	if err != nil {
		return fmt.Errorf("derive public key: %w", err)
	}

	if err := writePEM(private, privateKeyPath, 0o600); err != nil {
		return err
	}
	return writePEM(public, publicKeyPath, 0o644)
}

func writePEM(key jwk.Key, path string, mode os.FileMode) error {
	encoded, err := jwk.Pem(key)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	//nolint:gosec // G306: mode is chosen per key by the caller
	if err := os.WriteFile(path, encoded, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// issue builds and signs a token of the given type for subject.
func (m *JWTManager) issue(subject, typ string, ttl time.Duration, claims map[string]any) (string, error) {
	now := time.Now()

	b := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(m.cfg.Issuer).
		Audience([]string{m.cfg.Audience}).
		Subject(subject).
		IssuedAt(now).
		NotBefore(now).
		Expiration(now.Add(ttl)).
		Claim(claimType, typ)
	for name, value := range claims {
		b = b.Claim(name, value)
	}

	token, err := b.Build()
	if err != nil {
		return "", fmt.Errorf("build %s token: %w", typ, err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.ES256(), m.signing))
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return string(signed), nil
}

// parse validates signature, time claims, issuer, audience and the token
// type. Every failure wraps ErrTokenExpired or ErrTokenInvalid.
func (m *JWTManager) parse(raw, typ string) (jwt.Token, string, error) {
	token, err := jwt.Parse(
		[]byte(raw),
		jwt.WithKey(jwa.ES256(), m.verify),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.cfg.Issuer),
		jwt.WithAudience(m.cfg.Audience),
	)
	if err != nil {
		if isExpired(err) {
			return nil, "", fmt.Errorf("verify %s token: %w", typ, core.ErrTokenExpired)
		}
		return nil, "", fmt.Errorf("verify %s token: %w", typ, core.ErrTokenInvalid)
	}

	var got string
	if err := token.Get(claimType, &got); err != nil || got != typ {
		return nil, "", fmt.Errorf("verify %s token: type %q: %w", typ, got, core.ErrTokenInvalid)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, "", fmt.Errorf("verify %s token: no subject: %w", typ, core.ErrTokenInvalid)
	}
	return token, subject, nil
}

// isExpired matches jwx's "exp not satisfied" validation failure.
func isExpired(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "exp") && strings.Contains(msg, "not satisfied")
}

func stringClaim(token jwt.Token, name string) (string, error) {
	var v string
	if err := token.Get(name, &v); err != nil {
		return "", fmt.Errorf("claim %s: %w", name, core.ErrTokenInvalid)
	}
	return v, nil
}

// versionClaim reads token_version, which JSON decoding yields as a float.
func versionClaim(token jwt.Token) (int, error) {
	var v float64
	if err := token.Get(claimVersion, &v); err != nil {
		return 0, fmt.Errorf("claim %s: %w", claimVersion, core.ErrTokenInvalid)
	}
	return int(v), nil
}

func (m *JWTManager) CreateAccessToken(claims middleware.AccessTokenClaims) (string, error) {
	return m.issue(claims.UserID, tokenTypeAccess, m.cfg.AccessTokenExpire, map[string]any{
		claimRole:    claims.Role,
		claimTier:    claims.Membership,
		claimVersion: claims.TokenVersion,
	})
}

// VerifyAccessToken checks the token alone. Service.VerifyAccessToken adds
// the revocation check and is what the router uses.
func (m *JWTManager) VerifyAccessToken(
	_ context.Context,
	raw string,
) (*middleware.AccessTokenClaims, error) {
	token, subject, err := m.parse(raw, tokenTypeAccess)
	if err != nil {
		return nil, err
	}

	role, err := stringClaim(token, claimRole)
	if err != nil {
		return nil, err
	}
	tier, err := stringClaim(token, claimTier)
	if err != nil {
		return nil, err
	}
	version, err := versionClaim(token)
	if err != nil {
		return nil, err
	}

	return &middleware.AccessTokenClaims{
		UserID:       subject,
		Role:         role,
		Membership:   tier,
		TokenVersion: version,
	}, nil
}

// CreateResetToken issues a password reset token bound to the current
// token version, so completing a reset spends it.
func (m *JWTManager) CreateResetToken(userID string, tokenVersion int) (string, error) {
	return m.issue(userID, tokenTypeReset, m.cfg.ResetTokenExpire, map[string]any{
		claimVersion: tokenVersion,
	})
}

func (m *JWTManager) VerifyResetToken(raw string) (string, int, error) {
	token, subject, err := m.parse(raw, tokenTypeReset)
	if err != nil {
		return "", 0, err
	}
	version, err := versionClaim(token)
	if err != nil {
		return "", 0, err
	}
	return subject, version, nil
}

func (m *JWTManager) AccessTokenTTL() time.Duration { return m.cfg.AccessTokenExpire }

func (m *JWTManager) ResetTokenTTL() time.Duration { return m.cfg.ResetTokenExpire }

func (m *JWTManager) GetJWKSHandler() http.HandlerFunc {
	body, err := json.Marshal(m.jwks)
	return func(w http.ResponseWriter, _ *http.Request) {
		if err != nil {
			core.InternalServerError(w, fmt.Errorf("encode jwks: %w", err))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = w.Write(body) //nolint:errcheck // client went away
	}
}

func (m *JWTManager) GetKeyID() string {
	kid, _ := m.signing.KeyID()
	return kid
}

// RefreshTokenData is a freshly minted opaque refresh token. Only Hash is
// stored.
type RefreshTokenData struct {
	Token     string
	Hash      string
	ExpiresAt time.Time
	FamilyID  string
}

// NewRefreshToken starts a new family when familyID is empty.
func (m *JWTManager) NewRefreshToken(familyID string) (*RefreshTokenData, error) {
	token, err := core.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if familyID == "" {
		familyID = uuid.New().String()
	}

	return &RefreshTokenData{
		Token:     token,
		Hash:      core.HashToken(token),
		ExpiresAt: time.Now().Add(m.cfg.RefreshTokenExpire),
		FamilyID:  familyID,
	}, nil
}
