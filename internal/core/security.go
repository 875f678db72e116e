// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

var errMalformedHash = errors.New("malformed password hash")

// argonParams are the argon2id cost settings encoded into every PHC string.
type argonParams struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
}

var currentParams = argonParams{
	Memory:  64 * 1024,
	Time:    1,
	Threads: 4,
	KeyLen:  32,
}

const saltLength = 16

func (p argonParams) derive(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
}

// HashPassword returns a PHC formatted argon2id hash:
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	p := currentParams
	enc := base64.RawStdEncoding
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Threads,
		enc.EncodeToString(salt),
		enc.EncodeToString(p.derive(password, salt)),
	), nil
}

func parseHash(encoded string) (argonParams, []byte, []byte, error) {
	var p argonParams

	fields := strings.Split(encoded, "$")
	if len(fields) != 6 || fields[0] != "" || fields[1] != "argon2id" {
		return p, nil, nil, errMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(fields[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, fmt.Errorf("%w: version %q", errMalformedHash, fields[2])
	}

	if _, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return p, nil, nil, fmt.Errorf("%w: params: %w", errMalformedHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(fields[4])
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: salt: %w", errMalformedHash, err)
	}
	key, err := base64.RawStdEncoding.DecodeString(fields[5])
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: key: %w", errMalformedHash, err)
	}

	//nolint:gosec // G115: argon2 keys are tens of bytes
	p.KeyLen = uint32(len(key))
	return p, salt, key, nil
}

// PasswordCheck is the outcome of CheckPassword. Rehash is set when the
// password matched a hash made with outdated parameters; callers should
// persist it.
type PasswordCheck struct {
	Valid  bool
	Rehash string
}

// absentHash stands in for accounts that do not exist so rejecting them
// costs the same as rejecting a wrong password.
var absentHash = sync.OnceValue(func() string {
	hash, err := HashPassword("absent-account")
	if err != nil {
		panic(fmt.Sprintf("security: hash placeholder: %v", err))
	}
	return hash
})

// CheckPassword compares password with encoded. An empty encoded hash is
// treated as a missing account and always fails after doing the same work.
func CheckPassword(password, encoded string) (PasswordCheck, error) {
	if encoded == "" {
		encoded = absentHash()
		_, _ = comparePassword(password, encoded) //nolint:errcheck // timing only
		return PasswordCheck{}, nil
	}

	ok, err := comparePassword(password, encoded)
	if err != nil || !ok {
		return PasswordCheck{}, err
	}

	check := PasswordCheck{Valid: true}
	if p, _, _, _ := parseHash(encoded); p != currentParams {
		// A failed upgrade still lets the login through.
		if fresh, hashErr := HashPassword(password); hashErr == nil {
			check.Rehash = fresh
		}
	}
	return check, nil
}

func comparePassword(password, encoded string) (bool, error) {
	p, salt, key, err := parseHash(encoded)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(key, p.derive(password, salt)) == 1, nil
}

// GenerateRefreshToken returns 32 random bytes, URL-safe encoded.
func GenerateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashToken is the lookup key stored for refresh tokens; the raw token never
// reaches the database.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
