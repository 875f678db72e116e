// AngelaMos | 2026
// entity.go

package auth

import (
	"fmt"
	"time"

	"github.com/vipinpawar/jeopardy-app/internal/core"
)

// RefreshToken is one link of a rotation chain. Links that descend from the
// same login share FamilyID, so presenting a consumed link burns the family.
type RefreshToken struct {
	ID           string     `db:"id"`
	UserID       string     `db:"user_id"`
	TokenHash    string     `db:"token_hash"`
	FamilyID     string     `db:"family_id"`
	ExpiresAt    time.Time  `db:"expires_at"`
	CreatedAt    time.Time  `db:"created_at"`
	IsUsed       bool       `db:"is_used"`
	UsedAt       *time.Time `db:"used_at"`
	RevokedAt    *time.Time `db:"revoked_at"`
	ReplacedByID *string    `db:"replaced_by_id"`
	UserAgent    string     `db:"user_agent"`
	IPAddress    string     `db:"ip_address"`
}

// Check reports why the link cannot be exchanged at now, or nil when it can.
func (t *RefreshToken) Check(now time.Time) error {
	switch {
	case t.IsUsed:
		return ErrTokenReuse
	case t.RevokedAt != nil:
		return fmt.Errorf("refresh: %w", core.ErrTokenRevoked)
	case !now.Before(t.ExpiresAt):
		return fmt.Errorf("refresh: %w", core.ErrTokenExpired)
	}
	return nil
}

func (t *RefreshToken) session() SessionInfo {
	return SessionInfo{
		ID:        t.ID,
		UserAgent: t.UserAgent,
		IPAddress: t.IPAddress,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
	}
}
