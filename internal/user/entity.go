// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/vipinpawar/jeopardy-app/internal/pricing"
)

type User struct {
	ID                  string       `db:"id"`
	Username            string       `db:"username"`
	Email               string       `db:"email"`
	PasswordHash        string       `db:"password_hash"`
	Role                string       `db:"role"`
	Membership          pricing.Tier `db:"membership"`
	MembershipStartDate *time.Time   `db:"membership_start_date"`
	MembershipEndDate   *time.Time   `db:"membership_end_date"`
	TotalAmount         int64        `db:"total_amount"`
	TokenVersion        int          `db:"token_version"`
	CreatedAt           time.Time    `db:"created_at"`
	UpdatedAt           time.Time    `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// EffectiveTier is the tier used for pricing at instant now. A membership
// whose window has closed prices as FREE.
func (u *User) EffectiveTier(now time.Time) pricing.Tier {
	if !u.Membership.Valid() {
		return pricing.TierFree
	}
	if u.MembershipEndDate != nil && !now.Before(*u.MembershipEndDate) {
		return pricing.TierFree
	}
	return u.Membership
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
