// AngelaMos | 2026
// tier.go

package pricing

import (
	"strings"
)

// Tier is a membership level. It selects which price column applies.
type Tier string

const (
	TierFree     Tier = "FREE"
	TierMonthly  Tier = "MONTHLY"
	TierYearly   Tier = "YEARLY"
	TierLifetime Tier = "LIFETIME"
)

// ParseTier normalises s. Unknown values map to TierFree with ok false.
func ParseTier(s string) (Tier, bool) {
	switch t := Tier(strings.ToUpper(strings.TrimSpace(s))); t {
	case TierFree, TierMonthly, TierYearly, TierLifetime:
		return t, true
	default:
		return TierFree, false
	}
}

// ExactTier accepts only the canonical upper-case names, with no trimming.
// Membership purchases go through it so "monthly" is rejected.
func ExactTier(s string) (Tier, bool) {
	t := Tier(s)
	return t, t.Valid()
}

func (t Tier) Valid() bool {
	switch t {
	case TierFree, TierMonthly, TierYearly, TierLifetime:
		return true
	default:
		return false
	}
}

// Purchasable reports whether a user may buy the tier. FREE is the absence
// of a membership and cannot be bought.
func (t Tier) Purchasable() bool {
	return t == TierMonthly || t == TierYearly || t == TierLifetime
}

func (t Tier) String() string {
	return string(t)
}
