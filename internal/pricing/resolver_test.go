// AngelaMos | 2026
// resolver_test.go

package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	full := Prices{Base: 2999, Monthly: 1999, Yearly: 2199, Lifetime: 2499}
	baseOnly := Prices{Base: 999}

	tests := []struct {
		name   string
		prices Prices
		tier   Tier
		want   int64
	}{
		{"free uses base", full, TierFree, 2999},
		{"monthly price", full, TierMonthly, 1999},
		{"yearly price", full, TierYearly, 2199},
		{"lifetime price", full, TierLifetime, 2499},
		{"unknown tier uses base", full, Tier("GOLD"), 2999},
		{"empty tier uses base", full, Tier(""), 2999},
		{"monthly falls back to base", baseOnly, TierMonthly, 999},
		{"yearly falls back to base", baseOnly, TierYearly, 999},
		{"lifetime falls back to base", baseOnly, TierLifetime, 999},
		{"negative tier price falls back", Prices{Base: 500, Yearly: -1}, TierYearly, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.prices, tt.tier))
		})
	}
}

func TestResolveReturnsStoredFieldAndNonNegative(t *testing.T) {
	sheets := []Prices{
		{Base: 0},
		{Base: 100, Monthly: 50},
		{Base: 100, Monthly: 0, Yearly: 70, Lifetime: 0},
		{Base: 25999, Monthly: 19999, Yearly: 21999, Lifetime: 23999},
	}
	tiers := []Tier{TierFree, TierMonthly, TierYearly, TierLifetime, "bogus"}

	for _, p := range sheets {
		fields := []int64{p.Base, p.Monthly, p.Yearly, p.Lifetime}
		for _, tier := range tiers {
			got := Resolve(p, tier)
			assert.GreaterOrEqual(t, got, int64(0))
			assert.Contains(t, fields, got)
		}
	}
}

func TestTotal(t *testing.T) {
	lines := []Line{
		{Prices: Prices{Base: 1000}, Quantity: 1},
		{Prices: Prices{Base: 500, Monthly: 400}, Quantity: 2},
	}

	total, ok := Total(lines, TierFree)
	assert.True(t, ok)
	assert.Equal(t, int64(2000), total)

	total, ok = Total(lines, TierMonthly)
	assert.True(t, ok)
	assert.Equal(t, int64(1800), total)

	total, ok = Total(nil, TierFree)
	assert.True(t, ok)
	assert.Equal(t, int64(0), total)

	_, ok = Total([]Line{
		{Prices: Prices{Base: math.MaxInt64 / 2}, Quantity: 1},
		{Prices: Prices{Base: math.MaxInt64 / 2}, Quantity: 1},
		{Prices: Prices{Base: 2}, Quantity: 1},
	}, TierFree)
	assert.False(t, ok)
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name   string
		unit   int64
		qty    int
		want   int64
		wantOK bool
	}{
		{"simple", 5, 2, 10, true},
		{"zero quantity", 5, 0, 0, true},
		{"zero price", 0, math.MaxInt32, 0, true},
		{"max price at max quantity", MaxPrice, MaxQuantity, MaxPrice * MaxQuantity, true},
		{"exactly max", math.MaxInt64, 1, math.MaxInt64, true},
		{"wraps", 10_000_000_000, math.MaxInt32, 0, false},
		{"wraps at large quantity", 10_000_000_000, 5_000_000_000, 0, false},
		{"negative price", -1, 1, 0, false},
		{"negative quantity", 1, -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LineTotal(tt.unit, tt.qty)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExactTier(t *testing.T) {
	tier, ok := ExactTier("YEARLY")
	assert.True(t, ok)
	assert.Equal(t, TierYearly, tier)

	for _, s := range []string{"yearly", " YEARLY", "YEARLY\n", "Monthly", ""} {
		_, ok := ExactTier(s)
		assert.False(t, ok, "%q", s)
	}
}

func TestParseTier(t *testing.T) {
	tier, ok := ParseTier(" monthly ")
	assert.True(t, ok)
	assert.Equal(t, TierMonthly, tier)

	tier, ok = ParseTier("platinum")
	assert.False(t, ok)
	assert.Equal(t, TierFree, tier)

	assert.True(t, TierLifetime.Purchasable())
	assert.False(t, TierFree.Purchasable())
	assert.False(t, Tier("monthly").Valid())
}

func TestPricesOrdered(t *testing.T) {
	assert.True(t, Prices{Base: 100, Monthly: 70, Yearly: 80, Lifetime: 90}.Ordered())
	assert.True(t, Prices{Base: 100}.Ordered())
	assert.True(t, Prices{Base: 100, Yearly: 80}.Ordered())
	assert.False(t, Prices{Base: 100, Monthly: 90, Yearly: 80}.Ordered())
	assert.False(t, Prices{Base: 100, Lifetime: 150}.Ordered())
}
