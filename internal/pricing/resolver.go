// AngelaMos | 2026
// resolver.go

package pricing

import (
	"math"
)

const (
	// MaxQuantity bounds a single cart or purchase line.
	MaxQuantity = 10000
	// MaxPrice bounds any stored price so MaxQuantity units of it fit in
	// int64 with room for a full cart.
	MaxPrice int64 = 1_000_000_000_000
)

// Prices holds an item's price sheet in minor currency units. A tier price
// of zero means the item has no special price for that tier.
type Prices struct {
	Base     int64
	Monthly  int64
	Yearly   int64
	Lifetime int64
}

// Priced is implemented by anything carrying a price sheet.
type Priced interface {
	PriceSheet() Prices
}

// Resolve returns the price a member of tier t pays. Tiers without a
// positive special price fall back to the base price.
func Resolve(p Prices, t Tier) int64 {
	var tiered int64

	switch t {
	case TierMonthly:
		tiered = p.Monthly
	case TierYearly:
		tiered = p.Yearly
	case TierLifetime:
		tiered = p.Lifetime
	default:
		return p.Base
	}

	if tiered <= 0 {
		return p.Base
	}
	return tiered
}

func ResolveFor(item Priced, t Tier) int64 {
	return Resolve(item.PriceSheet(), t)
}

// LineTotal returns unit * quantity. ok is false when either operand is
// negative or the product does not fit in int64.
func LineTotal(unit int64, quantity int) (total int64, ok bool) {
	if unit < 0 || quantity < 0 {
		return 0, false
	}
	if quantity == 0 || unit == 0 {
		return 0, true
	}
	if unit > math.MaxInt64/int64(quantity) {
		return 0, false
	}
	return unit * int64(quantity), true
}

// Total sums Resolve over lines, each multiplied by its quantity. ok is
// false when any line or the running sum overflows.
func Total(lines []Line, t Tier) (total int64, ok bool) {
	for _, l := range lines {
		line, ok := LineTotal(Resolve(l.Prices, t), l.Quantity)
		if !ok || total > math.MaxInt64-line {
			return 0, false
		}
		total += line
	}
	return total, true
}

type Line struct {
	Prices   Prices
	Quantity int
}

// Ordered reports whether the non-zero tier prices satisfy
// monthly <= yearly <= lifetime <= base.
func (p Prices) Ordered() bool {
	prev := int64(0)
	for _, v := range []int64{p.Monthly, p.Yearly, p.Lifetime, p.Base} {
		if v <= 0 {
			continue
		}
		if v < prev {
			return false
		}
		prev = v
	}
	return true
}
