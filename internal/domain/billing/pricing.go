package billing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ClampDiscount normalizes a discount percentage into the valid range.
// Values below 0 become 0 and values above 100 become 100.
func ClampDiscount(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// ResolvePrice applies a discount percentage to a base price and rounds
// the result to a whole rupee. The discount is clamped before use, so an
// out-of-range percentage never produces a negative or inflated price.
func ResolvePrice(base decimal.Decimal, discountPct float64) decimal.Decimal {
	pct := decimal.NewFromFloat(ClampDiscount(discountPct))
	factor := decimal.NewFromInt(1).Sub(pct.Div(hundred))
	return base.Mul(factor).Round(0)
}

// ResolveAggregatePayable sums per-unit discounted prices into the
// client-level payable total. Discounts are never averaged across units;
// each unit keeps its own resolved price.
func ResolveAggregatePayable(discounted []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range discounted {
		total = total.Add(d)
	}
	return total
}
