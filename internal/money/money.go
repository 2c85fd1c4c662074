package money

import (
	"github.com/shopspring/decimal"
)

// All monetary amounts in the system are decimals with 2 fraction digits.
// Helpers here keep parsing, rounding and processor-unit conversion in one
// place so no caller ever touches float64.

// Zero is the canonical 0.00 amount.
var Zero = decimal.Zero

var hundred = decimal.NewFromInt(100)

// Parse reads a decimal amount from its string form and rounds it to
// 2 fraction digits.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Round(2), nil
}

// Round normalizes an amount to 2 fraction digits.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// MinorUnits converts an amount to the payment processor's integer minor
// units (cents), rounding to the nearest whole unit.
func MinorUnits(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

// Sum adds any number of amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
