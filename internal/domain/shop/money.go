package shop

import "github.com/shopspring/decimal"

// ParseDecimal parses a monetary string from an upstream payload. Missing or
// non-numeric values are treated as zero, matching the fail-soft read policy.
func ParseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
