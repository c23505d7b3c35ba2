package report

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Money renders an amount rounded to cents with thousands separators,
// e.g. -17607.754 -> "-17,607.75".
func Money(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "n/a"
	}
	s := decimal.NewFromFloat(x).StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	out := group(intPart) + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// Quantity renders a non-monetary amount with the given number of decimals.
func Quantity(x float64, places int32) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "n/a"
	}
	return decimal.NewFromFloat(x).StringFixed(places)
}

// Percent renders a fraction as a percentage with two decimals (0.1986 -> "19.86%").
func Percent(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "n/a"
	}
	return decimal.NewFromFloat(x).Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func yesNo(ok bool) string {
	if ok {
		return "accept"
	}
	return "reject"
}
