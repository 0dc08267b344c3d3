// internal/analytics/currency.go
package analytics

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const currencySymbol = "₹"

// FormatCurrency renders a rupee amount rounded to whole rupees with commas
// every three digits, e.g. "₹1,234,567". The output does not depend on the
// process locale. NaN and infinities render as "₹0".
func FormatCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return currencySymbol + "0"
	}
	// half rounds up, as the dashboard front end does
	rounded := math.Floor(amount + 0.5)
	return currencySymbol + groupThousands(strconv.FormatFloat(rounded, 'f', 0, 64))
}

// FormatCompactCurrency renders thousands with one decimal, e.g. "₹12.3k".
func FormatCompactCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	return fmt.Sprintf("%s%.1fk", currencySymbol, amount/1000)
}

// FormatPercent renders a percentage with one decimal, e.g. "12.5%".
func FormatPercent(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		p = 0
	}
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

// FormatGrowth renders a growth figure with a direction arrow. Zero growth
// renders as an empty string.
func FormatGrowth(p float64) string {
	if p == 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return ""
	}
	arrow := "↑"
	if p < 0 {
		arrow = "↓"
	}
	return arrow + " " + FormatPercent(math.Abs(p))
}

// groupThousands puts commas into an integer digit string, keeping a
// leading minus sign.
func groupThousands(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	b.WriteString(sign)
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
