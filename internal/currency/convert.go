// Package currency holds the pure conversion and formatting helpers used
// when rendering monetary columns.
package currency

import (
	"fmt"
	"strconv"
	"strings"
)

// Convert converts amount from one currency to another at the given rate.
// Same-currency conversion and a zero or negative rate both return the
// amount unchanged, so a missing rate never corrupts a displayed value.
func Convert(amount float64, from, to string, rate float64) float64 {
	if strings.EqualFold(strings.TrimSpace(from), strings.TrimSpace(to)) {
		return amount
	}
	if rate <= 0 {
		return amount
	}
	return amount * rate
}

// FormatAmount keeps consistent decimal formatting for currency fields.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatWithCode renders an amount with thousand separators and its
// currency code, e.g. "1,250.50 SAR".
func FormatWithCode(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	s := withThousandSep(amount)
	if code == "" {
		return s
	}
	return s + " " + code
}

func withThousandSep(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")

	var out strings.Builder
	if neg {
		out.WriteByte('-')
	}
	for i, c := range intPart {
		if i != 0 && (len(intPart)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	out.WriteByte('.')
	out.WriteString(fracPart)
	return out.String()
}
