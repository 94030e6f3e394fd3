// Package currency parses and formats Brazilian Real amounts.
//
// Parsing is forgiving: any malformed input degrades to zero instead of
// returning an error, since these values feed display widgets where an
// exception would take down a whole dashboard panel. Formatting follows
// pt-BR conventions (R$ prefix, dot thousands separator, comma decimal
// separator).
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses locale-formatted currency text into a decimal value.
// All characters except digits, comma, and dot are stripped first. When both
// comma and dot are present, the dot is treated as a thousands separator and
// the comma as the decimal separator (1.234,56). When only a comma is
// present, it is the decimal separator. Otherwise the text is parsed as a
// plain decimal. Empty or malformed input yields zero.
func ParseAmount(text string) decimal.Decimal {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero
	}

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")
	switch {
	case hasComma && hasDot:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case hasComma:
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatDigits renders a raw digit string as currency, reading it as a value
// in integer centavos. An empty input yields an empty string so that input
// fields stay visually empty until the user types.
func FormatDigits(digits string) string {
	if digits == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range digits {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return ""
	}
	return Format(d.Shift(-2))
}

// Format renders a decimal value as a pt-BR currency string with two decimal
// places. Negative values carry a leading minus: -R$ 1,00.
func Format(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")
	intPart = groupThousands(intPart)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("R$ ")
	b.WriteString(intPart)
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

// FormatCents renders an amount in integer centavos.
func FormatCents(cents int64) string {
	return Format(FromCents(cents))
}

// Cents converts a decimal amount to integer centavos, rounding half away
// from zero on the third decimal place.
func Cents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

// FromCents converts integer centavos to a decimal amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// groupThousands inserts dots every three digits from the right.
func groupThousands(digits string) string {
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
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
