package report

import (
	"fmt"
	"strings"
)

// formatCurrency renders a value in Brazilian convention: thousands
// separated by dots, two decimals after a comma (1234.5 -> "1.234,50").
func formatCurrency(value float64) string {
	negative := value < 0
	if negative {
		value = -value
	}

	s := fmt.Sprintf("%.2f", value)
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)

	return b.String()
}

// capitalize upper-cases the first rune only, keeping accented
// category names intact.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
