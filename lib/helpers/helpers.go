package helpers

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatNumber renders v in its shortest exact decimal form, so whole values
// print without a fractional part (20000, 95, 95.5).
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatUSD renders a dollar amount with thousand separators and no cents.
func FormatUSD(amount float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("$%.0f", amount)
}
