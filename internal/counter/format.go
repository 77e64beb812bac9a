package counter

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Separator is the thousands separator written by [FormatNumber].
const Separator = ","

var printer = message.NewPrinter(language.English)

// FormatNumber groups the decimal digits of n in runs of three from the right, e.g. 1234567 -> "1,234,567".
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}
