package locale

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Spanish)

// FormatPercent renders v with Spanish separators and between minDigits and
// maxDigits fraction digits. The "%" sign is left to the caller.
func FormatPercent(v float64, minDigits, maxDigits int) string {
	return printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(minDigits),
		number.MaxFractionDigits(maxDigits)))
}

// FormatPercentAuto shows integral values without decimals and everything
// else with two.
func FormatPercentAuto(v float64) string {
	if v == math.Trunc(v) {
		return FormatPercent(v, 0, 2)
	}
	return FormatPercent(v, 2, 2)
}

// FormatInt renders n with Spanish digit grouping.
func FormatInt(n int) string {
	return printer.Sprint(number.Decimal(n))
}
