package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Суммы отображаются в немецком формате (рынок недвижимости Германии):
// разряды через точку, без дробной части, символ евро после числа.
var printer = message.NewPrinter(language.German)

// Euro форматирует сумму как "230.000 €"
func Euro(v float64) string {
	return printer.Sprintf("%v €", number.Decimal(math.Round(v), number.MaxFractionDigits(0)))
}

// Years форматирует срок в годах с одним знаком; недостижимый срок - "∞"
func Years(v float64, reachable bool) string {
	if !reachable {
		return "∞"
	}
	if v < 0 {
		v = 0
	}
	return printer.Sprintf("%v", number.Decimal(v, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
}
