// Package format renders headline metric values for display.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// brPrinter localizes numbers for pt-BR (dot thousands separator,
// comma decimal separator), matching how the revenue metric is shown.
var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// BRL formats a value as Brazilian Real, e.g. 1234.5 -> "R$ 1.234,50".
func BRL(value float64) string {
	return brPrinter.Sprintf("R$ %.2f", value)
}

// Count formats an integer with pt-BR grouping, e.g. 12345 -> "12.345".
func Count(value int) string {
	return brPrinter.Sprintf("%d", value)
}
