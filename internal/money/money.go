// Package money holds the monetary helpers shared by the cart and order
// domains. Amounts are decimal.Decimal end to end; rounding happens only at
// display time, in FormatBRL.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders an amount as a Brazilian Real price string, e.g.
// "R$ 1.234,56". The amount is rounded to 2 decimal places here and nowhere
// else.
func FormatBRL(amount decimal.Decimal) string {
	v, _ := amount.Round(2).Float64()
	return printer.Sprintf("R$ %v", number.Decimal(v, number.Scale(2)))
}

// MustDecimal parses a decimal literal and panics on malformed input.
// Intended for static seed data and configuration defaults only.
func MustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
