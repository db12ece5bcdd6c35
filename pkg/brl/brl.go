// Package brl formatea montos en reales con las convenciones pt-BR.
package brl

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Format devuelve "R$ 1.234,50". El valor se redondea a centavos antes de formatear.
func Format(v decimal.Decimal) string {
	f := v.Round(2).InexactFloat64()
	return printer.Sprintf("R$ %v", number.Decimal(f, number.Scale(2)))
}

// Number devuelve el valor con separadores pt-BR y la escala indicada, sin símbolo.
func Number(v decimal.Decimal, scale int) string {
	f := v.Round(int32(scale)).InexactFloat64()
	return printer.Sprintf("%v", number.Decimal(f, number.Scale(scale)))
}
