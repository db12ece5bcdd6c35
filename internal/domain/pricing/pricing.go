// Package pricing concentra las reglas puras de precio y de derivación de productos (servicio de dominio).
package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)

	upper = cases.Upper(language.BrazilianPortuguese)
)

// Umbrales (cm) por debajo de los cuales se usa el costo de impresión reducido.
const (
	SmallWidthLimit  = 25
	SmallHeightLimit = 35
)

// PriceInput datos para calcular el precio unitario por milheiro.
// Los porcentajes van en escala 0-100.
type PriceInput struct {
	BaseCost    decimal.Decimal
	PrintCost   decimal.Decimal
	ProfitPct   decimal.Decimal
	CostPct     decimal.Decimal
	TaxPct      decimal.Decimal
	ManualPrice decimal.Decimal
}

// UnitPrice devuelve ManualPrice si es positivo; si no (base+impresión)/(1-markup).
// markup = (lucro+custo+imposto)/100 y debe ser menor que 1.
// El resultado no se redondea.
func UnitPrice(in PriceInput) (decimal.Decimal, error) {
	if in.ManualPrice.IsPositive() {
		return in.ManualPrice, nil
	}
	markup := in.ProfitPct.Add(in.CostPct).Add(in.TaxPct).Div(hundred)
	if markup.GreaterThanOrEqual(one) {
		return decimal.Zero, domain.NewValidationError("markup", "a soma de lucro, custo e imposto deve ser menor que 100%")
	}
	return in.BaseCost.Add(in.PrintCost).Div(one.Sub(markup)), nil
}

// CountColors cuenta los nombres no vacíos de una lista separada por comas.
func CountColors(colorNames string) int {
	n := 0
	for _, c := range strings.Split(colorNames, ",") {
		if strings.TrimSpace(c) != "" {
			n++
		}
	}
	return n
}

// PrintCost costo de impresión: base × cantidad de colores × 2 si es frente y verso.
func PrintCost(baseUnitCost decimal.Decimal, colorNames, sides string) decimal.Decimal {
	cost := baseUnitCost.Mul(decimal.NewFromInt(int64(CountColors(colorNames))))
	if sides == entity.SidesBoth {
		cost = cost.Mul(two)
	}
	return cost
}

// PrintBaseCost elige el costo base de impresión según el tamaño del empaque.
func PrintBaseCost(width, height int, small, large decimal.Decimal) decimal.Decimal {
	if width < SmallWidthLimit || height < SmallHeightLimit {
		return small
	}
	return large
}

// RawProduct valores tal como llegan del formulario.
type RawProduct struct {
	Width      string
	Height     string
	Thickness  string
	PricePerKg string
	Pigment    string
	Material   string
	Model      string
}

// Derived valores calculados de un producto.
type Derived struct {
	Width      int
	Height     int
	Thickness  decimal.Decimal
	PricePerKg decimal.Decimal
	Weight     decimal.Decimal
	Cost       decimal.Decimal
	Measures   string
	SKU        string
}

// Invalid marcador devuelto junto con el error cuando la entrada no es utilizable.
var Invalid = Derived{Measures: "Inválido", SKU: "INVÁLIDO"}

// DeriveProduct calcula peso = ceil(L×A×E), costo = peso × valor_kg, medidas y SKU.
// Nunca entra en pánico: ante datos faltantes o no numéricos devuelve Invalid y un *domain.ValidationError.
func DeriveProduct(raw RawProduct) (Derived, error) {
	width, err := parsePositiveInt("width", raw.Width)
	if err != nil {
		return Invalid, err
	}
	height, err := parsePositiveInt("height", raw.Height)
	if err != nil {
		return Invalid, err
	}
	thickness, err := parseDecimal("thickness", raw.Thickness)
	if err != nil {
		return Invalid, err
	}
	if !thickness.IsPositive() {
		return Invalid, domain.NewValidationError("thickness", "deve ser maior que zero")
	}
	pricePerKg, err := parseDecimal("price_per_kg", raw.PricePerKg)
	if err != nil {
		return Invalid, err
	}
	if pricePerKg.IsNegative() {
		return Invalid, domain.NewValidationError("price_per_kg", "não pode ser negativo")
	}

	weight := decimal.NewFromInt(int64(width) * int64(height)).Mul(thickness).Ceil()
	t := thickness.StringFixed(4)
	return Derived{
		Width:      width,
		Height:     height,
		Thickness:  thickness,
		PricePerKg: pricePerKg,
		Weight:     weight,
		Cost:       weight.Mul(pricePerKg),
		Measures:   fmt.Sprintf("%d x %d x %s", width, height, t),
		SKU: fmt.Sprintf("%s-%s-%dX%dX%s-%s",
			normalize(raw.Pigment), normalize(raw.Material), width, height, t, normalize(raw.Model)),
	}, nil
}

func normalize(s string) string {
	return upper.String(strings.TrimSpace(s))
}

func parsePositiveInt(field, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, domain.NewValidationError(field, "obrigatório")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, domain.NewValidationError(field, "deve ser um número inteiro")
	}
	if n <= 0 {
		return 0, domain.NewValidationError(field, "deve ser maior que zero")
	}
	return n, nil
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, domain.NewValidationError(field, "obrigatório")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.NewValidationError(field, "deve ser numérico")
	}
	return d, nil
}
