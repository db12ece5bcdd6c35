package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product embalaje del catálogo. SKU, Measures, Weight y Cost son derivados de las
// dimensiones y atributos (ver pricing.DeriveProduct) y se recalculan en cada alta o edición.
type Product struct {
	ID         string
	SKU        string
	Width      int             // cm
	Height     int             // cm
	Thickness  decimal.Decimal // fracción de mm
	Pigment    string
	Material   string
	Model      string
	Measures   string // "30 x 40 x 0.0150"
	Weight     decimal.Decimal
	PricePerKg decimal.Decimal
	Cost       decimal.Decimal // costo base por milheiro
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
