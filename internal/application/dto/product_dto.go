package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ProductRequest body para POST/PUT /api/products y /api/products/preview.
// Los valores numéricos se reciben como json.Number para validar en el dominio.
type ProductRequest struct {
	Width      json.Number `json:"width"`
	Height     json.Number `json:"height"`
	Thickness  json.Number `json:"thickness"`
	PricePerKg json.Number `json:"price_per_kg"`
	Pigment    string      `json:"pigment"`
	Material   string      `json:"material"`
	Model      string      `json:"model"`
}

// ProductResponse producto con sus valores derivados.
type ProductResponse struct {
	ID         string          `json:"id"`
	SKU        string          `json:"sku"`
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Thickness  decimal.Decimal `json:"thickness"`
	Pigment    string          `json:"pigment"`
	Material   string          `json:"material"`
	Model      string          `json:"model"`
	Measures   string          `json:"measures"`
	Weight     decimal.Decimal `json:"weight"`
	PricePerKg decimal.Decimal `json:"price_per_kg"`
	Cost       decimal.Decimal `json:"cost"`
}

// ProductPreviewResponse valores derivados sin persistir.
type ProductPreviewResponse struct {
	Valid    bool            `json:"valid"`
	Error    string          `json:"error,omitempty"`
	SKU      string          `json:"sku"`
	Measures string          `json:"measures"`
	Weight   decimal.Decimal `json:"weight"`
	Cost     decimal.Decimal `json:"cost"`
}
