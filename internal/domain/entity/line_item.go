package entity

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/domain"
)

// MinQuantity cantidad mínima por línea: medio milheiro.
var MinQuantity = decimal.RequireFromString("0.5")

// Lados de impresión.
const (
	SidesFront = "Só Frente"
	SidesBoth  = "Frente e Verso"
)

// ItemDescription foto de los atributos del producto y de la impresión al momento de crear la línea.
// No se actualiza si el producto cambia después.
type ItemDescription struct {
	Pigment    string `json:"pigment" jsonschema:"title=Pigmento"`
	Material   string `json:"material" jsonschema:"title=Material"`
	Model      string `json:"model" jsonschema:"title=Modelo"`
	Measures   string `json:"measures" jsonschema:"title=Medidas,description=largura x altura x espessura"`
	ColorCount int    `json:"color_count" jsonschema:"minimum=0"`
	ColorNames string `json:"color_names" jsonschema:"description=Nomes das cores separados por vírgula"`
	Sides      string `json:"sides" jsonschema:"enum=Só Frente,enum=Frente e Verso"`
}

// LineItem línea de un documento. Quantity en milheiros, UnitPrice por milheiro.
type LineItem struct {
	ID          string
	DocumentID  string
	Position    int
	ProductID   string
	ProductSKU  string
	Description ItemDescription
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal // precisión completa; se redondea al persistir o mostrar
}

// NewLineItem arma una línea validando la cantidad mínima.
func NewLineItem(product *Product, quantity, unitPrice decimal.Decimal, desc ItemDescription) (*LineItem, error) {
	if product == nil {
		return nil, domain.NewValidationError("product_id", "produto obrigatório")
	}
	if quantity.LessThan(MinQuantity) {
		return nil, domain.NewValidationError("quantity", "quantidade mínima é 0,5 milheiro")
	}
	if unitPrice.IsNegative() {
		return nil, domain.NewValidationError("unit_price", "preço unitário não pode ser negativo")
	}
	return &LineItem{
		ProductID:   product.ID,
		ProductSKU:  product.SKU,
		Description: desc,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Subtotal:    quantity.Mul(unitPrice),
	}, nil
}

// RoundCurrency redondea a centavos (2 decimales).
func RoundCurrency(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}
