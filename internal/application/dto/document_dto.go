package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// LineItemRequest línea a agregar en un documento. Precio: ManualPrice si es positivo; si no,
// se calcula con el costo base del producto, el costo de impresión y los porcentajes.
type LineItemRequest struct {
	ProductID     string           `json:"product_id"`
	Quantity      decimal.Decimal  `json:"quantity"` // milheiros, mínimo 0.5
	ColorNames    string           `json:"color_names"`
	Sides         string           `json:"sides"`                     // "Só Frente" | "Frente e Verso"
	BaseCost      *decimal.Decimal `json:"base_cost,omitempty"`       // vacío = costo del producto
	PrintBaseCost *decimal.Decimal `json:"print_base_cost,omitempty"` // vacío = según tamaño
	ProfitPct     decimal.Decimal  `json:"profit_pct"`
	CostPct       decimal.Decimal  `json:"cost_pct"`
	TaxPct        decimal.Decimal  `json:"tax_pct"`
	ManualPrice   decimal.Decimal  `json:"manual_price"`
}

// LinePriceResponse desglose del precio de una línea (calculadora).
type LinePriceResponse struct {
	ProductSKU    string          `json:"product_sku"`
	BaseCost      decimal.Decimal `json:"base_cost"`
	PrintBaseCost decimal.Decimal `json:"print_base_cost"`
	ColorCount    int             `json:"color_count"`
	PrintCost     decimal.Decimal `json:"print_cost"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// DocumentRequest body para POST /api/documents y PUT /api/documents/:id.
type DocumentRequest struct {
	Type          string            `json:"type"` // Pedido | Orçamento (ignorado en edición)
	ClientID      string            `json:"client_id"`
	IssueDate     string            `json:"issue_date,omitempty"` // YYYY-MM-DD; vacío = hoy
	ShippingCost  decimal.Decimal   `json:"shipping_cost"`
	PaymentMethod string            `json:"payment_method"`
	PaymentTerm   string            `json:"payment_term"`
	DeliveryDays  *int              `json:"delivery_days,omitempty"` // vacío = 40 días
	Items         []LineItemRequest `json:"items"`
}

// LineItemResponse línea persistida.
type LineItemResponse struct {
	ID          string                 `json:"id"`
	Position    int                    `json:"position"`
	ProductID   string                 `json:"product_id,omitempty"`
	ProductSKU  string                 `json:"product_sku"`
	Description entity.ItemDescription `json:"description"`
	Quantity    decimal.Decimal        `json:"quantity"`
	UnitPrice   decimal.Decimal        `json:"unit_price"`
	Subtotal    decimal.Decimal        `json:"subtotal"`
}

// DocumentResponse documento con líneas y, si existen, parcelas.
type DocumentResponse struct {
	ID            string                `json:"id"`
	Number        string                `json:"number"`
	Type          string                `json:"type"`
	ClientID      string                `json:"client_id"`
	ClientName    string                `json:"client_name,omitempty"`
	IssueDate     string                `json:"issue_date"`
	DueDate       string                `json:"due_date"`
	ShippingCost  decimal.Decimal       `json:"shipping_cost"`
	Total         decimal.Decimal       `json:"total"`
	Status        string                `json:"status"`
	PaymentMethod string                `json:"payment_method"`
	PaymentTerm   string                `json:"payment_term"`
	DeliveryDays  int                   `json:"delivery_days"`
	InvoiceNumber string                `json:"invoice_number,omitempty"`
	SourceQuoteID string                `json:"source_quote_id,omitempty"`
	Items         []LineItemResponse    `json:"items,omitempty"`
	Installments  []InstallmentResponse `json:"installments,omitempty"`
}

// StatusRequest body para PATCH /api/documents/:id/status.
type StatusRequest struct {
	Status string `json:"status"`
}

// BulkStatusRequest body para POST /api/documents/bulk/status.
type BulkStatusRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

// InvoiceNumberRequest body para PATCH /api/documents/:id/invoice-number.
type InvoiceNumberRequest struct {
	InvoiceNumber string `json:"invoice_number"`
}

// PreviewNumberRequest Counter es el contador que mantiene la interfaz (0 si ninguno): el número
// sugerido nunca es menor que él.
type PreviewNumberRequest struct {
	Type    string `json:"type"`
	Counter int64  `json:"counter"`
}

// PreviewNumberResponse número sugerido; no reserva nada.
type PreviewNumberResponse struct {
	Number   string `json:"number"`
	Sequence int64  `json:"sequence"`
}

// ProductionItemResponse línea de un pedido en producción.
type ProductionItemResponse struct {
	ItemID         string                 `json:"item_id"`
	DocumentID     string                 `json:"document_id"`
	DocumentNumber string                 `json:"document_number"`
	ClientName     string                 `json:"client_name"`
	IssueDate      string                 `json:"issue_date"`
	DueDate        string                 `json:"due_date"`
	ProductSKU     string                 `json:"product_sku"`
	Description    entity.ItemDescription `json:"description"`
	Quantity       decimal.Decimal        `json:"quantity"`
}

// StatusChangeResponse resultado de un cambio de estado. Order viene cuando se aprobó un presupuesto;
// Installments cuando se facturó un pedido.
type StatusChangeResponse struct {
	ID           string                `json:"id"`
	Number       string                `json:"number"`
	Status       string                `json:"status"`
	Order        *DocumentResponse     `json:"order,omitempty"`
	Installments []InstallmentResponse `json:"installments,omitempty"`
}
