package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType distingue pedidos de presupuestos; ambos comparten tabla.
type DocumentType string

const (
	DocumentTypeOrder DocumentType = "Pedido"
	DocumentTypeQuote DocumentType = "Orçamento"
)

// Prefix devuelve el prefijo del número de documento (PED / ORC).
func (t DocumentType) Prefix() string {
	if t == DocumentTypeQuote {
		return "ORC"
	}
	return "PED"
}

// Valid indica si t es un tipo conocido.
func (t DocumentType) Valid() bool {
	return t == DocumentTypeOrder || t == DocumentTypeQuote
}

// DocumentStatus estado persistido del documento. Los valores se guardan tal cual en la base.
type DocumentStatus string

const (
	StatusOpen         DocumentStatus = "Aberto"
	StatusInProduction DocumentStatus = "Em Produção"
	StatusInvoiced     DocumentStatus = "Faturado"
	StatusShipped      DocumentStatus = "Enviado"
	StatusReceived     DocumentStatus = "Recebido"
	StatusCompleted    DocumentStatus = "Concluído"
	StatusCancelled    DocumentStatus = "Cancelado"

	// Solo presupuestos.
	StatusApproved DocumentStatus = "Aprovado"
	StatusRejected DocumentStatus = "Recusado"
)

// Formas de pago aceptadas.
const (
	PaymentPix    = "Pix"
	PaymentCash   = "Dinheiro"
	PaymentBoleto = "Boleto"
	PaymentCheque = "Cheque"
)

// PaymentMethods lista en el orden en que se ofrecen al usuario.
var PaymentMethods = []string{PaymentPix, PaymentCash, PaymentBoleto, PaymentCheque}

// DefaultDeliveryDays plazo de entrega sugerido para documentos nuevos.
const DefaultDeliveryDays = 40

// Document cabecera de un pedido o presupuesto.
type Document struct {
	ID            string
	Number        string // PED-1001, ORC-2001
	Sequence      int64
	Type          DocumentType
	ClientID      string
	IssueDate     time.Time
	ShippingCost  decimal.Decimal
	Total         decimal.Decimal
	Status        DocumentStatus
	PaymentMethod string
	PaymentTerm   string // "30/45/60 dias", "À vista"
	DeliveryDays  int
	InvoiceNumber string // número de la NF-e, informado después de facturar
	SourceQuoteID string // presupuesto de origen cuando el pedido nace de una aprobación
	Items         []*LineItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsQuote indica si el documento es un presupuesto.
func (d *Document) IsQuote() bool { return d.Type == DocumentTypeQuote }

// DueDate fecha de entrega prevista (emisión + plazo de entrega).
func (d *Document) DueDate() time.Time {
	return d.IssueDate.AddDate(0, 0, d.DeliveryDays)
}
