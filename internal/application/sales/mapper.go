package sales

import (
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/installment"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// Option configura los casos de uso de ventas.
type Option func(*settings)

type settings struct {
	now func() time.Time
}

func newSettings(opts []Option) settings {
	s := settings{now: time.Now}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

func toDocumentResponse(d *entity.Document, clientName string, insts []*entity.Installment, today time.Time) *dto.DocumentResponse {
	out := &dto.DocumentResponse{
		ID:            d.ID,
		Number:        d.Number,
		Type:          string(d.Type),
		ClientID:      d.ClientID,
		ClientName:    clientName,
		IssueDate:     d.IssueDate.Format(time.DateOnly),
		DueDate:       d.DueDate().Format(time.DateOnly),
		ShippingCost:  d.ShippingCost,
		Total:         d.Total,
		Status:        string(d.Status),
		PaymentMethod: d.PaymentMethod,
		PaymentTerm:   d.PaymentTerm,
		DeliveryDays:  d.DeliveryDays,
		InvoiceNumber: d.InvoiceNumber,
		SourceQuoteID: d.SourceQuoteID,
	}
	for _, it := range d.Items {
		out.Items = append(out.Items, toLineItemResponse(it))
	}
	for _, i := range insts {
		out.Installments = append(out.Installments, dto.NewInstallmentResponse(i, installment.DisplayStatus(i, today)))
	}
	return out
}

func toLineItemResponse(it *entity.LineItem) dto.LineItemResponse {
	return dto.LineItemResponse{
		ID:          it.ID,
		Position:    it.Position,
		ProductID:   it.ProductID,
		ProductSKU:  it.ProductSKU,
		Description: it.Description,
		Quantity:    it.Quantity,
		UnitPrice:   it.UnitPrice,
		Subtotal:    it.Subtotal,
	}
}

func toProductionItemResponse(p repository.ProductionItem) dto.ProductionItemResponse {
	return dto.ProductionItemResponse{
		ItemID:         p.Item.ID,
		DocumentID:     p.DocumentID,
		DocumentNumber: p.DocumentNumber,
		ClientName:     p.ClientName,
		IssueDate:      p.IssueDate.Format(time.DateOnly),
		DueDate:        p.IssueDate.AddDate(0, 0, p.DeliveryDays).Format(time.DateOnly),
		ProductSKU:     p.Item.ProductSKU,
		Description:    p.Item.Description,
		Quantity:       p.Item.Quantity,
	}
}
