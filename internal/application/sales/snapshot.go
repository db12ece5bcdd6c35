package sales

import (
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// DocumentSnapshot todo lo que el renderizador necesita de un documento, leído de una vez.
type DocumentSnapshot struct {
	Document     *entity.Document
	Items        []*entity.LineItem
	Client       *entity.Client
	Installments []*entity.Installment
}

// Consistent verifica que el total guardado coincida con las líneas y el frete, y que un pedido
// facturado tenga parcelas. El renderizador no recalcula nada.
func (s *DocumentSnapshot) Consistent() error {
	d := s.Document
	if d == nil {
		return domain.ErrNotFound
	}
	if s.Client == nil {
		return &domain.ConsistencyError{DocumentID: d.ID, Reason: "cliente não encontrado"}
	}
	if len(s.Items) == 0 {
		return &domain.ConsistencyError{DocumentID: d.ID, Reason: "documento sem itens"}
	}
	expected := entity.RoundCurrency(ComputeTotal(s.Items, d.ShippingCost))
	if !expected.Equal(d.Total) {
		return &domain.ConsistencyError{
			DocumentID: d.ID,
			Reason:     "total " + d.Total.StringFixed(2) + " difere da soma dos itens " + expected.StringFixed(2),
		}
	}
	if d.Type == entity.DocumentTypeOrder && d.Status == entity.StatusInvoiced && len(s.Installments) == 0 {
		return &domain.ConsistencyError{DocumentID: d.ID, Reason: "pedido faturado sem parcelas"}
	}
	return nil
}
