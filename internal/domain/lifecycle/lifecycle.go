// Package lifecycle define los estados válidos de pedidos y presupuestos y qué transiciones se aceptan.
//
// Los cambios de estado son sobrescrituras directas del usuario: desde cualquier estado no terminal
// se puede pasar a cualquier otro estado válido para el tipo de documento. Los efectos colaterales
// (parcelas al facturar, conversión al aprobar) se ejecutan en la capa de aplicación.
package lifecycle

import (
	"fmt"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

var orderStatuses = []entity.DocumentStatus{
	entity.StatusOpen,
	entity.StatusInProduction,
	entity.StatusInvoiced,
	entity.StatusShipped,
	entity.StatusReceived,
	entity.StatusCompleted,
	entity.StatusCancelled,
}

var quoteStatuses = []entity.DocumentStatus{
	entity.StatusOpen,
	entity.StatusApproved,
	entity.StatusRejected,
	entity.StatusCancelled,
}

// Statuses devuelve los estados válidos para el tipo, en orden de flujo.
func Statuses(t entity.DocumentType) []entity.DocumentStatus {
	src := orderStatuses
	if t == entity.DocumentTypeQuote {
		src = quoteStatuses
	}
	out := make([]entity.DocumentStatus, len(src))
	copy(out, src)
	return out
}

// IsValid indica si s es un estado admitido para el tipo.
func IsValid(t entity.DocumentType, s entity.DocumentStatus) bool {
	for _, v := range Statuses(t) {
		if v == s {
			return true
		}
	}
	return false
}

// IsTerminal estados que ya no admiten cambios. Un presupuesto aprobado ya originó su pedido.
func IsTerminal(t entity.DocumentType, s entity.DocumentStatus) bool {
	switch s {
	case entity.StatusCompleted, entity.StatusCancelled, entity.StatusRejected:
		return true
	case entity.StatusApproved:
		return t == entity.DocumentTypeQuote
	}
	return false
}

// CanTransition valida el cambio from -> to para un documento del tipo t.
func CanTransition(t entity.DocumentType, from, to entity.DocumentStatus) error {
	if !IsValid(t, to) {
		return fmt.Errorf("%w: %q no es un estado válido para %s", domain.ErrInvalidTransition, to, t)
	}
	if IsTerminal(t, from) {
		return fmt.Errorf("%w: %s en estado final %q", domain.ErrInvalidTransition, t, from)
	}
	return nil
}

// TriggersInstallments la transición genera las parcelas del pedido.
func TriggersInstallments(t entity.DocumentType, to entity.DocumentStatus) bool {
	return t == entity.DocumentTypeOrder && to == entity.StatusInvoiced
}

// TriggersConversion la transición convierte el presupuesto en pedido.
func TriggersConversion(t entity.DocumentType, to entity.DocumentStatus) bool {
	return t == entity.DocumentTypeQuote && to == entity.StatusApproved
}
