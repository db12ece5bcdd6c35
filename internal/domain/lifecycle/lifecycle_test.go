package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/lifecycle"
)

const (
	pedido    = entity.DocumentTypeOrder
	orcamento = entity.DocumentTypeQuote
)

func TestCanTransition_PedidoSobrescrituraDirecta(t *testing.T) {
	assert.NoError(t, lifecycle.CanTransition(pedido, entity.StatusOpen, entity.StatusInProduction))
	assert.NoError(t, lifecycle.CanTransition(pedido, entity.StatusOpen, entity.StatusInvoiced), "se puede saltar estados")
	assert.NoError(t, lifecycle.CanTransition(pedido, entity.StatusShipped, entity.StatusInProduction), "se puede retroceder")
	assert.NoError(t, lifecycle.CanTransition(pedido, entity.StatusReceived, entity.StatusCancelled))
}

func TestCanTransition_EstadosFinalesRechazan(t *testing.T) {
	for _, from := range []entity.DocumentStatus{entity.StatusCompleted, entity.StatusCancelled} {
		err := lifecycle.CanTransition(pedido, from, entity.StatusOpen)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "desde %s", from)
	}
	assert.ErrorIs(t, lifecycle.CanTransition(orcamento, entity.StatusRejected, entity.StatusOpen), domain.ErrInvalidTransition)
	assert.ErrorIs(t, lifecycle.CanTransition(orcamento, entity.StatusApproved, entity.StatusCancelled), domain.ErrInvalidTransition)
}

func TestCanTransition_EstadoDeOtroTipoRechaza(t *testing.T) {
	assert.ErrorIs(t, lifecycle.CanTransition(pedido, entity.StatusOpen, entity.StatusApproved), domain.ErrInvalidTransition)
	assert.ErrorIs(t, lifecycle.CanTransition(orcamento, entity.StatusOpen, entity.StatusInvoiced), domain.ErrInvalidTransition)
	assert.ErrorIs(t, lifecycle.CanTransition(pedido, entity.StatusOpen, "Perdido"), domain.ErrInvalidTransition)
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, lifecycle.IsTerminal(pedido, entity.StatusCompleted))
	assert.True(t, lifecycle.IsTerminal(orcamento, entity.StatusApproved))
	assert.False(t, lifecycle.IsTerminal(pedido, entity.StatusReceived))
	assert.False(t, lifecycle.IsTerminal(pedido, entity.StatusOpen))
}

func TestTriggers(t *testing.T) {
	assert.True(t, lifecycle.TriggersInstallments(pedido, entity.StatusInvoiced))
	assert.False(t, lifecycle.TriggersInstallments(pedido, entity.StatusReceived))
	assert.True(t, lifecycle.TriggersConversion(orcamento, entity.StatusApproved))
	assert.False(t, lifecycle.TriggersConversion(pedido, entity.StatusApproved))
}

func TestStatuses_DevuelveCopia(t *testing.T) {
	s := lifecycle.Statuses(pedido)
	assert.Len(t, s, 7)
	s[0] = "X"
	assert.Equal(t, entity.StatusOpen, lifecycle.Statuses(pedido)[0])
	assert.Len(t, lifecycle.Statuses(orcamento), 4)
}
