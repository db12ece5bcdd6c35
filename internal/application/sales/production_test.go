package sales_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

func TestProductionQueue_SoloPedidosEnProduccion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := request(entity.DocumentTypeOrder, "")
	req.Items = append(req.Items, manualItem("prod-2", "5", "120"))
	inProd := f.issue(t, req)
	f.issue(t, request(entity.DocumentTypeOrder, ""))
	_, err := f.life.ChangeStatus(ctx, inProd.ID, string(entity.StatusInProduction))
	require.NoError(t, err)

	queue, err := f.prod.Queue(ctx)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, "PED-1001", queue[0].DocumentNumber)
	assert.Equal(t, "Padaria Central", queue[0].ClientName)
	assert.Equal(t, "2024-03-12", queue[0].DueDate)
	assert.Equal(t, "AZUL-PEAD-20X30X0.0100-FRUTEIRA", queue[1].ProductSKU)
}

func TestRenderSheets_SoloItemsSeleccionados(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := request(entity.DocumentTypeOrder, "")
	req.Items = append(req.Items, manualItem("prod-2", "5", "120"))
	order := f.issue(t, req)
	_, err := f.life.ChangeStatus(ctx, order.ID, string(entity.StatusInProduction))
	require.NoError(t, err)

	queue, err := f.prod.Queue(ctx)
	require.NoError(t, err)
	out, err := f.prod.RenderSheets(ctx, []string{queue[1].ItemID, "otro"})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	require.Len(t, f.pdf.sheets, 1)
	require.Len(t, f.pdf.sheets[0], 1)
	assert.Equal(t, queue[1].ItemID, f.pdf.sheets[0][0].Item.ID)
}

func TestRenderSheets_SinSeleccionONadaEnProduccion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.prod.RenderSheets(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.prod.RenderSheets(ctx, []string{"x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.pdf.sheets)
}
