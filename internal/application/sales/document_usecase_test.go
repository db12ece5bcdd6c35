package sales_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/apptest"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/sales"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Borrador y precificación
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildDraft_PrecificaConCostosDelProducto(t *testing.T) {
	f := newFixture(t)
	req := request(entity.DocumentTypeOrder, "30 dias")
	req.Items = []dto.LineItemRequest{{
		ProductID:  "prod-1",
		Quantity:   dec("1"),
		ColorNames: "azul, vermelho",
		Sides:      entity.SidesBoth,
		ProfitPct:  dec("20"),
		CostPct:    dec("10"),
		TaxPct:     dec("10"),
	}}

	d, err := f.docs.BuildDraft(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, d.Items, 1)

	// impresión 230 × 2 cores × 2 lados = 920; (216 + 920) / 0.6
	item := d.Items[0]
	assert.Equal(t, "1893.33", item.UnitPrice.StringFixed(2))
	assert.Equal(t, 2, item.Description.ColorCount)
	assert.Equal(t, entity.SidesBoth, item.Description.Sides)
	assert.Equal(t, "30 x 40 x 0.0150", item.Description.Measures)
	assert.Equal(t, "BRANCO-PEBD-30X40X0.0150-SACOLA", item.ProductSKU)
	assert.Equal(t, entity.DefaultDeliveryDays, d.DeliveryDays)
}

func TestPricePreview_EmpaquePequenoUsaCostoReducido(t *testing.T) {
	f := newFixture(t)
	out, err := f.docs.PricePreview(context.Background(), dto.LineItemRequest{
		ProductID: "prod-2", Quantity: dec("3"), ColorNames: "verde",
	})
	require.NoError(t, err)
	assert.True(t, out.PrintBaseCost.Equal(dec("170")))
	assert.True(t, out.UnitPrice.Equal(dec("260")), out.UnitPrice.String())
	assert.True(t, out.Subtotal.Equal(dec("780")))
}

func TestBuildDraft_CantidadMinimaIndicaLinea(t *testing.T) {
	f := newFixture(t)
	req := request(entity.DocumentTypeOrder, "")
	req.Items = append(req.Items, manualItem("prod-2", "0.4", "100"))

	_, err := f.docs.BuildDraft(context.Background(), req)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "items[1].quantity", vErr.Field)
}

func TestBuildDraft_MarkupInvalido(t *testing.T) {
	f := newFixture(t)
	req := request(entity.DocumentTypeOrder, "")
	req.Items = []dto.LineItemRequest{{ProductID: "prod-1", Quantity: dec("1"), ProfitPct: dec("60"), CostPct: dec("30"), TaxPct: dec("10")}}

	_, err := f.docs.BuildDraft(context.Background(), req)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "items[0].markup", vErr.Field)
}

func TestBuildDraft_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	req := request(entity.DocumentTypeOrder, "")
	req.Items = []dto.LineItemRequest{manualItem("nope", "1", "10")}

	_, err := f.docs.BuildDraft(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDraft_AgregarLineasSumaTotal(t *testing.T) {
	p := &entity.Product{ID: "p", SKU: "S"}
	a, err := entity.NewLineItem(p, dec("2"), dec("10.005"), entity.ItemDescription{})
	require.NoError(t, err)
	b, err := entity.NewLineItem(p, dec("1"), dec("5"), entity.ItemDescription{})
	require.NoError(t, err)

	d := sales.NewDraft(entity.DocumentTypeQuote, "cli-1", today)
	d.ShippingCost = dec("1")
	d.AddItem(a)
	d.AddItem(b)
	require.Len(t, d.Items, 2)
	assert.Same(t, a, d.Items[0])
	assert.True(t, d.Total().Equal(dec("26.01")), d.Total().String())
}

func TestBuildDraft_VariosNegativosInformaElPrimero(t *testing.T) {
	f := newFixture(t)
	req := request(entity.DocumentTypeOrder, "")
	req.Items = []dto.LineItemRequest{{
		ProductID:   "prod-1",
		Quantity:    dec("1"),
		ProfitPct:   dec("10"),
		CostPct:     dec("-1"),
		TaxPct:      dec("-2"),
		ManualPrice: dec("-3"),
	}}

	for i := 0; i < 20; i++ {
		_, err := f.docs.BuildDraft(context.Background(), req)
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "items[0].cost_pct", vErr.Field)
	}
}

func TestComputeTotal_SinLineas(t *testing.T) {
	assert.True(t, sales.ComputeTotal(nil, dec("12.5")).Equal(dec("12.5")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Numeración
// ──────────────────────────────────────────────────────────────────────────────

func TestPreviewNumber_SeriesYContador(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.docs.PreviewNumber(ctx, dto.PreviewNumberRequest{Type: string(entity.DocumentTypeOrder)})
	require.NoError(t, err)
	assert.Equal(t, "PED-1001", out.Number)

	out, err = f.docs.PreviewNumber(ctx, dto.PreviewNumberRequest{Type: string(entity.DocumentTypeQuote)})
	require.NoError(t, err)
	assert.Equal(t, "ORC-2001", out.Number)

	f.issue(t, request(entity.DocumentTypeOrder, ""))

	out, err = f.docs.PreviewNumber(ctx, dto.PreviewNumberRequest{Type: string(entity.DocumentTypeOrder), Counter: 5})
	require.NoError(t, err)
	assert.Equal(t, "PED-1002", out.Number, "el contador nunca baja del persistido")

	out, err = f.docs.PreviewNumber(ctx, dto.PreviewNumberRequest{Type: string(entity.DocumentTypeOrder), Counter: 1010})
	require.NoError(t, err)
	assert.Equal(t, int64(1010), out.Sequence)

	_, err = f.docs.PreviewNumber(ctx, dto.PreviewNumberRequest{Type: "Nota"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Emisión
// ──────────────────────────────────────────────────────────────────────────────

func TestIssue_PedidoYPresupuestoConSusSeries(t *testing.T) {
	f := newFixture(t)

	order := f.issue(t, request(entity.DocumentTypeOrder, "30/60 dias"))
	assert.Equal(t, "PED-1001", order.Number)
	assert.Equal(t, string(entity.StatusOpen), order.Status)
	assert.Equal(t, "2050.00", order.Total.StringFixed(2))
	assert.Equal(t, "2024-03-12", order.DueDate)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 1, order.Items[0].Position)

	second := f.issue(t, request(entity.DocumentTypeOrder, ""))
	assert.Equal(t, "PED-1002", second.Number)

	quote := f.issue(t, request(entity.DocumentTypeQuote, ""))
	assert.Equal(t, "ORC-2001", quote.Number)

	stored := f.store.Document(order.ID)
	require.NotNil(t, stored)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, order.ID, stored.Items[0].DocumentID)
}

func TestIssue_ContadorAutoritativoPorEncimaDelMaximo(t *testing.T) {
	f := newFixture(t)
	f.store.SetCounter(entity.DocumentTypeOrder, 1500)

	out := f.issue(t, request(entity.DocumentTypeOrder, ""))
	assert.Equal(t, "PED-1501", out.Number)
}

func TestIssue_SinLineasNoAbreTransaccion(t *testing.T) {
	f := newFixture(t)
	d := sales.NewDraft(entity.DocumentTypeOrder, "cli-1", today)

	_, err := f.docs.Issue(context.Background(), d)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "items", vErr.Field)
	assert.Zero(t, f.store.TxRuns)
}

func TestIssue_ClienteInexistente(t *testing.T) {
	f := newFixture(t)
	req := request(entity.DocumentTypeOrder, "")
	req.ClientID = "nope"
	d, err := f.docs.BuildDraft(context.Background(), req)
	require.NoError(t, err)

	_, err = f.docs.Issue(context.Background(), d)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "client_id", vErr.Field)
}

func TestIssue_PrazoInformadoDebeSerValido(t *testing.T) {
	f := newFixture(t)
	d, err := f.docs.BuildDraft(context.Background(), request(entity.DocumentTypeOrder, "trinta dias"))
	require.NoError(t, err)

	_, err = f.docs.Issue(context.Background(), d)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.store.DocumentCount())
}

func TestIssue_FormaDePagoDesconocida(t *testing.T) {
	f := newFixture(t)
	req := request(entity.DocumentTypeOrder, "")
	req.PaymentMethod = "Cartão"
	d, err := f.docs.BuildDraft(context.Background(), req)
	require.NoError(t, err)

	_, err = f.docs.Issue(context.Background(), d)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIssue_ReintentaAnteNumeroDuplicado(t *testing.T) {
	f := newFixture(t)
	f.store.FailOn(apptest.OpDocumentCreate, &domain.ConflictError{Field: "number", Value: "PED-1001"})

	out := f.issue(t, request(entity.DocumentTypeOrder, ""))
	assert.Equal(t, "PED-1001", out.Number, "el primer intento se deshizo, incluido el contador")
	assert.Equal(t, 2, f.store.Calls(apptest.OpNextSequence))
	assert.Equal(t, 1, f.store.DocumentCount())
}

func TestIssue_FalloEnLineasDeshaceTodo(t *testing.T) {
	f := newFixture(t)
	f.store.FailOn(apptest.OpItemsCreate, errors.New("disco lleno"))

	d, err := f.docs.BuildDraft(context.Background(), request(entity.DocumentTypeOrder, ""))
	require.NoError(t, err)
	_, err = f.docs.Issue(context.Background(), d)
	require.Error(t, err)
	assert.Zero(t, f.store.DocumentCount())

	out := f.issue(t, request(entity.DocumentTypeOrder, ""))
	assert.Equal(t, "PED-1001", out.Number)
}

func TestIssue_TotalRedondeadoACentavos(t *testing.T) {
	f := newFixture(t)
	req := request(entity.DocumentTypeOrder, "")
	req.ShippingCost = dec("0")
	req.Items = []dto.LineItemRequest{manualItem("prod-1", "1.5", "333.333")}

	out := f.issue(t, req)
	assert.Equal(t, "500.00", out.Total.StringFixed(2))
	assert.True(t, out.Items[0].Subtotal.Equal(dec("499.9995")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_ReemplazaLineasYRecalculaTotal(t *testing.T) {
	f := newFixture(t)
	order := f.issue(t, request(entity.DocumentTypeOrder, ""))

	req := request("", "À vista")
	req.ShippingCost = dec("0")
	req.DeliveryDays = ptr(15)
	req.Items = []dto.LineItemRequest{manualItem("prod-2", "1", "300"), manualItem("prod-1", "0.5", "100")}
	d, err := f.docs.BuildDraft(context.Background(), req)
	require.NoError(t, err)

	out, err := f.docs.Update(context.Background(), order.ID, d)
	require.NoError(t, err)
	assert.Equal(t, order.Number, out.Number)
	assert.Equal(t, string(entity.DocumentTypeOrder), out.Type)
	assert.Equal(t, "350.00", out.Total.StringFixed(2))
	assert.Equal(t, 15, out.DeliveryDays)

	stored := f.store.Document(order.ID)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, "AZUL-PEAD-20X30X0.0100-FRUTEIRA", stored.Items[0].ProductSKU)
	assert.Equal(t, "À vista", stored.PaymentTerm)
}

func TestUpdate_FalloDejaLineasOriginales(t *testing.T) {
	f := newFixture(t)
	order := f.issue(t, request(entity.DocumentTypeOrder, ""))
	f.store.FailOn(apptest.OpItemsCreate, errors.New("boom"))

	req := request("", "")
	req.Items = []dto.LineItemRequest{manualItem("prod-2", "1", "300")}
	d, err := f.docs.BuildDraft(context.Background(), req)
	require.NoError(t, err)
	_, err = f.docs.Update(context.Background(), order.ID, d)
	require.Error(t, err)

	stored := f.store.Document(order.ID)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "prod-1", stored.Items[0].ProductID)
	assert.Equal(t, "2050.00", stored.Total.StringFixed(2))
}

func TestUpdate_ConParcelasEsInconsistente(t *testing.T) {
	f := newFixture(t)
	order := f.issue(t, request(entity.DocumentTypeOrder, "30 dias"))
	_, err := f.life.ChangeStatus(context.Background(), order.ID, string(entity.StatusInvoiced))
	require.NoError(t, err)

	d, err := f.docs.BuildDraft(context.Background(), request("", "30 dias"))
	require.NoError(t, err)
	_, err = f.docs.Update(context.Background(), order.ID, d)
	assert.ErrorIs(t, err, domain.ErrConsistency)
}

func TestUpdate_Inexistente(t *testing.T) {
	f := newFixture(t)
	d, err := f.docs.BuildDraft(context.Background(), request("", ""))
	require.NoError(t, err)
	_, err = f.docs.Update(context.Background(), "nope", d)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consulta, borrado y NF-e
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_IncluyeLineasYParcelasConEstadoDerivado(t *testing.T) {
	f := newFixture(t)
	req := request(entity.DocumentTypeOrder, "15/45 dias")
	req.IssueDate = "2024-02-01"
	order := f.issue(t, req)
	_, err := f.life.ChangeStatus(context.Background(), order.ID, string(entity.StatusInvoiced))
	require.NoError(t, err)

	out, err := f.docs.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Padaria Central", out.ClientName)
	require.Len(t, out.Items, 1)
	require.Len(t, out.Installments, 2)
	assert.Equal(t, string(entity.InstallmentOverdue), out.Installments[0].Status)
	assert.Equal(t, string(entity.InstallmentOpen), out.Installments[1].Status)

	_, err = f.docs.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_FiltraPorTipo(t *testing.T) {
	f := newFixture(t)
	f.issue(t, request(entity.DocumentTypeOrder, ""))
	f.issue(t, request(entity.DocumentTypeQuote, ""))

	list, err := f.docs.List(context.Background(), string(entity.DocumentTypeQuote), "", "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ORC-2001", list[0].Number)
	assert.Equal(t, "Padaria Central", list[0].ClientName)

	_, err = f.docs.List(context.Background(), "", "Perdido", "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBulkDelete_ResultadoPorDocumentoYCascada(t *testing.T) {
	f := newFixture(t)
	order := f.issue(t, request(entity.DocumentTypeOrder, "30 dias"))
	_, err := f.life.ChangeStatus(context.Background(), order.ID, string(entity.StatusInvoiced))
	require.NoError(t, err)
	require.Len(t, f.store.InstallmentsOf(order.ID), 1)

	res := f.docs.BulkDelete(context.Background(), []string{order.ID, "nope"})
	require.Len(t, res, 2)
	assert.True(t, res[0].OK)
	assert.False(t, res[1].OK)
	assert.Equal(t, domain.CodeNotFound, res[1].Code)

	assert.Nil(t, f.store.Document(order.ID))
	assert.Empty(t, f.store.InstallmentsOf(order.ID))
}

func TestSetInvoiceNumber_SoloPedidos(t *testing.T) {
	f := newFixture(t)
	order := f.issue(t, request(entity.DocumentTypeOrder, ""))
	quote := f.issue(t, request(entity.DocumentTypeQuote, ""))

	out, err := f.docs.SetInvoiceNumber(context.Background(), order.ID, " 000123 ")
	require.NoError(t, err)
	assert.Equal(t, "000123", out.InvoiceNumber)

	_, err = f.docs.SetInvoiceNumber(context.Background(), quote.ID, "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.docs.SetInvoiceNumber(context.Background(), order.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Impresión
// ──────────────────────────────────────────────────────────────────────────────

func TestRenderPDF_EntregaSnapshotConsistente(t *testing.T) {
	f := newFixture(t)
	order := f.issue(t, request(entity.DocumentTypeOrder, ""))

	out, name, err := f.docs.RenderPDF(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "PED-1001", name)
	assert.NotEmpty(t, out)
	require.Len(t, f.pdf.docs, 1)
	assert.Equal(t, "Padaria Central", f.pdf.docs[0].Client.TradeName)
	assert.Len(t, f.pdf.docs[0].Items, 1)
}

func TestSnapshotConsistent_TotalAdulterado(t *testing.T) {
	f := newFixture(t)
	order := f.issue(t, request(entity.DocumentTypeOrder, ""))

	snap, err := f.docs.Snapshot(context.Background(), order.ID)
	require.NoError(t, err)
	require.NoError(t, snap.Consistent())

	snap.Document.Total = dec("2050.01")
	assert.ErrorIs(t, snap.Consistent(), domain.ErrConsistency)

	snap.Document.Total = dec("2050")
	snap.Items = nil
	assert.ErrorIs(t, snap.Consistent(), domain.ErrConsistency)
}

func TestItemDescriptionSchema(t *testing.T) {
	raw, err := sales.ItemDescriptionSchema()
	require.NoError(t, err)
	s := string(raw)
	assert.Contains(t, s, `"color_names"`)
	assert.Contains(t, s, `"additionalProperties":false`)
	assert.Contains(t, s, "Frente e Verso")
}
