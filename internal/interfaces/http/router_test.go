package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/apptest"
	"github.com/jhoicas/Pedidos-api/internal/application/catalog"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/receivables"
	"github.com/jhoicas/Pedidos-api/internal/application/sales"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Pedidos-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var today = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return today }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type pdfStub struct{}

func (pdfStub) GenerateDocument(*sales.DocumentSnapshot) ([]byte, error) {
	return []byte("%PDF-doc"), nil
}

func (pdfStub) GenerateProductionSheets([]repository.ProductionItem) ([]byte, error) {
	return []byte("%PDF-op"), nil
}

// lookupStub responde siempre con el mismo resultado.
type lookupStub struct {
	out *dto.ClientRequest
	err error
}

func (l lookupStub) Lookup(context.Context, string) (*dto.ClientRequest, error) {
	return l.out, l.err
}

// buildTestApp arma la API completa sobre el store en memoria.
func buildTestApp(t *testing.T, lookup catalog.CNPJLookup) (*fiber.App, *apptest.Store) {
	t.Helper()
	store := apptest.NewStore()
	store.PutClient(&entity.Client{ID: "cli-1", TradeName: "Padaria Central", TaxID: "11222333000181"})
	store.PutProduct(&entity.Product{
		ID: "prod-1", SKU: "BRANCO-PEBD-30X40X0.0150-SACOLA",
		Width: 30, Height: 40, Thickness: dec("0.015"),
		Pigment: "BRANCO", Material: "PEBD", Model: "SACOLA", Measures: "30 x 40 x 0.0150",
		Weight: dec("18"), PricePerKg: dec("12"), Cost: dec("216"),
	})

	log := zerolog.Nop()
	builder := sales.NewItemBuilder(store.Products(), sales.PrintCosts{Small: dec("170"), Large: dec("230")})
	recv := receivables.NewUseCase(store, store.Documents(), store.Installments(), log, receivables.WithClock(clock))

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	apphttp.Router(app, apphttp.RouterDeps{
		ClientUC:      catalog.NewClientUseCase(store.Clients(), lookup, log),
		ProductUC:     catalog.NewProductUseCase(store.Products(), log),
		DocumentUC:    sales.NewDocumentUseCase(store, store.Documents(), store.Clients(), store.Installments(), builder, pdfStub{}, log, sales.WithClock(clock)),
		LifecycleUC:   sales.NewLifecycleUseCase(store, store.Clients(), recv, log, sales.WithClock(clock)),
		ProductionUC:  sales.NewProductionUseCase(store.Documents(), pdfStub{}),
		ReceivablesUC: recv,
	})
	return app, store
}

// do ejecuta la petición y devuelve status y cuerpo.
func do(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

const orderBody = `{
	"type": "Pedido",
	"client_id": "cli-1",
	"issue_date": "2024-02-01",
	"shipping_cost": "50",
	"payment_method": "Boleto",
	"payment_term": "30 dias",
	"items": [{"product_id": "prod-1", "quantity": "2", "color_names": "azul", "manual_price": "1000"}]
}`

func createOrder(t *testing.T, app *fiber.App) dto.DocumentResponse {
	t.Helper()
	status, body := do(t, app, http.MethodPost, "/api/documents", orderBody)
	require.Equal(t, http.StatusCreated, status, string(body))
	return decode[dto.DocumentResponse](t, body)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestClients_CrearYDuplicado(t *testing.T) {
	app, _ := buildTestApp(t, nil)

	status, body := do(t, app, http.MethodPost, "/api/clients", `{"trade_name": "Mercado Sol", "tax_id": "529.982.247-25"}`)
	require.Equal(t, http.StatusCreated, status, string(body))
	created := decode[dto.ClientResponse](t, body)
	assert.Equal(t, "52998224725", created.TaxID)

	status, body = do(t, app, http.MethodPost, "/api/clients", `{"trade_name": "Mercado Sol"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, domain.CodeDuplicate, decode[dto.ErrorResponse](t, body).Code)
}

func TestClients_Validacion(t *testing.T) {
	app, _ := buildTestApp(t, nil)

	status, body := do(t, app, http.MethodPost, "/api/clients", `{"trade_name": "  "}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, domain.CodeValidation, decode[dto.ErrorResponse](t, body).Code)

	status, body = do(t, app, http.MethodPost, "/api/clients", `{`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, body).Code)
}

func TestClients_NoEncontrado(t *testing.T) {
	app, _ := buildTestApp(t, nil)
	status, body := do(t, app, http.MethodGet, "/api/clients/nope", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, domain.CodeNotFound, decode[dto.ErrorResponse](t, body).Code)
}

func TestClients_EliminarConDocumentosDaConflicto(t *testing.T) {
	app, _ := buildTestApp(t, nil)
	createOrder(t, app)

	status, body := do(t, app, http.MethodDelete, "/api/clients/cli-1", "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, domain.CodeConflict, decode[dto.ErrorResponse](t, body).Code)
}

func TestClients_ConsultaCNPJ(t *testing.T) {
	app, _ := buildTestApp(t, lookupStub{out: &dto.ClientRequest{TradeName: "ACME"}})
	status, body := do(t, app, http.MethodGet, "/api/clients/lookup/11222333000181", "")
	require.Equal(t, http.StatusOK, status, string(body))
	out := decode[dto.ClientRequest](t, body)
	assert.Equal(t, "ACME", out.TradeName)
	assert.Equal(t, "11222333000181", out.TaxID)

	status, _ = do(t, app, http.MethodGet, "/api/clients/lookup/123", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestClients_ConsultaCNPJIndisponible(t *testing.T) {
	app, _ := buildTestApp(t, lookupStub{err: errors.New("timeout")})
	status, body := do(t, app, http.MethodGet, "/api/clients/lookup/11222333000181", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, apphttp.CodeLookupUnavailable, decode[dto.ErrorResponse](t, body).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_PreviewInvalidoNoEsError(t *testing.T) {
	app, _ := buildTestApp(t, nil)
	status, body := do(t, app, http.MethodPost, "/api/products/preview", `{"pigment": "BRANCO"}`)
	require.Equal(t, http.StatusOK, status)
	out := decode[dto.ProductPreviewResponse](t, body)
	assert.False(t, out.Valid)
	assert.NotEmpty(t, out.Error)
}

// ──────────────────────────────────────────────────────────────────────────────
// Documentos y ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

func TestDocuments_EmitirYConsultar(t *testing.T) {
	app, _ := buildTestApp(t, nil)
	order := createOrder(t, app)
	assert.Equal(t, "PED-1001", order.Number)
	assert.Equal(t, string(entity.StatusOpen), order.Status)
	assert.Equal(t, "2050.00", order.Total.StringFixed(2))

	status, body := do(t, app, http.MethodGet, "/api/documents/"+order.ID, "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[dto.DocumentResponse](t, body).Items, 1)

	status, body = do(t, app, http.MethodGet, "/api/documents?type=Pedido", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.DocumentResponse](t, body), 1)
}

func TestDocuments_SinItemsEsValidacion(t *testing.T) {
	app, _ := buildTestApp(t, nil)
	status, body := do(t, app, http.MethodPost, "/api/documents", `{"type": "Pedido", "client_id": "cli-1", "items": []}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, domain.CodeValidation, decode[dto.ErrorResponse](t, body).Code)
}

func TestDocuments_ErrorInternoNoExponeDetalle(t *testing.T) {
	app, store := buildTestApp(t, nil)
	store.FailOn(apptest.OpDocumentCreate, errors.New("senha do banco vazou"))

	status, body := do(t, app, http.MethodPost, "/api/documents", orderBody)
	assert.Equal(t, http.StatusInternalServerError, status)
	resp := decode[dto.ErrorResponse](t, body)
	assert.Equal(t, domain.CodeInternal, resp.Code)
	assert.NotContains(t, resp.Message, "senha")
}

func TestDocuments_FacturarYPagar(t *testing.T) {
	app, _ := buildTestApp(t, nil)
	order := createOrder(t, app)

	status, body := do(t, app, http.MethodPatch, "/api/documents/"+order.ID+"/status", `{"status": "Faturado"}`)
	require.Equal(t, http.StatusOK, status, string(body))
	change := decode[dto.StatusChangeResponse](t, body)
	require.Len(t, change.Installments, 1)
	assert.Equal(t, "2024-03-02", change.Installments[0].DueDate)

	status, body = do(t, app, http.MethodGet, "/api/receivables?status=Em%20Aberto", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.InstallmentResponse](t, body), 1)

	status, body = do(t, app, http.MethodPost, "/api/installments/"+change.Installments[0].ID+"/pay", "")
	require.Equal(t, http.StatusOK, status, string(body))
	paid := decode[dto.PaymentResponse](t, body)
	assert.Equal(t, string(entity.StatusReceived), paid.DocumentStatus)
	assert.True(t, paid.DocumentAdvanced)

	status, body = do(t, app, http.MethodGet, "/api/receivables/summary", "")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[dto.ReceivablesSummaryResponse](t, body).TotalOpen.IsZero())
}

func TestDocuments_TransicionInvalida(t *testing.T) {
	app, _ := buildTestApp(t, nil)
	order := createOrder(t, app)

	status, _ := do(t, app, http.MethodPatch, "/api/documents/"+order.ID+"/status", `{"status": "Cancelado"}`)
	require.Equal(t, http.StatusOK, status)

	status, body := do(t, app, http.MethodPatch, "/api/documents/"+order.ID+"/status", `{"status": "Aberto"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, domain.CodeInvalidTransition, decode[dto.ErrorResponse](t, body).Code)
}

func TestDocuments_FacturarSinPrazoEsInconsistente(t *testing.T) {
	app, _ := buildTestApp(t, nil)
	status, body := do(t, app, http.MethodPost, "/api/documents", strings.Replace(orderBody, `"30 dias"`, `""`, 1))
	require.Equal(t, http.StatusCreated, status, string(body))
	order := decode[dto.DocumentResponse](t, body)

	status, body = do(t, app, http.MethodPatch, "/api/documents/"+order.ID+"/status", `{"status": "Faturado"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, domain.CodeConsistency, decode[dto.ErrorResponse](t, body).Code)
}

func TestDocuments_OperacionesMasivas(t *testing.T) {
	app, _ := buildTestApp(t, nil)
	order := createOrder(t, app)

	status, body := do(t, app, http.MethodPost, "/api/documents/bulk/status", `{"ids": ["`+order.ID+`", "nope"], "status": "Em Produção"}`)
	require.Equal(t, http.StatusOK, status)
	results := decode[[]dto.BulkResult](t, body)
	require.Len(t, results, 2)
	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK)
	assert.Equal(t, domain.CodeNotFound, results[1].Code)

	status, _ = do(t, app, http.MethodPost, "/api/documents/bulk/delete", `{"ids": ["", " "]}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDocuments_PDF(t *testing.T) {
	app, _ := buildTestApp(t, nil)
	order := createOrder(t, app)

	req := httptest.NewRequest(http.MethodGet, "/api/documents/"+order.ID+"/pdf", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "PED-1001.pdf")
	assert.Equal(t, "%PDF-doc", string(body))
}

// ──────────────────────────────────────────────────────────────────────────────
// Producción y esquema
// ──────────────────────────────────────────────────────────────────────────────

func TestProduction_FilaEImpresion(t *testing.T) {
	app, _ := buildTestApp(t, nil)
	order := createOrder(t, app)
	status, _ := do(t, app, http.MethodPatch, "/api/documents/"+order.ID+"/status", `{"status": "Em Produção"}`)
	require.Equal(t, http.StatusOK, status)

	status, body := do(t, app, http.MethodGet, "/api/production/queue", "")
	require.Equal(t, http.StatusOK, status)
	queue := decode[[]dto.ProductionItemResponse](t, body)
	require.Len(t, queue, 1)
	assert.Equal(t, "PED-1001", queue[0].DocumentNumber)

	status, body = do(t, app, http.MethodPost, "/api/production/pdf", `{"ids": ["`+queue[0].ItemID+`"]}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "%PDF-op", string(body))

	status, _ = do(t, app, http.MethodPost, "/api/production/pdf", `{"ids": []}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSchema_DescripcionDeItem(t *testing.T) {
	app, _ := buildTestApp(t, nil)
	status, body := do(t, app, http.MethodGet, "/api/schemas/item-description", "")
	require.Equal(t, http.StatusOK, status)
	schema := decode[map[string]any](t, body)
	assert.Contains(t, schema, "properties")
}
