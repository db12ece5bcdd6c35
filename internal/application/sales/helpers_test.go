package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/apptest"
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/receivables"
	"github.com/jhoicas/Pedidos-api/internal/application/sales"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var today = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return today }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

type pdfStub struct {
	docs   []*sales.DocumentSnapshot
	sheets [][]repository.ProductionItem
}

func (p *pdfStub) GenerateDocument(snap *sales.DocumentSnapshot) ([]byte, error) {
	p.docs = append(p.docs, snap)
	return []byte("%PDF-doc"), nil
}

func (p *pdfStub) GenerateProductionSheets(items []repository.ProductionItem) ([]byte, error) {
	p.sheets = append(p.sheets, items)
	return []byte("%PDF-op"), nil
}

type fixture struct {
	store *apptest.Store
	pdf   *pdfStub
	docs  *sales.DocumentUseCase
	life  *sales.LifecycleUseCase
	prod  *sales.ProductionUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := apptest.NewStore()
	store.PutClient(&entity.Client{ID: "cli-1", TradeName: "Padaria Central", TaxID: "11222333000181"})
	store.PutProduct(&entity.Product{
		ID: "prod-1", SKU: "BRANCO-PEBD-30X40X0.0150-SACOLA",
		Width: 30, Height: 40, Thickness: dec("0.015"),
		Pigment: "BRANCO", Material: "PEBD", Model: "SACOLA", Measures: "30 x 40 x 0.0150",
		Weight: dec("18"), PricePerKg: dec("12"), Cost: dec("216"),
	})
	store.PutProduct(&entity.Product{
		ID: "prod-2", SKU: "AZUL-PEAD-20X30X0.0100-FRUTEIRA",
		Width: 20, Height: 30, Thickness: dec("0.01"),
		Pigment: "AZUL", Material: "PEAD", Model: "FRUTEIRA", Measures: "20 x 30 x 0.0100",
		Weight: dec("6"), PricePerKg: dec("15"), Cost: dec("90"),
	})

	pdf := &pdfStub{}
	builder := sales.NewItemBuilder(store.Products(), sales.PrintCosts{Small: dec("170"), Large: dec("230")})
	recv := receivables.NewUseCase(store, store.Documents(), store.Installments(), zerolog.Nop(), receivables.WithClock(clock))
	return &fixture{
		store: store,
		pdf:   pdf,
		docs:  sales.NewDocumentUseCase(store, store.Documents(), store.Clients(), store.Installments(), builder, pdf, zerolog.Nop(), sales.WithClock(clock)),
		life:  sales.NewLifecycleUseCase(store, store.Clients(), recv, zerolog.Nop(), sales.WithClock(clock)),
		prod:  sales.NewProductionUseCase(store.Documents(), pdf),
	}
}

// manualItem línea con precio manual (sin calculadora).
func manualItem(productID, qty, price string) dto.LineItemRequest {
	return dto.LineItemRequest{ProductID: productID, Quantity: dec(qty), ColorNames: "azul", ManualPrice: dec(price)}
}

// request documento de un ítem de 2 milheiros a 1000 + frete 50 = 2050.
func request(t entity.DocumentType, term string) dto.DocumentRequest {
	return dto.DocumentRequest{
		Type:          string(t),
		ClientID:      "cli-1",
		IssueDate:     "2024-02-01",
		ShippingCost:  dec("50"),
		PaymentMethod: entity.PaymentBoleto,
		PaymentTerm:   term,
		Items:         []dto.LineItemRequest{manualItem("prod-1", "2", "1000")},
	}
}

// issue emite un documento y falla el test si no se puede.
func (f *fixture) issue(t *testing.T, req dto.DocumentRequest) *dto.DocumentResponse {
	t.Helper()
	d, err := f.docs.BuildDraft(context.Background(), req)
	require.NoError(t, err)
	out, err := f.docs.Issue(context.Background(), d)
	require.NoError(t, err)
	return out
}
