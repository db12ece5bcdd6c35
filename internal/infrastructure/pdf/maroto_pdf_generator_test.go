package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/sales"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/pkg/config"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleItem() *entity.LineItem {
	return &entity.LineItem{
		ID: "it-1", DocumentID: "doc-1", Position: 1, ProductSKU: "BRANCO-PEBD-30X40X0.0150-SACOLA",
		Description: entity.ItemDescription{
			Pigment: "BRANCO", Material: "PEBD", Model: "SACOLA", Measures: "30 x 40 x 0.0150",
			ColorCount: 2, ColorNames: "azul, verde", Sides: entity.SidesBoth,
		},
		Quantity: dec("2"), UnitPrice: dec("1000"), Subtotal: dec("2000"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Textos
// ──────────────────────────────────────────────────────────────────────────────

func TestDescribeItem(t *testing.T) {
	assert.Equal(t, "SACOLA BRANCO PEBD 30 x 40 x 0.0150 - 2 cor(es): azul, verde - Frente e Verso",
		describeItem(sampleItem().Description))
	assert.Equal(t, "FRUTEIRA AZUL", describeItem(entity.ItemDescription{Model: "FRUTEIRA", Pigment: "AZUL"}))
}

func TestFormatQuantity_DecimalesNecesarios(t *testing.T) {
	assert.Equal(t, "2", formatQuantity(dec("2.000")))
	assert.Equal(t, "1,5", formatQuantity(dec("1.5")))
	assert.Equal(t, "0,125", formatQuantity(dec("0.125")))
}

func TestAddressLine(t *testing.T) {
	c := &entity.Client{Street: "Rua A, 10", District: "Centro", City: "Campinas", State: "SP", ZipCode: "13010-000"}
	assert.Equal(t, "Rua A, 10 - Centro - Campinas/SP - CEP 13010-000", addressLine(c))
	assert.Equal(t, "", addressLine(&entity.Client{}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Generación
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateDocument_DevuelvePDF(t *testing.T) {
	g := NewMarotoPDFGenerator(config.CompanyConfig{Name: "Embalagens Exemplo", TaxID: "11222333000181"})
	issue := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	snap := &sales.DocumentSnapshot{
		Document: &entity.Document{
			ID: "doc-1", Number: "PED-1001", Type: entity.DocumentTypeOrder, IssueDate: issue,
			ShippingCost: dec("50"), Total: dec("2050"), Status: entity.StatusInvoiced,
			PaymentMethod: entity.PaymentBoleto, PaymentTerm: "30 dias", DeliveryDays: 40,
		},
		Items:  []*entity.LineItem{sampleItem()},
		Client: &entity.Client{ID: "cli-1", TradeName: "Padaria Central", TaxID: "11222333000181"},
		Installments: []*entity.Installment{
			{ID: "i-1", DocumentID: "doc-1", Number: 1, Amount: dec("2050"), DueDate: issue.AddDate(0, 0, 30), Status: entity.InstallmentOpen},
		},
	}

	out, err := g.GenerateDocument(snap)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateProductionSheets(t *testing.T) {
	g := NewMarotoPDFGenerator(config.CompanyConfig{})

	_, err := g.GenerateProductionSheets(nil)
	require.Error(t, err)

	out, err := g.GenerateProductionSheets([]repository.ProductionItem{{
		Item: sampleItem(), DocumentID: "doc-1", DocumentNumber: "PED-1001",
		IssueDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), DeliveryDays: 40, ClientName: "Padaria Central",
	}})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
