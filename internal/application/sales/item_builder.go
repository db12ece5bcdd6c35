package sales

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/pricing"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// PrintCosts costo base de impresión por cor, según el tamaño del empaque.
type PrintCosts struct {
	Small decimal.Decimal
	Large decimal.Decimal
}

// ItemBuilder arma líneas a partir del producto del catálogo y de los parámetros de precio.
type ItemBuilder struct {
	products repository.ProductRepository
	costs    PrintCosts
}

// NewItemBuilder construye el builder.
func NewItemBuilder(products repository.ProductRepository, costs PrintCosts) *ItemBuilder {
	return &ItemBuilder{products: products, costs: costs}
}

// quote resultado intermedio: producto, descripción y desglose de precio.
type quote struct {
	product *entity.Product
	desc    entity.ItemDescription
	price   dto.LinePriceResponse
}

// Price calcula el precio unitario de una línea sin validar la cantidad (calculadora del formulario).
func (b *ItemBuilder) Price(ctx context.Context, in dto.LineItemRequest) (*dto.LinePriceResponse, error) {
	q, err := b.quote(ctx, in)
	if err != nil {
		return nil, err
	}
	return &q.price, nil
}

// Build arma la línea lista para agregarse a un borrador.
func (b *ItemBuilder) Build(ctx context.Context, in dto.LineItemRequest) (*entity.LineItem, error) {
	q, err := b.quote(ctx, in)
	if err != nil {
		return nil, err
	}
	return entity.NewLineItem(q.product, in.Quantity, q.price.UnitPrice, q.desc)
}

func (b *ItemBuilder) quote(ctx context.Context, in dto.LineItemRequest) (*quote, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, domain.NewValidationError("product_id", "produto obrigatório")
	}
	product, err := b.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewValidationError("product_id", "produto não encontrado: "+in.ProductID)
	}

	sides := strings.TrimSpace(in.Sides)
	if sides == "" {
		sides = entity.SidesFront
	}
	if sides != entity.SidesFront && sides != entity.SidesBoth {
		return nil, domain.NewValidationError("sides", "use Só Frente ou Frente e Verso")
	}
	// En orden: con varios negativos se informa siempre el primero.
	for _, f := range []struct {
		name string
		v    decimal.Decimal
	}{
		{"profit_pct", in.ProfitPct},
		{"cost_pct", in.CostPct},
		{"tax_pct", in.TaxPct},
		{"manual_price", in.ManualPrice},
	} {
		if f.v.IsNegative() {
			return nil, domain.NewValidationError(f.name, "não pode ser negativo")
		}
	}

	base := product.Cost
	if in.BaseCost != nil {
		base = *in.BaseCost
	}
	printBase := pricing.PrintBaseCost(product.Width, product.Height, b.costs.Small, b.costs.Large)
	if in.PrintBaseCost != nil {
		printBase = *in.PrintBaseCost
	}
	if base.IsNegative() || printBase.IsNegative() {
		return nil, domain.NewValidationError("base_cost", "custos não podem ser negativos")
	}

	printCost := pricing.PrintCost(printBase, in.ColorNames, sides)
	unit, err := pricing.UnitPrice(pricing.PriceInput{
		BaseCost:    base,
		PrintCost:   printCost,
		ProfitPct:   in.ProfitPct,
		CostPct:     in.CostPct,
		TaxPct:      in.TaxPct,
		ManualPrice: in.ManualPrice,
	})
	if err != nil {
		return nil, err
	}

	desc := BuildItemDescription(product, in.ColorNames, sides)
	return &quote{
		product: product,
		desc:    desc,
		price: dto.LinePriceResponse{
			ProductSKU:    product.SKU,
			BaseCost:      base,
			PrintBaseCost: printBase,
			ColorCount:    desc.ColorCount,
			PrintCost:     printCost,
			UnitPrice:     unit,
			Subtotal:      in.Quantity.Mul(unit),
		},
	}, nil
}

// BuildItemDescription foto de los atributos del producto y de la impresión.
func BuildItemDescription(p *entity.Product, colorNames, sides string) entity.ItemDescription {
	return entity.ItemDescription{
		Pigment:    p.Pigment,
		Material:   p.Material,
		Model:      p.Model,
		Measures:   p.Measures,
		ColorCount: pricing.CountColors(colorNames),
		ColorNames: strings.TrimSpace(colorNames),
		Sides:      sides,
	}
}
