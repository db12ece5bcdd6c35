package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	marotoentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// GenerateProductionSheets imprime una ordem de produção por página, una por línea seleccionada.
func (g *MarotoPDFGenerator) GenerateProductionSheets(items []repository.ProductionItem) ([]byte, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("pdf: nenhum item para a ordem de produção")
	}
	m := maroto.New(newConfig("Ordem de Produção", g.company.Name))
	for _, it := range items {
		m.AddPages(page.New().Add(sheetRows(it)...))
	}
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ordens de produção: %w", err)
	}
	return doc.GetBytes(), nil
}

// sheetRows: encabezado con pedido y cliente, ficha técnica del producto y campos para el operador.
func sheetRows(p repository.ProductionItem) []core.Row {
	it := p.Item
	desc := it.Description
	dueDate := p.IssueDate.AddDate(0, 0, p.DeliveryDays)

	rows := []core.Row{
		row.New(16).Add(
			col.New(7).Add(
				text.New("ORDEM DE PRODUÇÃO", props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
				text.New(fmt.Sprintf("Item %d", it.Position), props.Text{Size: 8, Top: 9, Color: colorGray}),
			),
			col.New(5).Add(
				text.New(p.DocumentNumber, props.Text{Style: fontstyle.Bold, Size: 13, Align: align.Right, Top: 1}),
				text.New("Entrega: "+dueDate.Format(dateLayout), props.Text{
					Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 9, Color: colorPrimary,
				}),
			),
		),
		line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}),
		field("Cliente", p.ClientName),
		field("Emissão", p.IssueDate.Format(dateLayout)),
		line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}),
		field("Produto (SKU)", nonEmpty(it.ProductSKU, "-")),
		field("Modelo", desc.Model),
		field("Medidas", desc.Measures),
		field("Material", desc.Material),
		field("Pigmento", desc.Pigment),
		field("Quantidade", formatQuantity(it.Quantity)+" milheiro(s)"),
		line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}),
		field("Cores", fmt.Sprintf("%d", desc.ColorCount)),
		field("Nomes das cores", nonEmpty(desc.ColorNames, "-")),
		field("Impressão", nonEmpty(desc.Sides, "-")),
		line.NewRow(6),
	}
	for _, label := range []string{"Operador", "Início", "Término", "Observações"} {
		rows = append(rows, blankField(label))
	}
	return rows
}

func field(label, value string) core.Row {
	return row.New(8).Add(
		col.New(4).Add(text.New(label+":", props.Text{Style: fontstyle.Bold, Size: 10, Top: 1})),
		col.New(8).Add(text.New(value, props.Text{Size: 10, Top: 1})),
	)
}

func blankField(label string) core.Row {
	return row.New(12).Add(
		col.New(3).Add(text.New(label+":", props.Text{Style: fontstyle.Bold, Size: 9, Top: 5})),
		col.New(9).Add(line.New(props.Line{Color: colorGray, Thickness: 0.2, OffsetPercent: 90})),
	)
}

func newConfig(title, author string) *marotoentity.Config {
	return config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(nonEmpty(author, "pedidos-api"), true).
		Build()
}
