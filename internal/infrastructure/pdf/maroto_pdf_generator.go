// Package pdf imprime pedidos, orçamentos y ordens de produção con Maroto v2.
//
// Layout del documento (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + CNPJ      │  PEDIDO/ORÇAMENTO N° + Data  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nome fantasia / razão social / CNPJ / endereço    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Qtde | Produto | Preço milheiro | Subtotal         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAIS: Itens / Frete / TOTAL                              │
//	│  PAGAMENTO: forma, prazo, entrega, parcelas                 │
//	└─────────────────────────────────────────────────────────────┘
//
// Los montos se imprimen tal como están guardados: el total no se recalcula.
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/application/sales"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/pkg/brl"
	"github.com/jhoicas/Pedidos-api/pkg/config"
	"github.com/jhoicas/Pedidos-api/pkg/taxid"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 94, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const dateLayout = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

var (
	_ sales.DocumentPDFGenerator   = (*MarotoPDFGenerator)(nil)
	_ sales.ProductionPDFGenerator = (*MarotoPDFGenerator)(nil)
)

// MarotoPDFGenerator implementa los dos puertos de impresión de sales.
type MarotoPDFGenerator struct {
	company config.CompanyConfig
}

// NewMarotoPDFGenerator construye el generador con los datos del emisor.
func NewMarotoPDFGenerator(company config.CompanyConfig) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company}
}

// GenerateDocument imprime un pedido o presupuesto a partir de la foto ya validada.
func (g *MarotoPDFGenerator) GenerateDocument(snap *sales.DocumentSnapshot) ([]byte, error) {
	d := snap.Document
	m := maroto.New(newConfig(documentTitle(d), g.company.Name))

	m.AddRows(g.headerRow(d))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(snap.Client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(snap.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(d, snap.Items))
	m.AddRows(paymentRows(d, snap.Installments)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar %s: %w", d.Number, err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: emisor (izq) y tipo + número + fecha (der).
func (g *MarotoPDFGenerator) headerRow(d *entity.Document) core.Row {
	company := nonEmpty(g.company.Name, "-")
	contact := strings.Join(nonBlank(g.company.Address, g.company.Phone, g.company.Email), "   |   ")

	return row.New(20).Add(
		col.New(7).Add(
			text.New(company, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("CNPJ: "+nonEmpty(taxid.Format(g.company.TaxID), "-"), props.Text{Size: 8, Top: 8, Color: colorGray}),
			text.New(contact, props.Text{Size: 7, Top: 13, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(documentTitle(d), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(d.Number, props.Text{Style: fontstyle.Bold, Size: 13, Align: align.Right, Top: 6}),
			text.New("Emissão: "+d.IssueDate.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clientRow: datos del cliente. Sin razón social se repite el nome fantasia.
func clientRow(c *entity.Client) core.Row {
	doc := taxid.Format(c.TaxID)
	ident := strings.Join(nonBlank(
		prefixed("CNPJ/CPF: ", doc),
		prefixed("IE: ", c.StateRegistration),
	), "   |   ")
	return row.New(22).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(c.TradeName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New(nonEmpty(c.LegalName, c.TradeName), props.Text{Size: 8, Top: 10}),
			text.New(ident, props.Text{Size: 8, Top: 14, Color: colorGray}),
			text.New(addressLine(c), props.Text{Size: 8, Top: 18, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Qtde (mil)", 2, align.Center),
		h("Produto", 6, align.Left),
		h("Preço milheiro", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

// itemRows: una fila por línea, con el SKU debajo de la descripción.
func itemRows(items []*entity.LineItem) []core.Row {
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		out = append(out, row.New(11).Add(
			col.New(2).Add(text.New(formatQuantity(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(
				text.New(describeItem(it.Description), props.Text{Size: 8, Top: 1, Left: 1}),
				text.New(nonEmpty(it.ProductSKU, "-"), props.Text{Size: 6.5, Top: 6, Left: 1, Color: colorGray}),
			),
			col.New(2).Add(text.New(brl.Format(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(brl.Format(it.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

// totalsRow: subtotal de líneas, frete y total guardado.
func totalsRow(d *entity.Document, items []*entity.LineItem) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	itemsTotal := sales.ComputeTotal(items, decimal.Zero)
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Itens:", 1),
			label("Frete:", 6),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Right: 2, Top: 12}),
		),
		col.New(3).Add(
			value(brl.Format(itemsTotal), 1),
			value(brl.Format(d.ShippingCost), 6),
			text.New(brl.Format(d.Total), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Right: 1, Top: 12}),
		),
	)
}

// paymentRows: condiciones y, si hay, el cronograma de parcelas.
func paymentRows(d *entity.Document, installments []*entity.Installment) []core.Row {
	conditions := []string{
		"Forma de pagamento: " + nonEmpty(d.PaymentMethod, "-"),
		"Prazo: " + nonEmpty(d.PaymentTerm, "-"),
		fmt.Sprintf("Entrega: %d dias (%s)", d.DeliveryDays, d.DueDate().Format(dateLayout)),
	}
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("CONDIÇÕES", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
		row.New(6).Add(col.New(12).Add(
			text.New(strings.Join(conditions, "   |   "), props.Text{Size: 8, Top: 1}),
		)),
	}
	if d.InvoiceNumber != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("NF-e: "+d.InvoiceNumber, props.Text{Size: 8, Top: 1}),
		)))
	}
	if len(installments) == 0 {
		return rows
	}

	rows = append(rows, row.New(6).Add(col.New(12).Add(
		text.New("PARCELAS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	)))
	for _, i := range installments {
		rows = append(rows, row.New(5).Add(
			col.New(2).Add(text.New(fmt.Sprintf("%d/%d", i.Number, len(installments)), props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(i.DueDate.Format(dateLayout), props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(brl.Format(i.Amount), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(4).Add(text.New(string(i.Status), props.Text{Size: 8, Top: 1, Left: 4, Color: colorGray})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func documentTitle(d *entity.Document) string {
	if d.IsQuote() {
		return "ORÇAMENTO"
	}
	return "PEDIDO"
}

// describeItem "SACOLA BRANCO PEBD 30 x 40 x 0.0150 - 2 cor(es): azul, verde - Frente e Verso".
func describeItem(desc entity.ItemDescription) string {
	parts := nonBlank(desc.Model, desc.Pigment, desc.Material, desc.Measures)
	s := strings.Join(parts, " ")
	if desc.ColorCount > 0 {
		s += fmt.Sprintf(" - %d cor(es)", desc.ColorCount)
		if desc.ColorNames != "" {
			s += ": " + desc.ColorNames
		}
	}
	if desc.Sides != "" {
		s += " - " + desc.Sides
	}
	return s
}

// formatQuantity milheiros con los decimales necesarios (hasta 3): 2 -> "2", 1.5 -> "1,5".
func formatQuantity(q decimal.Decimal) string {
	q = q.Round(3)
	places := 3
	for p := 0; p < 3; p++ {
		if q.Equal(q.Truncate(int32(p))) {
			places = p
			break
		}
	}
	return brl.Number(q, places)
}

func addressLine(c *entity.Client) string {
	street := strings.Join(nonBlank(c.Street, c.Complement), ", ")
	city := c.City
	if c.State != "" {
		city = strings.Join(nonBlank(c.City, c.State), "/")
	}
	return strings.Join(nonBlank(street, c.District, city, prefixed("CEP ", c.ZipCode)), " - ")
}

func prefixed(prefix, v string) string {
	if v == "" {
		return ""
	}
	return prefix + v
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func nonBlank(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
