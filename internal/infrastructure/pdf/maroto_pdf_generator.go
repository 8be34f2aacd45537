// Package pdf implementa la generación del ticket de venta con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del local  │  N° Ticket + Fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LOCAL: Dirección / Teléfono                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL + método de pago                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tiendafacil/ventas-api/internal/application/sales"
	"github.com/tiendafacil/ventas-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ sales.ReceiptPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa sales.ReceiptPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateReceiptPDF genera el ticket de la venta y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReceiptPDF(
	_ context.Context,
	sale *entity.Sale,
	local *entity.Local,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ticket de Venta", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sale, local))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if local != nil {
		m.AddRows(localRow(local))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(sale.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del local (izq) y N° de ticket + fecha (der).
func headerRow(sale *entity.Sale, local *entity.Local) core.Row {
	localName := "Tienda"
	if local != nil {
		localName = local.Name
	}
	fecha := sale.Date.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(localName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("TICKET DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(sale.ID, props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// localRow: dirección y teléfono del local.
func localRow(local *entity.Local) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s",
				nonEmpty(local.Address, "—"),
				nonEmpty(local.Phone, "—"),
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

// tableHeaderRow: encabezado de la tabla de líneas.
func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	return row.New(7).Add(
		col.New(1).Add(text.New("Cant", header)),
		col.New(6).Add(text.New("Producto", header)),
		col.New(2).Add(text.New("P. Unit", mergeAlign(header, align.Right))),
		col.New(3).Add(text.New("Subtotal", mergeAlign(header, align.Right))),
	)
}

// tableItemRows: una fila por línea de venta.
func tableItemRows(items []entity.SaleItem) []core.Row {
	cell := props.Text{Size: 8, Top: 1}
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(strconv.Itoa(it.Quantity), cell)),
			col.New(6).Add(text.New(it.ProductName, cell)),
			col.New(2).Add(text.New("$ "+it.UnitPrice.StringFixed(2), mergeAlign(cell, align.Right))),
			col.New(3).Add(text.New("$ "+it.Subtotal.StringFixed(2), mergeAlign(cell, align.Right))),
		))
	}
	return rows
}

// totalRow: total a pagar y método de pago.
func totalRow(sale *entity.Sale) core.Row {
	return row.New(12).Add(
		col.New(7).Add(
			text.New("Método de pago: "+paymentLabel(sale.PaymentMethod), props.Text{
				Size: 8, Top: 3, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TOTAL: $ "+sale.Total.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 2,
			}),
		),
	)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func paymentLabel(method string) string {
	switch method {
	case entity.PaymentCash:
		return "Efectivo"
	case entity.PaymentCard:
		return "Tarjeta"
	default:
		return method
	}
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func mergeAlign(t props.Text, a align.Type) props.Text {
	t.Align = a
	return t
}
