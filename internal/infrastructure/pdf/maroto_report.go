// Package pdf implementa el reporte imprimible de stock y valuación usando
// Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Fecha de corte                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Descripción | Costo | Stock | Valuación     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: Valuación total del inventario                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/reports"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reports.ValuationPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa reports.ValuationPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateValuationPDF genera el reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateValuationPDF(
	_ context.Context,
	products []dto.ProductFullResponse,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Valuación de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	total := decimal.Zero
	for _, p := range products {
		m.AddRows(productRow(p))
		total = total.Add(p.Valuation)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título del reporte + fecha de corte.
func headerRow() core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(8).Add(
			text.New("REPORTE DE VALUACIÓN DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Corte: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Costo Unit.", 2, align.Right),
		h("Stock", 1, align.Right),
		h("Valuación", 3, align.Right),
	)
}

// productRow: una fila por producto proyectado.
func productRow(p dto.ProductFullResponse) core.Row {
	cost := "—"
	if p.UnitCost != nil {
		cost = "$" + p.UnitCost.StringFixed(2)
	}
	return row.New(6).Add(
		col.New(2).Add(text.New(p.IDCode, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(4).Add(text.New(p.Description, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(2).Add(text.New(cost, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(1).Add(text.New(fmt.Sprintf("%d", p.Stock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(3).Add(text.New("$"+p.Valuation.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

// totalRow: valuación total del inventario.
func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(9).Add(text.New("VALUACIÓN TOTAL", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New("$"+total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Top: 2,
			Color: colorPrimary,
		})),
	)
}
