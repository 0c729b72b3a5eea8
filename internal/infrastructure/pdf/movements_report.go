// Package pdf genera el reporte imprimible del historial de movimientos de una tienda.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + ID          │  Rango + fecha de emisión    │
//	│  TABLA: Fecha | Producto | Tipo | Cantidad                   │
//	│  TOTALES: entradas / ventas / bajas / neto                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
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

	"github.com/jhoicas/inventario-tiendas/internal/application/inventory"
	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var _ inventory.MovementReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa inventory.MovementReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	now func() time.Time
}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator {
	return &MarotoReportGenerator{now: time.Now}
}

// GenerateMovementsPDF genera el PDF y devuelve sus bytes. movements ya viene ordenado.
func (g *MarotoReportGenerator) GenerateMovementsPDF(
	_ context.Context,
	store *entity.Store,
	movements []*entity.StockMovement,
	from, to *time.Time,
) ([]byte, error) {
	if store == nil {
		return nil, fmt.Errorf("pdf: tienda requerida")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Movimientos de inventario", true).
		WithAuthor(store.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(store, from, to, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(movements) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin movimientos en el período.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	m.AddRows(tableDetailRows(movements)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(summarize(movements)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(store *entity.Store, from, to *time.Time, issued time.Time) core.Row {
	period := "Historial completo"
	if from != nil && to != nil {
		period = from.UTC().Format("02/01/2006") + " - " + to.UTC().Format("02/01/2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(store.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Tienda: "+store.ID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("MOVIMIENTOS DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New("Emitido: "+issued.UTC().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha (UTC)", 3, align.Left),
		h("Producto", 5, align.Left),
		h("Tipo", 2, align.Center),
		h("Cantidad", 2, align.Right),
	)
}

func tableDetailRows(movements []*entity.StockMovement) []core.Row {
	result := make([]core.Row, 0, len(movements))
	for _, mv := range movements {
		qtyColor := colorGray
		if mv.Type.Reduces() {
			qtyColor = colorAlert
		}
		result = append(result, row.New(6).Add(
			col.New(3).Add(text.New(
				mv.Timestamp.UTC().Format("2006-01-02 15:04:05"),
				props.Text{Size: 8, Top: 1, Left: 1},
			)),
			col.New(5).Add(text.New(
				nonEmpty(mv.ProductName, mv.ProductID),
				props.Text{Size: 8, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				typeLabel(mv.Type),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				strconv.FormatInt(mv.Signed(), 10),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: qtyColor},
			)),
		))
	}
	return result
}

type movementTotals struct {
	stockIn, sales, removals int64
}

func (t movementTotals) net() int64 { return t.stockIn - t.sales - t.removals }

func summarize(movements []*entity.StockMovement) movementTotals {
	var t movementTotals
	for _, mv := range movements {
		switch mv.Type {
		case entity.MovementTypeStockIn:
			t.stockIn += mv.Quantity
		case entity.MovementTypeSale:
			t.sales += mv.Quantity
		case entity.MovementTypeManualRemoval:
			t.removals += mv.Quantity
		}
	}
	return t
}

func totalsRow(t movementTotals) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(n int64) core.Component {
		return text.New(strconv.FormatInt(n, 10), props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(26).Add(
		col.New(6),
		col.New(3).Add(
			label("Entradas:"),
			label("Ventas:"),
			label("Bajas:"),
			label("Neto:"),
		),
		col.New(3).Add(
			value(t.stockIn),
			value(t.sales),
			value(t.removals),
			value(t.net()),
		),
	)
}

func typeLabel(t entity.MovementType) string {
	switch t {
	case entity.MovementTypeStockIn:
		return "Entrada"
	case entity.MovementTypeSale:
		return "Venta"
	case entity.MovementTypeManualRemoval:
		return "Baja"
	}
	return string(t)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
