// Package pdf implementa el comprobante gráfico de una orden de módulos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + NIT  │  N° Orden + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPRESA: Dirección / Tel / Email                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Módulo | Tipo | Precio                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: TOTAL PAGADO                                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: vigencia de la suscripción + leyenda                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	appordering "github.com/jhoicas/Suscripciones-api/internal/application/ordering"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// esCO formatea montos al estilo colombiano (puntos de miles).
var esCO = message.NewPrinter(language.MustParse("es-CO"))

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ordering.OrderPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateOrderPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateOrderPDF(
	_ context.Context,
	order *entity.Order,
	company *entity.Company,
	details []appordering.OrderDetailForPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de Compra de Módulos", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(companyRow(company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de módulos
	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(details) {
		m.AddRows(r)
	}

	// Total
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(order))

	// Footer
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows()...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: Razón social + NIT (izq) y N° Orden + Fecha (der).
func headerRow(order *entity.Order, company *entity.Company) core.Row {
	fecha := order.SaleDate.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+company.NIT, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE COMPRA DE MÓDULOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Orden "+shortID(order.ID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// companyRow: datos de contacto de la empresa compradora.
func companyRow(company *entity.Company) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DE LA EMPRESA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.Phone, "—"),
				nonEmpty(company.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de módulos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Módulo", 6, align.Left),
		h("Tipo", 3, align.Center),
		h("Precio", 3, align.Right),
	)
}

// tableDetailRows: una fila por módulo adquirido, con el precio instantánea.
func tableDetailRows(details []appordering.OrderDetailForPDF) []core.Row {
	result := make([]core.Row, 0, len(details))
	for _, d := range details {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(
				d.ModuleName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				d.ModuleType,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatMoney(d.Price),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: total pagado alineado a la derecha.
func totalRow(order *entity.Order) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL PAGADO:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New("$"+formatMoney(order.TotalAmount), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// footerRows: vigencia + leyenda.
func footerRows() []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("VIGENCIA DE LA SUSCRIPCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(6).Add(col.New(12).Add(
			text.New(
				"Los módulos de esta orden quedan habilitados por un (1) mes contado "+
					"desde la fecha de compra, bajo una misma suscripción.",
				props.Text{Size: 8, Color: colorGray, Top: 1},
			),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New(
				"Este comprobante es el soporte de la compra de módulos de la plataforma. "+
					"Consérvelo para cualquier reclamación.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID recorta un UUID a su primer bloque para mostrarlo como número corto.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatMoney formatea el monto con separadores de miles al estilo es-CO.
// Ej: 25000 → "25.000", 1000000 → "1.000.000"
func formatMoney(d decimal.Decimal) string {
	f, _ := d.Float64()
	return esCO.Sprint(number.Decimal(f, number.MaxFractionDigits(0)))
}
