// Package pdf implementa la representación imprimible del reporte de varianza
// de stock usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + período  │  Estado + fecha de generación  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: totales, varianza por tipo, conteos por estado     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Contenedor | Sistema | Físico | Var | Estado │
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

	"github.com/jhoicas/Combustible-api/internal/application/report"
	"github.com/jhoicas/Combustible-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorCritical = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ report.StockCheckPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa report.StockCheckPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateVarianceReportPDF genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateVarianceReportPDF(
	_ context.Context,
	rep *entity.VarianceReport,
	checks []*entity.PhysicalStockCheck,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Varianza de Stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(rep)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, c := range checks {
		m.AddRows(checkRow(c))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + período (izq) y estado + fecha de generación (der).
func headerRow(rep *entity.VarianceReport) core.Row {
	periodo := fmt.Sprintf("%s: %s a %s",
		rep.Period,
		rep.PeriodStart.Format("02/01/2006"),
		rep.PeriodEnd.AddDate(0, 0, -1).Format("02/01/2006"),
	)
	return row.New(18).Add(
		col.New(7).Add(
			text.New("REPORTE DE VARIANZA DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(periodo, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Estado: "+rep.Status, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New("Generado: "+rep.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRows: totales del período y conteos por clasificación.
func summaryRows(rep *entity.VarianceReport) []core.Row {
	return []core.Row{
		row.New(8).Add(
			col.New(3).Add(text.New(fmt.Sprintf("Chequeos: %d", rep.TotalChecks), props.Text{Size: 9, Top: 1})),
			col.New(3).Add(text.New("Varianza total: "+rep.TotalVariance.StringFixed(2)+" L", props.Text{Size: 9, Top: 1})),
			col.New(3).Add(text.New("Tanques: "+rep.StorageVariance.StringFixed(2)+" L", props.Text{Size: 9, Top: 1})),
			col.New(3).Add(text.New("Camiones: "+rep.TruckVariance.StringFixed(2)+" L", props.Text{Size: 9, Top: 1})),
		),
		row.New(8).Add(
			col.New(3).Add(text.New(fmt.Sprintf("Normal: %d", rep.NormalCount), props.Text{Size: 9, Top: 1})),
			col.New(3).Add(text.New(fmt.Sprintf("Menor: %d", rep.MinorCount), props.Text{Size: 9, Top: 1})),
			col.New(3).Add(text.New(fmt.Sprintf("Advertencia: %d", rep.WarningCount), props.Text{Size: 9, Top: 1})),
			col.New(3).Add(text.New(fmt.Sprintf("Crítico: %d", rep.CriticalCount), props.Text{
				Size: 9, Top: 1, Style: fontstyle.Bold, Color: criticalColor(rep.CriticalCount > 0),
			})),
		),
	}
}

func tableHeaderRow() core.Row {
	header := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}))
	}
	return row.New(7).Add(
		header("Fecha", 2),
		header("Contenedor", 3),
		header("Sistema (L)", 2),
		header("Físico (L)", 2),
		header("Varianza", 2),
		header("Estado", 1),
	)
}

func checkRow(c *entity.PhysicalStockCheck) core.Row {
	cell := func(s string, size int, color *props.Color) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Top: 1, Color: color}))
	}
	statusColor := colorGray
	if c.VarianceStatus == entity.VarianceStatusCritical {
		statusColor = colorCritical
	}
	variance := fmt.Sprintf("%s (%s%%)", c.Variance.StringFixed(2), c.VariancePercentage.StringFixed(2))
	return row.New(6).Add(
		cell(c.CheckedAt.Format("02/01 15:04"), 2, nil),
		cell(fmt.Sprintf("%s %s", c.Container.Kind, c.Container.ID), 3, nil),
		cell(c.SystemLevel.StringFixed(2), 2, nil),
		cell(c.PhysicalLevel.StringFixed(2), 2, nil),
		cell(variance, 2, nil),
		cell(c.VarianceStatus, 1, statusColor),
	)
}

func criticalColor(critical bool) *props.Color {
	if critical {
		return colorCritical
	}
	return colorGray
}
