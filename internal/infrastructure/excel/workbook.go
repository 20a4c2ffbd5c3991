// Package excel exporta listados del panel a libros xlsx usando excelize.
package excel

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Combustible-api/internal/application/report"
	"github.com/jhoicas/Combustible-api/internal/domain/entity"
)

var _ report.WorkbookGenerator = (*WorkbookGenerator)(nil)

// WorkbookGenerator implementa report.WorkbookGenerator con excelize.
type WorkbookGenerator struct{}

// NewWorkbookGenerator construye el generador.
func NewWorkbookGenerator() *WorkbookGenerator { return &WorkbookGenerator{} }

// ConsumptionSummaryWorkbook arma el libro de resúmenes de consumo.
// units mapea unit_id -> unidad para mostrar código y nombre.
func (g *WorkbookGenerator) ConsumptionSummaryWorkbook(summaries []*entity.UnitConsumptionSummary, units map[string]*entity.Unit) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Consumo"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Fecha", "Unidad", "Nombre", "Despachos", "Combustible (L)", "Horas", "Km", "Efic. promedio", "Efic. mínima", "Efic. máxima"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("excel: encabezado: %w", err)
		}
	}

	for i, s := range summaries {
		rowNum := i + 2
		code, name := s.UnitID, ""
		if u, ok := units[s.UnitID]; ok {
			code, name = u.Code, u.Name
		}
		values := []any{
			s.Date.Format("2006-01-02"),
			code,
			name,
			s.TransactionCount,
			decimalCell(&s.TotalFuel),
			decimalCell(&s.TotalHours),
			decimalCell(&s.TotalKm),
			optDecimalCell(s.AvgEfficiency),
			optDecimalCell(s.MinEfficiency),
			optDecimalCell(s.MaxEfficiency),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, rowNum)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("excel: fila %d: %w", rowNum, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// StockCheckWorkbook arma el libro de chequeos físicos de stock.
func (g *WorkbookGenerator) StockCheckWorkbook(checks []*entity.PhysicalStockCheck) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Chequeos"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Fecha", "Contenedor", "ID", "Nivel sistema", "Nivel físico", "Varianza", "Varianza %", "Estado", "Ajustado", "Método", "Verificado por"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("excel: encabezado: %w", err)
		}
	}

	for i, c := range checks {
		rowNum := i + 2
		adjusted := "No"
		if c.SystemAdjusted {
			adjusted = "Sí"
		}
		values := []any{
			c.CheckedAt.Format("2006-01-02 15:04"),
			string(c.Container.Kind),
			c.Container.ID,
			decimalCell(&c.SystemLevel),
			decimalCell(&c.PhysicalLevel),
			decimalCell(&c.Variance),
			decimalCell(&c.VariancePercentage),
			c.VarianceStatus,
			adjusted,
			c.Method,
			c.CheckedBy,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, rowNum)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("excel: fila %d: %w", rowNum, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

// decimalCell convierte a float64 para que excelize escriba una celda numérica.
func decimalCell(d *decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

func optDecimalCell(d *decimal.Decimal) any {
	if d == nil {
		return ""
	}
	return decimalCell(d)
}
