package report

import (
	"context"

	"github.com/jhoicas/Combustible-api/internal/domain/entity"
)

// StockCheckPDFGenerator puerto para la representación imprimible de un
// reporte de varianza con sus chequeos (implementado en infrastructure/pdf).
type StockCheckPDFGenerator interface {
	GenerateVarianceReportPDF(ctx context.Context, report *entity.VarianceReport, checks []*entity.PhysicalStockCheck) ([]byte, error)
}

// WorkbookGenerator puerto para exportar listados a xlsx
// (implementado en infrastructure/excel).
type WorkbookGenerator interface {
	ConsumptionSummaryWorkbook(summaries []*entity.UnitConsumptionSummary, units map[string]*entity.Unit) ([]byte, error)
	StockCheckWorkbook(checks []*entity.PhysicalStockCheck) ([]byte, error)
}
