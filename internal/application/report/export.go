package report

import (
	"context"
	"time"

	"github.com/jhoicas/Combustible-api/internal/domain"
	"github.com/jhoicas/Combustible-api/internal/domain/entity"
	"github.com/jhoicas/Combustible-api/internal/domain/repository"
)

// ExportUseCase genera los archivos exportables del panel: PDF del reporte
// de varianza y xlsx de resúmenes de consumo / chequeos físicos.
type ExportUseCase struct {
	reportUC    *VarianceReportUseCase
	summaryRepo repository.ConsumptionSummaryRepository
	unitRepo    repository.UnitRepository
	checkRepo   repository.StockCheckRepository
	pdf         StockCheckPDFGenerator
	workbook    WorkbookGenerator
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	reportUC *VarianceReportUseCase,
	summaryRepo repository.ConsumptionSummaryRepository,
	unitRepo repository.UnitRepository,
	checkRepo repository.StockCheckRepository,
	pdf StockCheckPDFGenerator,
	workbook WorkbookGenerator,
) *ExportUseCase {
	return &ExportUseCase{
		reportUC:    reportUC,
		summaryRepo: summaryRepo,
		unitRepo:    unitRepo,
		checkRepo:   checkRepo,
		pdf:         pdf,
		workbook:    workbook,
	}
}

// VarianceReportPDF genera el PDF de un reporte de varianza.
func (uc *ExportUseCase) VarianceReportPDF(ctx context.Context, reportID string) ([]byte, error) {
	report, err := uc.reportUC.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	checks, err := uc.reportUC.ChecksOf(ctx, report)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateVarianceReportPDF(ctx, report, checks)
}

// ConsumptionSummaryXLSX exporta los resúmenes de consumo de un rango de
// fechas como libro xlsx.
func (uc *ExportUseCase) ConsumptionSummaryXLSX(ctx context.Context, from, to time.Time) ([]byte, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	summaries, err := uc.summaryRepo.ListBetween(from, to)
	if err != nil {
		return nil, err
	}
	units := make(map[string]*entity.Unit, len(summaries))
	for _, s := range summaries {
		if _, ok := units[s.UnitID]; ok {
			continue
		}
		unit, err := uc.unitRepo.GetByID(s.UnitID)
		if err != nil {
			return nil, err
		}
		if unit != nil {
			units[s.UnitID] = unit
		}
	}
	return uc.workbook.ConsumptionSummaryWorkbook(summaries, units)
}

// StockCheckXLSX exporta los chequeos físicos de un rango de fechas.
func (uc *ExportUseCase) StockCheckXLSX(ctx context.Context, from, to time.Time) ([]byte, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	checks, err := uc.checkRepo.ListBetween(from, to)
	if err != nil {
		return nil, err
	}
	return uc.workbook.StockCheckWorkbook(checks)
}
