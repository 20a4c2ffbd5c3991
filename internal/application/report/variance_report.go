package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Combustible-api/internal/domain"
	"github.com/jhoicas/Combustible-api/internal/domain/entity"
	"github.com/jhoicas/Combustible-api/internal/domain/repository"
)

// VarianceReportUseCase genera y administra los rollups de chequeos físicos
// por período. Consume el ledger, no lo muta.
type VarianceReportUseCase struct {
	checkRepo  repository.StockCheckRepository
	reportRepo repository.VarianceReportRepository
}

// NewVarianceReportUseCase construye el caso de uso.
func NewVarianceReportUseCase(checkRepo repository.StockCheckRepository, reportRepo repository.VarianceReportRepository) *VarianceReportUseCase {
	return &VarianceReportUseCase{checkRepo: checkRepo, reportRepo: reportRepo}
}

// Generate agrega los chequeos del período indicado en un reporte DRAFT.
// start se normaliza al inicio del período (día, semana ISO o mes).
func (uc *VarianceReportUseCase) Generate(ctx context.Context, period string, start time.Time) (*entity.VarianceReport, error) {
	from, to, err := periodWindow(period, start)
	if err != nil {
		return nil, err
	}

	checks, err := uc.checkRepo.ListBetween(from, to)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report := &entity.VarianceReport{
		ID:          uuid.New().String(),
		Period:      period,
		PeriodStart: from,
		PeriodEnd:   to,
		TotalChecks: len(checks),
		Status:      entity.ReportStatusDraft,
		GeneratedAt: now,
		UpdatedAt:   now,
	}
	for _, check := range checks {
		report.TotalVariance = report.TotalVariance.Add(check.Variance)
		switch check.Container.Kind {
		case entity.ContainerKindStorage:
			report.StorageVariance = report.StorageVariance.Add(check.Variance)
		case entity.ContainerKindTruck:
			report.TruckVariance = report.TruckVariance.Add(check.Variance)
		}
		switch check.VarianceStatus {
		case entity.VarianceStatusNormal:
			report.NormalCount++
		case entity.VarianceStatusMinor:
			report.MinorCount++
		case entity.VarianceStatusWarning:
			report.WarningCount++
		case entity.VarianceStatusCritical:
			report.CriticalCount++
		}
	}

	if err := uc.reportRepo.Create(report); err != nil {
		return nil, err
	}
	return report, nil
}

// Finalize pasa el reporte a FINAL.
func (uc *VarianceReportUseCase) Finalize(ctx context.Context, reportID string) (*entity.VarianceReport, error) {
	return uc.transition(reportID, func(r *entity.VarianceReport) error {
		return r.Finalize(time.Now())
	})
}

// Approve aprueba un reporte FINAL (estado terminal).
func (uc *VarianceReportUseCase) Approve(ctx context.Context, reportID, approver string) (*entity.VarianceReport, error) {
	return uc.transition(reportID, func(r *entity.VarianceReport) error {
		return r.Approve(approver, time.Now())
	})
}

// Reject devuelve un reporte FINAL a DRAFT.
func (uc *VarianceReportUseCase) Reject(ctx context.Context, reportID string) (*entity.VarianceReport, error) {
	return uc.transition(reportID, func(r *entity.VarianceReport) error {
		return r.Reject()
	})
}

// GetByID obtiene un reporte.
func (uc *VarianceReportUseCase) GetByID(ctx context.Context, reportID string) (*entity.VarianceReport, error) {
	report, err := uc.reportRepo.GetByID(reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrNotFound
	}
	return report, nil
}

// List lista reportes con paginación.
func (uc *VarianceReportUseCase) List(ctx context.Context, limit, offset int) ([]*entity.VarianceReport, error) {
	return uc.reportRepo.List(limit, offset)
}

// ChecksOf devuelve los chequeos que componen el período de un reporte.
func (uc *VarianceReportUseCase) ChecksOf(ctx context.Context, report *entity.VarianceReport) ([]*entity.PhysicalStockCheck, error) {
	return uc.checkRepo.ListBetween(report.PeriodStart, report.PeriodEnd)
}

func (uc *VarianceReportUseCase) transition(reportID string, apply func(*entity.VarianceReport) error) (*entity.VarianceReport, error) {
	report, err := uc.reportRepo.GetByID(reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrNotFound
	}
	if err := apply(report); err != nil {
		return nil, err
	}
	report.UpdatedAt = time.Now()
	if err := uc.reportRepo.Update(report); err != nil {
		return nil, err
	}
	return report, nil
}

// periodWindow resuelve la ventana [from, to) del período.
func periodWindow(period string, start time.Time) (time.Time, time.Time, error) {
	y, m, d := start.UTC().Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	switch period {
	case entity.ReportPeriodDaily:
		return day, day.AddDate(0, 0, 1), nil
	case entity.ReportPeriodWeekly:
		// Lunes como inicio de semana.
		offset := (int(day.Weekday()) + 6) % 7
		monday := day.AddDate(0, 0, -offset)
		return monday, monday.AddDate(0, 0, 7), nil
	case entity.ReportPeriodMonthly:
		first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
		return first, first.AddDate(0, 1, 0), nil
	default:
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
}
