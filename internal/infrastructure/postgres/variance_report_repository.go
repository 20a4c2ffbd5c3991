package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Combustible-api/internal/domain"
	"github.com/jhoicas/Combustible-api/internal/domain/entity"
	"github.com/jhoicas/Combustible-api/internal/domain/repository"
)

var _ repository.VarianceReportRepository = (*VarianceReportRepo)(nil)

// VarianceReportRepo implementación del puerto VarianceReportRepository sobre PostgreSQL.
type VarianceReportRepo struct {
	q Querier
}

// NewVarianceReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVarianceReportRepository(q Querier) *VarianceReportRepo {
	return &VarianceReportRepo{q: q}
}

const reportColumns = `id, period, period_start, period_end, total_checks, total_variance, storage_variance, truck_variance, normal_count, minor_count, warning_count, critical_count, status, generated_at, finalized_at, approved_at, approved_by, updated_at`

func scanReport(row pgx.Row) (*entity.VarianceReport, error) {
	var r entity.VarianceReport
	err := row.Scan(
		&r.ID, &r.Period, &r.PeriodStart, &r.PeriodEnd,
		&r.TotalChecks, &r.TotalVariance, &r.StorageVariance, &r.TruckVariance,
		&r.NormalCount, &r.MinorCount, &r.WarningCount, &r.CriticalCount,
		&r.Status, &r.GeneratedAt, &r.FinalizedAt, &r.ApprovedAt, &r.ApprovedBy, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create persiste un reporte generado.
func (r *VarianceReportRepo) Create(report *entity.VarianceReport) error {
	query := `
		INSERT INTO variance_reports (id, period, period_start, period_end, total_checks, total_variance, storage_variance, truck_variance, normal_count, minor_count, warning_count, critical_count, status, generated_at, finalized_at, approved_at, approved_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		report.ID, report.Period, report.PeriodStart, report.PeriodEnd,
		report.TotalChecks, report.TotalVariance, report.StorageVariance, report.TruckVariance,
		report.NormalCount, report.MinorCount, report.WarningCount, report.CriticalCount,
		report.Status, report.GeneratedAt, report.FinalizedAt, report.ApprovedAt, report.ApprovedBy, report.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert variance report: %w", err)
	}
	return nil
}

// GetByID obtiene un reporte por ID.
func (r *VarianceReportRepo) GetByID(id string) (*entity.VarianceReport, error) {
	query := `SELECT ` + reportColumns + ` FROM variance_reports WHERE id = $1`
	rep, err := scanReport(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variance report: %w", err)
	}
	return rep, nil
}

// Update persiste la transición de estado de un reporte.
func (r *VarianceReportRepo) Update(report *entity.VarianceReport) error {
	query := `
		UPDATE variance_reports SET status = $2, finalized_at = $3, approved_at = $4, approved_by = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		report.ID, report.Status, report.FinalizedAt, report.ApprovedAt,
		report.ApprovedBy, report.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update variance report: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista reportes, más reciente primero.
func (r *VarianceReportRepo) List(limit, offset int) ([]*entity.VarianceReport, error) {
	query := `SELECT ` + reportColumns + ` FROM variance_reports ORDER BY period_start DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list variance reports: %w", err)
	}
	defer rows.Close()
	var list []*entity.VarianceReport
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variance report: %w", err)
		}
		list = append(list, rep)
	}
	return list, rows.Err()
}
