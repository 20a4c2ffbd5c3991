package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Combustible-api/internal/domain/entity"
	"github.com/jhoicas/Combustible-api/internal/domain/repository"
)

var _ repository.ConsumptionSummaryRepository = (*ConsumptionSummaryRepo)(nil)

// ConsumptionSummaryRepo implementación del puerto ConsumptionSummaryRepository
// sobre PostgreSQL. Upsert por (unit_id, date) porque el resumen se
// reconstruye completo desde las transacciones.
type ConsumptionSummaryRepo struct {
	q Querier
}

// NewConsumptionSummaryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumptionSummaryRepository(q Querier) *ConsumptionSummaryRepo {
	return &ConsumptionSummaryRepo{q: q}
}

const summaryColumns = `id, unit_id, date, transaction_count, total_fuel, total_hours, total_km, avg_efficiency, min_efficiency, max_efficiency, updated_at`

func scanSummary(row pgx.Row) (*entity.UnitConsumptionSummary, error) {
	var s entity.UnitConsumptionSummary
	err := row.Scan(
		&s.ID, &s.UnitID, &s.Date, &s.TransactionCount,
		&s.TotalFuel, &s.TotalHours, &s.TotalKm,
		&s.AvgEfficiency, &s.MinEfficiency, &s.MaxEfficiency, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert inserta o reemplaza el resumen del día de la unidad.
func (r *ConsumptionSummaryRepo) Upsert(summary *entity.UnitConsumptionSummary) error {
	query := `
		INSERT INTO unit_consumption_summaries (id, unit_id, date, transaction_count, total_fuel, total_hours, total_km, avg_efficiency, min_efficiency, max_efficiency, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (unit_id, date) DO UPDATE SET
			transaction_count = EXCLUDED.transaction_count,
			total_fuel = EXCLUDED.total_fuel,
			total_hours = EXCLUDED.total_hours,
			total_km = EXCLUDED.total_km,
			avg_efficiency = EXCLUDED.avg_efficiency,
			min_efficiency = EXCLUDED.min_efficiency,
			max_efficiency = EXCLUDED.max_efficiency,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		summary.ID, summary.UnitID, summary.Date, summary.TransactionCount,
		summary.TotalFuel, summary.TotalHours, summary.TotalKm,
		summary.AvgEfficiency, summary.MinEfficiency, summary.MaxEfficiency, summary.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert consumption summary: %w", err)
	}
	return nil
}

// Get obtiene el resumen de una unidad para un día. nil si no existe.
func (r *ConsumptionSummaryRepo) Get(unitID string, date time.Time) (*entity.UnitConsumptionSummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM unit_consumption_summaries WHERE unit_id = $1 AND date = $2`
	s, err := scanSummary(r.q.QueryRow(context.Background(), query, unitID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consumption summary: %w", err)
	}
	return s, nil
}

// Delete elimina el resumen de un día sin transacciones. No falla si no existe.
func (r *ConsumptionSummaryRepo) Delete(unitID string, date time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM unit_consumption_summaries WHERE unit_id = $1 AND date = $2`,
		unitID, date,
	)
	if err != nil {
		return fmt.Errorf("delete consumption summary: %w", err)
	}
	return nil
}

// ListBetween lista resúmenes de todas las unidades en un rango de fechas.
func (r *ConsumptionSummaryRepo) ListBetween(from, to time.Time) ([]*entity.UnitConsumptionSummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM unit_consumption_summaries
		WHERE date >= $1 AND date <= $2 ORDER BY date, unit_id`
	return r.collect(query, from, to)
}

// ListByUnit lista resúmenes de una unidad en un rango de fechas.
func (r *ConsumptionSummaryRepo) ListByUnit(unitID string, from, to time.Time) ([]*entity.UnitConsumptionSummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM unit_consumption_summaries
		WHERE unit_id = $1 AND date >= $2 AND date <= $3 ORDER BY date`
	return r.collect(query, unitID, from, to)
}

func (r *ConsumptionSummaryRepo) collect(query string, args ...any) ([]*entity.UnitConsumptionSummary, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list consumption summaries: %w", err)
	}
	defer rows.Close()
	var list []*entity.UnitConsumptionSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan consumption summary: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
