package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Combustible-api/internal/domain"
	"github.com/jhoicas/Combustible-api/internal/domain/entity"
	"github.com/jhoicas/Combustible-api/internal/domain/repository"
)

var _ repository.FuelTransactionRepository = (*FuelTransactionRepo)(nil)

// FuelTransactionRepo implementación del puerto FuelTransactionRepository sobre PostgreSQL.
type FuelTransactionRepo struct {
	q Querier
}

// NewFuelTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFuelTransactionRepository(q Querier) *FuelTransactionRepo {
	return &FuelTransactionRepo{q: q}
}

const transactionColumns = `id, unit_id, source_kind, source_id, fuel_amount, previous_hour_meter, current_hour_meter, previous_odometer, current_odometer, source_level_before, source_level_after, efficiency_per_hour, efficiency_per_km, combined_efficiency, calculated_at, operator_id, daily_session_id, dispensed_at, created_at`

func scanTransaction(row pgx.Row) (*entity.FuelTransaction, error) {
	var t entity.FuelTransaction
	err := row.Scan(
		&t.ID, &t.UnitID, &t.Source.Kind, &t.Source.ID, &t.FuelAmount,
		&t.PreviousHourMeter, &t.CurrentHourMeter, &t.PreviousOdometer, &t.CurrentOdometer,
		&t.SourceLevelBefore, &t.SourceLevelAfter,
		&t.EfficiencyPerHour, &t.EfficiencyPerKm, &t.CombinedEfficiency, &t.CalculatedAt,
		&t.OperatorID, &t.SessionID, &t.DispensedAt, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste un despacho con sus snapshots y eficiencia.
func (r *FuelTransactionRepo) Create(txn *entity.FuelTransaction) error {
	query := `
		INSERT INTO fuel_transactions (id, unit_id, source_kind, source_id, fuel_amount, previous_hour_meter, current_hour_meter, previous_odometer, current_odometer, source_level_before, source_level_after, efficiency_per_hour, efficiency_per_km, combined_efficiency, calculated_at, operator_id, daily_session_id, dispensed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		txn.ID, txn.UnitID, txn.Source.Kind, txn.Source.ID, txn.FuelAmount,
		txn.PreviousHourMeter, txn.CurrentHourMeter, txn.PreviousOdometer, txn.CurrentOdometer,
		txn.SourceLevelBefore, txn.SourceLevelAfter,
		txn.EfficiencyPerHour, txn.EfficiencyPerKm, txn.CombinedEfficiency, txn.CalculatedAt,
		txn.OperatorID, txn.SessionID, txn.DispensedAt, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert fuel transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un despacho por ID.
func (r *FuelTransactionRepo) GetByID(id string) (*entity.FuelTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM fuel_transactions WHERE id = $1`
	t, err := scanTransaction(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fuel transaction: %w", err)
	}
	return t, nil
}

// GetForUpdate obtiene un despacho bloqueando su fila (borrado).
func (r *FuelTransactionRepo) GetForUpdate(id string) (*entity.FuelTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM fuel_transactions WHERE id = $1 FOR UPDATE`
	t, err := scanTransaction(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fuel transaction for update: %w", err)
	}
	return t, nil
}

// Delete elimina un despacho (el motor ya devolvió el combustible a la fuente).
func (r *FuelTransactionRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM fuel_transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete fuel transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetLastByUnit última transacción de la unidad por fecha de despacho
// (siembra de medidores previos). nil si la unidad no tiene transacciones.
func (r *FuelTransactionRepo) GetLastByUnit(unitID string) (*entity.FuelTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM fuel_transactions WHERE unit_id = $1 ORDER BY dispensed_at DESC, created_at DESC LIMIT 1`
	t, err := scanTransaction(r.q.QueryRow(context.Background(), query, unitID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get last fuel transaction: %w", err)
	}
	return t, nil
}

// ListByUnit lista despachos de una unidad con filtro de fechas opcional.
func (r *FuelTransactionRepo) ListByUnit(unitID string, from, to *time.Time, limit, offset int) ([]*entity.FuelTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM fuel_transactions WHERE unit_id = $1`
	args := []any{unitID}
	n := 1
	if from != nil {
		n++
		query += fmt.Sprintf(" AND dispensed_at >= $%d", n)
		args = append(args, *from)
	}
	if to != nil {
		n++
		query += fmt.Sprintf(" AND dispensed_at < $%d", n)
		args = append(args, *to)
	}
	query += fmt.Sprintf(" ORDER BY dispensed_at DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, limit, offset)
	return r.collect(query, args...)
}

// ListBySource lista despachos desde un contenedor con filtro de fechas opcional.
func (r *FuelTransactionRepo) ListBySource(source entity.ContainerRef, from, to *time.Time, limit, offset int) ([]*entity.FuelTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM fuel_transactions WHERE source_kind = $1 AND source_id = $2`
	args := []any{source.Kind, source.ID}
	n := 2
	if from != nil {
		n++
		query += fmt.Sprintf(" AND dispensed_at >= $%d", n)
		args = append(args, *from)
	}
	if to != nil {
		n++
		query += fmt.Sprintf(" AND dispensed_at < $%d", n)
		args = append(args, *to)
	}
	query += fmt.Sprintf(" ORDER BY dispensed_at DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, limit, offset)
	return r.collect(query, args...)
}

// ListByUnitAndDay transacciones de la unidad en un día calendario UTC
// (reconstrucción del resumen de consumo), en orden de despacho.
func (r *FuelTransactionRepo) ListByUnitAndDay(unitID string, day time.Time) ([]*entity.FuelTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM fuel_transactions
		WHERE unit_id = $1 AND dispensed_at >= $2 AND dispensed_at < $3
		ORDER BY dispensed_at`
	return r.collect(query, unitID, day, day.AddDate(0, 0, 1))
}

// AvgCombinedByUnitType promedio de eficiencia combinada de las transacciones
// del tipo de unidad desde la fecha dada. nil si no hay filas calculables.
func (r *FuelTransactionRepo) AvgCombinedByUnitType(unitTypeID string, since time.Time) (*decimal.Decimal, error) {
	query := `
		SELECT AVG(t.combined_efficiency)
		FROM fuel_transactions t
		JOIN units u ON u.id = t.unit_id
		WHERE u.unit_type_id = $1 AND t.dispensed_at >= $2 AND t.combined_efficiency IS NOT NULL`
	var avg *decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, unitTypeID, since).Scan(&avg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("avg combined efficiency: %w", err)
	}
	return avg, nil
}

func (r *FuelTransactionRepo) collect(query string, args ...any) ([]*entity.FuelTransaction, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list fuel transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.FuelTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fuel transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
