package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Combustible-api/internal/domain"
	"github.com/jhoicas/Combustible-api/internal/domain/entity"
	"github.com/jhoicas/Combustible-api/internal/domain/repository"
)

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo implementación del puerto UnitRepository sobre PostgreSQL.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

const unitColumns = `id, code, name, unit_type_id, current_hour_meter, current_odometer, fuel_tank_capacity, is_active, created_at, updated_at`

func scanUnit(row pgx.Row) (*entity.Unit, error) {
	var u entity.Unit
	err := row.Scan(
		&u.ID, &u.Code, &u.Name, &u.UnitTypeID, &u.CurrentHourMeter, &u.CurrentOdometer,
		&u.FuelTankCapacity, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste una unidad nueva.
func (r *UnitRepo) Create(unit *entity.Unit) error {
	query := `
		INSERT INTO units (id, code, name, unit_type_id, current_hour_meter, current_odometer, fuel_tank_capacity, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		unit.ID, unit.Code, unit.Name, unit.UnitTypeID, unit.CurrentHourMeter,
		unit.CurrentOdometer, unit.FuelTankCapacity, unit.IsActive,
		unit.CreatedAt, unit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad por ID.
func (r *UnitRepo) GetByID(id string) (*entity.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE id = $1`
	u, err := scanUnit(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return u, nil
}

// GetForUpdate obtiene una unidad bloqueando su fila (SELECT FOR UPDATE).
func (r *UnitRepo) GetForUpdate(id string) (*entity.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE id = $1 FOR UPDATE`
	u, err := scanUnit(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit for update: %w", err)
	}
	return u, nil
}

// List lista unidades con paginación.
func (r *UnitRepo) List(limit, offset int) ([]*entity.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	return collectUnits(rows)
}

// ListActive lista todas las unidades activas (job de resúmenes).
func (r *UnitRepo) ListActive() ([]*entity.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE is_active ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list active units: %w", err)
	}
	defer rows.Close()
	return collectUnits(rows)
}

func collectUnits(rows pgx.Rows) ([]*entity.Unit, error) {
	var list []*entity.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update actualiza los datos maestros de una unidad (los medidores van por UpdateMeters).
func (r *UnitRepo) Update(unit *entity.Unit) error {
	query := `
		UPDATE units SET name = $2, unit_type_id = $3, fuel_tank_capacity = $4, is_active = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		unit.ID, unit.Name, unit.UnitTypeID, unit.FuelTankCapacity,
		unit.IsActive, unit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update unit: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateMeters persiste los medidores actuales de la unidad (motor de despacho).
func (r *UnitRepo) UpdateMeters(id string, hourMeter, odometer decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE units SET current_hour_meter = $2, current_odometer = $3, updated_at = now() WHERE id = $1`,
		id, hourMeter, odometer,
	)
	if err != nil {
		return fmt.Errorf("update unit meters: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
