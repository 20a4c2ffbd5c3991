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

var _ repository.UnitTypeRepository = (*UnitTypeRepo)(nil)

// UnitTypeRepo implementación del puerto UnitTypeRepository sobre PostgreSQL.
type UnitTypeRepo struct {
	q Querier
}

// NewUnitTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUnitTypeRepository(q Querier) *UnitTypeRepo {
	return &UnitTypeRepo{q: q}
}

const unitTypeColumns = `id, code, name, consumption_per_hour, consumption_per_km, created_at, updated_at`

func scanUnitType(row pgx.Row) (*entity.UnitType, error) {
	var t entity.UnitType
	err := row.Scan(
		&t.ID, &t.Code, &t.Name, &t.ConsumptionPerHour, &t.ConsumptionPerKm,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste un tipo de unidad nuevo.
func (r *UnitTypeRepo) Create(unitType *entity.UnitType) error {
	query := `
		INSERT INTO unit_types (id, code, name, consumption_per_hour, consumption_per_km, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		unitType.ID, unitType.Code, unitType.Name, unitType.ConsumptionPerHour,
		unitType.ConsumptionPerKm, unitType.CreatedAt, unitType.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit type: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo de unidad por ID.
func (r *UnitTypeRepo) GetByID(id string) (*entity.UnitType, error) {
	query := `SELECT ` + unitTypeColumns + ` FROM unit_types WHERE id = $1`
	t, err := scanUnitType(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit type: %w", err)
	}
	return t, nil
}

// List lista todos los tipos de unidad.
func (r *UnitTypeRepo) List() ([]*entity.UnitType, error) {
	query := `SELECT ` + unitTypeColumns + ` FROM unit_types ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list unit types: %w", err)
	}
	defer rows.Close()
	var list []*entity.UnitType
	for rows.Next() {
		t, err := scanUnitType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan unit type: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update actualiza un tipo de unidad.
func (r *UnitTypeRepo) Update(unitType *entity.UnitType) error {
	query := `
		UPDATE unit_types SET name = $2, consumption_per_hour = $3, consumption_per_km = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		unitType.ID, unitType.Name, unitType.ConsumptionPerHour,
		unitType.ConsumptionPerKm, unitType.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update unit type: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
