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

var _ repository.FuelTruckRepository = (*FuelTruckRepo)(nil)

// FuelTruckRepo implementación del puerto FuelTruckRepository sobre PostgreSQL.
type FuelTruckRepo struct {
	q Querier
}

// NewFuelTruckRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFuelTruckRepository(q Querier) *FuelTruckRepo {
	return &FuelTruckRepo{q: q}
}

const truckColumns = `id, code, name, fuel_type, capacity, current_level, plate_number, driver_name, is_active, created_at, updated_at`

func scanTruck(row pgx.Row) (*entity.FuelTruck, error) {
	t := entity.FuelTruck{FuelContainer: entity.FuelContainer{Kind: entity.ContainerKindTruck}}
	err := row.Scan(
		&t.ID, &t.Code, &t.Name, &t.FuelType, &t.Capacity, &t.CurrentLevel,
		&t.PlateNumber, &t.DriverName, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste un camión nuevo.
func (r *FuelTruckRepo) Create(truck *entity.FuelTruck) error {
	query := `
		INSERT INTO fuel_trucks (id, code, name, fuel_type, capacity, current_level, plate_number, driver_name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		truck.ID, truck.Code, truck.Name, truck.FuelType, truck.Capacity,
		truck.CurrentLevel, truck.PlateNumber, truck.DriverName, truck.IsActive,
		truck.CreatedAt, truck.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert fuel truck: %w", err)
	}
	return nil
}

// GetByID obtiene un camión por ID.
func (r *FuelTruckRepo) GetByID(id string) (*entity.FuelTruck, error) {
	query := `SELECT ` + truckColumns + ` FROM fuel_trucks WHERE id = $1`
	t, err := scanTruck(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fuel truck: %w", err)
	}
	return t, nil
}

// GetByCode obtiene un camión por código único.
func (r *FuelTruckRepo) GetByCode(code string) (*entity.FuelTruck, error) {
	query := `SELECT ` + truckColumns + ` FROM fuel_trucks WHERE code = $1`
	t, err := scanTruck(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fuel truck by code: %w", err)
	}
	return t, nil
}

// List lista camiones con paginación.
func (r *FuelTruckRepo) List(limit, offset int) ([]*entity.FuelTruck, error) {
	query := `SELECT ` + truckColumns + ` FROM fuel_trucks ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list fuel trucks: %w", err)
	}
	defer rows.Close()
	var list []*entity.FuelTruck
	for rows.Next() {
		t, err := scanTruck(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fuel truck: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update actualiza los datos maestros de un camión (el nivel va por UpdateLevel).
func (r *FuelTruckRepo) Update(truck *entity.FuelTruck) error {
	query := `
		UPDATE fuel_trucks SET name = $2, plate_number = $3, driver_name = $4, is_active = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		truck.ID, truck.Name, truck.PlateNumber, truck.DriverName,
		truck.IsActive, truck.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update fuel truck: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
