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

var _ repository.FuelStorageRepository = (*FuelStorageRepo)(nil)

// FuelStorageRepo implementación del puerto FuelStorageRepository sobre PostgreSQL.
type FuelStorageRepo struct {
	q Querier
}

// NewFuelStorageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFuelStorageRepository(q Querier) *FuelStorageRepo {
	return &FuelStorageRepo{q: q}
}

const storageColumns = `id, code, name, fuel_type, capacity, current_level, minimum_level, location, is_active, created_at, updated_at`

func scanStorage(row pgx.Row) (*entity.FuelStorage, error) {
	s := entity.FuelStorage{FuelContainer: entity.FuelContainer{Kind: entity.ContainerKindStorage}}
	err := row.Scan(
		&s.ID, &s.Code, &s.Name, &s.FuelType, &s.Capacity, &s.CurrentLevel,
		&s.MinimumLevel, &s.Location, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste un tanque nuevo.
func (r *FuelStorageRepo) Create(storage *entity.FuelStorage) error {
	query := `
		INSERT INTO fuel_storages (id, code, name, fuel_type, capacity, current_level, minimum_level, location, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		storage.ID, storage.Code, storage.Name, storage.FuelType, storage.Capacity,
		storage.CurrentLevel, storage.MinimumLevel, storage.Location, storage.IsActive,
		storage.CreatedAt, storage.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert fuel storage: %w", err)
	}
	return nil
}

// GetByID obtiene un tanque por ID.
func (r *FuelStorageRepo) GetByID(id string) (*entity.FuelStorage, error) {
	query := `SELECT ` + storageColumns + ` FROM fuel_storages WHERE id = $1`
	s, err := scanStorage(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fuel storage: %w", err)
	}
	return s, nil
}

// GetByCode obtiene un tanque por código único.
func (r *FuelStorageRepo) GetByCode(code string) (*entity.FuelStorage, error) {
	query := `SELECT ` + storageColumns + ` FROM fuel_storages WHERE code = $1`
	s, err := scanStorage(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fuel storage by code: %w", err)
	}
	return s, nil
}

// List lista tanques con paginación.
func (r *FuelStorageRepo) List(limit, offset int) ([]*entity.FuelStorage, error) {
	query := `SELECT ` + storageColumns + ` FROM fuel_storages ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list fuel storages: %w", err)
	}
	defer rows.Close()
	var list []*entity.FuelStorage
	for rows.Next() {
		s, err := scanStorage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fuel storage: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update actualiza los datos maestros de un tanque (el nivel va por UpdateLevel).
func (r *FuelStorageRepo) Update(storage *entity.FuelStorage) error {
	query := `
		UPDATE fuel_storages SET name = $2, minimum_level = $3, location = $4, is_active = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		storage.ID, storage.Name, storage.MinimumLevel, storage.Location,
		storage.IsActive, storage.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update fuel storage: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListLow tanques activos en o por debajo de su nivel mínimo.
func (r *FuelStorageRepo) ListLow() ([]*entity.FuelStorage, error) {
	query := `SELECT ` + storageColumns + ` FROM fuel_storages WHERE is_active AND current_level <= minimum_level ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low fuel storages: %w", err)
	}
	defer rows.Close()
	var list []*entity.FuelStorage
	for rows.Next() {
		s, err := scanStorage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fuel storage: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
