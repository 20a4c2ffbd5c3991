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

var _ repository.ContainerRepository = (*ContainerRepo)(nil)

// ContainerRepo implementación del puerto ContainerRepository sobre
// PostgreSQL. Resuelve la tabla según la variante del ContainerRef; ambas
// tablas comparten las columnas comunes del contenedor.
type ContainerRepo struct {
	q Querier
}

// NewContainerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContainerRepository(q Querier) *ContainerRepo {
	return &ContainerRepo{q: q}
}

func containerTable(kind entity.ContainerKind) (string, error) {
	switch kind {
	case entity.ContainerKindStorage:
		return "fuel_storages", nil
	case entity.ContainerKindTruck:
		return "fuel_trucks", nil
	default:
		return "", fmt.Errorf("%w: variante de contenedor desconocida %q", domain.ErrInvalidInput, kind)
	}
}

// Get obtiene el estado común del contenedor referenciado.
func (r *ContainerRepo) Get(ref entity.ContainerRef) (*entity.FuelContainer, error) {
	return r.get(ref, "")
}

// GetForUpdate obtiene el contenedor bloqueando su fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *ContainerRepo) GetForUpdate(ref entity.ContainerRef) (*entity.FuelContainer, error) {
	return r.get(ref, " FOR UPDATE")
}

func (r *ContainerRepo) get(ref entity.ContainerRef, suffix string) (*entity.FuelContainer, error) {
	table, err := containerTable(ref.Kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT id, code, name, fuel_type, capacity, current_level, is_active, created_at, updated_at
		FROM %s WHERE id = $1%s`, table, suffix)
	c := entity.FuelContainer{Kind: ref.Kind}
	err = r.q.QueryRow(context.Background(), query, ref.ID).Scan(
		&c.ID, &c.Code, &c.Name, &c.FuelType, &c.Capacity, &c.CurrentLevel,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get container: %w", err)
	}
	return &c, nil
}

// UpdateLevel persiste el nuevo nivel del contenedor.
func (r *ContainerRepo) UpdateLevel(ref entity.ContainerRef, level decimal.Decimal) error {
	table, err := containerTable(ref.Kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE %s SET current_level = $2, updated_at = now() WHERE id = $1`, table)
	cmd, err := r.q.Exec(context.Background(), query, ref.ID, level)
	if err != nil {
		return fmt.Errorf("update container level: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
