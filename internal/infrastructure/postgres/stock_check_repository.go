package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Combustible-api/internal/domain"
	"github.com/jhoicas/Combustible-api/internal/domain/entity"
	"github.com/jhoicas/Combustible-api/internal/domain/repository"
)

var _ repository.StockCheckRepository = (*StockCheckRepo)(nil)

// StockCheckRepo implementación del puerto StockCheckRepository sobre PostgreSQL.
type StockCheckRepo struct {
	q Querier
}

// NewStockCheckRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockCheckRepository(q Querier) *StockCheckRepo {
	return &StockCheckRepo{q: q}
}

const checkColumns = `id, container_kind, container_id, system_level, physical_level, variance, variance_percentage, variance_status, system_adjusted, adjustment_amount, adjustment_reason, adjusted_at, adjusted_by, checked_by, method, checked_at, created_at`

func scanCheck(row pgx.Row) (*entity.PhysicalStockCheck, error) {
	var c entity.PhysicalStockCheck
	err := row.Scan(
		&c.ID, &c.Container.Kind, &c.Container.ID,
		&c.SystemLevel, &c.PhysicalLevel, &c.Variance, &c.VariancePercentage, &c.VarianceStatus,
		&c.SystemAdjusted, &c.AdjustmentAmount, &c.AdjustmentReason, &c.AdjustedAt, &c.AdjustedBy,
		&c.CheckedBy, &c.Method, &c.CheckedAt, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un chequeo físico clasificado.
func (r *StockCheckRepo) Create(check *entity.PhysicalStockCheck) error {
	query := `
		INSERT INTO physical_stock_checks (id, container_kind, container_id, system_level, physical_level, variance, variance_percentage, variance_status, system_adjusted, adjustment_amount, adjustment_reason, adjusted_at, adjusted_by, checked_by, method, checked_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		check.ID, check.Container.Kind, check.Container.ID,
		check.SystemLevel, check.PhysicalLevel, check.Variance, check.VariancePercentage, check.VarianceStatus,
		check.SystemAdjusted, check.AdjustmentAmount, check.AdjustmentReason, check.AdjustedAt, check.AdjustedBy,
		check.CheckedBy, check.Method, check.CheckedAt, check.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock check: %w", err)
	}
	return nil
}

// GetByID obtiene un chequeo por ID.
func (r *StockCheckRepo) GetByID(id string) (*entity.PhysicalStockCheck, error) {
	query := `SELECT ` + checkColumns + ` FROM physical_stock_checks WHERE id = $1`
	c, err := scanCheck(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock check: %w", err)
	}
	return c, nil
}

// GetForUpdate obtiene un chequeo bloqueando su fila (ajuste de una sola vez).
func (r *StockCheckRepo) GetForUpdate(id string) (*entity.PhysicalStockCheck, error) {
	query := `SELECT ` + checkColumns + ` FROM physical_stock_checks WHERE id = $1 FOR UPDATE`
	c, err := scanCheck(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock check for update: %w", err)
	}
	return c, nil
}

// Update persiste el estado de ajuste de un chequeo.
func (r *StockCheckRepo) Update(check *entity.PhysicalStockCheck) error {
	query := `
		UPDATE physical_stock_checks SET system_adjusted = $2, adjustment_amount = $3, adjustment_reason = $4, adjusted_at = $5, adjusted_by = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		check.ID, check.SystemAdjusted, check.AdjustmentAmount,
		check.AdjustmentReason, check.AdjustedAt, check.AdjustedBy,
	)
	if err != nil {
		return fmt.Errorf("update stock check: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByContainer lista los chequeos de un contenedor, más reciente primero.
func (r *StockCheckRepo) ListByContainer(ref entity.ContainerRef, limit, offset int) ([]*entity.PhysicalStockCheck, error) {
	query := `SELECT ` + checkColumns + ` FROM physical_stock_checks
		WHERE container_kind = $1 AND container_id = $2
		ORDER BY checked_at DESC LIMIT $3 OFFSET $4`
	return r.collect(query, ref.Kind, ref.ID, limit, offset)
}

// ListBetween lista los chequeos de una ventana [from, to) (reportes de varianza).
func (r *StockCheckRepo) ListBetween(from, to time.Time) ([]*entity.PhysicalStockCheck, error) {
	query := `SELECT ` + checkColumns + ` FROM physical_stock_checks
		WHERE checked_at >= $1 AND checked_at < $2
		ORDER BY checked_at`
	return r.collect(query, from, to)
}

func (r *StockCheckRepo) collect(query string, args ...any) ([]*entity.PhysicalStockCheck, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock checks: %w", err)
	}
	defer rows.Close()
	var list []*entity.PhysicalStockCheck
	for rows.Next() {
		c, err := scanCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock check: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
