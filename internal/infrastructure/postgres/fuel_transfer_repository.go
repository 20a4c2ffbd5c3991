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

var _ repository.FuelTransferRepository = (*FuelTransferRepo)(nil)

// FuelTransferRepo implementación del puerto FuelTransferRepository sobre PostgreSQL.
type FuelTransferRepo struct {
	q Querier
}

// NewFuelTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFuelTransferRepository(q Querier) *FuelTransferRepo {
	return &FuelTransferRepo{q: q}
}

const transferColumns = `id, storage_id, truck_id, amount, fuel_type, storage_level_before, storage_level_after, truck_level_before, truck_level_after, operator_id, daily_session_id, transferred_at, created_at, updated_at`

func scanTransfer(row pgx.Row) (*entity.FuelTransfer, error) {
	var t entity.FuelTransfer
	err := row.Scan(
		&t.ID, &t.StorageID, &t.TruckID, &t.Amount, &t.FuelType,
		&t.StorageLevelBefore, &t.StorageLevelAfter, &t.TruckLevelBefore, &t.TruckLevelAfter,
		&t.OperatorID, &t.SessionID, &t.TransferredAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste una transferencia con sus snapshots.
func (r *FuelTransferRepo) Create(transfer *entity.FuelTransfer) error {
	query := `
		INSERT INTO fuel_transfers (id, storage_id, truck_id, amount, fuel_type, storage_level_before, storage_level_after, truck_level_before, truck_level_after, operator_id, daily_session_id, transferred_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.StorageID, transfer.TruckID, transfer.Amount, transfer.FuelType,
		transfer.StorageLevelBefore, transfer.StorageLevelAfter,
		transfer.TruckLevelBefore, transfer.TruckLevelAfter,
		transfer.OperatorID, transfer.SessionID, transfer.TransferredAt,
		transfer.CreatedAt, transfer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert fuel transfer: %w", err)
	}
	return nil
}

// GetByID obtiene una transferencia por ID.
func (r *FuelTransferRepo) GetByID(id string) (*entity.FuelTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM fuel_transfers WHERE id = $1`
	t, err := scanTransfer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fuel transfer: %w", err)
	}
	return t, nil
}

// GetForUpdate obtiene una transferencia bloqueando su fila (edición/borrado).
func (r *FuelTransferRepo) GetForUpdate(id string) (*entity.FuelTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM fuel_transfers WHERE id = $1 FOR UPDATE`
	t, err := scanTransfer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fuel transfer for update: %w", err)
	}
	return t, nil
}

// Update reescribe la cantidad y los snapshots de una transferencia corregida.
func (r *FuelTransferRepo) Update(transfer *entity.FuelTransfer) error {
	query := `
		UPDATE fuel_transfers SET amount = $2, storage_level_before = $3, storage_level_after = $4, truck_level_before = $5, truck_level_after = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.Amount,
		transfer.StorageLevelBefore, transfer.StorageLevelAfter,
		transfer.TruckLevelBefore, transfer.TruckLevelAfter,
		transfer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update fuel transfer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una transferencia (el motor ya revirtió los niveles).
func (r *FuelTransferRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM fuel_transfers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete fuel transfer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista transferencias con filtro de fechas opcional y paginación.
func (r *FuelTransferRepo) List(from, to *time.Time, limit, offset int) ([]*entity.FuelTransfer, error) {
	return r.list(``, nil, from, to, limit, offset)
}

// ListByStorage lista transferencias de un tanque.
func (r *FuelTransferRepo) ListByStorage(storageID string, from, to *time.Time, limit, offset int) ([]*entity.FuelTransfer, error) {
	return r.list(`storage_id`, &storageID, from, to, limit, offset)
}

// ListByTruck lista transferencias de un camión.
func (r *FuelTransferRepo) ListByTruck(truckID string, from, to *time.Time, limit, offset int) ([]*entity.FuelTransfer, error) {
	return r.list(`truck_id`, &truckID, from, to, limit, offset)
}

func (r *FuelTransferRepo) list(filterCol string, filterVal *string, from, to *time.Time, limit, offset int) ([]*entity.FuelTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM fuel_transfers WHERE 1=1`
	args := []any{}
	n := 0
	if filterCol != "" && filterVal != nil {
		n++
		query += fmt.Sprintf(" AND %s = $%d", filterCol, n)
		args = append(args, *filterVal)
	}
	if from != nil {
		n++
		query += fmt.Sprintf(" AND transferred_at >= $%d", n)
		args = append(args, *from)
	}
	if to != nil {
		n++
		query += fmt.Sprintf(" AND transferred_at < $%d", n)
		args = append(args, *to)
	}
	query += fmt.Sprintf(" ORDER BY transferred_at DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list fuel transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.FuelTransfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fuel transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
