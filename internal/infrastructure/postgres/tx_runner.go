package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Combustible-api/internal/application/ledger"
	"github.com/jhoicas/Combustible-api/internal/domain"
	"github.com/jhoicas/Combustible-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	containerRepo repository.ContainerRepository,
	transferRepo repository.FuelTransferRepository,
	txnRepo repository.FuelTransactionRepository,
	unitRepo repository.UnitRepository,
	checkRepo repository.StockCheckRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	containerRepo := NewContainerRepository(tx)
	transferRepo := NewFuelTransferRepository(tx)
	txnRepo := NewFuelTransactionRepository(tx)
	unitRepo := NewUnitRepository(tx)
	checkRepo := NewStockCheckRepository(tx)

	if err := fn(containerRepo, transferRepo, txnRepo, unitRepo, checkRepo); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("transacción en conflicto: %w", domain.ErrConflict)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("transacción en conflicto: %w", domain.ErrConflict)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
