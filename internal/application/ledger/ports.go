package ledger

import (
	"context"

	"github.com/jhoicas/Combustible-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para los motores del
// ledger: o se confirman las mutaciones de contenedores y el registro
// dependiente juntos, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		containerRepo repository.ContainerRepository,
		transferRepo repository.FuelTransferRepository,
		txnRepo repository.FuelTransactionRepository,
		unitRepo repository.UnitRepository,
		checkRepo repository.StockCheckRepository,
	) error) error
}
