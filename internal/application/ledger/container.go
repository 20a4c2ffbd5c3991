package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Combustible-api/internal/domain"
	"github.com/jhoicas/Combustible-api/internal/domain/entity"
	"github.com/jhoicas/Combustible-api/internal/domain/repository"
	"github.com/jhoicas/Combustible-api/pkg/logger"
)

// ContainerUseCase operaciones directas sobre contenedores que no pasan por
// transferencia ni despacho: ajuste manual de nivel.
type ContainerUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewContainerUseCase construye el caso de uso.
func NewContainerUseCase(txRunner TxRunner, log *logger.Logger) *ContainerUseCase {
	return &ContainerUseCase{txRunner: txRunner, log: log}
}

// AdjustLevel fija manualmente el nivel de un contenedor (corrección de
// operación). Falla con ErrOutOfRange si el nivel queda fuera de
// [0, capacidad]. Se ejecuta bajo lock de fila como toda mutación de nivel.
func (uc *ContainerUseCase) AdjustLevel(ctx context.Context, ref entity.ContainerRef, newLevel decimal.Decimal, operatorID string) error {
	if ref.ID == "" {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.Run(ctx, func(
		containerRepo repository.ContainerRepository,
		_ repository.FuelTransferRepository,
		_ repository.FuelTransactionRepository,
		_ repository.UnitRepository,
		_ repository.StockCheckRepository,
	) error {
		container, err := containerRepo.GetForUpdate(ref)
		if err != nil {
			return err
		}
		if container == nil {
			return domain.ErrNotFound
		}
		previous := container.CurrentLevel
		if err := container.SetLevel(newLevel); err != nil {
			return err
		}
		if err := containerRepo.UpdateLevel(container.Ref(), container.CurrentLevel); err != nil {
			return err
		}
		uc.log.Info().
			Str("container_id", container.ID).
			Str("operator_id", operatorID).
			Str("previous_level", previous.String()).
			Str("new_level", newLevel.String()).
			Msg("nivel de contenedor ajustado manualmente")
		return nil
	})
	return err
}
