package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Combustible-api/internal/domain"
	"github.com/jhoicas/Combustible-api/internal/domain/entity"
	"github.com/jhoicas/Combustible-api/internal/domain/fuel"
	"github.com/jhoicas/Combustible-api/internal/domain/repository"
	"github.com/jhoicas/Combustible-api/pkg/logger"
)

// Varianzas por debajo de este umbral se consideran ruido de medición y no
// justifican ajuste del sistema.
var adjustmentThreshold = decimal.NewFromFloat(0.01)

// StockCheckUseCase motor de conciliación física de stock: registra chequeos
// contra el nivel del sistema y aplica, una sola vez por chequeo, la
// corrección del nivel.
type StockCheckUseCase struct {
	txRunner  TxRunner
	checkRepo repository.StockCheckRepository // lecturas fuera de tx
	log       *logger.Logger
}

// NewStockCheckUseCase construye el caso de uso.
func NewStockCheckUseCase(txRunner TxRunner, checkRepo repository.StockCheckRepository, log *logger.Logger) *StockCheckUseCase {
	return &StockCheckUseCase{txRunner: txRunner, checkRepo: checkRepo, log: log}
}

// RecordStockCheckInput entrada para registrar un chequeo físico.
type RecordStockCheckInput struct {
	Container     entity.ContainerRef
	PhysicalLevel decimal.Decimal
	CheckedBy     string
	Method        string
	CheckedAt     time.Time // cero = ahora
}

// Record toma el snapshot del nivel del sistema bajo lock (consistente con
// mutaciones concurrentes), clasifica la varianza y persiste el chequeo.
func (uc *StockCheckUseCase) Record(ctx context.Context, input RecordStockCheckInput) (*entity.PhysicalStockCheck, error) {
	if input.Container.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.PhysicalLevel.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	now := time.Now()
	checkedAt := input.CheckedAt
	if checkedAt.IsZero() {
		checkedAt = now
	}

	var check *entity.PhysicalStockCheck
	err := uc.txRunner.Run(ctx, func(
		containerRepo repository.ContainerRepository,
		_ repository.FuelTransferRepository,
		_ repository.FuelTransactionRepository,
		_ repository.UnitRepository,
		checkRepo repository.StockCheckRepository,
	) error {
		container, err := containerRepo.GetForUpdate(input.Container)
		if err != nil {
			return err
		}
		if container == nil {
			return domain.ErrNotFound
		}

		sv := fuel.ClassifyStockVariance(container.CurrentLevel, input.PhysicalLevel)
		check = &entity.PhysicalStockCheck{
			ID:                 uuid.New().String(),
			Container:          input.Container,
			SystemLevel:        container.CurrentLevel,
			PhysicalLevel:      input.PhysicalLevel,
			Variance:           sv.Variance,
			VariancePercentage: sv.Percentage,
			VarianceStatus:     sv.Status,
			CheckedBy:          input.CheckedBy,
			Method:             input.Method,
			CheckedAt:          checkedAt,
			CreatedAt:          now,
		}
		return checkRepo.Create(check)
	})
	if err != nil {
		return nil, err
	}

	if check.VarianceStatus == entity.VarianceStatusCritical {
		uc.log.Warn().
			Str("check_id", check.ID).
			Str("container_id", check.Container.ID).
			Str("variance", check.Variance.String()).
			Str("variance_pct", check.VariancePercentage.String()).
			Msg("varianza crítica detectada en chequeo físico")
	}
	return check, nil
}

// Adjust aplica la corrección del nivel del sistema al valor medido
// físicamente. Es de una sola vez: devuelve false (no-op) si el chequeo ya
// fue ajustado o si |varianza| < 0.01. El SetLevel puede fallar con
// ErrOutOfRange si la medición excede la capacidad.
func (uc *StockCheckUseCase) Adjust(ctx context.Context, checkID, reason, operatorID string) (bool, error) {
	adjusted := false
	err := uc.txRunner.Run(ctx, func(
		containerRepo repository.ContainerRepository,
		_ repository.FuelTransferRepository,
		_ repository.FuelTransactionRepository,
		_ repository.UnitRepository,
		checkRepo repository.StockCheckRepository,
	) error {
		check, err := checkRepo.GetForUpdate(checkID)
		if err != nil {
			return err
		}
		if check == nil {
			return domain.ErrNotFound
		}
		if check.SystemAdjusted {
			uc.log.Info().Str("check_id", check.ID).Msg("ajuste rechazado: chequeo ya ajustado")
			return nil
		}
		if check.Variance.Abs().LessThan(adjustmentThreshold) {
			uc.log.Info().Str("check_id", check.ID).Msg("ajuste rechazado: varianza por debajo del umbral")
			return nil
		}

		container, err := containerRepo.GetForUpdate(check.Container)
		if err != nil {
			return err
		}
		if container == nil {
			return domain.ErrNotFound
		}
		if err := container.SetLevel(check.PhysicalLevel); err != nil {
			return err
		}
		if err := containerRepo.UpdateLevel(container.Ref(), container.CurrentLevel); err != nil {
			return err
		}

		now := time.Now()
		variance := check.Variance
		check.SystemAdjusted = true
		check.AdjustmentAmount = &variance
		check.AdjustmentReason = reason
		check.AdjustedAt = &now
		check.AdjustedBy = operatorID
		if err := checkRepo.Update(check); err != nil {
			return err
		}
		adjusted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return adjusted, nil
}

// GetByID obtiene un chequeo (lectura fuera de transacción).
func (uc *StockCheckUseCase) GetByID(ctx context.Context, id string) (*entity.PhysicalStockCheck, error) {
	check, err := uc.checkRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if check == nil {
		return nil, domain.ErrNotFound
	}
	return check, nil
}

// ListByContainer lista los chequeos de un contenedor con paginación.
func (uc *StockCheckUseCase) ListByContainer(ctx context.Context, ref entity.ContainerRef, limit, offset int) ([]*entity.PhysicalStockCheck, error) {
	return uc.checkRepo.ListByContainer(ref, limit, offset)
}
