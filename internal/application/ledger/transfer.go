package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Combustible-api/internal/domain"
	"github.com/jhoicas/Combustible-api/internal/domain/entity"
	"github.com/jhoicas/Combustible-api/internal/domain/repository"
	"github.com/jhoicas/Combustible-api/pkg/logger"
)

// TransferUseCase motor de transferencias tanque -> camión.
// Crear/editar/borrar ejecutan dentro de una transacción con lock de fila
// sobre ambos contenedores (siempre tanque primero, luego camión: orden fijo
// entre tablas, sin deadlock entre transferencias concurrentes).
type TransferUseCase struct {
	txRunner     TxRunner
	transferRepo repository.FuelTransferRepository // lecturas fuera de tx
	log          *logger.Logger
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(txRunner TxRunner, transferRepo repository.FuelTransferRepository, log *logger.Logger) *TransferUseCase {
	return &TransferUseCase{txRunner: txRunner, transferRepo: transferRepo, log: log}
}

// CreateTransferInput entrada para crear una transferencia.
// SessionID es la sesión/turno diario (clave de agrupación externa).
type CreateTransferInput struct {
	StorageID     string
	TruckID       string
	Amount        decimal.Decimal
	OperatorID    string
	SessionID     string
	TransferredAt time.Time // cero = ahora
}

// TransferResult transferencia confirmada más las advertencias no fatales
// de la validación (ej. tipos de combustible distintos).
type TransferResult struct {
	Transfer *entity.FuelTransfer
	Warnings []string
}

// Create valida y ejecuta la transferencia de forma atómica:
//  1. bloquea tanque y camión (SELECT FOR UPDATE, tanque primero),
//  2. toma los snapshots "before" del estado persistido (no del caller),
//  3. valida acumulando todas las reglas violadas,
//  4. muta ambos contenedores y registra los snapshots "after",
//  5. guarda la transferencia en el mismo commit.
//
// Si cualquier paso falla la transacción aborta sin escrituras parciales.
func (uc *TransferUseCase) Create(ctx context.Context, input CreateTransferInput) (*TransferResult, error) {
	if input.StorageID == "" || input.TruckID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	transferredAt := input.TransferredAt
	if transferredAt.IsZero() {
		transferredAt = now
	}

	var result TransferResult
	err := uc.txRunner.Run(ctx, func(
		containerRepo repository.ContainerRepository,
		transferRepo repository.FuelTransferRepository,
		_ repository.FuelTransactionRepository,
		_ repository.UnitRepository,
		_ repository.StockCheckRepository,
	) error {
		storage, err := containerRepo.GetForUpdate(entity.StorageRef(input.StorageID))
		if err != nil {
			return err
		}
		truck, err := containerRepo.GetForUpdate(entity.TruckRef(input.TruckID))
		if err != nil {
			return err
		}
		if storage == nil || truck == nil {
			return domain.ErrNotFound
		}

		v := validateTransfer(storage, truck, input.Amount)
		if v.HasIssues() {
			return v
		}

		transfer := &entity.FuelTransfer{
			ID:                 uuid.New().String(),
			StorageID:          storage.ID,
			TruckID:            truck.ID,
			Amount:             input.Amount,
			FuelType:           storage.FuelType,
			StorageLevelBefore: storage.CurrentLevel,
			TruckLevelBefore:   truck.CurrentLevel,
			OperatorID:         input.OperatorID,
			SessionID:          input.SessionID,
			TransferredAt:      transferredAt,
			CreatedAt:          now,
			UpdatedAt:          now,
		}

		if err := storage.RemoveFuel(input.Amount); err != nil {
			return err
		}
		if err := truck.AddFuel(input.Amount); err != nil {
			return err
		}
		if err := containerRepo.UpdateLevel(storage.Ref(), storage.CurrentLevel); err != nil {
			return err
		}
		if err := containerRepo.UpdateLevel(truck.Ref(), truck.CurrentLevel); err != nil {
			return err
		}

		transfer.StorageLevelAfter = storage.CurrentLevel
		transfer.TruckLevelAfter = truck.CurrentLevel
		if err := transferRepo.Create(transfer); err != nil {
			return err
		}

		result.Transfer = transfer
		result.Warnings = v.Warnings
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, w := range result.Warnings {
		uc.log.Warn().
			Str("transfer_id", result.Transfer.ID).
			Str("storage_id", input.StorageID).
			Str("truck_id", input.TruckID).
			Msg(w)
	}
	return &result, nil
}

// UpdateAmount edita la cantidad de una transferencia ya confirmada aplicando
// solo el delta vs la cantidad original a ambos contenedores (no re-aplica la
// cantidad completa), re-validando disponibilidad/capacidad para ese delta.
func (uc *TransferUseCase) UpdateAmount(ctx context.Context, transferID string, newAmount decimal.Decimal) (*entity.FuelTransfer, error) {
	if newAmount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	var updated *entity.FuelTransfer
	err := uc.txRunner.Run(ctx, func(
		containerRepo repository.ContainerRepository,
		transferRepo repository.FuelTransferRepository,
		_ repository.FuelTransactionRepository,
		_ repository.UnitRepository,
		_ repository.StockCheckRepository,
	) error {
		transfer, err := transferRepo.GetForUpdate(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}

		delta := newAmount.Sub(transfer.Amount)
		if delta.IsZero() {
			updated = transfer
			return nil
		}

		storage, err := containerRepo.GetForUpdate(entity.StorageRef(transfer.StorageID))
		if err != nil {
			return err
		}
		truck, err := containerRepo.GetForUpdate(entity.TruckRef(transfer.TruckID))
		if err != nil {
			return err
		}
		if storage == nil || truck == nil {
			return domain.ErrNotFound
		}

		if delta.GreaterThan(decimal.Zero) {
			// Se transfiere más: el tanque entrega el delta, el camión lo recibe.
			if err := storage.RemoveFuel(delta); err != nil {
				return err
			}
			if err := truck.AddFuel(delta); err != nil {
				return err
			}
		} else {
			// Se transfiere menos: el camión devuelve |delta| al tanque.
			back := delta.Neg()
			if err := truck.RemoveFuel(back); err != nil {
				return err
			}
			if err := storage.AddFuel(back); err != nil {
				return err
			}
		}
		if err := containerRepo.UpdateLevel(storage.Ref(), storage.CurrentLevel); err != nil {
			return err
		}
		if err := containerRepo.UpdateLevel(truck.Ref(), truck.CurrentLevel); err != nil {
			return err
		}

		// Snapshots "after" coherentes con la nueva cantidad; los "before"
		// quedan como registro histórico del momento de creación.
		transfer.Amount = newAmount
		transfer.StorageLevelAfter = transfer.StorageLevelBefore.Sub(newAmount)
		transfer.TruckLevelAfter = transfer.TruckLevelBefore.Add(newAmount)
		transfer.UpdatedAt = time.Now()
		if err := transferRepo.Update(transfer); err != nil {
			return err
		}
		updated = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete revierte la transferencia con una acción compensatoria: devuelve la
// cantidad al tanque y la retira del camión, bajo la misma disciplina de
// locks. Puede fallar (ErrRollback) si el camión ya despachó por debajo de la
// cantidad a devolver o el tanque no tiene capacidad para recibirla; el fallo
// se reporta, nunca se ignora.
func (uc *TransferUseCase) Delete(ctx context.Context, transferID string) error {
	return uc.txRunner.Run(ctx, func(
		containerRepo repository.ContainerRepository,
		transferRepo repository.FuelTransferRepository,
		_ repository.FuelTransactionRepository,
		_ repository.UnitRepository,
		_ repository.StockCheckRepository,
	) error {
		transfer, err := transferRepo.GetForUpdate(transferID)
		if err != nil {
			return err
		}
		if transfer == nil {
			return domain.ErrNotFound
		}

		storage, err := containerRepo.GetForUpdate(entity.StorageRef(transfer.StorageID))
		if err != nil {
			return err
		}
		truck, err := containerRepo.GetForUpdate(entity.TruckRef(transfer.TruckID))
		if err != nil {
			return err
		}
		if storage == nil || truck == nil {
			return domain.ErrNotFound
		}

		if err := truck.RemoveFuel(transfer.Amount); err != nil {
			return fmt.Errorf("%w: el camión %s no puede devolver %s: %v",
				domain.ErrRollback, truck.Code, transfer.Amount, err)
		}
		if err := storage.AddFuel(transfer.Amount); err != nil {
			return fmt.Errorf("%w: el tanque %s no puede recibir %s: %v",
				domain.ErrRollback, storage.Code, transfer.Amount, err)
		}
		if err := containerRepo.UpdateLevel(storage.Ref(), storage.CurrentLevel); err != nil {
			return err
		}
		if err := containerRepo.UpdateLevel(truck.Ref(), truck.CurrentLevel); err != nil {
			return err
		}
		return transferRepo.Delete(transfer.ID)
	})
}

// GetByID obtiene una transferencia (lectura fuera de transacción).
func (uc *TransferUseCase) GetByID(ctx context.Context, id string) (*entity.FuelTransfer, error) {
	transfer, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	return transfer, nil
}

// List lista transferencias por rango de fechas con paginación.
func (uc *TransferUseCase) List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.FuelTransfer, error) {
	return uc.transferRepo.List(from, to, limit, offset)
}

// validateTransfer acumula todas las reglas violadas para feedback completo
// al usuario. La discrepancia de tipo de combustible es advertencia, no
// rechazo (comportamiento heredado del flujo original).
func validateTransfer(storage, truck *entity.FuelContainer, amount decimal.Decimal) *domain.ValidationError {
	v := &domain.ValidationError{}
	if amount.LessThanOrEqual(decimal.Zero) {
		v.Add("la cantidad a transferir debe ser mayor que cero")
	}
	if !storage.IsActive {
		v.Add(fmt.Sprintf("el tanque %s está inactivo", storage.Code))
	}
	if !truck.IsActive {
		v.Add(fmt.Sprintf("el camión %s está inactivo", truck.Code))
	}
	if amount.GreaterThan(decimal.Zero) {
		if storage.CurrentLevel.LessThan(amount) {
			v.Add(fmt.Sprintf("combustible insuficiente en el tanque %s: disponible %s, solicitado %s",
				storage.Code, storage.CurrentLevel, amount))
		}
		if truck.RemainingCapacity().LessThan(amount) {
			v.Add(fmt.Sprintf("capacidad restante insuficiente en el camión %s: libre %s, solicitado %s",
				truck.Code, truck.RemainingCapacity(), amount))
		}
	}
	if storage.FuelType != truck.FuelType {
		v.Warn(fmt.Sprintf("tipo de combustible no coincide: tanque %s (%s) vs camión %s (%s)",
			storage.Code, storage.FuelType, truck.Code, truck.FuelType))
	}
	return v
}
