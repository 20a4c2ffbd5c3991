package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Combustible-api/internal/domain"
	"github.com/jhoicas/Combustible-api/internal/domain/entity"
	"github.com/jhoicas/Combustible-api/internal/domain/fuel"
	"github.com/jhoicas/Combustible-api/internal/domain/repository"
	"github.com/jhoicas/Combustible-api/pkg/logger"
)

// DispenseUseCase motor de despachos de combustible a unidades de equipo.
// La fuente es polimórfica (tanque o camión) vía ContainerRef.
type DispenseUseCase struct {
	txRunner     TxRunner
	txnRepo      repository.FuelTransactionRepository // lecturas fuera de tx
	unitTypeRepo repository.UnitTypeRepository
	unitRepo     repository.UnitRepository
	log          *logger.Logger
}

// NewDispenseUseCase construye el caso de uso.
func NewDispenseUseCase(
	txRunner TxRunner,
	txnRepo repository.FuelTransactionRepository,
	unitRepo repository.UnitRepository,
	unitTypeRepo repository.UnitTypeRepository,
	log *logger.Logger,
) *DispenseUseCase {
	return &DispenseUseCase{
		txRunner:     txRunner,
		txnRepo:      txnRepo,
		unitRepo:     unitRepo,
		unitTypeRepo: unitTypeRepo,
		log:          log,
	}
}

// CreateTransactionInput entrada para registrar un despacho.
// Los medidores previos NO vienen del caller: se siembran desde la última
// transacción de la unidad (o su lectura base si no existe).
type CreateTransactionInput struct {
	UnitID           string
	Source           entity.ContainerRef
	FuelAmount       decimal.Decimal
	CurrentHourMeter decimal.Decimal
	CurrentOdometer  decimal.Decimal
	OperatorID       string
	SessionID        string
	DispensedAt      time.Time // cero = ahora
}

// DispenseResult transacción confirmada más el chequeo de consumo razonable
// contra las tasas del tipo de unidad (nil si no hay tasas configuradas).
type DispenseResult struct {
	Transaction  *entity.FuelTransaction
	ExpectedFuel *decimal.Decimal
	VariancePct  *decimal.Decimal
	Reasonable   *bool
	Warnings     []string
}

// Create registra un despacho de forma atómica:
//  1. bloquea la unidad (serializa la siembra de medidores) y la fuente,
//  2. resuelve previous_hour_meter/previous_odometer de la última
//     transacción o de la lectura base de la unidad,
//  3. valida acumulando todas las reglas violadas,
//  4. retira el combustible de la fuente y registra los snapshots,
//  5. actualiza los medidores de la unidad,
//  6. calcula la eficiencia (hora/km/combinada) en el mismo commit.
func (uc *DispenseUseCase) Create(ctx context.Context, input CreateTransactionInput) (*DispenseResult, error) {
	if input.UnitID == "" || input.Source.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	dispensedAt := input.DispensedAt
	if dispensedAt.IsZero() {
		dispensedAt = now
	}

	var result DispenseResult
	var unitTypeID string
	err := uc.txRunner.Run(ctx, func(
		containerRepo repository.ContainerRepository,
		_ repository.FuelTransferRepository,
		txnRepo repository.FuelTransactionRepository,
		unitRepo repository.UnitRepository,
		_ repository.StockCheckRepository,
	) error {
		unit, err := unitRepo.GetForUpdate(input.UnitID)
		if err != nil {
			return err
		}
		if unit == nil {
			return domain.ErrNotFound
		}
		source, err := containerRepo.GetForUpdate(input.Source)
		if err != nil {
			return err
		}
		if source == nil {
			return domain.ErrNotFound
		}

		prevHour := unit.CurrentHourMeter
		prevOdo := unit.CurrentOdometer
		if last, err := txnRepo.GetLastByUnit(unit.ID); err != nil {
			return err
		} else if last != nil {
			prevHour = last.CurrentHourMeter
			prevOdo = last.CurrentOdometer
		}

		v := validateDispense(unit, source, input, prevHour, prevOdo)
		if v.HasIssues() {
			return v
		}

		txn := &entity.FuelTransaction{
			ID:                uuid.New().String(),
			UnitID:            unit.ID,
			Source:            input.Source,
			FuelAmount:        input.FuelAmount,
			PreviousHourMeter: prevHour,
			CurrentHourMeter:  input.CurrentHourMeter,
			PreviousOdometer:  prevOdo,
			CurrentOdometer:   input.CurrentOdometer,
			SourceLevelBefore: source.CurrentLevel,
			OperatorID:        input.OperatorID,
			SessionID:         input.SessionID,
			DispensedAt:       dispensedAt,
			CreatedAt:         now,
		}

		if err := source.RemoveFuel(input.FuelAmount); err != nil {
			return err
		}
		if err := containerRepo.UpdateLevel(source.Ref(), source.CurrentLevel); err != nil {
			return err
		}
		txn.SourceLevelAfter = source.CurrentLevel

		eff := fuel.Compute(txn.FuelAmount, txn.PreviousHourMeter, txn.CurrentHourMeter,
			txn.PreviousOdometer, txn.CurrentOdometer)
		txn.EfficiencyPerHour = eff.PerHour
		txn.EfficiencyPerKm = eff.PerKm
		txn.CombinedEfficiency = eff.Combined
		txn.CalculatedAt = &now

		if err := txnRepo.Create(txn); err != nil {
			return err
		}
		if err := unitRepo.UpdateMeters(unit.ID, input.CurrentHourMeter, input.CurrentOdometer); err != nil {
			return err
		}

		result.Transaction = txn
		result.Warnings = v.Warnings
		unitTypeID = unit.UnitTypeID
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.checkConsumption(&result, unitTypeID)
	return &result, nil
}

// checkConsumption compara el consumo real contra el esperado según las
// tasas del tipo de unidad (lectura best-effort fuera de la transacción;
// no afecta el despacho ya confirmado).
func (uc *DispenseUseCase) checkConsumption(result *DispenseResult, unitTypeID string) {
	if unitTypeID == "" {
		return
	}
	unitType, err := uc.unitTypeRepo.GetByID(unitTypeID)
	if err != nil || unitType == nil {
		return
	}
	txn := result.Transaction
	expected := fuel.ExpectedConsumption(txn.HourDiff(), txn.KmDiff(),
		unitType.ConsumptionPerHour, unitType.ConsumptionPerKm)
	result.ExpectedFuel = &expected
	result.VariancePct = fuel.ConsumptionVariancePct(txn.FuelAmount, expected)
	reasonable := fuel.IsReasonableConsumption(txn.FuelAmount, expected)
	result.Reasonable = &reasonable
	if !reasonable {
		uc.log.Warn().
			Str("transaction_id", txn.ID).
			Str("unit_id", txn.UnitID).
			Str("actual", txn.FuelAmount.String()).
			Str("expected", expected.String()).
			Msg("consumo fuera del rango razonable [0.5x, 1.5x]")
	}
}

// Delete revierte el despacho devolviendo el combustible a la fuente.
// Asimetría intencional vs Transfer.Delete: los medidores de la unidad NO
// se revierten (son registro físico monotónico, no reversible).
func (uc *DispenseUseCase) Delete(ctx context.Context, transactionID string) error {
	return uc.txRunner.Run(ctx, func(
		containerRepo repository.ContainerRepository,
		_ repository.FuelTransferRepository,
		txnRepo repository.FuelTransactionRepository,
		_ repository.UnitRepository,
		_ repository.StockCheckRepository,
	) error {
		txn, err := txnRepo.GetForUpdate(transactionID)
		if err != nil {
			return err
		}
		if txn == nil {
			return domain.ErrNotFound
		}
		source, err := containerRepo.GetForUpdate(txn.Source)
		if err != nil {
			return err
		}
		if source == nil {
			return domain.ErrNotFound
		}
		if err := source.AddFuel(txn.FuelAmount); err != nil {
			return fmt.Errorf("%w: la fuente %s no puede recibir %s de vuelta: %v",
				domain.ErrRollback, source.Code, txn.FuelAmount, err)
		}
		if err := containerRepo.UpdateLevel(source.Ref(), source.CurrentLevel); err != nil {
			return err
		}
		return txnRepo.Delete(txn.ID)
	})
}

// GetByID obtiene un despacho (lectura fuera de transacción).
func (uc *DispenseUseCase) GetByID(ctx context.Context, id string) (*entity.FuelTransaction, error) {
	txn, err := uc.txnRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, domain.ErrNotFound
	}
	return txn, nil
}

// ListByUnit lista los despachos de una unidad por rango de fechas.
func (uc *DispenseUseCase) ListByUnit(ctx context.Context, unitID string, from, to *time.Time, limit, offset int) ([]*entity.FuelTransaction, error) {
	return uc.txnRepo.ListByUnit(unitID, from, to, limit, offset)
}

// ListBySource lista los despachos de un contenedor por rango de fechas.
func (uc *DispenseUseCase) ListBySource(ctx context.Context, source entity.ContainerRef, from, to *time.Time, limit, offset int) ([]*entity.FuelTransaction, error) {
	return uc.txnRepo.ListBySource(source, from, to, limit, offset)
}

// validateDispense acumula todas las reglas violadas del despacho.
func validateDispense(unit *entity.Unit, source *entity.FuelContainer, input CreateTransactionInput, prevHour, prevOdo decimal.Decimal) *domain.ValidationError {
	v := &domain.ValidationError{}
	if input.FuelAmount.LessThanOrEqual(decimal.Zero) {
		v.Add("la cantidad a despachar debe ser mayor que cero")
	}
	if !unit.IsActive {
		v.Add(fmt.Sprintf("la unidad %s está inactiva", unit.Code))
	}
	if !source.IsActive {
		v.Add(fmt.Sprintf("la fuente %s está inactiva", source.Code))
	}
	if input.CurrentHourMeter.LessThan(prevHour) {
		v.Add(fmt.Sprintf("el horómetro retrocede: actual %s < previo %s",
			input.CurrentHourMeter, prevHour))
	}
	if input.CurrentOdometer.LessThan(prevOdo) {
		v.Add(fmt.Sprintf("el odómetro retrocede: actual %s < previo %s",
			input.CurrentOdometer, prevOdo))
	}
	if input.FuelAmount.GreaterThan(decimal.Zero) {
		if source.CurrentLevel.LessThan(input.FuelAmount) {
			v.Add(fmt.Sprintf("combustible insuficiente en la fuente %s: disponible %s, solicitado %s",
				source.Code, source.CurrentLevel, input.FuelAmount))
		}
		if unit.FuelTankCapacity != nil && input.FuelAmount.GreaterThan(*unit.FuelTankCapacity) {
			v.Add(fmt.Sprintf("la cantidad %s supera la capacidad del tanque de la unidad (%s)",
				input.FuelAmount, unit.FuelTankCapacity))
		}
	}
	return v
}
