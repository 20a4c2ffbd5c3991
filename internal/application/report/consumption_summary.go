package report

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

// ConsumptionSummaryUseCase reconstruye los resúmenes diarios de consumo por
// unidad desde las transacciones (fuente de verdad). El resumen es un caché:
// nunca se parchea incrementalmente, se recalcula completo y se elimina
// cuando el día queda sin transacciones.
type ConsumptionSummaryUseCase struct {
	txnRepo     repository.FuelTransactionRepository
	summaryRepo repository.ConsumptionSummaryRepository
	unitRepo    repository.UnitRepository
	log         *logger.Logger
}

// NewConsumptionSummaryUseCase construye el caso de uso.
func NewConsumptionSummaryUseCase(
	txnRepo repository.FuelTransactionRepository,
	summaryRepo repository.ConsumptionSummaryRepository,
	unitRepo repository.UnitRepository,
	log *logger.Logger,
) *ConsumptionSummaryUseCase {
	return &ConsumptionSummaryUseCase{
		txnRepo:     txnRepo,
		summaryRepo: summaryRepo,
		unitRepo:    unitRepo,
		log:         log,
	}
}

// RebuildForUnit recalcula el resumen de una unidad para un día calendario.
// Devuelve nil (y elimina el resumen existente) si el día no tiene
// transacciones.
func (uc *ConsumptionSummaryUseCase) RebuildForUnit(ctx context.Context, unitID string, day time.Time) (*entity.UnitConsumptionSummary, error) {
	if unitID == "" {
		return nil, domain.ErrInvalidInput
	}
	day = truncateToDay(day)

	txns, err := uc.txnRepo.ListByUnitAndDay(unitID, day)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		if err := uc.summaryRepo.Delete(unitID, day); err != nil {
			return nil, err
		}
		return nil, nil
	}

	summary := buildSummary(unitID, day, txns)
	if err := uc.summaryRepo.Upsert(summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// RebuildDay recalcula los resúmenes de todas las unidades activas para un
// día (job nocturno de agregación; solo lectura del ledger).
func (uc *ConsumptionSummaryUseCase) RebuildDay(ctx context.Context, day time.Time) error {
	units, err := uc.unitRepo.ListActive()
	if err != nil {
		return err
	}
	for _, unit := range units {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := uc.RebuildForUnit(ctx, unit.ID, day); err != nil {
			uc.log.Error().Err(err).
				Str("unit_id", unit.ID).
				Msg("reconstrucción de resumen de consumo falló")
		}
	}
	return nil
}

// ListBetween lista resúmenes en un rango de fechas.
func (uc *ConsumptionSummaryUseCase) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.UnitConsumptionSummary, error) {
	return uc.summaryRepo.ListBetween(from, to)
}

// RateUnit califica la eficiencia combinada reciente de una unidad frente al
// promedio de 30 días de su tipo de unidad.
func (uc *ConsumptionSummaryUseCase) RateUnit(ctx context.Context, unitID string) (string, error) {
	unit, err := uc.unitRepo.GetByID(unitID)
	if err != nil {
		return "", err
	}
	if unit == nil {
		return "", domain.ErrNotFound
	}
	last, err := uc.txnRepo.GetLastByUnit(unitID)
	if err != nil {
		return "", err
	}
	if last == nil || last.CombinedEfficiency == nil {
		return fuel.RatingNotRated, nil
	}
	since := time.Now().AddDate(0, 0, -30)
	avg, err := uc.txnRepo.AvgCombinedByUnitType(unit.UnitTypeID, since)
	if err != nil {
		return "", err
	}
	if avg == nil || avg.IsZero() {
		return fuel.RatingNotRated, nil
	}
	variance := fuel.ConsumptionVariancePct(*last.CombinedEfficiency, *avg)
	return fuel.Rating(variance), nil
}

// buildSummary agrega las transacciones de un día en un resumen.
func buildSummary(unitID string, day time.Time, txns []*entity.FuelTransaction) *entity.UnitConsumptionSummary {
	summary := &entity.UnitConsumptionSummary{
		ID:               uuid.New().String(),
		UnitID:           unitID,
		Date:             day,
		TransactionCount: len(txns),
		UpdatedAt:        time.Now(),
	}
	var effSum decimal.Decimal
	effCount := 0
	for _, txn := range txns {
		summary.TotalFuel = summary.TotalFuel.Add(txn.FuelAmount)
		summary.TotalHours = summary.TotalHours.Add(txn.HourDiff())
		summary.TotalKm = summary.TotalKm.Add(txn.KmDiff())
		if txn.CombinedEfficiency == nil {
			continue
		}
		eff := *txn.CombinedEfficiency
		effSum = effSum.Add(eff)
		effCount++
		if summary.MinEfficiency == nil || eff.LessThan(*summary.MinEfficiency) {
			v := eff
			summary.MinEfficiency = &v
		}
		if summary.MaxEfficiency == nil || eff.GreaterThan(*summary.MaxEfficiency) {
			v := eff
			summary.MaxEfficiency = &v
		}
	}
	if effCount > 0 {
		avg := effSum.Div(decimal.NewFromInt(int64(effCount)))
		summary.AvgEfficiency = &avg
	}
	return summary
}

// truncateToDay normaliza un instante a su día calendario (UTC).
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
