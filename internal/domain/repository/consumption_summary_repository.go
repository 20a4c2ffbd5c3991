package repository

import (
	"time"

	"github.com/jhoicas/Combustible-api/internal/domain/entity"
)

// ConsumptionSummaryRepository puerto de persistencia para resúmenes de
// consumo por unidad y día. Upsert porque el resumen se reconstruye
// completo desde la fuente de verdad.
type ConsumptionSummaryRepository interface {
	Upsert(summary *entity.UnitConsumptionSummary) error
	Get(unitID string, date time.Time) (*entity.UnitConsumptionSummary, error)
	Delete(unitID string, date time.Time) error
	ListBetween(from, to time.Time) ([]*entity.UnitConsumptionSummary, error)
	ListByUnit(unitID string, from, to time.Time) ([]*entity.UnitConsumptionSummary, error)
}
