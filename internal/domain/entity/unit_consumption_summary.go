package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnitConsumptionSummary agregado diario de las transacciones de una unidad.
// Es un caché derivado: se reconstruye completo desde las transacciones
// fuente (nunca se parchea incrementalmente) y se elimina cuando las
// transacciones del día desaparecen.
type UnitConsumptionSummary struct {
	ID               string
	UnitID           string
	Date             time.Time // fecha (día) del agregado
	TransactionCount int
	TotalFuel        decimal.Decimal
	TotalHours       decimal.Decimal
	TotalKm          decimal.Decimal

	AvgEfficiency *decimal.Decimal // promedio de CombinedEfficiency (nil si ninguna calculable)
	MinEfficiency *decimal.Decimal
	MaxEfficiency *decimal.Decimal

	UpdatedAt time.Time
}
