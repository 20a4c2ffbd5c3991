package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnitType tipo de unidad con sus tasas de consumo de referencia,
// usadas para calcular la varianza de consumo esperado vs real.
type UnitType struct {
	ID                 string
	Code               string
	Name               string
	ConsumptionPerHour decimal.Decimal // litros por hora de operación
	ConsumptionPerKm   decimal.Decimal // litros por kilómetro recorrido
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
