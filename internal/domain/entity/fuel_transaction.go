package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FuelTransaction despacho de combustible desde un contenedor (tanque o
// camión) hacia una unidad de equipo. Los medidores previos se siembran
// desde la última transacción de la unidad (o su lectura base), nunca
// los elige el caller. Los campos de eficiencia son nil cuando el delta
// correspondiente es cero (no calculable, distinto de cero).
type FuelTransaction struct {
	ID                string
	UnitID            string
	Source            ContainerRef
	FuelAmount        decimal.Decimal
	PreviousHourMeter decimal.Decimal
	CurrentHourMeter  decimal.Decimal
	PreviousOdometer  decimal.Decimal
	CurrentOdometer   decimal.Decimal
	SourceLevelBefore decimal.Decimal
	SourceLevelAfter  decimal.Decimal

	EfficiencyPerHour  *decimal.Decimal // litros por hora
	EfficiencyPerKm    *decimal.Decimal // litros por km
	CombinedEfficiency *decimal.Decimal // 0.7*hora + 0.3*km
	CalculatedAt       *time.Time

	OperatorID  string
	SessionID   string
	DispensedAt time.Time
	CreatedAt   time.Time
}

// HourDiff horas de operación entre medidores.
func (t *FuelTransaction) HourDiff() decimal.Decimal {
	return t.CurrentHourMeter.Sub(t.PreviousHourMeter)
}

// KmDiff kilómetros recorridos entre medidores.
func (t *FuelTransaction) KmDiff() decimal.Decimal {
	return t.CurrentOdometer.Sub(t.PreviousOdometer)
}
