package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unit unidad de equipo que consume combustible (excavadora, volqueta, etc.).
// CurrentHourMeter y CurrentOdometer son monotónicos no decrecientes a través
// de las transacciones de despacho; el motor de despacho los valida y actualiza.
type Unit struct {
	ID               string
	Code             string
	Name             string
	UnitTypeID       string
	CurrentHourMeter decimal.Decimal
	CurrentOdometer  decimal.Decimal
	FuelTankCapacity *decimal.Decimal // tope opcional para un solo despacho
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
