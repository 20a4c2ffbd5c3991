package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FuelTransfer movimiento de combustible de un tanque de almacenamiento a un
// camión cisterna. Los snapshots before/after se escriben una sola vez al
// crear (y solo el motor los reescribe al editar la cantidad); son copias
// históricas, no referencias vivas al nivel del contenedor.
type FuelTransfer struct {
	ID                 string
	StorageID          string
	TruckID            string
	Amount             decimal.Decimal
	FuelType           FuelType
	StorageLevelBefore decimal.Decimal
	StorageLevelAfter  decimal.Decimal
	TruckLevelBefore   decimal.Decimal
	TruckLevelAfter    decimal.Decimal
	OperatorID         string
	SessionID          string // daily_session_id: clave de agrupación por turno, el core no la muta
	TransferredAt      time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// StorageVariance desviación del snapshot del tanque respecto al valor
// esperado (after - (before - amount)); 0 en una transferencia limpia.
func (t *FuelTransfer) StorageVariance() decimal.Decimal {
	expected := t.StorageLevelBefore.Sub(t.Amount)
	return t.StorageLevelAfter.Sub(expected)
}

// TruckVariance desviación del snapshot del camión respecto al valor esperado.
func (t *FuelTransfer) TruckVariance() decimal.Decimal {
	expected := t.TruckLevelBefore.Add(t.Amount)
	return t.TruckLevelAfter.Sub(expected)
}
