package entity

import "github.com/shopspring/decimal"

// FuelStorage tanque de almacenamiento estacionario.
// MinimumLevel es el umbral de alerta de stock bajo.
type FuelStorage struct {
	FuelContainer
	MinimumLevel decimal.Decimal
	Location     string
}

// IsLow indica si el nivel está en o por debajo del mínimo configurado.
func (s *FuelStorage) IsLow() bool {
	return s.CurrentLevel.LessThanOrEqual(s.MinimumLevel)
}
