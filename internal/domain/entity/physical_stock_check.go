package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de varianza de un chequeo físico (clasificación por porcentaje
// Y monto absoluto, ver fuel.ClassifyStockVariance).
const (
	VarianceStatusNormal   = "NORMAL"
	VarianceStatusMinor    = "MINOR"
	VarianceStatusWarning  = "WARNING"
	VarianceStatusCritical = "CRITICAL"
)

// PhysicalStockCheck conciliación entre el nivel del sistema y una medición
// física de un contenedor. Una vez SystemAdjusted es true el registro es
// inmutable respecto a nuevos ajustes (ajuste de una sola vez).
type PhysicalStockCheck struct {
	ID                 string
	Container          ContainerRef
	SystemLevel        decimal.Decimal // snapshot al momento del chequeo
	PhysicalLevel      decimal.Decimal // medición física
	Variance           decimal.Decimal // physical - system
	VariancePercentage decimal.Decimal
	VarianceStatus     string

	SystemAdjusted   bool
	AdjustmentAmount *decimal.Decimal
	AdjustmentReason string
	AdjustedAt       *time.Time
	AdjustedBy       string

	CheckedBy string
	Method    string // DIPSTICK, FLOW_METER, VISUAL, ...
	CheckedAt time.Time
	CreatedAt time.Time
}
