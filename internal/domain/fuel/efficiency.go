// Package fuel contiene los servicios de dominio puros del ledger de
// combustible: eficiencia de consumo, varianza vs tasas configuradas y
// clasificación de varianza de stock. Sin efectos secundarios.
package fuel

import "github.com/shopspring/decimal"

// Pesos del blend de eficiencia combinada: 70% horómetro, 30% odómetro.
var (
	combinedHourWeight = decimal.NewFromFloat(0.7)
	combinedKmWeight   = decimal.NewFromFloat(0.3)

	hundred = decimal.NewFromInt(100)
)

// Efficiency resultado del cálculo de eficiencia de un despacho.
// nil significa "no calculable" (delta cero), nunca cero.
type Efficiency struct {
	PerHour  *decimal.Decimal
	PerKm    *decimal.Decimal
	Combined *decimal.Decimal
}

// PerHour litros por hora: fuelAmount/hourDiff, nil si hourDiff <= 0.
func PerHour(fuelAmount, hourDiff decimal.Decimal) *decimal.Decimal {
	if hourDiff.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	v := fuelAmount.Div(hourDiff)
	return &v
}

// PerKm litros por kilómetro: fuelAmount/kmDiff, nil si kmDiff <= 0.
func PerKm(fuelAmount, kmDiff decimal.Decimal) *decimal.Decimal {
	if kmDiff.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	v := fuelAmount.Div(kmDiff)
	return &v
}

// Combined blend 70/30 de las eficiencias por hora y por km.
// Si solo una está presente se usa esa; si ninguna, nil.
func Combined(perHour, perKm *decimal.Decimal) *decimal.Decimal {
	switch {
	case perHour != nil && perKm != nil:
		v := combinedHourWeight.Mul(*perHour).Add(combinedKmWeight.Mul(*perKm))
		return &v
	case perHour != nil:
		v := *perHour
		return &v
	case perKm != nil:
		v := *perKm
		return &v
	default:
		return nil
	}
}

// Compute calcula las tres eficiencias a partir de los medidores.
func Compute(fuelAmount, prevHour, currHour, prevOdo, currOdo decimal.Decimal) Efficiency {
	perHour := PerHour(fuelAmount, currHour.Sub(prevHour))
	perKm := PerKm(fuelAmount, currOdo.Sub(prevOdo))
	return Efficiency{
		PerHour:  perHour,
		PerKm:    perKm,
		Combined: Combined(perHour, perKm),
	}
}

// Estados de eficiencia de una transferencia.
const (
	TransferStatusExcellent = "EXCELLENT"
	TransferStatusGood      = "GOOD"
	TransferStatusFair      = "FAIR"
	TransferStatusPoor      = "POOR"
	TransferStatusVeryPoor  = "VERY_POOR"
)

// TransferEfficiency mide qué tan limpia quedó una transferencia a partir
// de sus snapshots: 100 - (|varianza tanque| + |varianza camión|)/amount*100,
// con piso en 0. Una transferencia sin desviaciones da 100.
func TransferEfficiency(storageVariance, truckVariance, amount decimal.Decimal) decimal.Decimal {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	loss := storageVariance.Abs().Add(truckVariance.Abs()).Div(amount).Mul(hundred)
	eff := hundred.Sub(loss)
	if eff.IsNegative() {
		return decimal.Zero
	}
	return eff.Round(2)
}

// TransferStatus clasifica la eficiencia de transferencia en bandas.
func TransferStatus(efficiency decimal.Decimal) string {
	switch {
	case efficiency.GreaterThanOrEqual(decimal.NewFromInt(99)):
		return TransferStatusExcellent
	case efficiency.GreaterThanOrEqual(decimal.NewFromInt(95)):
		return TransferStatusGood
	case efficiency.GreaterThanOrEqual(decimal.NewFromInt(90)):
		return TransferStatusFair
	case efficiency.GreaterThanOrEqual(decimal.NewFromInt(80)):
		return TransferStatusPoor
	default:
		return TransferStatusVeryPoor
	}
}
