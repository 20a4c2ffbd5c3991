package fuel

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Combustible-api/internal/domain/entity"
)

// Calificaciones de consumo de una unidad frente al promedio de su tipo.
const (
	RatingExcellent    = "EXCELLENT"
	RatingGood         = "GOOD"
	RatingAverage      = "AVERAGE"
	RatingBelowAverage = "BELOW_AVERAGE"
	RatingPoor         = "POOR"
	RatingNotRated     = "NOT_RATED"
)

// Factores del chequeo de consumo razonable: real dentro de [0.5x, 1.5x]
// del esperado.
var (
	reasonableLow  = decimal.NewFromFloat(0.5)
	reasonableHigh = decimal.NewFromFloat(1.5)
)

// ExpectedConsumption consumo esperado según las tasas del tipo de unidad:
// hourDiff*ratePerHour + kmDiff*ratePerKm.
func ExpectedConsumption(hourDiff, kmDiff, ratePerHour, ratePerKm decimal.Decimal) decimal.Decimal {
	return hourDiff.Mul(ratePerHour).Add(kmDiff.Mul(ratePerKm))
}

// ConsumptionVariancePct varianza porcentual del consumo real vs el
// esperado: (actual-expected)/expected*100. nil si el esperado es 0
// (no calculable, no cero).
func ConsumptionVariancePct(actual, expected decimal.Decimal) *decimal.Decimal {
	if expected.IsZero() {
		return nil
	}
	v := actual.Sub(expected).Div(expected).Mul(hundred).Round(2)
	return &v
}

// IsReasonableConsumption valida que el consumo real esté dentro de
// [0.5x, 1.5x] del esperado. Con esperado 0 solo un real 0 es razonable.
func IsReasonableConsumption(actual, expected decimal.Decimal) bool {
	if expected.IsZero() {
		return actual.IsZero()
	}
	return actual.GreaterThanOrEqual(expected.Mul(reasonableLow)) &&
		actual.LessThanOrEqual(expected.Mul(reasonableHigh))
}

// Rating clasifica la varianza de la eficiencia combinada frente al promedio
// de 30 días del tipo de unidad. Menor consumo que el promedio es mejor:
// <=-20% EXCELLENT, <=-10% GOOD, <=10% AVERAGE, <=20% BELOW_AVERAGE, resto POOR.
func Rating(variancePct *decimal.Decimal) string {
	if variancePct == nil {
		return RatingNotRated
	}
	v := *variancePct
	switch {
	case v.LessThanOrEqual(decimal.NewFromInt(-20)):
		return RatingExcellent
	case v.LessThanOrEqual(decimal.NewFromInt(-10)):
		return RatingGood
	case v.LessThanOrEqual(decimal.NewFromInt(10)):
		return RatingAverage
	case v.LessThanOrEqual(decimal.NewFromInt(20)):
		return RatingBelowAverage
	default:
		return RatingPoor
	}
}

// Umbrales de clasificación de varianza de stock. Cada banda exige cumplir
// AMBOS límites (porcentaje Y monto absoluto); si cualquiera se excede se
// evalúa la siguiente banda.
var (
	normalPct, normalAbs   = decimal.NewFromInt(1), decimal.NewFromInt(5)
	minorPct, minorAbs     = decimal.NewFromInt(3), decimal.NewFromInt(25)
	warningPct, warningAbs = decimal.NewFromInt(5), decimal.NewFromInt(50)
)

// StockVariance resultado de comparar nivel del sistema vs medición física.
type StockVariance struct {
	Variance   decimal.Decimal // physical - system
	Percentage decimal.Decimal
	Status     string
}

// ClassifyStockVariance clasifica la discrepancia entre nivel del sistema y
// medición física. Función pura: mismos insumos, misma clasificación.
// Con nivel de sistema 0, el porcentaje es 0 si no hay varianza y 100 si la hay.
func ClassifyStockVariance(systemLevel, physicalLevel decimal.Decimal) StockVariance {
	variance := physicalLevel.Sub(systemLevel)

	var pct decimal.Decimal
	switch {
	case !systemLevel.IsZero():
		pct = variance.Div(systemLevel).Mul(hundred).Round(2)
	case variance.IsZero():
		pct = decimal.Zero
	default:
		pct = hundred
	}

	absPct := pct.Abs()
	absVar := variance.Abs()

	status := entity.VarianceStatusCritical
	switch {
	case absPct.LessThanOrEqual(normalPct) && absVar.LessThanOrEqual(normalAbs):
		status = entity.VarianceStatusNormal
	case absPct.LessThanOrEqual(minorPct) && absVar.LessThanOrEqual(minorAbs):
		status = entity.VarianceStatusMinor
	case absPct.LessThanOrEqual(warningPct) && absVar.LessThanOrEqual(warningAbs):
		status = entity.VarianceStatusWarning
	}

	return StockVariance{Variance: variance, Percentage: pct, Status: status}
}
