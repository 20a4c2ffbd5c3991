package fuel_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Combustible-api/internal/domain/entity"
	"github.com/jhoicas/Combustible-api/internal/domain/fuel"
)

// ──────────────────────────────────────────────────────────────────────────────
// Consumo esperado vs real
// ──────────────────────────────────────────────────────────────────────────────

func TestExpectedConsumption(t *testing.T) {
	// 8 horas a 12 L/h + 40 km a 0.5 L/km = 96 + 20 = 116.
	got := fuel.ExpectedConsumption(dec("8"), dec("40"), dec("12"), dec("0.5"))
	assert.True(t, got.Equal(dec("116")), "esperado 116, obtuvo %s", got)
}

func TestConsumptionVariancePct(t *testing.T) {
	// Real 120 vs esperado 100: +20%.
	got := fuel.ConsumptionVariancePct(dec("120"), dec("100"))
	require.NotNil(t, got)
	assert.True(t, got.Equal(dec("20")), "+20%% esperado, obtuvo %s", got)

	// Real 80 vs esperado 100: -20%.
	got = fuel.ConsumptionVariancePct(dec("80"), dec("100"))
	require.NotNil(t, got)
	assert.True(t, got.Equal(dec("-20")))

	// Esperado cero: no calculable (nil, no cero).
	assert.Nil(t, fuel.ConsumptionVariancePct(dec("50"), decimal.Zero))
}

func TestIsReasonableConsumption(t *testing.T) {
	expected := dec("100")

	assert.True(t, fuel.IsReasonableConsumption(dec("50"), expected), "0.5x es el límite inferior inclusivo")
	assert.True(t, fuel.IsReasonableConsumption(dec("150"), expected), "1.5x es el límite superior inclusivo")
	assert.True(t, fuel.IsReasonableConsumption(dec("100"), expected))
	assert.False(t, fuel.IsReasonableConsumption(dec("49.99"), expected))
	assert.False(t, fuel.IsReasonableConsumption(dec("150.01"), expected))

	// Con esperado 0 solo un real 0 es razonable.
	assert.True(t, fuel.IsReasonableConsumption(decimal.Zero, decimal.Zero))
	assert.False(t, fuel.IsReasonableConsumption(dec("1"), decimal.Zero))
}

func TestRating_Bandas(t *testing.T) {
	rate := func(s string) string {
		v := dec(s)
		return fuel.Rating(&v)
	}
	assert.Equal(t, fuel.RatingExcellent, rate("-25"))
	assert.Equal(t, fuel.RatingExcellent, rate("-20"))
	assert.Equal(t, fuel.RatingGood, rate("-15"))
	assert.Equal(t, fuel.RatingGood, rate("-10"))
	assert.Equal(t, fuel.RatingAverage, rate("0"))
	assert.Equal(t, fuel.RatingAverage, rate("10"))
	assert.Equal(t, fuel.RatingBelowAverage, rate("15"))
	assert.Equal(t, fuel.RatingBelowAverage, rate("20"))
	assert.Equal(t, fuel.RatingPoor, rate("20.01"))

	assert.Equal(t, fuel.RatingNotRated, fuel.Rating(nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// Clasificación de varianza de stock: cada banda exige cumplir porcentaje
// Y monto absoluto a la vez.
// ──────────────────────────────────────────────────────────────────────────────

func TestClassifyStockVariance_Bandas(t *testing.T) {
	cases := []struct {
		name     string
		system   string
		physical string
		wantVar  string
		wantPct  string
		wantSt   string
	}{
		{"sin varianza", "1000", "1000", "0", "0", entity.VarianceStatusNormal},
		{"dentro de normal", "1000", "996", "-4", "-0.4", entity.VarianceStatusNormal},
		{"porcentaje normal pero monto excede 5", "1000", "994", "-6", "-0.6", entity.VarianceStatusMinor},
		{"minor por ambos límites", "1000", "980", "-20", "-2", entity.VarianceStatusMinor},
		{"warning por ambos límites", "1000", "960", "-40", "-4", entity.VarianceStatusWarning},
		{"excede warning: crítico", "1000", "940", "-60", "-6", entity.VarianceStatusCritical},
		// Porcentaje pequeño pero monto absoluto grande: el monto manda.
		{"tanque grande con fuga de 150", "10000", "9850", "-150", "-1.5", entity.VarianceStatusCritical},
		{"sobrante también clasifica", "1000", "1030", "30", "3", entity.VarianceStatusWarning},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sv := fuel.ClassifyStockVariance(dec(tc.system), dec(tc.physical))
			assert.True(t, sv.Variance.Equal(dec(tc.wantVar)), "varianza: esperado %s, obtuvo %s", tc.wantVar, sv.Variance)
			assert.True(t, sv.Percentage.Equal(dec(tc.wantPct)), "porcentaje: esperado %s, obtuvo %s", tc.wantPct, sv.Percentage)
			assert.Equal(t, tc.wantSt, sv.Status)
		})
	}
}

func TestClassifyStockVariance_SistemaEnCero(t *testing.T) {
	// Sin varianza: porcentaje 0.
	sv := fuel.ClassifyStockVariance(decimal.Zero, decimal.Zero)
	assert.True(t, sv.Percentage.Equal(decimal.Zero))
	assert.Equal(t, entity.VarianceStatusNormal, sv.Status)

	// Con varianza sobre sistema 0: porcentaje 100 por convención.
	sv = fuel.ClassifyStockVariance(decimal.Zero, dec("30"))
	assert.True(t, sv.Percentage.Equal(dec("100")))
	assert.Equal(t, entity.VarianceStatusCritical, sv.Status)
}
