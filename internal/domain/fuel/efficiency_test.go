package fuel_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Combustible-api/internal/domain/fuel"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Eficiencia de despacho: nil significa "no calculable", nunca cero.
// ──────────────────────────────────────────────────────────────────────────────

func TestPerHour(t *testing.T) {
	got := fuel.PerHour(dec("50"), dec("10"))
	require.NotNil(t, got)
	assert.True(t, got.Equal(dec("5")), "50 litros en 10 horas = 5 L/h, obtuvo %s", got)

	assert.Nil(t, fuel.PerHour(dec("50"), decimal.Zero), "delta cero no es calculable")
	assert.Nil(t, fuel.PerHour(dec("50"), dec("-1")), "delta negativo no es calculable")
}

func TestPerKm(t *testing.T) {
	got := fuel.PerKm(dec("30"), dec("120"))
	require.NotNil(t, got)
	assert.True(t, got.Equal(dec("0.25")), "30 litros en 120 km = 0.25 L/km, obtuvo %s", got)

	assert.Nil(t, fuel.PerKm(dec("30"), decimal.Zero))
}

func TestCombined_Blend70_30(t *testing.T) {
	perHour := dec("10")
	perKm := dec("2")

	got := fuel.Combined(&perHour, &perKm)
	require.NotNil(t, got)
	// 0.7*10 + 0.3*2 = 7.6
	assert.True(t, got.Equal(dec("7.6")), "blend 70/30 incorrecto: %s", got)
}

func TestCombined_SoloUnaPresente(t *testing.T) {
	perHour := dec("10")
	perKm := dec("2")

	got := fuel.Combined(&perHour, nil)
	require.NotNil(t, got)
	assert.True(t, got.Equal(perHour), "con solo L/h se usa L/h directamente")

	got = fuel.Combined(nil, &perKm)
	require.NotNil(t, got)
	assert.True(t, got.Equal(perKm), "con solo L/km se usa L/km directamente")

	assert.Nil(t, fuel.Combined(nil, nil))
}

func TestCompute(t *testing.T) {
	eff := fuel.Compute(dec("50"), dec("100"), dec("110"), dec("1000"), dec("1000"))
	require.NotNil(t, eff.PerHour)
	assert.True(t, eff.PerHour.Equal(dec("5")))
	assert.Nil(t, eff.PerKm, "odómetro sin avance: L/km no calculable")
	require.NotNil(t, eff.Combined)
	assert.True(t, eff.Combined.Equal(dec("5")), "combinada cae a L/h cuando falta L/km")
}

// ──────────────────────────────────────────────────────────────────────────────
// Eficiencia de transferencia: 100 - pérdida porcentual, con piso en 0.
// ──────────────────────────────────────────────────────────────────────────────

func TestTransferEfficiency(t *testing.T) {
	// Transferencia limpia: sin desviación en los snapshots.
	got := fuel.TransferEfficiency(decimal.Zero, decimal.Zero, dec("500"))
	assert.True(t, got.Equal(dec("100")), "sin varianzas la eficiencia es 100, obtuvo %s", got)

	// 5 litros perdidos sobre 500 = 1% de pérdida.
	got = fuel.TransferEfficiency(dec("-3"), dec("-2"), dec("500"))
	assert.True(t, got.Equal(dec("99")), "pérdida de 1%% => eficiencia 99, obtuvo %s", got)

	// Pérdida mayor al 100%: piso en 0.
	got = fuel.TransferEfficiency(dec("-80"), dec("-30"), dec("100"))
	assert.True(t, got.Equal(decimal.Zero), "la eficiencia nunca es negativa")

	// Cantidad no positiva.
	assert.True(t, fuel.TransferEfficiency(decimal.Zero, decimal.Zero, decimal.Zero).Equal(decimal.Zero))
}

func TestTransferStatus_Bandas(t *testing.T) {
	cases := []struct {
		efficiency string
		want       string
	}{
		{"100", fuel.TransferStatusExcellent},
		{"99", fuel.TransferStatusExcellent},
		{"98.99", fuel.TransferStatusGood},
		{"95", fuel.TransferStatusGood},
		{"94.99", fuel.TransferStatusFair},
		{"90", fuel.TransferStatusFair},
		{"89.99", fuel.TransferStatusPoor},
		{"80", fuel.TransferStatusPoor},
		{"79.99", fuel.TransferStatusVeryPoor},
		{"0", fuel.TransferStatusVeryPoor},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, fuel.TransferStatus(dec(tc.efficiency)), "eficiencia %s", tc.efficiency)
	}
}
