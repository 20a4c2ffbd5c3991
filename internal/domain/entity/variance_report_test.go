package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Combustible-api/internal/domain"
	"github.com/jhoicas/Combustible-api/internal/domain/entity"
)

// Flujo de estados: DRAFT -> FINAL -> APPROVED, con rechazo FINAL -> DRAFT
// como único retroceso.

func TestVarianceReport_FlujoCompleto(t *testing.T) {
	now := time.Now()
	r := &entity.VarianceReport{Status: entity.ReportStatusDraft}

	require.NoError(t, r.Finalize(now))
	assert.Equal(t, entity.ReportStatusFinal, r.Status)
	require.NotNil(t, r.FinalizedAt)

	require.NoError(t, r.Approve("supervisor-1", now))
	assert.Equal(t, entity.ReportStatusApproved, r.Status)
	assert.Equal(t, "supervisor-1", r.ApprovedBy)
	require.NotNil(t, r.ApprovedAt)
}

func TestVarianceReport_TransicionesInvalidas(t *testing.T) {
	now := time.Now()

	// DRAFT no se puede aprobar directamente (sin saltos).
	r := &entity.VarianceReport{Status: entity.ReportStatusDraft}
	assert.ErrorIs(t, r.Approve("x", now), domain.ErrInvalidTransition)

	// DRAFT no se puede rechazar.
	assert.ErrorIs(t, r.Reject(), domain.ErrInvalidTransition)

	// FINAL no se puede volver a finalizar.
	r.Status = entity.ReportStatusFinal
	assert.ErrorIs(t, r.Finalize(now), domain.ErrInvalidTransition)

	// APPROVED es terminal: ni finalizar, ni aprobar, ni rechazar.
	r.Status = entity.ReportStatusApproved
	assert.ErrorIs(t, r.Finalize(now), domain.ErrInvalidTransition)
	assert.ErrorIs(t, r.Approve("x", now), domain.ErrInvalidTransition)
	assert.ErrorIs(t, r.Reject(), domain.ErrInvalidTransition)
}

func TestVarianceReport_Reject(t *testing.T) {
	now := time.Now()
	r := &entity.VarianceReport{Status: entity.ReportStatusDraft}
	require.NoError(t, r.Finalize(now))

	require.NoError(t, r.Reject())
	assert.Equal(t, entity.ReportStatusDraft, r.Status)
	assert.Nil(t, r.FinalizedAt, "el rechazo limpia la marca de finalización")

	// Tras el rechazo el reporte puede finalizarse de nuevo.
	require.NoError(t, r.Finalize(now))
	assert.Equal(t, entity.ReportStatusFinal, r.Status)
}

func TestFuelTransfer_Variances(t *testing.T) {
	tr := &entity.FuelTransfer{
		Amount:             dec("500"),
		StorageLevelBefore: dec("2000"),
		StorageLevelAfter:  dec("1500"),
		TruckLevelBefore:   dec("100"),
		TruckLevelAfter:    dec("600"),
	}
	assert.True(t, tr.StorageVariance().Equal(decimal.Zero), "transferencia limpia: varianza tanque 0")
	assert.True(t, tr.TruckVariance().Equal(decimal.Zero), "transferencia limpia: varianza camión 0")

	// Snapshot del camión 3 litros por debajo de lo esperado.
	tr.TruckLevelAfter = dec("597")
	assert.True(t, tr.TruckVariance().Equal(dec("-3")))
}
