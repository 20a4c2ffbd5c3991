package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Combustible-api/internal/application/ledger"
	"github.com/jhoicas/Combustible-api/internal/domain"
	"github.com/jhoicas/Combustible-api/internal/domain/entity"
)

func newTransferUC(store *fakeStore) *ledger.TransferUseCase {
	return ledger.NewTransferUseCase(&fakeTxRunner{store: store}, &fakeTransferRepo{store: store}, testLogger())
}

func TestTransferCreate_MueveCombustibleYTomaSnapshots(t *testing.T) {
	store := newFakeStore()
	store.putContainer(newStorage("st-1", "ST-01", "10000", "5000"))
	store.putContainer(newTruck("tk-1", "FT-01", "3000", "500"))
	uc := newTransferUC(store)

	result, err := uc.Create(context.Background(), ledger.CreateTransferInput{
		StorageID:  "st-1",
		TruckID:    "tk-1",
		Amount:     dec("1000"),
		OperatorID: "op-1",
		SessionID:  "turno-42",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Transfer)

	tr := result.Transfer
	assert.True(t, tr.StorageLevelBefore.Equal(dec("5000")))
	assert.True(t, tr.StorageLevelAfter.Equal(dec("4000")))
	assert.True(t, tr.TruckLevelBefore.Equal(dec("500")))
	assert.True(t, tr.TruckLevelAfter.Equal(dec("1500")))
	assert.Equal(t, entity.FuelTypeDiesel, tr.FuelType, "el tipo de combustible viene del tanque")
	assert.Equal(t, "op-1", tr.OperatorID)
	assert.Equal(t, "turno-42", tr.SessionID)
	assert.Empty(t, result.Warnings)

	// Niveles persistidos.
	assert.True(t, store.containerLevel(entity.StorageRef("st-1")).Equal(dec("4000")))
	assert.True(t, store.containerLevel(entity.TruckRef("tk-1")).Equal(dec("1500")))
	assert.Len(t, store.transfers, 1)
}

func TestTransferCreate_RechazaSinEscrituraParcial(t *testing.T) {
	store := newFakeStore()
	store.putContainer(newStorage("st-1", "ST-01", "10000", "300"))
	store.putContainer(newTruck("tk-1", "FT-01", "3000", "2900"))
	uc := newTransferUC(store)

	// Dos reglas violadas a la vez: combustible insuficiente en el tanque y
	// capacidad restante insuficiente en el camión. Ambas deben reportarse.
	_, err := uc.Create(context.Background(), ledger.CreateTransferInput{
		StorageID: "st-1",
		TruckID:   "tk-1",
		Amount:    dec("500"),
	})
	require.Error(t, err)

	var v *domain.ValidationError
	require.True(t, errors.As(err, &v), "debe ser un ValidationError acumulado")
	assert.Len(t, v.Issues, 2)

	// Nada cambió.
	assert.True(t, store.containerLevel(entity.StorageRef("st-1")).Equal(dec("300")))
	assert.True(t, store.containerLevel(entity.TruckRef("tk-1")).Equal(dec("2900")))
	assert.Empty(t, store.transfers)
}

func TestTransferCreate_TipoDeCombustibleDistintoEsAdvertencia(t *testing.T) {
	store := newFakeStore()
	store.putContainer(newStorage("st-1", "ST-01", "10000", "5000"))
	truck := newTruck("tk-1", "FT-01", "3000", "0")
	truck.FuelType = entity.FuelTypeGasoline
	store.putContainer(truck)
	uc := newTransferUC(store)

	result, err := uc.Create(context.Background(), ledger.CreateTransferInput{
		StorageID: "st-1",
		TruckID:   "tk-1",
		Amount:    dec("100"),
	})
	require.NoError(t, err, "la discrepancia de tipo no bloquea la transferencia")
	assert.Len(t, result.Warnings, 1)
}

func TestTransferCreate_ContenedorInexistente(t *testing.T) {
	store := newFakeStore()
	store.putContainer(newStorage("st-1", "ST-01", "10000", "5000"))
	uc := newTransferUC(store)

	_, err := uc.Create(context.Background(), ledger.CreateTransferInput{
		StorageID: "st-1",
		TruckID:   "no-existe",
		Amount:    dec("100"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransferUpdateAmount_AplicaSoloElDelta(t *testing.T) {
	store := newFakeStore()
	store.putContainer(newStorage("st-1", "ST-01", "10000", "5000"))
	store.putContainer(newTruck("tk-1", "FT-01", "3000", "500"))
	uc := newTransferUC(store)

	result, err := uc.Create(context.Background(), ledger.CreateTransferInput{
		StorageID: "st-1", TruckID: "tk-1", Amount: dec("1000"),
	})
	require.NoError(t, err)

	// De 1000 a 1200: el tanque entrega 200 más, el camión los recibe.
	updated, err := uc.UpdateAmount(context.Background(), result.Transfer.ID, dec("1200"))
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(dec("1200")))
	assert.True(t, store.containerLevel(entity.StorageRef("st-1")).Equal(dec("3800")))
	assert.True(t, store.containerLevel(entity.TruckRef("tk-1")).Equal(dec("1700")))

	// Snapshots "after" coherentes con la nueva cantidad.
	assert.True(t, updated.StorageLevelAfter.Equal(dec("3800")))
	assert.True(t, updated.TruckLevelAfter.Equal(dec("1700")))

	// De 1200 a 700: el camión devuelve 500 al tanque.
	updated, err = uc.UpdateAmount(context.Background(), result.Transfer.ID, dec("700"))
	require.NoError(t, err)
	assert.True(t, store.containerLevel(entity.StorageRef("st-1")).Equal(dec("4300")))
	assert.True(t, store.containerLevel(entity.TruckRef("tk-1")).Equal(dec("1200")))
}

func TestTransferUpdateAmount_MismaCantidadEsNoOp(t *testing.T) {
	store := newFakeStore()
	store.putContainer(newStorage("st-1", "ST-01", "10000", "5000"))
	store.putContainer(newTruck("tk-1", "FT-01", "3000", "500"))
	uc := newTransferUC(store)

	result, err := uc.Create(context.Background(), ledger.CreateTransferInput{
		StorageID: "st-1", TruckID: "tk-1", Amount: dec("1000"),
	})
	require.NoError(t, err)

	updated, err := uc.UpdateAmount(context.Background(), result.Transfer.ID, dec("1000"))
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(dec("1000")))
	assert.True(t, store.containerLevel(entity.StorageRef("st-1")).Equal(dec("4000")), "sin delta no hay mutación")
}

func TestTransferUpdateAmount_CantidadInvalida(t *testing.T) {
	uc := newTransferUC(newFakeStore())
	_, err := uc.UpdateAmount(context.Background(), "cualquiera", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestTransferDelete_RevierteNiveles(t *testing.T) {
	store := newFakeStore()
	store.putContainer(newStorage("st-1", "ST-01", "10000", "5000"))
	store.putContainer(newTruck("tk-1", "FT-01", "3000", "500"))
	uc := newTransferUC(store)

	result, err := uc.Create(context.Background(), ledger.CreateTransferInput{
		StorageID: "st-1", TruckID: "tk-1", Amount: dec("1000"),
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), result.Transfer.ID))
	assert.True(t, store.containerLevel(entity.StorageRef("st-1")).Equal(dec("5000")))
	assert.True(t, store.containerLevel(entity.TruckRef("tk-1")).Equal(dec("500")))
	assert.Empty(t, store.transfers)
}

func TestTransferDelete_FallaSiElCamionYaDespacho(t *testing.T) {
	store := newFakeStore()
	store.putContainer(newStorage("st-1", "ST-01", "10000", "5000"))
	store.putContainer(newTruck("tk-1", "FT-01", "3000", "500"))
	uc := newTransferUC(store)

	result, err := uc.Create(context.Background(), ledger.CreateTransferInput{
		StorageID: "st-1", TruckID: "tk-1", Amount: dec("1000"),
	})
	require.NoError(t, err)

	// El camión despachó casi todo: ya no puede devolver los 1000.
	store.containers[entity.TruckRef("tk-1")].CurrentLevel = dec("200")

	err = uc.Delete(context.Background(), result.Transfer.ID)
	assert.ErrorIs(t, err, domain.ErrRollback, "la reversión imposible se reporta, no se ignora")

	// La transferencia sigue registrada y los niveles intactos.
	assert.Len(t, store.transfers, 1)
	assert.True(t, store.containerLevel(entity.TruckRef("tk-1")).Equal(dec("200")))
}

func TestTransferGetByID_NoExiste(t *testing.T) {
	uc := newTransferUC(newFakeStore())
	_, err := uc.GetByID(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
