package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Combustible-api/internal/application/ledger"
	"github.com/jhoicas/Combustible-api/internal/domain"
	"github.com/jhoicas/Combustible-api/internal/domain/entity"
)

func newStockCheckUC(store *fakeStore) *ledger.StockCheckUseCase {
	return ledger.NewStockCheckUseCase(&fakeTxRunner{store: store}, &fakeCheckRepo{store: store}, testLogger())
}

func TestStockCheckRecord_ClasificaSinMutarElNivel(t *testing.T) {
	store := newFakeStore()
	store.putContainer(newStorage("st-1", "ST-01", "10000", "1000"))
	uc := newStockCheckUC(store)

	check, err := uc.Record(context.Background(), ledger.RecordStockCheckInput{
		Container:     entity.StorageRef("st-1"),
		PhysicalLevel: dec("980"),
		CheckedBy:     "op-1",
		Method:        "DIPSTICK",
	})
	require.NoError(t, err)

	assert.True(t, check.SystemLevel.Equal(dec("1000")), "snapshot del nivel del sistema al momento del chequeo")
	assert.True(t, check.Variance.Equal(dec("-20")))
	assert.True(t, check.VariancePercentage.Equal(dec("-2")))
	assert.Equal(t, entity.VarianceStatusMinor, check.VarianceStatus)
	assert.False(t, check.SystemAdjusted)

	// Registrar el chequeo nunca muta el contenedor.
	assert.True(t, store.containerLevel(entity.StorageRef("st-1")).Equal(dec("1000")))
}

func TestStockCheckRecord_Validaciones(t *testing.T) {
	store := newFakeStore()
	uc := newStockCheckUC(store)

	_, err := uc.Record(context.Background(), ledger.RecordStockCheckInput{
		Container: entity.ContainerRef{Kind: entity.ContainerKindStorage},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Record(context.Background(), ledger.RecordStockCheckInput{
		Container:     entity.StorageRef("st-1"),
		PhysicalLevel: dec("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = uc.Record(context.Background(), ledger.RecordStockCheckInput{
		Container:     entity.StorageRef("no-existe"),
		PhysicalLevel: dec("10"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockCheckAdjust_AplicaUnaSolaVez(t *testing.T) {
	store := newFakeStore()
	store.putContainer(newStorage("st-1", "ST-01", "10000", "1000"))
	uc := newStockCheckUC(store)

	check, err := uc.Record(context.Background(), ledger.RecordStockCheckInput{
		Container:     entity.StorageRef("st-1"),
		PhysicalLevel: dec("980"),
		CheckedBy:     "op-1",
	})
	require.NoError(t, err)

	applied, err := uc.Adjust(context.Background(), check.ID, "fuga confirmada", "sup-1")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.True(t, store.containerLevel(entity.StorageRef("st-1")).Equal(dec("980")), "el nivel se corrige al valor medido")

	stored, err := uc.GetByID(context.Background(), check.ID)
	require.NoError(t, err)
	assert.True(t, stored.SystemAdjusted)
	require.NotNil(t, stored.AdjustmentAmount)
	assert.True(t, stored.AdjustmentAmount.Equal(dec("-20")))
	assert.Equal(t, "fuga confirmada", stored.AdjustmentReason)
	assert.Equal(t, "sup-1", stored.AdjustedBy)
	require.NotNil(t, stored.AdjustedAt)

	// Segundo intento: no-op, el nivel no vuelve a moverse.
	store.containers[entity.StorageRef("st-1")].CurrentLevel = dec("1200")
	applied, err = uc.Adjust(context.Background(), check.ID, "reintento", "sup-2")
	require.NoError(t, err)
	assert.False(t, applied, "un chequeo ya ajustado es inmutable")
	assert.True(t, store.containerLevel(entity.StorageRef("st-1")).Equal(dec("1200")))

	stored, err = uc.GetByID(context.Background(), check.ID)
	require.NoError(t, err)
	assert.Equal(t, "sup-1", stored.AdjustedBy, "los metadatos del primer ajuste no se sobrescriben")
}

func TestStockCheckAdjust_VarianzaDespreciableEsNoOp(t *testing.T) {
	store := newFakeStore()
	store.putContainer(newStorage("st-1", "ST-01", "10000", "1000"))
	uc := newStockCheckUC(store)

	check, err := uc.Record(context.Background(), ledger.RecordStockCheckInput{
		Container:     entity.StorageRef("st-1"),
		PhysicalLevel: dec("1000.005"),
	})
	require.NoError(t, err)

	applied, err := uc.Adjust(context.Background(), check.ID, "ruido", "sup-1")
	require.NoError(t, err)
	assert.False(t, applied, "|varianza| < 0.01 no justifica ajuste")
	assert.True(t, store.containerLevel(entity.StorageRef("st-1")).Equal(dec("1000")))

	stored, err := uc.GetByID(context.Background(), check.ID)
	require.NoError(t, err)
	assert.False(t, stored.SystemAdjusted)
}

func TestStockCheckAdjust_NoExiste(t *testing.T) {
	uc := newStockCheckUC(newFakeStore())
	_, err := uc.Adjust(context.Background(), "no-existe", "motivo", "sup-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContainerAdjustLevel(t *testing.T) {
	store := newFakeStore()
	store.putContainer(newStorage("st-1", "ST-01", "10000", "1000"))
	uc := ledger.NewContainerUseCase(&fakeTxRunner{store: store}, testLogger())

	require.NoError(t, uc.AdjustLevel(context.Background(), entity.StorageRef("st-1"), dec("750"), "op-1"))
	assert.True(t, store.containerLevel(entity.StorageRef("st-1")).Equal(dec("750")))

	// Fuera de [0, capacidad]: se rechaza sin mutar.
	err := uc.AdjustLevel(context.Background(), entity.StorageRef("st-1"), dec("10001"), "op-1")
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
	assert.True(t, store.containerLevel(entity.StorageRef("st-1")).Equal(dec("750")))

	err = uc.AdjustLevel(context.Background(), entity.ContainerRef{Kind: entity.ContainerKindStorage}, dec("1"), "op-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
