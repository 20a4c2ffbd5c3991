package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Combustible-api/internal/application/usecase"
	"github.com/jhoicas/Combustible-api/internal/domain"
	"github.com/jhoicas/Combustible-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// fakeStorageRepo repositorio en memoria de tanques.
type fakeStorageRepo struct {
	storages map[string]*entity.FuelStorage
}

func newFakeStorageRepo() *fakeStorageRepo {
	return &fakeStorageRepo{storages: make(map[string]*entity.FuelStorage)}
}

func (r *fakeStorageRepo) Create(s *entity.FuelStorage) error {
	cp := *s
	r.storages[s.ID] = &cp
	return nil
}

func (r *fakeStorageRepo) GetByID(id string) (*entity.FuelStorage, error) {
	s, ok := r.storages[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStorageRepo) GetByCode(code string) (*entity.FuelStorage, error) {
	for _, s := range r.storages {
		if s.Code == code {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeStorageRepo) List(limit, offset int) ([]*entity.FuelStorage, error) {
	var out []*entity.FuelStorage
	for _, s := range r.storages {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeStorageRepo) Update(s *entity.FuelStorage) error {
	cp := *s
	r.storages[s.ID] = &cp
	return nil
}

func (r *fakeStorageRepo) ListLow() ([]*entity.FuelStorage, error) {
	var out []*entity.FuelStorage
	for _, s := range r.storages {
		if s.IsActive && s.IsLow() {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func validInput() usecase.CreateStorageInput {
	return usecase.CreateStorageInput{
		Code:         "ST-01",
		Name:         "Tanque principal",
		FuelType:     entity.FuelTypeDiesel,
		Capacity:     dec("10000"),
		InitialLevel: dec("5000"),
		MinimumLevel: dec("1000"),
		Location:     "Patio norte",
	}
}

func TestStorageCreate(t *testing.T) {
	uc := usecase.NewStorageUseCase(newFakeStorageRepo())

	storage, err := uc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, storage.ID)
	assert.Equal(t, entity.ContainerKindStorage, storage.Kind)
	assert.True(t, storage.CurrentLevel.Equal(dec("5000")))
	assert.True(t, storage.IsActive, "un tanque nuevo nace activo")
}

func TestStorageCreate_Validaciones(t *testing.T) {
	uc := usecase.NewStorageUseCase(newFakeStorageRepo())

	in := validInput()
	in.Code = ""
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validInput()
	in.Capacity = decimal.Zero
	_, err = uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	in = validInput()
	in.InitialLevel = dec("10001")
	_, err = uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)

	in = validInput()
	in.InitialLevel = dec("-1")
	_, err = uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}

func TestStorageCreate_CodigoDuplicado(t *testing.T) {
	uc := usecase.NewStorageUseCase(newFakeStorageRepo())

	_, err := uc.Create(context.Background(), validInput())
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), validInput())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestStorageUpdate_SoloDatosMaestros(t *testing.T) {
	repo := newFakeStorageRepo()
	uc := usecase.NewStorageUseCase(repo)

	storage, err := uc.Create(context.Background(), validInput())
	require.NoError(t, err)

	name := "Tanque renombrado"
	inactive := false
	updated, err := uc.Update(context.Background(), storage.ID, usecase.UpdateStorageInput{
		Name:     &name,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Tanque renombrado", updated.Name)
	assert.False(t, updated.IsActive)
	assert.True(t, updated.CurrentLevel.Equal(dec("5000")), "el nivel no se toca por el CRUD")
	assert.Equal(t, "Patio norte", updated.Location, "los campos sin puntero no cambian")

	_, err = uc.Update(context.Background(), "no-existe", usecase.UpdateStorageInput{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStorageListLow(t *testing.T) {
	repo := newFakeStorageRepo()
	uc := usecase.NewStorageUseCase(repo)

	low := validInput()
	low.InitialLevel = dec("800") // por debajo del mínimo de 1000
	_, err := uc.Create(context.Background(), low)
	require.NoError(t, err)

	ok := validInput()
	ok.Code = "ST-02"
	_, err = uc.Create(context.Background(), ok)
	require.NoError(t, err)

	lows, err := uc.ListLow(context.Background())
	require.NoError(t, err)
	require.Len(t, lows, 1)
	assert.Equal(t, "ST-01", lows[0].Code)
}

func TestStorageGetByID_NoExiste(t *testing.T) {
	uc := usecase.NewStorageUseCase(newFakeStorageRepo())
	_, err := uc.GetByID(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
