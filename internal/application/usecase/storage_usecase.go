package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Combustible-api/internal/domain"
	"github.com/jhoicas/Combustible-api/internal/domain/entity"
	"github.com/jhoicas/Combustible-api/internal/domain/repository"
)

// StorageUseCase CRUD de tanques de almacenamiento (datos maestros).
// El nivel actual NO se edita por aquí: solo los motores del ledger y el
// ajuste manual mutan niveles.
type StorageUseCase struct {
	repo repository.FuelStorageRepository
}

// NewStorageUseCase construye el caso de uso.
func NewStorageUseCase(repo repository.FuelStorageRepository) *StorageUseCase {
	return &StorageUseCase{repo: repo}
}

// CreateStorageInput datos para registrar un tanque.
type CreateStorageInput struct {
	Code         string
	Name         string
	FuelType     entity.FuelType
	Capacity     decimal.Decimal
	InitialLevel decimal.Decimal
	MinimumLevel decimal.Decimal
	Location     string
}

// Create registra un tanque nuevo validando capacidad positiva y nivel
// inicial dentro de rango.
func (uc *StorageUseCase) Create(ctx context.Context, input CreateStorageInput) (*entity.FuelStorage, error) {
	if input.Code == "" || input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Capacity.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if input.InitialLevel.IsNegative() || input.InitialLevel.GreaterThan(input.Capacity) {
		return nil, domain.ErrOutOfRange
	}
	if existing, err := uc.repo.GetByCode(input.Code); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	storage := &entity.FuelStorage{
		FuelContainer: entity.FuelContainer{
			ID:           uuid.New().String(),
			Kind:         entity.ContainerKindStorage,
			Code:         input.Code,
			Name:         input.Name,
			FuelType:     input.FuelType,
			Capacity:     input.Capacity,
			CurrentLevel: input.InitialLevel,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		MinimumLevel: input.MinimumLevel,
		Location:     input.Location,
	}
	if err := uc.repo.Create(storage); err != nil {
		return nil, err
	}
	return storage, nil
}

// GetByID obtiene un tanque.
func (uc *StorageUseCase) GetByID(ctx context.Context, id string) (*entity.FuelStorage, error) {
	storage, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if storage == nil {
		return nil, domain.ErrNotFound
	}
	return storage, nil
}

// List lista tanques con paginación.
func (uc *StorageUseCase) List(ctx context.Context, limit, offset int) ([]*entity.FuelStorage, error) {
	return uc.repo.List(limit, offset)
}

// UpdateStorageInput campos editables de un tanque (nil = sin cambio).
type UpdateStorageInput struct {
	Name         *string
	MinimumLevel *decimal.Decimal
	Location     *string
	IsActive     *bool
}

// Update edita los datos maestros de un tanque.
func (uc *StorageUseCase) Update(ctx context.Context, id string, input UpdateStorageInput) (*entity.FuelStorage, error) {
	storage, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if storage == nil {
		return nil, domain.ErrNotFound
	}
	if input.Name != nil {
		storage.Name = *input.Name
	}
	if input.MinimumLevel != nil {
		storage.MinimumLevel = *input.MinimumLevel
	}
	if input.Location != nil {
		storage.Location = *input.Location
	}
	if input.IsActive != nil {
		storage.IsActive = *input.IsActive
	}
	storage.UpdatedAt = time.Now()
	if err := uc.repo.Update(storage); err != nil {
		return nil, err
	}
	return storage, nil
}

// ListLow tanques activos en o por debajo de su nivel mínimo (alerta de
// reposición).
func (uc *StorageUseCase) ListLow(ctx context.Context) ([]*entity.FuelStorage, error) {
	return uc.repo.ListLow()
}
