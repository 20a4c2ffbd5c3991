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

// TruckUseCase CRUD de camiones cisterna (datos maestros).
type TruckUseCase struct {
	repo repository.FuelTruckRepository
}

// NewTruckUseCase construye el caso de uso.
func NewTruckUseCase(repo repository.FuelTruckRepository) *TruckUseCase {
	return &TruckUseCase{repo: repo}
}

// CreateTruckInput datos para registrar un camión.
type CreateTruckInput struct {
	Code         string
	Name         string
	FuelType     entity.FuelType
	Capacity     decimal.Decimal
	InitialLevel decimal.Decimal
	PlateNumber  string
	DriverName   string
}

// Create registra un camión nuevo.
func (uc *TruckUseCase) Create(ctx context.Context, input CreateTruckInput) (*entity.FuelTruck, error) {
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
	truck := &entity.FuelTruck{
		FuelContainer: entity.FuelContainer{
			ID:           uuid.New().String(),
			Kind:         entity.ContainerKindTruck,
			Code:         input.Code,
			Name:         input.Name,
			FuelType:     input.FuelType,
			Capacity:     input.Capacity,
			CurrentLevel: input.InitialLevel,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		PlateNumber: input.PlateNumber,
		DriverName:  input.DriverName,
	}
	if err := uc.repo.Create(truck); err != nil {
		return nil, err
	}
	return truck, nil
}

// GetByID obtiene un camión.
func (uc *TruckUseCase) GetByID(ctx context.Context, id string) (*entity.FuelTruck, error) {
	truck, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if truck == nil {
		return nil, domain.ErrNotFound
	}
	return truck, nil
}

// List lista camiones con paginación.
func (uc *TruckUseCase) List(ctx context.Context, limit, offset int) ([]*entity.FuelTruck, error) {
	return uc.repo.List(limit, offset)
}

// UpdateTruckInput campos editables de un camión (nil = sin cambio).
type UpdateTruckInput struct {
	Name        *string
	PlateNumber *string
	DriverName  *string
	IsActive    *bool
}

// Update edita los datos maestros de un camión.
func (uc *TruckUseCase) Update(ctx context.Context, id string, input UpdateTruckInput) (*entity.FuelTruck, error) {
	truck, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if truck == nil {
		return nil, domain.ErrNotFound
	}
	if input.Name != nil {
		truck.Name = *input.Name
	}
	if input.PlateNumber != nil {
		truck.PlateNumber = *input.PlateNumber
	}
	if input.DriverName != nil {
		truck.DriverName = *input.DriverName
	}
	if input.IsActive != nil {
		truck.IsActive = *input.IsActive
	}
	truck.UpdatedAt = time.Now()
	if err := uc.repo.Update(truck); err != nil {
		return nil, err
	}
	return truck, nil
}
