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

// UnitUseCase CRUD de unidades de equipo y sus tipos (datos maestros).
// Los medidores actuales NO se editan por aquí: solo los despachos del
// ledger los avanzan.
type UnitUseCase struct {
	unitRepo     repository.UnitRepository
	unitTypeRepo repository.UnitTypeRepository
}

// NewUnitUseCase construye el caso de uso.
func NewUnitUseCase(unitRepo repository.UnitRepository, unitTypeRepo repository.UnitTypeRepository) *UnitUseCase {
	return &UnitUseCase{unitRepo: unitRepo, unitTypeRepo: unitTypeRepo}
}

// CreateUnitTypeInput datos para registrar un tipo de unidad.
type CreateUnitTypeInput struct {
	Code               string
	Name               string
	ConsumptionPerHour decimal.Decimal
	ConsumptionPerKm   decimal.Decimal
}

// CreateUnitType registra un tipo de unidad con sus tasas nominales de
// consumo.
func (uc *UnitUseCase) CreateUnitType(ctx context.Context, input CreateUnitTypeInput) (*entity.UnitType, error) {
	if input.Code == "" || input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.ConsumptionPerHour.IsNegative() || input.ConsumptionPerKm.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	now := time.Now()
	unitType := &entity.UnitType{
		ID:                 uuid.New().String(),
		Code:               input.Code,
		Name:               input.Name,
		ConsumptionPerHour: input.ConsumptionPerHour,
		ConsumptionPerKm:   input.ConsumptionPerKm,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.unitTypeRepo.Create(unitType); err != nil {
		return nil, err
	}
	return unitType, nil
}

// GetUnitType obtiene un tipo de unidad.
func (uc *UnitUseCase) GetUnitType(ctx context.Context, id string) (*entity.UnitType, error) {
	unitType, err := uc.unitTypeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unitType == nil {
		return nil, domain.ErrNotFound
	}
	return unitType, nil
}

// ListUnitTypes lista tipos de unidad.
func (uc *UnitUseCase) ListUnitTypes(ctx context.Context) ([]*entity.UnitType, error) {
	return uc.unitTypeRepo.List()
}

// UpdateUnitTypeInput campos editables de un tipo de unidad (nil = sin cambio).
type UpdateUnitTypeInput struct {
	Name               *string
	ConsumptionPerHour *decimal.Decimal
	ConsumptionPerKm   *decimal.Decimal
}

// UpdateUnitType edita las tasas nominales de un tipo de unidad.
func (uc *UnitUseCase) UpdateUnitType(ctx context.Context, id string, input UpdateUnitTypeInput) (*entity.UnitType, error) {
	unitType, err := uc.unitTypeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unitType == nil {
		return nil, domain.ErrNotFound
	}
	if input.Name != nil {
		unitType.Name = *input.Name
	}
	if input.ConsumptionPerHour != nil {
		if input.ConsumptionPerHour.IsNegative() {
			return nil, domain.ErrInvalidAmount
		}
		unitType.ConsumptionPerHour = *input.ConsumptionPerHour
	}
	if input.ConsumptionPerKm != nil {
		if input.ConsumptionPerKm.IsNegative() {
			return nil, domain.ErrInvalidAmount
		}
		unitType.ConsumptionPerKm = *input.ConsumptionPerKm
	}
	unitType.UpdatedAt = time.Now()
	if err := uc.unitTypeRepo.Update(unitType); err != nil {
		return nil, err
	}
	return unitType, nil
}

// CreateUnitInput datos para registrar una unidad.
type CreateUnitInput struct {
	Code             string
	Name             string
	UnitTypeID       string
	InitialHourMeter decimal.Decimal
	InitialOdometer  decimal.Decimal
	FuelTankCapacity *decimal.Decimal
}

// CreateUnit registra una unidad nueva, validando que el tipo exista y que
// los medidores iniciales no sean negativos.
func (uc *UnitUseCase) CreateUnit(ctx context.Context, input CreateUnitInput) (*entity.Unit, error) {
	if input.Code == "" || input.Name == "" || input.UnitTypeID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.InitialHourMeter.IsNegative() || input.InitialOdometer.IsNegative() {
		return nil, domain.ErrOutOfRange
	}
	if input.FuelTankCapacity != nil && input.FuelTankCapacity.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	unitType, err := uc.unitTypeRepo.GetByID(input.UnitTypeID)
	if err != nil {
		return nil, err
	}
	if unitType == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	unit := &entity.Unit{
		ID:               uuid.New().String(),
		Code:             input.Code,
		Name:             input.Name,
		UnitTypeID:       input.UnitTypeID,
		CurrentHourMeter: input.InitialHourMeter,
		CurrentOdometer:  input.InitialOdometer,
		FuelTankCapacity: input.FuelTankCapacity,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.unitRepo.Create(unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// GetUnit obtiene una unidad.
func (uc *UnitUseCase) GetUnit(ctx context.Context, id string) (*entity.Unit, error) {
	unit, err := uc.unitRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	return unit, nil
}

// ListUnits lista unidades con paginación.
func (uc *UnitUseCase) ListUnits(ctx context.Context, limit, offset int) ([]*entity.Unit, error) {
	return uc.unitRepo.List(limit, offset)
}

// UpdateUnitInput campos editables de una unidad (nil = sin cambio).
type UpdateUnitInput struct {
	Name             *string
	UnitTypeID       *string
	FuelTankCapacity *decimal.Decimal
	IsActive         *bool
}

// UpdateUnit edita los datos maestros de una unidad.
func (uc *UnitUseCase) UpdateUnit(ctx context.Context, id string, input UpdateUnitInput) (*entity.Unit, error) {
	unit, err := uc.unitRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	if input.Name != nil {
		unit.Name = *input.Name
	}
	if input.UnitTypeID != nil {
		unitType, err := uc.unitTypeRepo.GetByID(*input.UnitTypeID)
		if err != nil {
			return nil, err
		}
		if unitType == nil {
			return nil, domain.ErrNotFound
		}
		unit.UnitTypeID = *input.UnitTypeID
	}
	if input.FuelTankCapacity != nil {
		if input.FuelTankCapacity.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidAmount
		}
		unit.FuelTankCapacity = input.FuelTankCapacity
	}
	if input.IsActive != nil {
		unit.IsActive = *input.IsActive
	}
	unit.UpdatedAt = time.Now()
	if err := uc.unitRepo.Update(unit); err != nil {
		return nil, err
	}
	return unit, nil
}
