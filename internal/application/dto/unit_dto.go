package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Combustible-api/internal/domain/entity"
)

// CreateUnitTypeRequest entrada para registrar un tipo de unidad.
type CreateUnitTypeRequest struct {
	Code               string          `json:"code" validate:"required,min=1,max=50"`
	Name               string          `json:"name" validate:"required,min=1,max=200"`
	ConsumptionPerHour decimal.Decimal `json:"consumption_per_hour"`
	ConsumptionPerKm   decimal.Decimal `json:"consumption_per_km"`
}

// UpdateUnitTypeRequest entrada para editar un tipo de unidad (nil = sin cambio).
type UpdateUnitTypeRequest struct {
	Name               *string          `json:"name" validate:"omitempty,min=1,max=200"`
	ConsumptionPerHour *decimal.Decimal `json:"consumption_per_hour"`
	ConsumptionPerKm   *decimal.Decimal `json:"consumption_per_km"`
}

// UnitTypeResponse salida de un tipo de unidad.
type UnitTypeResponse struct {
	ID                 string          `json:"id"`
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	ConsumptionPerHour decimal.Decimal `json:"consumption_per_hour"`
	ConsumptionPerKm   decimal.Decimal `json:"consumption_per_km"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// UnitTypeToResponse mapea la entidad a su representación HTTP.
func UnitTypeToResponse(t *entity.UnitType) UnitTypeResponse {
	return UnitTypeResponse{
		ID:                 t.ID,
		Code:               t.Code,
		Name:               t.Name,
		ConsumptionPerHour: t.ConsumptionPerHour,
		ConsumptionPerKm:   t.ConsumptionPerKm,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

// CreateUnitRequest entrada para registrar una unidad de equipo.
type CreateUnitRequest struct {
	Code             string           `json:"code" validate:"required,min=1,max=50"`
	Name             string           `json:"name" validate:"required,min=1,max=200"`
	UnitTypeID       string           `json:"unit_type_id" validate:"required,uuid4"`
	InitialHourMeter decimal.Decimal  `json:"initial_hour_meter"`
	InitialOdometer  decimal.Decimal  `json:"initial_odometer"`
	FuelTankCapacity *decimal.Decimal `json:"fuel_tank_capacity"`
}

// UpdateUnitRequest entrada para editar una unidad (nil = sin cambio).
// Los medidores no son editables: solo los despachos los avanzan.
type UpdateUnitRequest struct {
	Name             *string          `json:"name" validate:"omitempty,min=1,max=200"`
	UnitTypeID       *string          `json:"unit_type_id" validate:"omitempty,uuid4"`
	FuelTankCapacity *decimal.Decimal `json:"fuel_tank_capacity"`
	IsActive         *bool            `json:"is_active"`
}

// UnitResponse salida de una unidad de equipo.
type UnitResponse struct {
	ID               string           `json:"id"`
	Code             string           `json:"code"`
	Name             string           `json:"name"`
	UnitTypeID       string           `json:"unit_type_id"`
	CurrentHourMeter decimal.Decimal  `json:"current_hour_meter"`
	CurrentOdometer  decimal.Decimal  `json:"current_odometer"`
	FuelTankCapacity *decimal.Decimal `json:"fuel_tank_capacity,omitempty"`
	IsActive         bool             `json:"is_active"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// UnitToResponse mapea la entidad a su representación HTTP.
func UnitToResponse(u *entity.Unit) UnitResponse {
	return UnitResponse{
		ID:               u.ID,
		Code:             u.Code,
		Name:             u.Name,
		UnitTypeID:       u.UnitTypeID,
		CurrentHourMeter: u.CurrentHourMeter,
		CurrentOdometer:  u.CurrentOdometer,
		FuelTankCapacity: u.FuelTankCapacity,
		IsActive:         u.IsActive,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

// UnitListResponse lista paginada de unidades.
type UnitListResponse struct {
	Items []UnitResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// UnitRatingResponse calificación de eficiencia reciente de una unidad
// frente al promedio de 30 días de su tipo.
type UnitRatingResponse struct {
	UnitID string `json:"unit_id"`
	Rating string `json:"rating"`
}
