package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Combustible-api/internal/domain/entity"
)

// CreateStorageRequest entrada para registrar un tanque de almacenamiento.
type CreateStorageRequest struct {
	Code         string          `json:"code" validate:"required,min=1,max=50"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	FuelType     string          `json:"fuel_type" validate:"required,oneof=DIESEL GASOLINE PREMIUM"`
	Capacity     decimal.Decimal `json:"capacity"`
	InitialLevel decimal.Decimal `json:"initial_level"`
	MinimumLevel decimal.Decimal `json:"minimum_level"`
	Location     string          `json:"location"`
}

// UpdateStorageRequest entrada para editar un tanque (nil = sin cambio).
type UpdateStorageRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	MinimumLevel *decimal.Decimal `json:"minimum_level"`
	Location     *string          `json:"location"`
	IsActive     *bool            `json:"is_active"`
}

// StorageResponse salida de un tanque de almacenamiento.
type StorageResponse struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	FuelType        string          `json:"fuel_type"`
	Capacity        decimal.Decimal `json:"capacity"`
	CurrentLevel    decimal.Decimal `json:"current_level"`
	MinimumLevel    decimal.Decimal `json:"minimum_level"`
	Location        string          `json:"location"`
	UsagePercentage decimal.Decimal `json:"usage_percentage"`
	IsLow           bool            `json:"is_low"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// StorageToResponse mapea la entidad a su representación HTTP.
func StorageToResponse(s *entity.FuelStorage) StorageResponse {
	return StorageResponse{
		ID:              s.ID,
		Code:            s.Code,
		Name:            s.Name,
		FuelType:        string(s.FuelType),
		Capacity:        s.Capacity,
		CurrentLevel:    s.CurrentLevel,
		MinimumLevel:    s.MinimumLevel,
		Location:        s.Location,
		UsagePercentage: s.UsagePercentage(),
		IsLow:           s.IsLow(),
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// StorageListResponse lista paginada de tanques.
type StorageListResponse struct {
	Items []StorageResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateTruckRequest entrada para registrar un camión cisterna.
type CreateTruckRequest struct {
	Code         string          `json:"code" validate:"required,min=1,max=50"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	FuelType     string          `json:"fuel_type" validate:"required,oneof=DIESEL GASOLINE PREMIUM"`
	Capacity     decimal.Decimal `json:"capacity"`
	InitialLevel decimal.Decimal `json:"initial_level"`
	PlateNumber  string          `json:"plate_number"`
	DriverName   string          `json:"driver_name"`
}

// UpdateTruckRequest entrada para editar un camión (nil = sin cambio).
type UpdateTruckRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	PlateNumber *string `json:"plate_number"`
	DriverName  *string `json:"driver_name"`
	IsActive    *bool   `json:"is_active"`
}

// TruckResponse salida de un camión cisterna.
type TruckResponse struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	FuelType        string          `json:"fuel_type"`
	Capacity        decimal.Decimal `json:"capacity"`
	CurrentLevel    decimal.Decimal `json:"current_level"`
	PlateNumber     string          `json:"plate_number"`
	DriverName      string          `json:"driver_name"`
	UsagePercentage decimal.Decimal `json:"usage_percentage"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TruckToResponse mapea la entidad a su representación HTTP.
func TruckToResponse(t *entity.FuelTruck) TruckResponse {
	return TruckResponse{
		ID:              t.ID,
		Code:            t.Code,
		Name:            t.Name,
		FuelType:        string(t.FuelType),
		Capacity:        t.Capacity,
		CurrentLevel:    t.CurrentLevel,
		PlateNumber:     t.PlateNumber,
		DriverName:      t.DriverName,
		UsagePercentage: t.UsagePercentage(),
		IsActive:        t.IsActive,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// TruckListResponse lista paginada de camiones.
type TruckListResponse struct {
	Items []TruckResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// AdjustLevelRequest entrada para fijar el nivel de un contenedor a mano.
type AdjustLevelRequest struct {
	NewLevel decimal.Decimal `json:"new_level"`
}
