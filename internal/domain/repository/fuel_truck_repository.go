package repository

import "github.com/jhoicas/Combustible-api/internal/domain/entity"

// FuelTruckRepository puerto de persistencia para camiones cisterna.
type FuelTruckRepository interface {
	Create(truck *entity.FuelTruck) error
	GetByID(id string) (*entity.FuelTruck, error)
	GetByCode(code string) (*entity.FuelTruck, error)
	List(limit, offset int) ([]*entity.FuelTruck, error)
	Update(truck *entity.FuelTruck) error
}
