package repository

import "github.com/jhoicas/Combustible-api/internal/domain/entity"

// FuelStorageRepository puerto de persistencia para tanques de almacenamiento.
type FuelStorageRepository interface {
	Create(storage *entity.FuelStorage) error
	GetByID(id string) (*entity.FuelStorage, error)
	GetByCode(code string) (*entity.FuelStorage, error)
	List(limit, offset int) ([]*entity.FuelStorage, error)
	Update(storage *entity.FuelStorage) error
	// ListLow tanques activos en o por debajo de su nivel mínimo.
	ListLow() ([]*entity.FuelStorage, error)
}
