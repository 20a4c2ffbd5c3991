package repository

import (
	"time"

	"github.com/jhoicas/Combustible-api/internal/domain/entity"
)

// StockCheckRepository puerto de persistencia para chequeos físicos de stock.
type StockCheckRepository interface {
	Create(check *entity.PhysicalStockCheck) error
	GetByID(id string) (*entity.PhysicalStockCheck, error)
	GetForUpdate(id string) (*entity.PhysicalStockCheck, error)
	Update(check *entity.PhysicalStockCheck) error
	ListByContainer(ref entity.ContainerRef, limit, offset int) ([]*entity.PhysicalStockCheck, error)
	ListBetween(from, to time.Time) ([]*entity.PhysicalStockCheck, error)
}
