package repository

import (
	"time"

	"github.com/jhoicas/Combustible-api/internal/domain/entity"
)

// FuelTransferRepository puerto de persistencia para transferencias
// tanque -> camión.
type FuelTransferRepository interface {
	Create(transfer *entity.FuelTransfer) error
	GetByID(id string) (*entity.FuelTransfer, error)
	// GetForUpdate bloquea la fila de la transferencia (edición/borrado).
	GetForUpdate(id string) (*entity.FuelTransfer, error)
	Update(transfer *entity.FuelTransfer) error
	Delete(id string) error
	List(from, to *time.Time, limit, offset int) ([]*entity.FuelTransfer, error)
	ListByStorage(storageID string, from, to *time.Time, limit, offset int) ([]*entity.FuelTransfer, error)
	ListByTruck(truckID string, from, to *time.Time, limit, offset int) ([]*entity.FuelTransfer, error)
}
