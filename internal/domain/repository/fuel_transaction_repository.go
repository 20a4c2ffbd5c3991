package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Combustible-api/internal/domain/entity"
)

// FuelTransactionRepository puerto de persistencia para despachos a unidades.
type FuelTransactionRepository interface {
	Create(txn *entity.FuelTransaction) error
	GetByID(id string) (*entity.FuelTransaction, error)
	GetForUpdate(id string) (*entity.FuelTransaction, error)
	Delete(id string) error
	// GetLastByUnit última transacción de la unidad por fecha de despacho,
	// usada para sembrar los medidores previos. nil si no existe.
	GetLastByUnit(unitID string) (*entity.FuelTransaction, error)
	ListByUnit(unitID string, from, to *time.Time, limit, offset int) ([]*entity.FuelTransaction, error)
	ListBySource(source entity.ContainerRef, from, to *time.Time, limit, offset int) ([]*entity.FuelTransaction, error)
	// ListByUnitAndDay transacciones de la unidad en un día calendario
	// (reconstrucción del resumen de consumo).
	ListByUnitAndDay(unitID string, day time.Time) ([]*entity.FuelTransaction, error)
	// AvgCombinedByUnitType promedio de eficiencia combinada de las
	// transacciones del tipo de unidad desde la fecha dada (ventana de 30
	// días para la calificación). nil si no hay datos calculables.
	AvgCombinedByUnitType(unitTypeID string, since time.Time) (*decimal.Decimal, error)
}
