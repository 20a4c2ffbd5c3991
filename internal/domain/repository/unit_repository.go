package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Combustible-api/internal/domain/entity"
)

// UnitRepository puerto de persistencia para unidades de equipo.
// GetForUpdate bloquea la fila de la unidad para serializar la siembra de
// medidores previos cuando hay despachos concurrentes sobre la misma unidad.
type UnitRepository interface {
	Create(unit *entity.Unit) error
	GetByID(id string) (*entity.Unit, error)
	GetForUpdate(id string) (*entity.Unit, error)
	List(limit, offset int) ([]*entity.Unit, error)
	ListActive() ([]*entity.Unit, error)
	Update(unit *entity.Unit) error
	UpdateMeters(id string, hourMeter, odometer decimal.Decimal) error
}
