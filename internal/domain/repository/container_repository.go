package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Combustible-api/internal/domain/entity"
)

// ContainerRepository puerto genérico sobre ambas variantes de contenedor
// (tanque o camión), resuelto por ContainerRef. Los motores del ledger lo
// usan dentro de transacciones: GetForUpdate bloquea la fila
// (SELECT FOR UPDATE) y re-lee el nivel persistido antes de validar.
type ContainerRepository interface {
	Get(ref entity.ContainerRef) (*entity.FuelContainer, error)
	GetForUpdate(ref entity.ContainerRef) (*entity.FuelContainer, error)
	UpdateLevel(ref entity.ContainerRef, level decimal.Decimal) error
}
