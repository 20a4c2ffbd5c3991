package repository

import "github.com/jhoicas/Combustible-api/internal/domain/entity"

// UnitTypeRepository puerto de consulta de tipos de unidad y sus tasas de
// consumo de referencia (colaborador externo para el cálculo de varianza).
type UnitTypeRepository interface {
	Create(unitType *entity.UnitType) error
	GetByID(id string) (*entity.UnitType, error)
	List() ([]*entity.UnitType, error)
	Update(unitType *entity.UnitType) error
}
