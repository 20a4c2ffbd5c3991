package repository

import "github.com/jhoicas/Combustible-api/internal/domain/entity"

// VarianceReportRepository puerto de persistencia para reportes de varianza.
type VarianceReportRepository interface {
	Create(report *entity.VarianceReport) error
	GetByID(id string) (*entity.VarianceReport, error)
	Update(report *entity.VarianceReport) error
	List(limit, offset int) ([]*entity.VarianceReport, error)
}
