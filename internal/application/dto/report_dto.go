package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Combustible-api/internal/domain/entity"
)

// GenerateReportRequest entrada para generar un reporte de varianza.
type GenerateReportRequest struct {
	Period string    `json:"period" validate:"required,oneof=DAILY WEEKLY MONTHLY"`
	Start  time.Time `json:"start" validate:"required"`
}

// ApproveReportRequest entrada para aprobar un reporte FINAL.
type ApproveReportRequest struct {
	ApprovedBy string `json:"approved_by"`
}

// VarianceReportResponse salida de un reporte de varianza por período.
type VarianceReportResponse struct {
	ID          string    `json:"id"`
	Period      string    `json:"period"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	TotalChecks     int             `json:"total_checks"`
	TotalVariance   decimal.Decimal `json:"total_variance"`
	StorageVariance decimal.Decimal `json:"storage_variance"`
	TruckVariance   decimal.Decimal `json:"truck_variance"`
	NormalCount     int             `json:"normal_count"`
	MinorCount      int             `json:"minor_count"`
	WarningCount    int             `json:"warning_count"`
	CriticalCount   int             `json:"critical_count"`

	Status      string     `json:"status"`
	GeneratedAt time.Time  `json:"generated_at"`
	FinalizedAt *time.Time `json:"finalized_at,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	ApprovedBy  string     `json:"approved_by,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// VarianceReportToResponse mapea la entidad a su representación HTTP.
func VarianceReportToResponse(r *entity.VarianceReport) VarianceReportResponse {
	return VarianceReportResponse{
		ID:              r.ID,
		Period:          r.Period,
		PeriodStart:     r.PeriodStart,
		PeriodEnd:       r.PeriodEnd,
		TotalChecks:     r.TotalChecks,
		TotalVariance:   r.TotalVariance,
		StorageVariance: r.StorageVariance,
		TruckVariance:   r.TruckVariance,
		NormalCount:     r.NormalCount,
		MinorCount:      r.MinorCount,
		WarningCount:    r.WarningCount,
		CriticalCount:   r.CriticalCount,
		Status:          r.Status,
		GeneratedAt:     r.GeneratedAt,
		FinalizedAt:     r.FinalizedAt,
		ApprovedAt:      r.ApprovedAt,
		ApprovedBy:      r.ApprovedBy,
		UpdatedAt:       r.UpdatedAt,
	}
}

// VarianceReportListResponse lista paginada de reportes.
type VarianceReportListResponse struct {
	Items []VarianceReportResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}

// ConsumptionSummaryResponse salida del agregado diario de una unidad.
type ConsumptionSummaryResponse struct {
	ID               string          `json:"id"`
	UnitID           string          `json:"unit_id"`
	Date             time.Time       `json:"date"`
	TransactionCount int             `json:"transaction_count"`
	TotalFuel        decimal.Decimal `json:"total_fuel"`
	TotalHours       decimal.Decimal `json:"total_hours"`
	TotalKm          decimal.Decimal `json:"total_km"`

	AvgEfficiency *decimal.Decimal `json:"avg_efficiency,omitempty"`
	MinEfficiency *decimal.Decimal `json:"min_efficiency,omitempty"`
	MaxEfficiency *decimal.Decimal `json:"max_efficiency,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// ConsumptionSummaryToResponse mapea la entidad a su representación HTTP.
func ConsumptionSummaryToResponse(s *entity.UnitConsumptionSummary) ConsumptionSummaryResponse {
	return ConsumptionSummaryResponse{
		ID:               s.ID,
		UnitID:           s.UnitID,
		Date:             s.Date,
		TransactionCount: s.TransactionCount,
		TotalFuel:        s.TotalFuel,
		TotalHours:       s.TotalHours,
		TotalKm:          s.TotalKm,
		AvgEfficiency:    s.AvgEfficiency,
		MinEfficiency:    s.MinEfficiency,
		MaxEfficiency:    s.MaxEfficiency,
		UpdatedAt:        s.UpdatedAt,
	}
}

// ConsumptionSummaryListResponse lista de resúmenes en un rango.
type ConsumptionSummaryListResponse struct {
	Items []ConsumptionSummaryResponse `json:"items"`
}

// RebuildSummaryRequest entrada para reconstruir los resúmenes de un día.
type RebuildSummaryRequest struct {
	Date   time.Time `json:"date" validate:"required"`
	UnitID string    `json:"unit_id" validate:"omitempty,uuid4"`
}
