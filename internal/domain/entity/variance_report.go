package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Combustible-api/internal/domain"
)

// Períodos de un reporte de varianza.
const (
	ReportPeriodDaily   = "DAILY"
	ReportPeriodWeekly  = "WEEKLY"
	ReportPeriodMonthly = "MONTHLY"
)

// Flujo de estados del reporte: DRAFT -> FINAL -> APPROVED, monotónico,
// sin saltos; el único retroceso permitido es el rechazo explícito
// FINAL -> DRAFT.
const (
	ReportStatusDraft    = "DRAFT"
	ReportStatusFinal    = "FINAL"
	ReportStatusApproved = "APPROVED"
)

// VarianceReport rollup por período de los chequeos físicos de stock.
// Read-model derivado: consume los chequeos, no muta el ledger.
type VarianceReport struct {
	ID          string
	Period      string
	PeriodStart time.Time
	PeriodEnd   time.Time

	TotalChecks     int
	TotalVariance   decimal.Decimal
	StorageVariance decimal.Decimal // varianza acumulada de tanques
	TruckVariance   decimal.Decimal // varianza acumulada de camiones
	NormalCount     int
	MinorCount      int
	WarningCount    int
	CriticalCount   int

	Status      string
	GeneratedAt time.Time
	FinalizedAt *time.Time
	ApprovedAt  *time.Time
	ApprovedBy  string
	UpdatedAt   time.Time
}

// Finalize pasa el reporte de DRAFT a FINAL.
func (r *VarianceReport) Finalize(now time.Time) error {
	if r.Status != ReportStatusDraft {
		return domain.ErrInvalidTransition
	}
	r.Status = ReportStatusFinal
	r.FinalizedAt = &now
	return nil
}

// Approve pasa el reporte de FINAL a APPROVED (estado terminal).
func (r *VarianceReport) Approve(approver string, now time.Time) error {
	if r.Status != ReportStatusFinal {
		return domain.ErrInvalidTransition
	}
	r.Status = ReportStatusApproved
	r.ApprovedAt = &now
	r.ApprovedBy = approver
	return nil
}

// Reject devuelve un reporte FINAL a DRAFT. APPROVED no se puede rechazar.
func (r *VarianceReport) Reject() error {
	if r.Status != ReportStatusFinal {
		return domain.ErrInvalidTransition
	}
	r.Status = ReportStatusDraft
	r.FinalizedAt = nil
	return nil
}
