package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Combustible-api/internal/domain/entity"
)

// CreateTransferRequest entrada para registrar una transferencia
// tanque -> camión.
type CreateTransferRequest struct {
	StorageID     string          `json:"storage_id" validate:"required,uuid4"`
	TruckID       string          `json:"truck_id" validate:"required,uuid4"`
	Amount        decimal.Decimal `json:"amount"`
	SessionID     string          `json:"session_id"`
	TransferredAt *time.Time      `json:"transferred_at"`
}

// UpdateTransferAmountRequest entrada para corregir la cantidad de una
// transferencia ya registrada.
type UpdateTransferAmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// TransferResponse salida de una transferencia con sus snapshots históricos.
type TransferResponse struct {
	ID                 string          `json:"id"`
	StorageID          string          `json:"storage_id"`
	TruckID            string          `json:"truck_id"`
	Amount             decimal.Decimal `json:"amount"`
	FuelType           string          `json:"fuel_type"`
	StorageLevelBefore decimal.Decimal `json:"storage_level_before"`
	StorageLevelAfter  decimal.Decimal `json:"storage_level_after"`
	TruckLevelBefore   decimal.Decimal `json:"truck_level_before"`
	TruckLevelAfter    decimal.Decimal `json:"truck_level_after"`
	OperatorID         string          `json:"operator_id"`
	SessionID          string          `json:"session_id"`
	TransferredAt      time.Time       `json:"transferred_at"`
	Warnings           []string        `json:"warnings,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// TransferToResponse mapea la entidad a su representación HTTP.
func TransferToResponse(t *entity.FuelTransfer, warnings []string) TransferResponse {
	return TransferResponse{
		ID:                 t.ID,
		StorageID:          t.StorageID,
		TruckID:            t.TruckID,
		Amount:             t.Amount,
		FuelType:           string(t.FuelType),
		StorageLevelBefore: t.StorageLevelBefore,
		StorageLevelAfter:  t.StorageLevelAfter,
		TruckLevelBefore:   t.TruckLevelBefore,
		TruckLevelAfter:    t.TruckLevelAfter,
		OperatorID:         t.OperatorID,
		SessionID:          t.SessionID,
		TransferredAt:      t.TransferredAt,
		Warnings:           warnings,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

// TransferListResponse lista paginada de transferencias.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateTransactionRequest entrada para registrar un despacho a una unidad.
// Los medidores previos NO se aceptan: el motor los siembra de la última
// transacción de la unidad.
type CreateTransactionRequest struct {
	UnitID           string          `json:"unit_id" validate:"required,uuid4"`
	SourceKind       string          `json:"source_kind" validate:"required,oneof=STORAGE TRUCK"`
	SourceID         string          `json:"source_id" validate:"required,uuid4"`
	FuelAmount       decimal.Decimal `json:"fuel_amount"`
	CurrentHourMeter decimal.Decimal `json:"current_hour_meter"`
	CurrentOdometer  decimal.Decimal `json:"current_odometer"`
	SessionID        string          `json:"session_id"`
	DispensedAt      *time.Time      `json:"dispensed_at"`
}

// TransactionResponse salida de un despacho con su eficiencia calculada y el
// chequeo de consumo razonable (nulos cuando no son calculables).
type TransactionResponse struct {
	ID                string          `json:"id"`
	UnitID            string          `json:"unit_id"`
	SourceKind        string          `json:"source_kind"`
	SourceID          string          `json:"source_id"`
	FuelAmount        decimal.Decimal `json:"fuel_amount"`
	PreviousHourMeter decimal.Decimal `json:"previous_hour_meter"`
	CurrentHourMeter  decimal.Decimal `json:"current_hour_meter"`
	PreviousOdometer  decimal.Decimal `json:"previous_odometer"`
	CurrentOdometer   decimal.Decimal `json:"current_odometer"`
	SourceLevelBefore decimal.Decimal `json:"source_level_before"`
	SourceLevelAfter  decimal.Decimal `json:"source_level_after"`

	EfficiencyPerHour  *decimal.Decimal `json:"efficiency_per_hour,omitempty"`
	EfficiencyPerKm    *decimal.Decimal `json:"efficiency_per_km,omitempty"`
	CombinedEfficiency *decimal.Decimal `json:"combined_efficiency,omitempty"`

	ExpectedFuel *decimal.Decimal `json:"expected_fuel,omitempty"`
	VariancePct  *decimal.Decimal `json:"variance_pct,omitempty"`
	Reasonable   *bool            `json:"reasonable,omitempty"`
	Warnings     []string         `json:"warnings,omitempty"`

	OperatorID  string    `json:"operator_id"`
	SessionID   string    `json:"session_id"`
	DispensedAt time.Time `json:"dispensed_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// TransactionToResponse mapea la entidad a su representación HTTP.
func TransactionToResponse(t *entity.FuelTransaction) TransactionResponse {
	return TransactionResponse{
		ID:                 t.ID,
		UnitID:             t.UnitID,
		SourceKind:         string(t.Source.Kind),
		SourceID:           t.Source.ID,
		FuelAmount:         t.FuelAmount,
		PreviousHourMeter:  t.PreviousHourMeter,
		CurrentHourMeter:   t.CurrentHourMeter,
		PreviousOdometer:   t.PreviousOdometer,
		CurrentOdometer:    t.CurrentOdometer,
		SourceLevelBefore:  t.SourceLevelBefore,
		SourceLevelAfter:   t.SourceLevelAfter,
		EfficiencyPerHour:  t.EfficiencyPerHour,
		EfficiencyPerKm:    t.EfficiencyPerKm,
		CombinedEfficiency: t.CombinedEfficiency,
		OperatorID:         t.OperatorID,
		SessionID:          t.SessionID,
		DispensedAt:        t.DispensedAt,
		CreatedAt:          t.CreatedAt,
	}
}

// TransactionListResponse lista paginada de despachos.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// RecordStockCheckRequest entrada para registrar un chequeo físico de stock.
type RecordStockCheckRequest struct {
	ContainerKind string          `json:"container_kind" validate:"required,oneof=STORAGE TRUCK"`
	ContainerID   string          `json:"container_id" validate:"required,uuid4"`
	PhysicalLevel decimal.Decimal `json:"physical_level"`
	Method        string          `json:"method" validate:"required"`
	CheckedAt     *time.Time      `json:"checked_at"`
}

// AdjustStockCheckRequest entrada para aplicar el ajuste de un chequeo.
type AdjustStockCheckRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

// StockCheckResponse salida de un chequeo físico con su clasificación.
type StockCheckResponse struct {
	ID                 string          `json:"id"`
	ContainerKind      string          `json:"container_kind"`
	ContainerID        string          `json:"container_id"`
	SystemLevel        decimal.Decimal `json:"system_level"`
	PhysicalLevel      decimal.Decimal `json:"physical_level"`
	Variance           decimal.Decimal `json:"variance"`
	VariancePercentage decimal.Decimal `json:"variance_percentage"`
	VarianceStatus     string          `json:"variance_status"`

	SystemAdjusted   bool             `json:"system_adjusted"`
	AdjustmentAmount *decimal.Decimal `json:"adjustment_amount,omitempty"`
	AdjustmentReason string           `json:"adjustment_reason,omitempty"`
	AdjustedAt       *time.Time       `json:"adjusted_at,omitempty"`
	AdjustedBy       string           `json:"adjusted_by,omitempty"`

	CheckedBy string    `json:"checked_by"`
	Method    string    `json:"method"`
	CheckedAt time.Time `json:"checked_at"`
	CreatedAt time.Time `json:"created_at"`
}

// StockCheckToResponse mapea la entidad a su representación HTTP.
func StockCheckToResponse(c *entity.PhysicalStockCheck) StockCheckResponse {
	return StockCheckResponse{
		ID:                 c.ID,
		ContainerKind:      string(c.Container.Kind),
		ContainerID:        c.Container.ID,
		SystemLevel:        c.SystemLevel,
		PhysicalLevel:      c.PhysicalLevel,
		Variance:           c.Variance,
		VariancePercentage: c.VariancePercentage,
		VarianceStatus:     c.VarianceStatus,
		SystemAdjusted:     c.SystemAdjusted,
		AdjustmentAmount:   c.AdjustmentAmount,
		AdjustmentReason:   c.AdjustmentReason,
		AdjustedAt:         c.AdjustedAt,
		AdjustedBy:         c.AdjustedBy,
		CheckedBy:          c.CheckedBy,
		Method:             c.Method,
		CheckedAt:          c.CheckedAt,
		CreatedAt:          c.CreatedAt,
	}
}

// StockCheckListResponse lista paginada de chequeos.
type StockCheckListResponse struct {
	Items []StockCheckResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
