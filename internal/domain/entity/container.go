package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Combustible-api/internal/domain"
)

// Tipos de combustible manejados por el sistema.
type FuelType string

const (
	FuelTypeDiesel   FuelType = "DIESEL"
	FuelTypeGasoline FuelType = "GASOLINE"
	FuelTypePremium  FuelType = "PREMIUM"
)

// ContainerKind distingue la variante de contenedor (tanque fijo o camión cisterna).
type ContainerKind string

const (
	ContainerKindStorage ContainerKind = "STORAGE"
	ContainerKindTruck   ContainerKind = "TRUCK"
)

// ContainerRef referencia polimórfica a un contenedor de combustible
// (unión etiquetada: variante + id). Los motores la resuelven vía
// ContainerRepository sin inspección de tipos en runtime.
type ContainerRef struct {
	Kind ContainerKind
	ID   string
}

// StorageRef construye la referencia a un tanque de almacenamiento.
func StorageRef(id string) ContainerRef {
	return ContainerRef{Kind: ContainerKindStorage, ID: id}
}

// TruckRef construye la referencia a un camión cisterna.
func TruckRef(id string) ContainerRef {
	return ContainerRef{Kind: ContainerKindTruck, ID: id}
}

// FuelContainer estado común de un contenedor de combustible.
// Invariante: 0 <= CurrentLevel <= Capacity después de toda operación
// confirmada. El nivel se muta únicamente vía AddFuel/RemoveFuel/SetLevel;
// los motores re-leen el estado persistido (con lock de fila) antes de operar.
type FuelContainer struct {
	ID           string
	Kind         ContainerKind
	Code         string // código único, ej. ST-01 / FT-03
	Name         string
	FuelType     FuelType
	Capacity     decimal.Decimal
	CurrentLevel decimal.Decimal
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Ref devuelve la referencia polimórfica al contenedor.
func (c *FuelContainer) Ref() ContainerRef {
	return ContainerRef{Kind: c.Kind, ID: c.ID}
}

// AddFuel agrega combustible respetando la capacidad.
func (c *FuelContainer) AddFuel(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	newLevel := c.CurrentLevel.Add(amount)
	if newLevel.GreaterThan(c.Capacity) {
		return domain.ErrCapacityExceeded
	}
	c.CurrentLevel = newLevel
	return nil
}

// RemoveFuel retira combustible; nunca deja el nivel negativo.
func (c *FuelContainer) RemoveFuel(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	if c.CurrentLevel.LessThan(amount) {
		return domain.ErrInsufficientFuel
	}
	newLevel := c.CurrentLevel.Sub(amount)
	if newLevel.IsNegative() {
		newLevel = decimal.Zero
	}
	c.CurrentLevel = newLevel
	return nil
}

// SetLevel fija el nivel directamente (ajuste manual o corrección por
// chequeo físico). Falla si el nuevo nivel queda fuera de [0, Capacity].
func (c *FuelContainer) SetLevel(newLevel decimal.Decimal) error {
	if newLevel.IsNegative() || newLevel.GreaterThan(c.Capacity) {
		return domain.ErrOutOfRange
	}
	c.CurrentLevel = newLevel
	return nil
}

// CanDispense indica si el contenedor puede despachar la cantidad pedida.
func (c *FuelContainer) CanDispense(amount decimal.Decimal) bool {
	return c.IsActive && amount.GreaterThan(decimal.Zero) && c.CurrentLevel.GreaterThanOrEqual(amount)
}

// UsagePercentage porcentaje de uso del contenedor, redondeado a 2 decimales.
// Devuelve 0 si la capacidad es 0.
func (c *FuelContainer) UsagePercentage() decimal.Decimal {
	if c.Capacity.IsZero() {
		return decimal.Zero
	}
	return c.CurrentLevel.Div(c.Capacity).Mul(decimal.NewFromInt(100)).Round(2)
}

// RemainingCapacity capacidad disponible, nunca negativa.
func (c *FuelContainer) RemainingCapacity() decimal.Decimal {
	rem := c.Capacity.Sub(c.CurrentLevel)
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

// IsEmpty indica si el contenedor está vacío.
func (c *FuelContainer) IsEmpty() bool {
	return c.CurrentLevel.LessThanOrEqual(decimal.Zero)
}

// IsFull indica si el contenedor está a capacidad.
func (c *FuelContainer) IsFull() bool {
	return c.CurrentLevel.GreaterThanOrEqual(c.Capacity) && !c.Capacity.IsZero()
}
