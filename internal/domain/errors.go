package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInvalidAmount     = errors.New("cantidad inválida")
	ErrCapacityExceeded  = errors.New("capacidad del contenedor excedida")
	ErrInsufficientFuel  = errors.New("combustible insuficiente")
	ErrOutOfRange        = errors.New("nivel fuera de rango")
	ErrContainerInactive = errors.New("contenedor inactivo")
	ErrMeterRegression   = errors.New("la lectura del medidor no puede retroceder")
	ErrTankCapacity      = errors.New("cantidad supera la capacidad del tanque de la unidad")
	ErrAlreadyAdjusted   = errors.New("el chequeo físico ya fue ajustado")
	ErrRollback          = errors.New("no es posible revertir la operación")
	ErrInvalidTransition = errors.New("transición de estado inválida")
)
