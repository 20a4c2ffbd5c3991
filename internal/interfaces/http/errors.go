package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Combustible-api/internal/application/dto"
	"github.com/jhoicas/Combustible-api/internal/domain"
)

// validate instancia compartida de validator para los handlers.
var validate = validator.New()

// validateStruct corre las reglas de los tags y responde 400 con el detalle.
// Devuelve true si respondió (el handler debe retornar).
func validateStruct(c *fiber.Ctx, in any) (bool, error) {
	if err := validate.Struct(in); err != nil {
		var details []string
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				details = append(details, fe.Field()+": regla "+fe.Tag())
			}
		}
		return true, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "cuerpo inválido", Details: details,
		})
	}
	return false, nil
}

// domainError mapea los errores del dominio a respuestas HTTP. El
// ValidationError del dominio lleva la lista completa de problemas.
func domainError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "la operación viola reglas del dominio", Details: verr.Issues,
		})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el código ya existe"})
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrOutOfRange),
		errors.Is(err, domain.ErrMeterRegression):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientFuel),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrTankCapacity),
		errors.Is(err, domain.ErrContainerInactive),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrAlreadyAdjusted),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrRollback):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
