package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Combustible-api/internal/application/dto"
	"github.com/jhoicas/Combustible-api/internal/application/report"
	"github.com/jhoicas/Combustible-api/internal/application/usecase"
)

// UnitHandler maneja las peticiones HTTP para unidades de equipo y sus tipos (protegido).
type UnitHandler struct {
	uc        *usecase.UnitUseCase
	summaryUC *report.ConsumptionSummaryUseCase
}

// NewUnitHandler construye el handler.
func NewUnitHandler(uc *usecase.UnitUseCase, summaryUC *report.ConsumptionSummaryUseCase) *UnitHandler {
	return &UnitHandler{uc: uc, summaryUC: summaryUC}
}

// CreateUnitType godoc
// @Summary      Crear tipo de unidad
// @Tags         units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUnitTypeRequest  true  "Datos del tipo"
// @Success      201   {object}  dto.UnitTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/unit-types [post]
func (h *UnitHandler) CreateUnitType(c *fiber.Ctx) error {
	var in dto.CreateUnitTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if done, err := validateStruct(c, in); done {
		return err
	}
	unitType, err := h.uc.CreateUnitType(c.Context(), usecase.CreateUnitTypeInput{
		Code:               in.Code,
		Name:               in.Name,
		ConsumptionPerHour: in.ConsumptionPerHour,
		ConsumptionPerKm:   in.ConsumptionPerKm,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UnitTypeToResponse(unitType))
}

// ListUnitTypes godoc
// @Summary      Listar tipos de unidad
// @Tags         units
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UnitTypeResponse
// @Router       /api/unit-types [get]
func (h *UnitHandler) ListUnitTypes(c *fiber.Ctx) error {
	unitTypes, err := h.uc.ListUnitTypes(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	items := make([]dto.UnitTypeResponse, 0, len(unitTypes))
	for _, t := range unitTypes {
		items = append(items, dto.UnitTypeToResponse(t))
	}
	return c.JSON(items)
}

// UpdateUnitType godoc
// @Summary      Actualizar tipo de unidad
// @Tags         units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del tipo"
// @Param        body  body  dto.UpdateUnitTypeRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.UnitTypeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/unit-types/{id} [put]
func (h *UnitHandler) UpdateUnitType(c *fiber.Ctx) error {
	var in dto.UpdateUnitTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if done, err := validateStruct(c, in); done {
		return err
	}
	unitType, err := h.uc.UpdateUnitType(c.Context(), c.Params("id"), usecase.UpdateUnitTypeInput{
		Name:               in.Name,
		ConsumptionPerHour: in.ConsumptionPerHour,
		ConsumptionPerKm:   in.ConsumptionPerKm,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.UnitTypeToResponse(unitType))
}

// CreateUnit godoc
// @Summary      Crear unidad de equipo
// @Tags         units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUnitRequest  true  "Datos de la unidad"
// @Success      201   {object}  dto.UnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/units [post]
func (h *UnitHandler) CreateUnit(c *fiber.Ctx) error {
	var in dto.CreateUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if done, err := validateStruct(c, in); done {
		return err
	}
	unit, err := h.uc.CreateUnit(c.Context(), usecase.CreateUnitInput{
		Code:             in.Code,
		Name:             in.Name,
		UnitTypeID:       in.UnitTypeID,
		InitialHourMeter: in.InitialHourMeter,
		InitialOdometer:  in.InitialOdometer,
		FuelTankCapacity: in.FuelTankCapacity,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UnitToResponse(unit))
}

// GetUnit godoc
// @Summary      Obtener unidad por ID
// @Tags         units
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la unidad"
// @Success      200  {object}  dto.UnitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/units/{id} [get]
func (h *UnitHandler) GetUnit(c *fiber.Ctx) error {
	unit, err := h.uc.GetUnit(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.UnitToResponse(unit))
}

// ListUnits godoc
// @Summary      Listar unidades
// @Tags         units
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.UnitListResponse
// @Router       /api/units [get]
func (h *UnitHandler) ListUnits(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	units, err := h.uc.ListUnits(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	items := make([]dto.UnitResponse, 0, len(units))
	for _, u := range units {
		items = append(items, dto.UnitToResponse(u))
	}
	return c.JSON(dto.UnitListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// UpdateUnit godoc
// @Summary      Actualizar unidad
// @Tags         units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la unidad"
// @Param        body  body  dto.UpdateUnitRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.UnitResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/units/{id} [put]
func (h *UnitHandler) UpdateUnit(c *fiber.Ctx) error {
	var in dto.UpdateUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if done, err := validateStruct(c, in); done {
		return err
	}
	unit, err := h.uc.UpdateUnit(c.Context(), c.Params("id"), usecase.UpdateUnitInput{
		Name:             in.Name,
		UnitTypeID:       in.UnitTypeID,
		FuelTankCapacity: in.FuelTankCapacity,
		IsActive:         in.IsActive,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.UnitToResponse(unit))
}

// Rating godoc
// @Summary      Calificación de eficiencia reciente de la unidad
// @Tags         units
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la unidad"
// @Success      200  {object}  dto.UnitRatingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/units/{id}/rating [get]
func (h *UnitHandler) Rating(c *fiber.Ctx) error {
	id := c.Params("id")
	rating, err := h.summaryUC.RateUnit(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.UnitRatingResponse{UnitID: id, Rating: rating})
}
