package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Combustible-api/internal/application/dto"
	"github.com/jhoicas/Combustible-api/internal/application/ledger"
	"github.com/jhoicas/Combustible-api/internal/application/usecase"
	"github.com/jhoicas/Combustible-api/internal/domain/entity"
)

// TruckHandler maneja las peticiones HTTP para camiones cisterna (protegido).
type TruckHandler struct {
	uc          *usecase.TruckUseCase
	containerUC *ledger.ContainerUseCase
}

// NewTruckHandler construye el handler.
func NewTruckHandler(uc *usecase.TruckUseCase, containerUC *ledger.ContainerUseCase) *TruckHandler {
	return &TruckHandler{uc: uc, containerUC: containerUC}
}

// Create godoc
// @Summary      Crear camión cisterna
// @Tags         trucks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTruckRequest  true  "Datos del camión"
// @Success      201   {object}  dto.TruckResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/trucks [post]
func (h *TruckHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTruckRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if done, err := validateStruct(c, in); done {
		return err
	}
	truck, err := h.uc.Create(c.Context(), usecase.CreateTruckInput{
		Code:         in.Code,
		Name:         in.Name,
		FuelType:     entity.FuelType(in.FuelType),
		Capacity:     in.Capacity,
		InitialLevel: in.InitialLevel,
		PlateNumber:  in.PlateNumber,
		DriverName:   in.DriverName,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TruckToResponse(truck))
}

// GetByID godoc
// @Summary      Obtener camión por ID
// @Tags         trucks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del camión"
// @Success      200  {object}  dto.TruckResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/trucks/{id} [get]
func (h *TruckHandler) GetByID(c *fiber.Ctx) error {
	truck, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.TruckToResponse(truck))
}

// List godoc
// @Summary      Listar camiones
// @Tags         trucks
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.TruckListResponse
// @Router       /api/trucks [get]
func (h *TruckHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	trucks, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	items := make([]dto.TruckResponse, 0, len(trucks))
	for _, t := range trucks {
		items = append(items, dto.TruckToResponse(t))
	}
	return c.JSON(dto.TruckListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// Update godoc
// @Summary      Actualizar camión
// @Tags         trucks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del camión"
// @Param        body  body  dto.UpdateTruckRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.TruckResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/trucks/{id} [put]
func (h *TruckHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTruckRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if done, err := validateStruct(c, in); done {
		return err
	}
	truck, err := h.uc.Update(c.Context(), c.Params("id"), usecase.UpdateTruckInput{
		Name:        in.Name,
		PlateNumber: in.PlateNumber,
		DriverName:  in.DriverName,
		IsActive:    in.IsActive,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.TruckToResponse(truck))
}

// AdjustLevel godoc
// @Summary      Fijar el nivel del camión a mano
// @Tags         trucks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del camión"
// @Param        body  body  dto.AdjustLevelRequest  true  "Nuevo nivel"
// @Success      200   {object}  dto.TruckResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/trucks/{id}/level [put]
func (h *TruckHandler) AdjustLevel(c *fiber.Ctx) error {
	var in dto.AdjustLevelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	id := c.Params("id")
	if err := h.containerUC.AdjustLevel(c.Context(), entity.TruckRef(id), in.NewLevel, GetUserID(c)); err != nil {
		return domainError(c, err)
	}
	truck, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.TruckToResponse(truck))
}
