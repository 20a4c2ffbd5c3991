package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Combustible-api/internal/application/dto"
	"github.com/jhoicas/Combustible-api/internal/application/ledger"
	"github.com/jhoicas/Combustible-api/internal/application/usecase"
	"github.com/jhoicas/Combustible-api/internal/domain/entity"
)

// StorageHandler maneja las peticiones HTTP para tanques de almacenamiento (protegido).
type StorageHandler struct {
	uc          *usecase.StorageUseCase
	containerUC *ledger.ContainerUseCase
}

// NewStorageHandler construye el handler.
func NewStorageHandler(uc *usecase.StorageUseCase, containerUC *ledger.ContainerUseCase) *StorageHandler {
	return &StorageHandler{uc: uc, containerUC: containerUC}
}

// Create godoc
// @Summary      Crear tanque de almacenamiento
// @Tags         storages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStorageRequest  true  "Datos del tanque"
// @Success      201   {object}  dto.StorageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/storages [post]
func (h *StorageHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStorageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if done, err := validateStruct(c, in); done {
		return err
	}
	storage, err := h.uc.Create(c.Context(), usecase.CreateStorageInput{
		Code:         in.Code,
		Name:         in.Name,
		FuelType:     entity.FuelType(in.FuelType),
		Capacity:     in.Capacity,
		InitialLevel: in.InitialLevel,
		MinimumLevel: in.MinimumLevel,
		Location:     in.Location,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StorageToResponse(storage))
}

// GetByID godoc
// @Summary      Obtener tanque por ID
// @Tags         storages
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del tanque"
// @Success      200  {object}  dto.StorageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/storages/{id} [get]
func (h *StorageHandler) GetByID(c *fiber.Ctx) error {
	storage, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.StorageToResponse(storage))
}

// List godoc
// @Summary      Listar tanques
// @Tags         storages
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.StorageListResponse
// @Router       /api/storages [get]
func (h *StorageHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	storages, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	items := make([]dto.StorageResponse, 0, len(storages))
	for _, s := range storages {
		items = append(items, dto.StorageToResponse(s))
	}
	return c.JSON(dto.StorageListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// ListLow godoc
// @Summary      Listar tanques bajo su nivel mínimo
// @Tags         storages
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StorageResponse
// @Router       /api/storages/low [get]
func (h *StorageHandler) ListLow(c *fiber.Ctx) error {
	storages, err := h.uc.ListLow(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	items := make([]dto.StorageResponse, 0, len(storages))
	for _, s := range storages {
		items = append(items, dto.StorageToResponse(s))
	}
	return c.JSON(items)
}

// Update godoc
// @Summary      Actualizar tanque
// @Tags         storages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del tanque"
// @Param        body  body  dto.UpdateStorageRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.StorageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/storages/{id} [put]
func (h *StorageHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStorageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if done, err := validateStruct(c, in); done {
		return err
	}
	storage, err := h.uc.Update(c.Context(), c.Params("id"), usecase.UpdateStorageInput{
		Name:         in.Name,
		MinimumLevel: in.MinimumLevel,
		Location:     in.Location,
		IsActive:     in.IsActive,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.StorageToResponse(storage))
}

// AdjustLevel godoc
// @Summary      Fijar el nivel del tanque a mano
// @Tags         storages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del tanque"
// @Param        body  body  dto.AdjustLevelRequest  true  "Nuevo nivel"
// @Success      200   {object}  dto.StorageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/storages/{id}/level [put]
func (h *StorageHandler) AdjustLevel(c *fiber.Ctx) error {
	var in dto.AdjustLevelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	id := c.Params("id")
	if err := h.containerUC.AdjustLevel(c.Context(), entity.StorageRef(id), in.NewLevel, GetUserID(c)); err != nil {
		return domainError(c, err)
	}
	storage, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.StorageToResponse(storage))
}

// pageFromQuery lee limit/offset con los defaults del listado.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	if page.Limit > 100 {
		page.Limit = 100
	}
	page.DefaultPage()
	return page
}
