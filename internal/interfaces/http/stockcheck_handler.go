package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Combustible-api/internal/application/dto"
	"github.com/jhoicas/Combustible-api/internal/application/ledger"
	"github.com/jhoicas/Combustible-api/internal/domain/entity"
)

// StockCheckHandler maneja las peticiones HTTP de chequeos físicos de stock (protegido).
type StockCheckHandler struct {
	uc *ledger.StockCheckUseCase
}

// NewStockCheckHandler construye el handler.
func NewStockCheckHandler(uc *ledger.StockCheckUseCase) *StockCheckHandler {
	return &StockCheckHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar chequeo físico de stock
// @Tags         stock-checks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordStockCheckRequest  true  "Datos del chequeo"
// @Success      201   {object}  dto.StockCheckResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-checks [post]
func (h *StockCheckHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordStockCheckRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if done, err := validateStruct(c, in); done {
		return err
	}
	input := ledger.RecordStockCheckInput{
		Container:     entity.ContainerRef{Kind: entity.ContainerKind(in.ContainerKind), ID: in.ContainerID},
		PhysicalLevel: in.PhysicalLevel,
		CheckedBy:     GetUserID(c),
		Method:        in.Method,
	}
	if in.CheckedAt != nil {
		input.CheckedAt = *in.CheckedAt
	}
	check, err := h.uc.Record(c.Context(), input)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockCheckToResponse(check))
}

// GetByID godoc
// @Summary      Obtener chequeo por ID
// @Tags         stock-checks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del chequeo"
// @Success      200  {object}  dto.StockCheckResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-checks/{id} [get]
func (h *StockCheckHandler) GetByID(c *fiber.Ctx) error {
	check, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.StockCheckToResponse(check))
}

// ListByContainer godoc
// @Summary      Listar chequeos de un contenedor
// @Tags         stock-checks
// @Security     Bearer
// @Produce      json
// @Param        kind    query  string  true   "Variante (STORAGE | TRUCK)"
// @Param        id      query  string  true   "ID del contenedor"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.StockCheckListResponse
// @Router       /api/stock-checks [get]
func (h *StockCheckHandler) ListByContainer(c *fiber.Ctx) error {
	kind := c.Query("kind")
	id := c.Query("id")
	if kind == "" || id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "kind e id son requeridos"})
	}
	page := pageFromQuery(c)
	ref := entity.ContainerRef{Kind: entity.ContainerKind(kind), ID: id}
	checks, err := h.uc.ListByContainer(c.Context(), ref, page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	items := make([]dto.StockCheckResponse, 0, len(checks))
	for _, ch := range checks {
		items = append(items, dto.StockCheckToResponse(ch))
	}
	return c.JSON(dto.StockCheckListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// Adjust godoc
// @Summary      Aplicar el ajuste de sistema de un chequeo (una sola vez)
// @Tags         stock-checks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del chequeo"
// @Param        body  body  dto.AdjustStockCheckRequest  true  "Motivo del ajuste"
// @Success      200   {object}  dto.StockCheckResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-checks/{id}/adjust [post]
func (h *StockCheckHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockCheckRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if done, err := validateStruct(c, in); done {
		return err
	}
	id := c.Params("id")
	applied, err := h.uc.Adjust(c.Context(), id, in.Reason, GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	check, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	out := dto.StockCheckToResponse(check)
	if !applied {
		// Idempotente: ya ajustado o varianza despreciable, sin cambios.
		c.Set("X-Adjustment-Applied", "false")
	}
	return c.JSON(out)
}
