package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Combustible-api/internal/application/dto"
	"github.com/jhoicas/Combustible-api/internal/application/ledger"
	"github.com/jhoicas/Combustible-api/internal/domain/entity"
)

// TransactionHandler maneja las peticiones HTTP del ledger de despachos a
// unidades (protegido).
type TransactionHandler struct {
	uc *ledger.DispenseUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *ledger.DispenseUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar despacho de combustible a una unidad
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "Datos del despacho"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if done, err := validateStruct(c, in); done {
		return err
	}
	input := ledger.CreateTransactionInput{
		UnitID:           in.UnitID,
		Source:           entity.ContainerRef{Kind: entity.ContainerKind(in.SourceKind), ID: in.SourceID},
		FuelAmount:       in.FuelAmount,
		CurrentHourMeter: in.CurrentHourMeter,
		CurrentOdometer:  in.CurrentOdometer,
		OperatorID:       GetUserID(c),
		SessionID:        in.SessionID,
	}
	if in.DispensedAt != nil {
		input.DispensedAt = *in.DispensedAt
	}
	result, err := h.uc.Create(c.Context(), input)
	if err != nil {
		return domainError(c, err)
	}
	out := dto.TransactionToResponse(result.Transaction)
	out.ExpectedFuel = result.ExpectedFuel
	out.VariancePct = result.VariancePct
	out.Reasonable = result.Reasonable
	out.Warnings = result.Warnings
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener despacho por ID
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del despacho"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	txn, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.TransactionToResponse(txn))
}

// ListByUnit godoc
// @Summary      Listar despachos de una unidad
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la unidad"
// @Param        from    query  string  false  "Desde (RFC3339)"
// @Param        to      query  string  false  "Hasta (RFC3339)"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.TransactionListResponse
// @Router       /api/units/{id}/transactions [get]
func (h *TransactionHandler) ListByUnit(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	from, to, ok := timeRangeFromQuery(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from/to deben ser RFC3339"})
	}
	txns, err := h.uc.ListByUnit(c.Context(), c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(transactionList(txns, page))
}

// ListBySource godoc
// @Summary      Listar despachos desde un contenedor
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        kind    query  string  true   "Variante (STORAGE | TRUCK)"
// @Param        id      query  string  true   "ID del contenedor"
// @Param        from    query  string  false  "Desde (RFC3339)"
// @Param        to      query  string  false  "Hasta (RFC3339)"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.TransactionListResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) ListBySource(c *fiber.Ctx) error {
	kind := c.Query("kind")
	id := c.Query("id")
	if kind == "" || id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "kind e id son requeridos"})
	}
	page := pageFromQuery(c)
	from, to, ok := timeRangeFromQuery(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from/to deben ser RFC3339"})
	}
	source := entity.ContainerRef{Kind: entity.ContainerKind(kind), ID: id}
	txns, err := h.uc.ListBySource(c.Context(), source, from, to, page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(transactionList(txns, page))
}

// Delete godoc
// @Summary      Eliminar despacho (devuelve el combustible a la fuente)
// @Tags         transactions
// @Security     Bearer
// @Param        id   path  string  true  "ID del despacho"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func transactionList(txns []*entity.FuelTransaction, page dto.PageRequest) dto.TransactionListResponse {
	items := make([]dto.TransactionResponse, 0, len(txns))
	for _, t := range txns {
		items = append(items, dto.TransactionToResponse(t))
	}
	return dto.TransactionListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}
}
