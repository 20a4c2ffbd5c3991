package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Combustible-api/internal/application/dto"
	"github.com/jhoicas/Combustible-api/internal/application/ledger"
)

// TransferHandler maneja las peticiones HTTP del ledger de transferencias
// tanque -> camión (protegido).
type TransferHandler struct {
	uc *ledger.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *ledger.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar transferencia tanque -> camión
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "Datos de la transferencia"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if done, err := validateStruct(c, in); done {
		return err
	}
	input := ledger.CreateTransferInput{
		StorageID:  in.StorageID,
		TruckID:    in.TruckID,
		Amount:     in.Amount,
		OperatorID: GetUserID(c),
		SessionID:  in.SessionID,
	}
	if in.TransferredAt != nil {
		input.TransferredAt = *in.TransferredAt
	}
	result, err := h.uc.Create(c.Context(), input)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransferToResponse(result.Transfer, result.Warnings))
}

// GetByID godoc
// @Summary      Obtener transferencia por ID
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transferencia"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	transfer, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.TransferToResponse(transfer, nil))
}

// List godoc
// @Summary      Listar transferencias
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (RFC3339)"
// @Param        to      query  string  false  "Hasta (RFC3339)"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.TransferListResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	from, to, ok := timeRangeFromQuery(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from/to deben ser RFC3339"})
	}
	transfers, err := h.uc.List(c.Context(), from, to, page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	items := make([]dto.TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		items = append(items, dto.TransferToResponse(t, nil))
	}
	return c.JSON(dto.TransferListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// UpdateAmount godoc
// @Summary      Corregir la cantidad de una transferencia
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la transferencia"
// @Param        body  body  dto.UpdateTransferAmountRequest  true  "Nueva cantidad"
// @Success      200   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [put]
func (h *TransferHandler) UpdateAmount(c *fiber.Ctx) error {
	var in dto.UpdateTransferAmountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	transfer, err := h.uc.UpdateAmount(c.Context(), c.Params("id"), in.Amount)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.TransferToResponse(transfer, nil))
}

// Delete godoc
// @Summary      Eliminar transferencia (revierte ambos niveles)
// @Tags         transfers
// @Security     Bearer
// @Param        id   path  string  true  "ID de la transferencia"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [delete]
func (h *TransferHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// timeRangeFromQuery lee from/to opcionales en RFC3339. ok=false si el
// formato es inválido.
func timeRangeFromQuery(c *fiber.Ctx) (from, to *time.Time, ok bool) {
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, nil, false
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, nil, false
		}
		to = &t
	}
	return from, to, true
}
