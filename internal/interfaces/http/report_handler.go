package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Combustible-api/internal/application/dto"
	"github.com/jhoicas/Combustible-api/internal/application/report"
)

// ReportHandler maneja las peticiones HTTP de reportes de varianza, resúmenes
// de consumo y exportables (protegido).
type ReportHandler struct {
	reportUC  *report.VarianceReportUseCase
	summaryUC *report.ConsumptionSummaryUseCase
	exportUC  *report.ExportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reportUC *report.VarianceReportUseCase, summaryUC *report.ConsumptionSummaryUseCase, exportUC *report.ExportUseCase) *ReportHandler {
	return &ReportHandler{reportUC: reportUC, summaryUC: summaryUC, exportUC: exportUC}
}

// Generate godoc
// @Summary      Generar reporte de varianza para un período
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateReportRequest  true  "Período y fecha de inicio"
// @Success      201   {object}  dto.VarianceReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/variance [post]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateReportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if done, err := validateStruct(c, in); done {
		return err
	}
	rep, err := h.reportUC.Generate(c.Context(), in.Period, in.Start)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.VarianceReportToResponse(rep))
}

// GetByID godoc
// @Summary      Obtener reporte por ID
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del reporte"
// @Success      200  {object}  dto.VarianceReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/variance/{id} [get]
func (h *ReportHandler) GetByID(c *fiber.Ctx) error {
	rep, err := h.reportUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.VarianceReportToResponse(rep))
}

// List godoc
// @Summary      Listar reportes de varianza
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.VarianceReportListResponse
// @Router       /api/reports/variance [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	reports, err := h.reportUC.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	items := make([]dto.VarianceReportResponse, 0, len(reports))
	for _, r := range reports {
		items = append(items, dto.VarianceReportToResponse(r))
	}
	return c.JSON(dto.VarianceReportListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// Finalize godoc
// @Summary      Pasar reporte a FINAL
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del reporte"
// @Success      200  {object}  dto.VarianceReportResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reports/variance/{id}/finalize [post]
func (h *ReportHandler) Finalize(c *fiber.Ctx) error {
	rep, err := h.reportUC.Finalize(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.VarianceReportToResponse(rep))
}

// Approve godoc
// @Summary      Aprobar reporte FINAL (estado terminal)
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del reporte"
// @Param        body  body  dto.ApproveReportRequest  false  "Aprobador (por defecto el usuario autenticado)"
// @Success      200   {object}  dto.VarianceReportResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reports/variance/{id}/approve [post]
func (h *ReportHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApproveReportRequest
	_ = c.BodyParser(&in) // cuerpo opcional
	approver := in.ApprovedBy
	if approver == "" {
		approver = GetUserID(c)
	}
	rep, err := h.reportUC.Approve(c.Context(), c.Params("id"), approver)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.VarianceReportToResponse(rep))
}

// Reject godoc
// @Summary      Rechazar reporte FINAL (vuelve a DRAFT)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del reporte"
// @Success      200  {object}  dto.VarianceReportResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reports/variance/{id}/reject [post]
func (h *ReportHandler) Reject(c *fiber.Ctx) error {
	rep, err := h.reportUC.Reject(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.VarianceReportToResponse(rep))
}

// ExportPDF godoc
// @Summary      Exportar reporte de varianza como PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del reporte"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/variance/{id}/pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	data, err := h.exportUC.VarianceReportPDF(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-varianza.pdf"`)
	return c.Send(data)
}

// ListSummaries godoc
// @Summary      Listar resúmenes de consumo en un rango de fechas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Desde (RFC3339)"
// @Param        to    query  string  true  "Hasta (RFC3339)"
// @Success      200   {object}  dto.ConsumptionSummaryListResponse
// @Router       /api/reports/consumption [get]
func (h *ReportHandler) ListSummaries(c *fiber.Ctx) error {
	from, to, ok := requiredRangeFromQuery(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from y to son requeridos (RFC3339)"})
	}
	summaries, err := h.summaryUC.ListBetween(c.Context(), from, to)
	if err != nil {
		return domainError(c, err)
	}
	items := make([]dto.ConsumptionSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, dto.ConsumptionSummaryToResponse(s))
	}
	return c.JSON(dto.ConsumptionSummaryListResponse{Items: items})
}

// RebuildSummaries godoc
// @Summary      Reconstruir resúmenes de consumo de un día
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.RebuildSummaryRequest  true  "Día y unidad opcional"
// @Success      202
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/consumption/rebuild [post]
func (h *ReportHandler) RebuildSummaries(c *fiber.Ctx) error {
	var in dto.RebuildSummaryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if done, err := validateStruct(c, in); done {
		return err
	}
	if in.UnitID != "" {
		if _, err := h.summaryUC.RebuildForUnit(c.Context(), in.UnitID, in.Date); err != nil {
			return domainError(c, err)
		}
	} else if err := h.summaryUC.RebuildDay(c.Context(), in.Date); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// ExportSummariesXLSX godoc
// @Summary      Exportar resúmenes de consumo como xlsx
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from  query  string  true  "Desde (RFC3339)"
// @Param        to    query  string  true  "Hasta (RFC3339)"
// @Success      200   {file}  binary
// @Router       /api/reports/consumption/xlsx [get]
func (h *ReportHandler) ExportSummariesXLSX(c *fiber.Ctx) error {
	from, to, ok := requiredRangeFromQuery(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from y to son requeridos (RFC3339)"})
	}
	data, err := h.exportUC.ConsumptionSummaryXLSX(c.Context(), from, to)
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="consumo.xlsx"`)
	return c.Send(data)
}

// ExportChecksXLSX godoc
// @Summary      Exportar chequeos físicos como xlsx
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from  query  string  true  "Desde (RFC3339)"
// @Param        to    query  string  true  "Hasta (RFC3339)"
// @Success      200   {file}  binary
// @Router       /api/reports/stock-checks/xlsx [get]
func (h *ReportHandler) ExportChecksXLSX(c *fiber.Ctx) error {
	from, to, ok := requiredRangeFromQuery(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from y to son requeridos (RFC3339)"})
	}
	data, err := h.exportUC.StockCheckXLSX(c.Context(), from, to)
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="chequeos.xlsx"`)
	return c.Send(data)
}

// requiredRangeFromQuery lee from/to obligatorios en RFC3339.
func requiredRangeFromQuery(c *fiber.Ctx) (from, to time.Time, ok bool) {
	rawFrom, rawTo := c.Query("from"), c.Query("to")
	if rawFrom == "" || rawTo == "" {
		return from, to, false
	}
	var err error
	if from, err = time.Parse(time.RFC3339, rawFrom); err != nil {
		return from, to, false
	}
	if to, err = time.Parse(time.RFC3339, rawTo); err != nil {
		return from, to, false
	}
	return from, to, true
}
