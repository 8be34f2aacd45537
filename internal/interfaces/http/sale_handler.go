package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tiendafacil/ventas-api/internal/application/dto"
	"github.com/tiendafacil/ventas-api/internal/application/sales"
	"github.com/tiendafacil/ventas-api/internal/domain"
)

// SaleHandler maneja el registro de ventas, el historial, el resumen diario
// y la descarga del ticket PDF.
type SaleHandler struct {
	recordUC  *sales.RecordSaleUseCase
	queryUC   *sales.SaleQueryUseCase
	receiptUC *sales.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(recordUC *sales.RecordSaleUseCase, queryUC *sales.SaleQueryUseCase, receiptUC *sales.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{recordUC: recordUC, queryUC: queryUC, receiptUC: receiptUC}
}

// Record godoc
// @Summary      Registrar venta (descuento de stock atómico)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "Carrito y método de pago"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.recordUC.RecordSale(c.Context(), GetUserID(c), GetRole(c), GetLocalID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "carrito vacío, cantidad inválida o método de pago desconocido"})
		case errors.Is(err, domain.ErrNoAssignedLocal):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_ASSIGNED_LOCAL", Message: "el usuario no tiene local asignado"})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Historial de ventas (más recientes primero)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        local_id  query  string  false  "Filtrar por local (solo admin)"
// @Param        limit     query  int     false  "Límite"   default(20)
// @Param        offset    query  int     false  "Offset"   default(0)
// @Success      200       {object}  dto.SaleListResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.queryUC.ListSales(GetRole(c), GetLocalID(c), c.Query("local_id"), limit, offset)
	if err != nil {
		if errors.Is(err, domain.ErrNoAssignedLocal) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_ASSIGNED_LOCAL", Message: "el usuario no tiene local asignado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DailySummary godoc
// @Summary      Resumen de ventas del día (ingresos, cantidad, ticket promedio)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        local_id  query  string  false  "Filtrar por local (solo admin)"
// @Success      200       {object}  dto.DailySummaryResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/sales/summary/today [get]
func (h *SaleHandler) DailySummary(c *fiber.Ctx) error {
	out, err := h.queryUC.DailySummary(GetRole(c), GetLocalID(c), c.Query("local_id"), time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNoAssignedLocal) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_ASSIGNED_LOCAL", Message: "el usuario no tiene local asignado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Descargar ticket PDF de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    file
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	pdfBytes, filename, err := h.receiptUC.DownloadReceiptPDF(c.Context(), GetRole(c), GetLocalID(c), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "la venta pertenece a otro local"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
