package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tiendafacil/ventas-api/internal/application/dto"
	"github.com/tiendafacil/ventas-api/internal/application/usecase"
	"github.com/tiendafacil/ventas-api/internal/domain"
)

// LocalHandler maneja las peticiones HTTP para Local (solo admin).
type LocalHandler struct {
	uc *usecase.LocalUseCase
}

// NewLocalHandler construye el handler.
func NewLocalHandler(uc *usecase.LocalUseCase) *LocalHandler {
	return &LocalHandler{uc: uc}
}

// Create godoc
// @Summary      Crear local asignado a un usuario
// @Tags         locals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocalRequest  true  "Datos del local"
// @Success      201   {object}  dto.LocalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locals [post]
func (h *LocalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.Address == "" || in.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, address y user_id son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el usuario asignado no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener local por ID
// @Tags         locals
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del local"
// @Success      200  {object}  dto.LocalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locals/{id} [get]
func (h *LocalHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "local no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar locales
// @Tags         locals
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.LocalListResponse
// @Router       /api/locals [get]
func (h *LocalHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar datos de un local (sin reasignar usuario)
// @Tags         locals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del local"
// @Param        body  body  dto.UpdateLocalRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.LocalResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locals/{id} [put]
func (h *LocalHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateLocalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "local no encontrado"})
	}
	return c.JSON(out)
}

// ReassignUser godoc
// @Summary      Reasignar el usuario de un local (transaccional)
// @Tags         locals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del local"
// @Param        body  body  dto.ReassignLocalRequest  true  "Nuevo usuario"
// @Success      200   {object}  dto.LocalResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locals/{id}/user [put]
func (h *LocalHandler) ReassignUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ReassignLocalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "user_id es requerido"})
	}
	out, err := h.uc.ReassignUser(c.Context(), id, in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "local no encontrado"})
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el usuario asignado no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar local (y su back-reference en el usuario)
// @Tags         locals
// @Security     Bearer
// @Param        id   path  string  true  "ID del local"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locals/{id} [delete]
func (h *LocalHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "local no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
