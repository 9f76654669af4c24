package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/internal/application/usecase"
	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/pkg/logger"
)

// UsuarioHandler maneja la administración de usuarios (protegido, solo ADMIN).
type UsuarioHandler struct {
	uc  *usecase.UsuarioUseCase
	log *logger.Logger
}

// NewUsuarioHandler construye el handler.
func NewUsuarioHandler(uc *usecase.UsuarioUseCase, log *logger.Logger) *UsuarioHandler {
	return &UsuarioHandler{uc: uc, log: log}
}

// List lista usuarios con el nombre de su rol.
func (h *UsuarioHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Listar()
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create crea un usuario.
func (h *UsuarioHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.Crear(in)
	if err != nil {
		return respondErrorAs(c, h.log, err, domain.ErrDuplicate, "el email ya está registrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update actualización parcial de un usuario.
func (h *UsuarioHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.Actualizar(c.Params("id"), in)
	if err != nil {
		return respondErrorAs(c, h.log, err, domain.ErrDuplicate, "el email ya está registrado")
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "usuario no encontrado"})
	}
	return c.JSON(out)
}

// Delete elimina un usuario. Eliminarse a sí mismo es conflicto.
func (h *UsuarioHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Params("id"), GetUserID(c)); err != nil {
		return respondErrorAs(c, h.log, err, domain.ErrConflict, "un usuario no puede eliminarse a sí mismo")
	}
	return c.JSON(dto.MessageResponse{Message: "usuario eliminado"})
}
