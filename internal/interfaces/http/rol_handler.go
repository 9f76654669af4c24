package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/internal/application/usecase"
	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/pkg/logger"
)

// RolHandler maneja roles y el catálogo de permisos (protegido, solo ADMIN).
type RolHandler struct {
	uc  *usecase.RolUseCase
	log *logger.Logger
}

// NewRolHandler construye el handler.
func NewRolHandler(uc *usecase.RolUseCase, log *logger.Logger) *RolHandler {
	return &RolHandler{uc: uc, log: log}
}

// List lista roles con sus permisos.
func (h *RolHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Listar()
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListPermisos devuelve el catálogo completo de permisos.
func (h *RolHandler) ListPermisos(c *fiber.Ctx) error {
	out, err := h.uc.ListarPermisos()
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create crea un rol con su conjunto de permisos.
func (h *RolHandler) Create(c *fiber.Ctx) error {
	var in dto.RolRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.Crear(in)
	if err != nil {
		return respondErrorAs(c, h.log, err, domain.ErrDuplicate, "el rol ya existe")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update reemplaza nombre, descripción y permisos de un rol.
func (h *RolHandler) Update(c *fiber.Ctx) error {
	var in dto.RolRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.Actualizar(c.Params("id"), in)
	if err != nil {
		return respondErrorAs(c, h.log, err, domain.ErrDuplicate, "el rol ya existe")
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "rol no encontrado"})
	}
	return c.JSON(out)
}

// Delete elimina un rol. ADMIN y roles con usuarios asignados no se pueden borrar.
func (h *RolHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Params("id")); err != nil {
		return respondErrorAs(c, h.log, err, domain.ErrConflict, "el rol está protegido o tiene usuarios asignados")
	}
	return c.JSON(dto.MessageResponse{Message: "rol eliminado"})
}
