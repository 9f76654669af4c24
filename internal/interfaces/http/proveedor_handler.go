package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/internal/application/usecase"
	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/pkg/logger"
)

// ProveedorHandler maneja las peticiones HTTP para Proveedor (protegido).
type ProveedorHandler struct {
	uc  *usecase.ProveedorUseCase
	log *logger.Logger
}

// NewProveedorHandler construye el handler.
func NewProveedorHandler(uc *usecase.ProveedorUseCase, log *logger.Logger) *ProveedorHandler {
	return &ProveedorHandler{uc: uc, log: log}
}

// List lista proveedores con su conteo de productos.
func (h *ProveedorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Listar()
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID devuelve un proveedor por ID.
func (h *ProveedorHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.ObtenerPorID(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "proveedor no encontrado"})
	}
	return c.JSON(out)
}

// Create crea un proveedor.
func (h *ProveedorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProveedorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.Crear(in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update actualización parcial de un proveedor.
func (h *ProveedorHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProveedorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.Actualizar(c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "proveedor no encontrado"})
	}
	return c.JSON(out)
}

// Delete elimina un proveedor sin productos asignados.
func (h *ProveedorHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Params("id")); err != nil {
		return respondErrorAs(c, h.log, err, domain.ErrConflict, "el proveedor tiene productos asignados")
	}
	return c.JSON(dto.MessageResponse{Message: "proveedor eliminado"})
}
