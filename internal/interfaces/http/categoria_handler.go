package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/internal/application/usecase"
	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/pkg/logger"
)

// CategoriaHandler maneja las peticiones HTTP para Categoria (protegido).
type CategoriaHandler struct {
	uc  *usecase.CategoriaUseCase
	log *logger.Logger
}

// NewCategoriaHandler construye el handler.
func NewCategoriaHandler(uc *usecase.CategoriaUseCase, log *logger.Logger) *CategoriaHandler {
	return &CategoriaHandler{uc: uc, log: log}
}

// List lista categorías con su conteo de productos.
func (h *CategoriaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Listar()
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID devuelve una categoría por ID.
func (h *CategoriaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.ObtenerPorID(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "categoría no encontrada"})
	}
	return c.JSON(out)
}

// Create crea una categoría.
func (h *CategoriaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoriaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.Crear(in)
	if err != nil {
		return respondErrorAs(c, h.log, err, domain.ErrDuplicate, "la categoría ya existe")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update actualización parcial de una categoría.
func (h *CategoriaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoriaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.Actualizar(c.Params("id"), in)
	if err != nil {
		return respondErrorAs(c, h.log, err, domain.ErrDuplicate, "la categoría ya existe")
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "categoría no encontrada"})
	}
	return c.JSON(out)
}

// Delete elimina una categoría sin productos asignados.
func (h *CategoriaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Params("id")); err != nil {
		return respondErrorAs(c, h.log, err, domain.ErrConflict, "la categoría tiene productos asignados")
	}
	return c.JSON(dto.MessageResponse{Message: "categoría eliminada"})
}
