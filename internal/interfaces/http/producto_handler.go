package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/internal/application/usecase"
	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/internal/domain/repository"
	"github.com/abastos/inventario-api/pkg/logger"
)

// ProductoHandler maneja las peticiones HTTP para Producto (protegido).
type ProductoHandler struct {
	uc  *usecase.ProductoUseCase
	log *logger.Logger
}

// NewProductoHandler construye el handler.
func NewProductoHandler(uc *usecase.ProductoUseCase, log *logger.Logger) *ProductoHandler {
	return &ProductoHandler{uc: uc, log: log}
}

// List lista productos con filtros por query: categoriaId, proveedorId,
// activo, buscar, stockBajo.
func (h *ProductoHandler) List(c *fiber.Ctx) error {
	filtros := repository.ProductoFiltros{
		CategoriaID: c.Query("categoriaId"),
		ProveedorID: c.Query("proveedorId"),
		Buscar:      c.Query("buscar"),
		StockBajo:   c.QueryBool("stockBajo"),
	}
	if q := c.Query("activo"); q != "" {
		activo := c.QueryBool("activo")
		filtros.Activo = &activo
	}
	out, err := h.uc.Listar(filtros)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID devuelve el producto con categoría, proveedor y movimientos recientes.
func (h *ProductoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.ObtenerPorID(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "producto no encontrado"})
	}
	return c.JSON(out)
}

// Create crea un producto.
func (h *ProductoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.Crear(in)
	if err != nil {
		return respondErrorMsgPorCrear(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update actualización parcial de un producto; el stock queda fuera.
func (h *ProductoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.Actualizar(c.Params("id"), in)
	if err != nil {
		return respondErrorMsgPorCrear(c, h.log, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "producto no encontrado"})
	}
	return c.JSON(out)
}

// Delete elimina el producto y su libro de movimientos.
func (h *ProductoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.UserContext(), c.Params("id")); err != nil {
		return respondErrorAs(c, h.log, err, domain.ErrNotFound, "producto no encontrado")
	}
	return c.JSON(dto.MessageResponse{Message: "producto eliminado"})
}

// respondErrorMsgPorCrear mensajes específicos del alta/edición de productos.
func respondErrorMsgPorCrear(c *fiber.Ctx, log *logger.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "el código ya existe"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "categoría o proveedor no encontrado"})
	}
	return respondError(c, log, err)
}
