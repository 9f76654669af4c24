package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/internal/application/inventory"
	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/internal/domain/repository"
	"github.com/abastos/inventario-api/pkg/logger"
)

// MovimientoHandler maneja el libro de movimientos de stock (protegido).
type MovimientoHandler struct {
	uc  *inventory.MovimientoUseCase
	log *logger.Logger
}

// NewMovimientoHandler construye el handler.
func NewMovimientoHandler(uc *inventory.MovimientoUseCase, log *logger.Logger) *MovimientoHandler {
	return &MovimientoHandler{uc: uc, log: log}
}

// Registrar registra un ENTRADA/SALIDA/AJUSTE y devuelve el movimiento con
// el stock antes y después.
func (h *MovimientoHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistrarMovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.Registrar(c.UserContext(), in)
	if err != nil {
		return respondErrorAs(c, h.log, err, domain.ErrNotFound, "producto no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista movimientos con filtros por query: productoId, tipo, desde,
// hasta (RFC 3339 o fecha simple), limit.
func (h *MovimientoHandler) List(c *fiber.Ctx) error {
	filtros := repository.MovimientoFiltros{
		ProductoID: c.Query("productoId"),
		Tipo:       c.Query("tipo"),
		Limit:      c.QueryInt("limit", 0),
	}
	if q := c.Query("desde"); q != "" {
		t, err := parseFecha(q)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "fecha 'desde' inválida"})
		}
		filtros.Desde = &t
	}
	if q := c.Query("hasta"); q != "" {
		t, err := parseFecha(q)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "fecha 'hasta' inválida"})
		}
		filtros.Hasta = &t
	}
	out, err := h.uc.Listar(filtros)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Kardex devuelve el historial completo de movimientos de un producto.
func (h *MovimientoHandler) Kardex(c *fiber.Ctx) error {
	out, err := h.uc.Kardex(c.Params("id"))
	if err != nil {
		return respondErrorAs(c, h.log, err, domain.ErrNotFound, "producto no encontrado")
	}
	return c.JSON(out)
}

// parseFecha acepta RFC 3339 o fecha simple AAAA-MM-DD (en hora local).
func parseFecha(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
