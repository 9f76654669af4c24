package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/pkg/logger"
)

// mensajes por sentinela; el detalle interno nunca viaja al cliente.
var erroresHTTP = []struct {
	err     error
	status  int
	mensaje string
}{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "datos inválidos"},
	{domain.ErrInsufficientStock, fiber.StatusBadRequest, "stock insuficiente"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "credenciales inválidas"},
	{domain.ErrForbidden, fiber.StatusForbidden, "permiso denegado"},
	{domain.ErrNotFound, fiber.StatusNotFound, "recurso no encontrado"},
	{domain.ErrDuplicate, fiber.StatusConflict, "el recurso ya existe"},
	{domain.ErrConflict, fiber.StatusConflict, "operación en conflicto con el estado actual"},
}

// respondError traduce un error de dominio a la respuesta HTTP { "error": msg }.
// Es el único punto de mapeo error→status de toda la API. Un error no
// reconocido se loguea con detalle y sale como 500 genérico.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	for _, e := range erroresHTTP {
		if errors.Is(err, e.err) {
			return c.Status(e.status).JSON(dto.ErrorResponse{Error: e.mensaje})
		}
	}
	log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "error interno del servidor"})
}

// respondErrorAs igual que respondError pero con mensaje propio cuando err es
// el sentinela target (ej. "producto no encontrado" en vez del genérico).
// Cualquier otro error sigue el mapeo compartido.
func respondErrorAs(c *fiber.Ctx, log *logger.Logger, err, target error, mensaje string) error {
	if errors.Is(err, target) {
		for _, e := range erroresHTTP {
			if errors.Is(target, e.err) {
				return c.Status(e.status).JSON(dto.ErrorResponse{Error: mensaje})
			}
		}
	}
	return respondError(c, log, err)
}
