package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abastos/inventario-api/internal/application/analytics"
	"github.com/abastos/inventario-api/pkg/logger"
)

// DashboardHandler expone las métricas agregadas del inventario (protegido).
type DashboardHandler struct {
	uc  *analytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// Get devuelve resumen, alertas, últimos movimientos, distribución por
// categoría e historial de fotos diarias.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetEstadisticas(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
