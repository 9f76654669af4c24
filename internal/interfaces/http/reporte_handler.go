package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/abastos/inventario-api/internal/application/reports"
	"github.com/abastos/inventario-api/pkg/logger"
)

// ReporteHandler genera reportes PDF del inventario (protegido).
type ReporteHandler struct {
	uc  *reports.ReporteUseCase
	log *logger.Logger
}

// NewReporteHandler construye el handler.
func NewReporteHandler(uc *reports.ReporteUseCase, log *logger.Logger) *ReporteHandler {
	return &ReporteHandler{uc: uc, log: log}
}

// Inventario devuelve el reporte de inventario como PDF descargable.
func (h *ReporteHandler) Inventario(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.GenerarInventario(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	filename := fmt.Sprintf("inventario_%s.pdf", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
