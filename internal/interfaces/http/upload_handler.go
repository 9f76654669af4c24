package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/internal/application/usecase"
	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/pkg/logger"
)

// tamaño máximo de imagen aceptado por el proxy de subida.
const maxImagenBytes = 5 * 1024 * 1024

// UploadHandler proxy de subida de imágenes hacia el almacenamiento externo
// (protegido). Las credenciales del servicio nunca llegan al cliente.
type UploadHandler struct {
	uc  *usecase.UploadUseCase
	log *logger.Logger
}

// NewUploadHandler construye el handler.
func NewUploadHandler(uc *usecase.UploadUseCase, log *logger.Logger) *UploadHandler {
	return &UploadHandler{uc: uc, log: log}
}

// Subir recibe el archivo en el campo multipart "imagen" y devuelve la URL
// pública y el public_id.
func (h *UploadHandler) Subir(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("imagen")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "campo 'imagen' requerido"})
	}
	if fileHeader.Size > maxImagenBytes {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "la imagen supera el tamaño máximo de 5 MB"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return respondError(c, h.log, err)
	}
	defer f.Close()

	out, err := h.uc.Subir(c.UserContext(), fileHeader.Filename, f)
	if err != nil {
		return respondErrorAs(c, h.log, err, domain.ErrInvalidInput, "formato de imagen no soportado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Eliminar borra una imagen por su public_id.
func (h *UploadHandler) Eliminar(c *fiber.Ctx) error {
	var in dto.DeleteImagenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	if err := h.uc.Eliminar(c.UserContext(), in.PublicID); err != nil {
		return respondErrorAs(c, h.log, err, domain.ErrInvalidInput, "public_id es requerido")
	}
	return c.JSON(dto.MessageResponse{Message: "imagen eliminada"})
}
