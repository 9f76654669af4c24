package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abastos/inventario-api/internal/application/auth"
	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/pkg/logger"
)

// AuthHandler maneja login y perfil del usuario autenticado.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log *logger.Logger
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Login autentica con email y password y devuelve el token más el perfil.
// Email desconocido y password incorrecto responden el mismo 401.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "email y password son requeridos"})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Me devuelve el perfil actual releído de la DB, no del token: es la vía para
// refrescar permisos sin esperar a que expire el JWT.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Perfil(GetUserID(c))
	if err != nil {
		return respondErrorAs(c, h.log, err, domain.ErrNotFound, "usuario no encontrado")
	}
	return c.JSON(out)
}
