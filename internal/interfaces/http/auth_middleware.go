package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/abastos/inventario-api/internal/application/dto"
	"github.com/abastos/inventario-api/pkg/jwt"
)

// Locals keys para la identidad extraída del token.
const (
	LocalUserID   = "user_id"
	LocalEmail    = "email"
	LocalRol      = "rol"
	LocalPermisos = "permisos"
)

// AuthMiddleware valida el Bearer Token JWT y deja identidad, rol y permisos
// en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRol, claims.Rol)
		c.Locals(LocalPermisos, claims.Permisos)
		return c.Next()
	}
}

// RequireRole corta con 403 si el rol del token no está en la lista.
// Debe montarse después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rol := GetRol(c)
		for _, r := range roles {
			if rol == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "permiso denegado"})
	}
}

// RequirePermission corta con 403 si el permiso no figura entre los del token.
// Debe montarse después de AuthMiddleware.
func RequirePermission(permiso string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, p := range GetPermisos(c) {
			if p == permiso {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "permiso denegado"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetRol devuelve el nombre de rol del contexto.
func GetRol(c *fiber.Ctx) string {
	return localString(c, LocalRol)
}

// GetPermisos devuelve los permisos aplanados del contexto.
func GetPermisos(c *fiber.Ctx) []string {
	v := c.Locals(LocalPermisos)
	if v == nil {
		return nil
	}
	s, _ := v.([]string)
	return s
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
