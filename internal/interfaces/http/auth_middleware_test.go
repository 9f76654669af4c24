package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/abastos/inventario-api/internal/interfaces/http"
	pkgjwt "github.com/abastos/inventario-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testEmail     = "admin@abastos.test"
	testIssuer    = "inventario-api-test"
	testExpMin    = 60
)

// buildRoleApp construye una aplicación Fiber mínima con AuthMiddleware +
// RequireRole y un handler dummy que devuelve 200 si pasa los middlewares.
func buildRoleApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "rol": apphttp.GetRol(c)})
		},
	)
	return app
}

// buildPermisoApp igual que buildRoleApp pero con RequirePermission.
func buildPermisoApp(permiso string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(permiso),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		},
	)
	return app
}

// tokenFor genera un JWT con el rol y permisos indicados.
func tokenFor(t *testing.T, rol string, permisos ...string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, rol, permisos, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildRoleApp("ADMIN")
	resp := doRequest(t, app, tokenFor(t, "ADMIN"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"ADMIN debe poder acceder a ruta restringida a ADMIN")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "ADMIN", body["rol"])
}

func TestRequireRole_MultiRol(t *testing.T) {
	app := buildRoleApp("ADMIN", "BODEGUERO")
	resp := doRequest(t, app, tokenFor(t, "BODEGUERO"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"BODEGUERO debe poder acceder a ruta que permite ADMIN o BODEGUERO")
}

func TestRequireRole_RolDistintoBloqueado(t *testing.T) {
	app := buildRoleApp("ADMIN")
	resp := doRequest(t, app, tokenFor(t, "VENDEDOR"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"VENDEDOR no debe poder acceder a ruta restringida a ADMIN")
}

func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildRoleApp("ADMIN")
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildRoleApp("ADMIN")
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_ConPermiso(t *testing.T) {
	app := buildPermisoApp("PRODUCTO_CREAR")
	resp := doRequest(t, app, tokenFor(t, "BODEGUERO", "PRODUCTO_CREAR", "MOVIMIENTO_CREAR"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"un token con el permiso en la lista debe pasar")
}

func TestRequirePermission_SinPermiso_Retorna403(t *testing.T) {
	app := buildPermisoApp("PRODUCTO_ELIMINAR")
	resp := doRequest(t, app, tokenFor(t, "VENDEDOR", "PRODUCTO_CREAR"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"un token sin el permiso debe ser rechazado")
}

func TestRequirePermission_SinPermisos_Retorna403(t *testing.T) {
	app := buildPermisoApp("PRODUCTO_CREAR")
	resp := doRequest(t, app, tokenFor(t, "VENDEDOR"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware: extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  apphttp.GetUserID(c),
			"rol":      apphttp.GetRol(c),
			"permisos": apphttp.GetPermisos(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, "ADMIN", "USUARIO_CREAR"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		UserID   string   `json:"user_id"`
		Rol      string   `json:"rol"`
		Permisos []string `json:"permisos"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body.UserID)
	assert.Equal(t, "ADMIN", body.Rol)
	assert.Equal(t, []string{"USUARIO_CREAR"}, body.Permisos)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, "BODEGUERO",
		[]string{"MOVIMIENTO_CREAR"}, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testEmail, claims.Email)
	assert.Equal(t, "BODEGUERO", claims.Rol)
	assert.Equal(t, []string{"MOVIMIENTO_CREAR"}, claims.Permisos)
	assert.Equal(t, testUserID, claims.Subject)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, "ADMIN", nil, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, "ADMIN", nil, testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err, "firma con otro secret debe ser rechazada")
}
