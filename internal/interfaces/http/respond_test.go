package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abastos/inventario-api/internal/domain"
	"github.com/abastos/inventario-api/pkg/logger"
)

func respuestaDe(t *testing.T, err error) (int, string) {
	t.Helper()
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		return respondError(c, log, err)
	})

	resp, errTest := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, errTest)
	defer resp.Body.Close()

	body, errTest := io.ReadAll(resp.Body)
	require.NoError(t, errTest)
	var out struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out.Error
}

func TestRespondError_MapeoDeSentinelas(t *testing.T) {
	casos := []struct {
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
	for _, caso := range casos {
		status, mensaje := respuestaDe(t, caso.err)
		assert.Equal(t, caso.status, status, caso.err.Error())
		assert.Equal(t, caso.mensaje, mensaje, caso.err.Error())
	}
}

func TestRespondError_ErroresEnvueltos(t *testing.T) {
	// errors.Is atraviesa el wrapping: un repo que envuelve el sentinela
	// sigue mapeando al mismo status.
	status, mensaje := respuestaDe(t, fmt.Errorf("productos: %w", domain.ErrNotFound))
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "recurso no encontrado", mensaje)
}

func TestRespondError_DesconocidoEs500Generico(t *testing.T) {
	status, mensaje := respuestaDe(t, fmt.Errorf("fallo de red"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "error interno del servidor", mensaje,
		"el detalle interno no viaja al cliente")
}

func TestRespondErrorAs_MensajePropio(t *testing.T) {
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		return respondErrorAs(c, log, domain.ErrNotFound, domain.ErrNotFound, "producto no encontrado")
	})
	app.Get("/y", func(c *fiber.Ctx) error {
		// El mensaje propio no aplica cuando el error es otro sentinela.
		return respondErrorAs(c, log, domain.ErrConflict, domain.ErrNotFound, "producto no encontrado")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"producto no encontrado"}`, string(body))

	resp, err = app.Test(httptest.NewRequest("GET", "/y", nil))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.JSONEq(t, `{"error":"operación en conflicto con el estado actual"}`, string(body))
}
