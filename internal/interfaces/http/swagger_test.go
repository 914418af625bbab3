package http_test

import (
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/nmarin/posflow-api/internal/interfaces/http"
)

const minimalSpec = `{"swagger":"2.0","info":{"title":"PosFlow API","version":"1.0.0"},"paths":{}}`

func TestMountSwagger_SinArchivoNoMontaNiPanic(t *testing.T) {
	app := fiber.New()

	var mounted bool
	require.NotPanics(t, func() {
		mounted = apphttp.MountSwagger(app, filepath.Join(t.TempDir(), "no-existe.json"), "PosFlow API")
	})
	assert.False(t, mounted)

	// El resto de la app sigue sirviendo.
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

func TestMountSwagger_ConArchivoSirveLaUI(t *testing.T) {
	specPath := filepath.Join(t.TempDir(), "swagger.json")
	require.NoError(t, os.WriteFile(specPath, []byte(minimalSpec), 0o600))

	app := fiber.New()
	require.True(t, apphttp.MountSwagger(app, specPath, "PosFlow API"))

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/docs", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

func TestMountSwagger_EspecificacionDelRepoValida(t *testing.T) {
	// El archivo comprometido en docs/ es el que main monta por defecto.
	app := fiber.New()
	require.NotPanics(t, func() {
		assert.True(t, apphttp.MountSwagger(app, "../../../docs/swagger.json", "PosFlow API"))
	})
}
