package http_test

import (
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmarin/posflow-api/internal/domain/entity"
	apphttp "github.com/nmarin/posflow-api/internal/interfaces/http"
	"github.com/nmarin/posflow-api/pkg/jwt"
)

const (
	testJWTSecret = "secreto-de-pruebas"
	testUserID    = "user-123"
	testCompanyID = "comp-123"
	testIssuer    = "posflow-test"
	testExpMin    = 15
)

// buildTestApp app mínima con el middleware de auth y rutas por rol.
func buildTestApp() *fiber.App {
	app := fiber.New()
	protected := app.Group("/", apphttp.AuthMiddleware(testJWTSecret))

	protected.Get("/whoami", func(c *fiber.Ctx) error {
		actor := apphttp.ActorFromCtx(c)
		return c.JSON(fiber.Map{
			"user_id":      actor.UserID,
			"company_id":   actor.CompanyID,
			"role":         actor.Role,
			"branch_id":    actor.BranchID,
			"warehouse_id": actor.WarehouseID,
		})
	})
	protected.Get("/solo-admin", apphttp.RequireRole(entity.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	protected.Get("/bodega", apphttp.RequireRole(entity.RoleAdmin, entity.RoleBodeguero), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.Generate(testJWTSecret, jwt.Payload{
		UserID:      testUserID,
		CompanyID:   testCompanyID,
		Role:        role,
		BranchID:    "br-1",
		WarehouseID: "wh-1",
	}, testIssuer, testExpMin)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, path, bearer string) (*nethttp.Response, string) {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, string(body)
}

func TestAuthMiddleware_SinToken(t *testing.T) {
	app := buildTestApp()

	resp, body := doRequest(t, app, "/whoami", "")
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildTestApp()

	resp, body := doRequest(t, app, "/whoami", "Token abc")
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "INVALID_TOKEN")
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	app := buildTestApp()

	otro, err := jwt.Generate("otro-secreto", jwt.Payload{UserID: testUserID, Role: entity.RoleAdmin}, testIssuer, testExpMin)
	require.NoError(t, err)

	resp, body := doRequest(t, app, "/whoami", "Bearer "+otro)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := buildTestApp()

	expirado, err := jwt.Generate(testJWTSecret, jwt.Payload{UserID: testUserID, Role: entity.RoleAdmin}, testIssuer, -5)
	require.NoError(t, err)

	resp, body := doRequest(t, app, "/whoami", "Bearer "+expirado)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "INVALID_TOKEN")
}

func TestAuthMiddleware_ClaimsEnContexto(t *testing.T) {
	app := buildTestApp()

	resp, body := doRequest(t, app, "/whoami", "Bearer "+tokenForRole(t, entity.RoleCajero))
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Contains(t, body, testUserID)
	assert.Contains(t, body, testCompanyID)
	assert.Contains(t, body, entity.RoleCajero)
	assert.Contains(t, body, "br-1")
}

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp()

	resp, _ := doRequest(t, app, "/solo-admin", "Bearer "+tokenForRole(t, entity.RoleAdmin))
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

func TestRequireRole_CajeroNoAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp()

	resp, body := doRequest(t, app, "/solo-admin", "Bearer "+tokenForRole(t, entity.RoleCajero))
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "FORBIDDEN")
}

func TestRequireRole_VariosRolesPermitidos(t *testing.T) {
	app := buildTestApp()

	resp, _ := doRequest(t, app, "/bodega", "Bearer "+tokenForRole(t, entity.RoleBodeguero))
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp, body := doRequest(t, app, "/bodega", "Bearer "+tokenForRole(t, entity.RoleCajero))
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "FORBIDDEN")
}

func TestRequireRole_TokenSinRol(t *testing.T) {
	app := buildTestApp()

	resp, body := doRequest(t, app, "/solo-admin", "Bearer "+tokenForRole(t, ""))
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "MISSING_ROLE")
}
