package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bluecollar/models/role"
	"bluecollar/services/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueTokenFor(t *testing.T, r role.Role) string {
	t.Helper()
	token, err := auth.IssueToken("uuid-"+r.String(), "user-"+r.String(), "u@example.com", r, true)
	require.NoError(t, err)
	return token
}

func guardedApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/guarded", handler, func(c *fiber.Ctx) error {
		r, _ := RoleFromCtx(c)
		return c.SendString(r.String())
	})
	return app
}

func request(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRequireAuthenticationMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := guardedApp(RequireAuthentication())

	resp := request(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthenticationBadHeaderFormat(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := guardedApp(RequireAuthentication())

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthenticationSetsRoleLocal(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := guardedApp(RequireAuthentication())

	resp := request(t, app, issueTokenFor(t, role.Admin))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Admin", string(body))
}

func TestRequireAuthenticationCookieFallback(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := guardedApp(RequireAuthentication())

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: "access", Value: issueTokenFor(t, role.User)})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAccountManager(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := guardedApp(RequireAccountManager())

	for _, r := range role.AllRoles() {
		resp := request(t, app, issueTokenFor(t, r))
		if r.CanManageAccounts() {
			assert.Equal(t, fiber.StatusOK, resp.StatusCode, r)
		} else {
			assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, r)
		}
	}
}

func TestRequireOrderCloser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := guardedApp(RequireOrderCloser())

	for _, r := range role.AllRoles() {
		resp := request(t, app, issueTokenFor(t, r))
		if r.CanCloseOrder() {
			assert.Equal(t, fiber.StatusOK, resp.StatusCode, r)
		} else {
			assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, r)
		}
	}
}

func TestRequireRolesRejectsOtherRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := guardedApp(RequireRoles(role.Artisan))

	resp := request(t, app, issueTokenFor(t, role.User))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = request(t, app, issueTokenFor(t, role.Artisan))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
