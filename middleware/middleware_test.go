package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeApp() *fiber.App {
	app := fiber.New()
	Setup(app)
	app.Post("/test", RequireJSON, func(c *fiber.Ctx) error {
		return c.Status(200).SendString("ok")
	})
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})
	return app
}

func TestRequireJSON_AllowsJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/test", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	resp, err := makeApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestRequireJSON_DeniesForm(t *testing.T) {
	req := httptest.NewRequest("POST", "/test", strings.NewReader(`product_id=1`))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := makeApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, 415, resp.StatusCode)
}

func TestSetup_SetsRequestID(t *testing.T) {
	req := httptest.NewRequest("POST", "/test", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := makeApp().Test(req)
	require.NoError(t, err)

	_, err = uuid.Parse(resp.Header.Get(fiber.HeaderXRequestID))
	assert.NoError(t, err)
}

func TestSetup_RecoversPanics(t *testing.T) {
	app := makeApp()
	resp, err := app.Test(httptest.NewRequest("GET", "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	req := httptest.NewRequest("POST", "/test", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
