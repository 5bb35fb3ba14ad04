package server_test

import (
	"net/http/httptest"
	"testing"

	"inventory-sync/core/middleware/auth"
	"inventory-sync/core/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pingFeature struct{}

func (pingFeature) Name() string    { return "ping" }
func (pingFeature) IsEnabled() bool { return true }

func (pingFeature) Load(app fiber.Router) error {
	app.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return nil
}

func TestNew_HealthIsPublic(t *testing.T) {
	app, err := server.New(server.Config{ApiKey: "secret"}, zap.NewNop())
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestNew_FeaturesBehindAuth(t *testing.T) {
	app, err := server.New(server.Config{ApiKey: "secret"}, zap.NewNop(), pingFeature{})
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/api/ping", nil)
	req.Header.Set(auth.HeaderName, "secret")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
