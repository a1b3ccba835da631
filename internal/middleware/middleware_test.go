package middleware

import (
	"github.com/HugoJF/boxbox/internal/config"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authApp(cfg config.AuthConfig) *fiber.App {
	app := fiber.New()
	app.Use(NewAuth(cfg))
	app.Get("/boxes", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAuth_Disabled(t *testing.T) {
	app := authApp(config.AuthConfig{Enabled: false})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boxes", nil))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuth_BearerToken(t *testing.T) {
	app := authApp(config.AuthConfig{Enabled: true, KeyLookup: "header:Authorization", Tokens: []string{"secret"}})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid", header: "Bearer secret", status: http.StatusOK},
		{name: "wrong token", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "missing", header: "", status: http.StatusUnauthorized},
		{name: "no scheme", header: "secret", status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/boxes", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAuth_Cookie(t *testing.T) {
	app := authApp(config.AuthConfig{Enabled: true, KeyLookup: "cookie:session", Tokens: []string{"abc"}})

	req := httptest.NewRequest(http.MethodGet, "/boxes", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "abc"})
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetrics_CountsRequests(t *testing.T) {
	metrics := NewMetrics()
	app := fiber.New()
	app.Get("/metrics", metrics.Expose())
	app.Use(metrics.Handler())
	app.Get("/boxes/:id", func(c *fiber.Ctx) error {
		return c.Status(http.StatusNotFound).SendString("missing")
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/boxes/42", nil))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `boxbox_http_requests_total{method="GET",route="/boxes/:id",status="404"} 1`)
}
