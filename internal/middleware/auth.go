package middleware

import (
	"crypto/subtle"
	"github.com/HugoJF/boxbox/internal/config"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
)

// NewAuth checks the bearer token (or session cookie, depending on the key
// lookup) before any handler runs. With auth disabled every request passes.
func NewAuth(cfg config.AuthConfig) fiber.Handler {
	if !cfg.Enabled {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}
	authConfig := keyauth.Config{
		KeyLookup: cfg.KeyLookup,
		Validator: func(c *fiber.Ctx, key string) (bool, error) {
			for _, token := range cfg.Tokens {
				if subtle.ConstantTimeCompare([]byte(token), []byte(key)) == 1 {
					return true, nil
				}
			}
			return false, keyauth.ErrMissingOrMalformedAPIKey
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(http.StatusUnauthorized).JSON(map[string]interface{}{"error": "unauthorized"})
		},
	}
	if strings.HasPrefix(cfg.KeyLookup, "header:") {
		authConfig.AuthScheme = "Bearer"
	}
	return keyauth.New(authConfig)
}
