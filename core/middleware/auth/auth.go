package auth

import (
	"econfeed/core/server"

	"github.com/gofiber/fiber/v2"
)

// HeaderName is the request header carrying the API key.
const HeaderName = "X-API-Key"

// New returns a middleware that validates the API key against the configured
// credentials. If no key is configured at all the API is left open (local
// development); otherwise unauthenticated requests get 401.
//
// The presented key is stored in Locals("credential_id") so the rate-limit
// middleware can count requests per credential.
func New(cfg server.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" && cfg.ElevatedKeys == "" {
			return c.Next()
		}

		key := c.Get(HeaderName)
		if !cfg.IsAuthorized(key) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or missing API key",
			})
		}

		c.Locals("credential_id", key)
		return c.Next()
	}
}
