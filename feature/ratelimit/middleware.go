package ratelimit

import (
	"context"
	"strconv"
	"time"

	"econfeed/core/server"

	"github.com/gofiber/fiber/v2"
)

// Middleware returns a fiber handler that enforces the limit per credential
// and appends the request to the log. The credential is the API key placed
// in Locals by the auth middleware; unauthenticated requests (open API)
// count under a shared anonymous credential.
func Middleware(limiter *Limiter, srvCfg server.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		credentialID, _ := c.Locals("credential_id").(string)
		if credentialID == "" {
			credentialID = "anonymous"
		}

		tier := TierBase
		if srvCfg.IsElevated(credentialID) {
			tier = TierElevated
		}

		decision := limiter.CheckLimit(c.Context(), credentialID, tier)

		c.Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

		if !decision.Allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		}

		err := c.Next()

		row := RequestLog{
			CredentialID: credentialID,
			Method:       c.Method(),
			Path:         c.Path(),
			StatusCode:   c.Response().StatusCode(),
			CreatedAt:    time.Now(),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			limiter.Record(ctx, row)
		}()

		return err
	}
}
