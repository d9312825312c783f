package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/lborres/kindercrew/pkg/metrics"
)

// requireAuth rejects requests unless the process session is authenticated.
func (a *Adapter) requireAuth(next fiber.Handler) fiber.Handler {
	return func(c fiber.Ctx) error {
		state := a.session.State()
		if !state.IsAuthenticated {
			return writeError(c, fiber.StatusUnauthorized, "authentication required")
		}
		c.Locals("user", state.User)
		return next(c)
	}
}

func countStatus(collector *metrics.Collector, next fiber.Handler) fiber.Handler {
	return func(c fiber.Ctx) error {
		err := next(c)
		collector.RecordHTTPStatus(c.Response().StatusCode())
		return err
	}
}
