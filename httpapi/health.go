package httpapi

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const healthTimeout = 2 * time.Second

// Health reports service and cache status
// GET /health
func (h *Handler) Health(c *fiber.Ctx) error {
	status, code := "ok", fiber.StatusOK
	database := fiber.Map{"driver": h.info.Database, "status": "up"}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.logger.WithError(err).Warn("health check: database unreachable")
			status, code = "degraded", fiber.StatusServiceUnavailable
			database["status"] = "down"
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    status,
		"service":   h.info.Service,
		"version":   h.info.Version,
		"database":  database,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.started).Seconds(),
		"cache":     h.registry.Stats(),
	})
}
