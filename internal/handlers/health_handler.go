package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports whether the service and its dependencies are usable.
type HealthHandler struct {
	pingDB   func() error // nil when no database is configured
	rabbitMQ bool
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(pingDB func() error, rabbitMQ bool) *HealthHandler {
	return &HealthHandler{pingDB: pingDB, rabbitMQ: rabbitMQ}
}

// RegisterRoutes registers GET /health.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth answers 503 when the database cannot be reached.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	status, code := "healthy", fiber.StatusOK
	database := "memory"
	if h.pingDB != nil {
		database = "connected"
		if err := h.pingDB(); err != nil {
			status, code, database = "unhealthy", fiber.StatusServiceUnavailable, "unreachable"
		}
	}

	rabbitMQ := "disabled"
	if h.rabbitMQ {
		rabbitMQ = "connected"
	}

	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"time":     time.Now().Format(time.RFC3339),
		"database": database,
		"rabbitmq": rabbitMQ,
	})
}
