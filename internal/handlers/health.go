package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Roshen-Perera/whatsapp-bot-test/internal/services"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	Version          string
	Store            string
	TwilioConfigured bool
	sessions         *services.SessionManager
	startedAt        time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version, storeName string, twilioConfigured bool, sessions *services.SessionManager) *HealthHandler {
	return &HealthHandler{
		Version:          version,
		Store:            storeName,
		TwilioConfigured: twilioConfigured,
		sessions:         sessions,
		startedAt:        time.Now(),
	}
}

// Check returns the health status of the service
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":         "healthy",
		"service":        h.Store + " WhatsApp Bot",
		"version":        h.Version,
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
		"services": fiber.Map{
			"twilio":   h.TwilioConfigured,
			"sessions": h.sessions.GetSessionStats(),
		},
	})
}
