package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Roshen-Perera/whatsapp-bot-test/internal/models"
	"github.com/Roshen-Perera/whatsapp-bot-test/internal/services"
	"github.com/Roshen-Perera/whatsapp-bot-test/internal/storage"
)

// AdminHandler exposes read-only views of orders and sessions for store staff
type AdminHandler struct {
	sessions *services.SessionManager
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(sessions *services.SessionManager) *AdminHandler {
	return &AdminHandler{sessions: sessions}
}

// GetOrders lists every order placed since startup, optionally filtered by ?status=
func (h *AdminHandler) GetOrders(c *fiber.Ctx) error {
	status := models.OrderStatus(c.Query("status"))

	orders := []models.Order{}
	for _, o := range h.sessions.GetOrders() {
		if status != "" && o.Status != status {
			continue
		}
		orders = append(orders, o)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"orders":  orders,
		"count":   len(orders),
	})
}

// GetStats returns session statistics
func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"stats":   h.sessions.GetSessionStats(),
	})
}

// GetSession returns one sender's cart and order history
func (h *AdminHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.sessions.GetSession(c.Params("sender"))
	if errors.Is(err, storage.ErrSessionNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"session": session,
	})
}
