package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Roshen-Perera/whatsapp-bot-test/internal/logging"
	"github.com/Roshen-Perera/whatsapp-bot-test/internal/middleware"
	"github.com/Roshen-Perera/whatsapp-bot-test/internal/services"
)

// GenericErrorReply is sent when processing fails unexpectedly
const GenericErrorReply = "❌ Sorry, something went wrong. Please try again."

// MessageProcessor turns an inbound message into a reply
type MessageProcessor interface {
	ProcessMessage(from, message string) (string, error)
}

// WhatsAppHandler handles WhatsApp webhook requests
type WhatsAppHandler struct {
	processor MessageProcessor
	sender    services.MessageSender // nil when Twilio is not configured
	logger    *zap.Logger
}

// NewWhatsAppHandler creates a new WhatsApp handler
func NewWhatsAppHandler(processor MessageProcessor, sender services.MessageSender, logger *zap.Logger) *WhatsAppHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WhatsAppHandler{
		processor: processor,
		sender:    sender,
		logger:    logger,
	}
}

// TwilioWebhookPayload represents incoming WhatsApp message from Twilio
type TwilioWebhookPayload struct {
	MessageSid        string `form:"MessageSid"`
	AccountSid        string `form:"AccountSid"`
	From              string `form:"From"` // WhatsApp number (whatsapp:+94771234567)
	To                string `form:"To"`   // Your Twilio number
	Body              string `form:"Body"` // Message text
	ProfileName       string `form:"ProfileName"`
	NumMedia          string `form:"NumMedia"`
	MediaUrl0         string `form:"MediaUrl0"`
	MediaContentType0 string `form:"MediaContentType0"`
}

// HandleWebhook processes incoming WhatsApp messages
func (h *WhatsAppHandler) HandleWebhook(c *fiber.Ctx) error {
	// Twilio sends different payloads for different events
	var payload TwilioWebhookPayload

	if err := c.BodyParser(&payload); err != nil {
		h.logger.Warn("Error parsing webhook", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook payload",
		})
	}

	// Process only incoming messages (not status updates)
	if payload.Body == "" || payload.From == "" {
		return c.SendStatus(fiber.StatusOK)
	}

	from := strings.TrimPrefix(payload.From, "whatsapp:")
	log := h.requestLogger(c).With(logging.MaskSender(from), zap.String("message_sid", payload.MessageSid))

	if services.ShouldSkipSender(payload.From) || services.ShouldSkipSender(from) {
		log.Debug("Skipping group/broadcast message")
		return c.SendStatus(fiber.StatusOK)
	}

	log.Info("📱 WhatsApp message received", zap.Int("length", len(payload.Body)))
	response := h.process(log, from, payload.Body)

	// Send the response back via Twilio
	if h.sender == nil {
		log.Info("📤 Response (not sent - Twilio not configured)", zap.String("response", response))
		return c.SendStatus(fiber.StatusOK)
	}
	if err := h.sender.SendWhatsAppMessage(from, response); err != nil {
		log.Error("❌ Failed to send WhatsApp response", zap.Error(err))
	} else {
		log.Info("✅ Response sent")
	}

	// Acknowledge webhook receipt
	return c.SendStatus(fiber.StatusOK)
}

// TestWebhookPayload is used for testing without Twilio
type TestWebhookPayload struct {
	From    string `json:"from"`
	Message string `json:"message"`
}

// HandleTestWebhook processes test WhatsApp messages (for development)
func (h *WhatsAppHandler) HandleTestWebhook(c *fiber.Ctx) error {
	var payload TestWebhookPayload

	if err := c.BodyParser(&payload); err != nil || payload.From == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid test payload",
		})
	}

	log := h.requestLogger(c).With(logging.MaskSender(payload.From))

	if services.ShouldSkipSender(payload.From) {
		return c.JSON(fiber.Map{
			"success":  true,
			"skipped":  true,
			"response": "",
		})
	}

	log.Info("🧪 Test webhook received")
	response := h.process(log, payload.From, payload.Message)

	return c.JSON(fiber.Map{
		"success":  true,
		"response": response,
	})
}

// process runs the message through the bot, converting errors and panics
// into the generic reply
func (h *WhatsAppHandler) process(log *zap.Logger, from, body string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Panic while processing message", zap.String("panic", fmt.Sprint(r)), zap.Stack("stack"))
			reply = GenericErrorReply
		}
	}()

	response, err := h.processor.ProcessMessage(from, body)
	if err != nil {
		log.Error("Error processing message", zap.Error(err))
		return GenericErrorReply
	}
	return response
}

func (h *WhatsAppHandler) requestLogger(c *fiber.Ctx) *zap.Logger {
	if id, ok := c.Locals(middleware.RequestIDKey).(string); ok {
		return h.logger.With(zap.String("request_id", id))
	}
	return h.logger
}
