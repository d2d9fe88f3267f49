package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Roshen-Perera/whatsapp-bot-test/internal/config"
	"github.com/Roshen-Perera/whatsapp-bot-test/internal/handlers"
	"github.com/Roshen-Perera/whatsapp-bot-test/internal/middleware"
)

// Version is reported by the root and health endpoints
const Version = "1.0.0"

// Handlers groups the HTTP handlers mounted by SetupRoutes
type Handlers struct {
	WhatsApp *handlers.WhatsAppHandler
	Health   *handlers.HealthHandler
	Admin    *handlers.AdminHandler
}

// NewApp creates the fiber app with the shared middleware stack
func NewApp(cfg *config.Config, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.Store.Name + " WhatsApp Bot v" + Version,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(requestid.New(requestid.Config{
		Generator:  newRequestID,
		ContextKey: middleware.RequestIDKey,
	}))
	app.Use(middleware.RequestLogger(logger))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	return app
}

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, cfg *config.Config, h Handlers, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	endpoints := fiber.Map{
		"health":  "/health",
		"webhook": "/webhook/whatsapp",
	}
	if cfg.IsDevelopment() {
		endpoints["test_whatsapp"] = "/test/whatsapp"
		endpoints["admin"] = "/admin/orders"
	}

	// Root endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":     "Welcome to " + cfg.Store.Name + " WhatsApp Bot!",
			"version":     Version,
			"environment": cfg.Environment,
			"endpoints":   endpoints,
		})
	})

	app.Get("/health", h.Health.Check)

	// ========== WEBHOOK ROUTES ==========
	webhooks := app.Group("/webhook")

	// WhatsApp webhook - ENVIRONMENT-AWARE VALIDATION
	if cfg.IsDevelopment() || cfg.DisableWebhookValidation {
		webhooks.Post("/whatsapp", h.WhatsApp.HandleWebhook)
		logger.Warn("⚠️  WhatsApp webhook signature validation DISABLED",
			zap.String("environment", cfg.Environment))
	} else {
		webhooks.Post("/whatsapp",
			middleware.ValidateTwilioSignature(cfg.Twilio.AuthToken, cfg.PublicURL, logger),
			h.WhatsApp.HandleWebhook)
	}

	if !cfg.IsDevelopment() {
		return
	}

	// ========== TEST ROUTES (Development Only) ==========
	app.Post("/test/whatsapp", h.WhatsApp.HandleTestWebhook)

	// ========== ADMIN ROUTES (Development Only) ==========
	admin := app.Group("/admin")
	admin.Get("/orders", h.Admin.GetOrders)
	admin.Get("/stats", h.Admin.GetStats)
	admin.Get("/sessions/:sender", h.Admin.GetSession)
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
