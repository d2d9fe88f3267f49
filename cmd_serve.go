package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Roshen-Perera/whatsapp-bot-test/internal/handlers"
	"github.com/Roshen-Perera/whatsapp-bot-test/internal/jobs"
	"github.com/Roshen-Perera/whatsapp-bot-test/internal/routes"
	"github.com/Roshen-Perera/whatsapp-bot-test/internal/services"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Twilio WhatsApp webhook server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	b, err := newBot(cfg, logger)
	if err != nil {
		return err
	}

	// Initialize Twilio service
	var sender services.MessageSender
	twilioService, err := services.NewTwilioService(cfg.Twilio, logger.Named("twilio"))
	if err != nil {
		logger.Warn("⚠️  Twilio credentials not found - replies will only be logged", zap.Error(err))
	} else {
		sender = twilioService
		logger.Info("✅ Twilio service initialized")
	}

	app := routes.NewApp(cfg, logger.Named("http"))
	routes.SetupRoutes(app, cfg, routes.Handlers{
		WhatsApp: handlers.NewWhatsAppHandler(b.whatsapp, sender, logger.Named("webhook")),
		Health:   handlers.NewHealthHandler(routes.Version, cfg.Store.Name, sender != nil, b.sessions),
		Admin:    handlers.NewAdminHandler(b.sessions),
	}, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	janitor := jobs.NewSessionJanitor(b.sessions, cfg.Session.SweepInterval, logger.Named("janitor"))
	janitor.Start(ctx)

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		logger.Info("🛑 Gracefully shutting down...")
		janitor.Stop()
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logger.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("🚀 WhatsApp bot starting",
		zap.String("store", cfg.Store.Name),
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.Int("products", len(b.catalog.Products())),
		zap.Bool("twilio", sender != nil),
		zap.Duration("session_ttl", cfg.Session.TTL))

	return app.Listen(":" + cfg.Port)
}
