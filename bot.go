package main

import (
	"go.uber.org/zap"

	"github.com/Roshen-Perera/whatsapp-bot-test/internal/config"
	"github.com/Roshen-Perera/whatsapp-bot-test/internal/data"
	"github.com/Roshen-Perera/whatsapp-bot-test/internal/services"
	"github.com/Roshen-Perera/whatsapp-bot-test/internal/storage"
)

// bot bundles the services every transport shares
type bot struct {
	sessions *services.SessionManager
	catalog  *services.CatalogService
	whatsapp *services.WhatsAppService
}

func newBot(cfg *config.Config, logger *zap.Logger) (*bot, error) {
	catalog, err := newCatalog(cfg)
	if err != nil {
		return nil, err
	}

	sessions := services.NewSessionManager(storage.NewMemoryStore(), cfg.Session.TTL, logger.Named("sessions"))
	orders := services.NewOrderBuilder(catalog, services.NewOrderIDGenerator())

	return &bot{
		sessions: sessions,
		catalog:  catalog,
		whatsapp: services.NewWhatsAppService(cfg, sessions, catalog, orders, logger.Named("whatsapp")),
	}, nil
}

// newCatalog uses the configured products, falling back to the built-in list
func newCatalog(cfg *config.Config) (*services.CatalogService, error) {
	products := cfg.Products
	if len(products) == 0 {
		products = data.DefaultProducts()
	}
	return services.NewCatalogService(products)
}
