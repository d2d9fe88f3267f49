// Package config loads the store profile, opening hours, feature flags and
// runtime settings. Sources are applied in order: built-in defaults, an
// optional YAML file, then environment variables (which may come from .env).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Roshen-Perera/whatsapp-bot-test/internal/models"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	defaultConfigFile = "config.yaml"
)

// Config holds everything the bot reads at startup. It is never mutated afterwards.
type Config struct {
	Environment              string `yaml:"environment"`
	Port                     string `yaml:"port"`
	LogLevel                 string `yaml:"log_level"`
	DisableWebhookValidation bool   `yaml:"disable_webhook_validation"`
	PublicURL                string `yaml:"public_url"` // used for Twilio signature checks behind proxies

	Store    StoreProfile `yaml:"store"`
	Features Features     `yaml:"features"`
	Offers   []string     `yaml:"offers"`
	Currency string       `yaml:"currency"`

	// Catalog: either inline products or a separate file. Empty means built-in data.
	CatalogFile string           `yaml:"catalog_file"`
	Products    []models.Product `yaml:"products"`

	Session SessionConfig `yaml:"session"`
	Twilio  TwilioConfig  `yaml:"-"` // credentials only come from the environment
}

// StoreProfile describes the shop
type StoreProfile struct {
	Name           string      `yaml:"name"`
	Phone          string      `yaml:"phone"`
	Email          string      `yaml:"email"`
	Address        string      `yaml:"address"`
	WhatsAppNumber string      `yaml:"whatsapp_number"` // E.164, used for click-to-chat links
	Hours          WeeklyHours `yaml:"hours"`
	Timezone       string      `yaml:"timezone"` // IANA name for Hours; empty means the server's local zone
}

// Location returns the zone opening hours are read in. Unknown names fall back to local time.
func (s StoreProfile) Location() *time.Location {
	if s.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Features toggles optional behaviour
type Features struct {
	EnableOrdering   bool `yaml:"ordering"`
	EnableDelivery   bool `yaml:"delivery"`
	EnableStockCheck bool `yaml:"stock_check"`
}

// SessionConfig controls idle-session eviction. A zero TTL keeps sessions forever.
type SessionConfig struct {
	TTL           time.Duration `yaml:"ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// TwilioConfig holds Twilio REST credentials
type TwilioConfig struct {
	AccountSID   string
	AuthToken    string
	WhatsAppFrom string // Format: "whatsapp:+14155238886"
}

// Configured reports whether outbound messaging is possible.
func (t TwilioConfig) Configured() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.WhatsAppFrom != ""
}

// IsDevelopment reports whether the bot runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// LoadEnvFiles loads .env for local development. It returns the file that was
// loaded, or "" when none was found.
func LoadEnvFiles() string {
	for _, path := range []string{".env", "environments/.env.development"} {
		if err := godotenv.Load(path); err == nil {
			return path
		}
	}
	return ""
}

// Load builds the configuration from defaults, the YAML file named by
// CONFIG_FILE (or ./config.yaml when present) and environment overrides.
func Load() (*Config, error) {
	cfg := Default()

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if cfg.CatalogFile != "" {
		products, err := LoadCatalogFile(cfg.CatalogFile)
		if err != nil {
			return nil, err
		}
		cfg.Products = products
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile merges a YAML file into c. Keys missing from the file keep their current values.
func (c *Config) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// LoadCatalogFile reads a YAML list of products, either as a bare list or under a "products" key.
func LoadCatalogFile(path string) ([]models.Product, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var wrapped struct {
		Products []models.Product `yaml:"products"`
	}
	if err := yaml.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Products) > 0 {
		return wrapped.Products, nil
	}

	var products []models.Product
	if err := yaml.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("catalog file %s has no products", path)
	}
	return products, nil
}

func (c *Config) applyEnvOverrides() error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setBool := func(key string, dst *bool) error {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", key, v, err)
		}
		*dst = b
		return nil
	}
	setDuration := func(key string, dst *time.Duration) error {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", key, v, err)
		}
		*dst = d
		return nil
	}

	setString("ENVIRONMENT", &c.Environment)
	setString("PORT", &c.Port)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("PUBLIC_URL", &c.PublicURL)
	setString("CATALOG_FILE", &c.CatalogFile)
	setString("CURRENCY", &c.Currency)

	setString("STORE_NAME", &c.Store.Name)
	setString("STORE_PHONE", &c.Store.Phone)
	setString("STORE_EMAIL", &c.Store.Email)
	setString("STORE_ADDRESS", &c.Store.Address)
	setString("STORE_WHATSAPP_NUMBER", &c.Store.WhatsAppNumber)
	setString("STORE_TIMEZONE", &c.Store.Timezone)

	setString("TWILIO_ACCOUNT_SID", &c.Twilio.AccountSID)
	setString("TWILIO_AUTH_TOKEN", &c.Twilio.AuthToken)
	setString("TWILIO_WHATSAPP_FROM", &c.Twilio.WhatsAppFrom)

	for key, dst := range map[string]*bool{
		"DISABLE_WEBHOOK_VALIDATION": &c.DisableWebhookValidation,
		"FEATURE_ORDERING":           &c.Features.EnableOrdering,
		"FEATURE_DELIVERY":           &c.Features.EnableDelivery,
		"FEATURE_STOCK_CHECK":        &c.Features.EnableStockCheck,
	} {
		if err := setBool(key, dst); err != nil {
			return err
		}
	}

	if err := setDuration("SESSION_TTL", &c.Session.TTL); err != nil {
		return err
	}
	if err := setDuration("SESSION_SWEEP_INTERVAL", &c.Session.SweepInterval); err != nil {
		return err
	}

	// Fall back to the Twilio sender number for click-to-chat links
	if c.Store.WhatsAppNumber == "" && c.Twilio.WhatsAppFrom != "" {
		c.Store.WhatsAppNumber = strings.TrimPrefix(c.Twilio.WhatsAppFrom, "whatsapp:")
	}

	return nil
}

// Validate checks the settings the bot cannot run without.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Store.Name) == "" {
		errs = append(errs, errors.New("store name is required"))
	}
	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if c.Session.TTL < 0 {
		errs = append(errs, fmt.Errorf("session ttl must not be negative, got %s", c.Session.TTL))
	}
	if c.Session.TTL > 0 && c.Session.SweepInterval <= 0 {
		errs = append(errs, errors.New("session sweep interval must be positive when a ttl is set"))
	}
	if c.Store.Timezone != "" {
		if _, err := time.LoadLocation(c.Store.Timezone); err != nil {
			errs = append(errs, fmt.Errorf("invalid store timezone %q: %w", c.Store.Timezone, err))
		}
	}
	for _, day := range c.Store.Hours.Days() {
		if err := day.Slot.validate(); err != nil {
			errs = append(errs, fmt.Errorf("hours for %s: %w", day.Day, err))
		}
	}

	return errors.Join(errs...)
}
