package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roshen-Perera/whatsapp-bot-test/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Jayabima Hardware", cfg.Store.Name)
	assert.Equal(t, "Rs.", cfg.Currency)
	assert.True(t, cfg.Features.EnableOrdering)
	assert.True(t, cfg.Features.EnableDelivery)
	assert.True(t, cfg.Features.EnableStockCheck)
	assert.Zero(t, cfg.Session.TTL)
	assert.False(t, cfg.IsDevelopment())
	assert.False(t, cfg.Twilio.Configured())
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", `
store:
  name: Kandy Hardware
  hours:
    sunday:
      closed: true
features:
  delivery: false
offers:
  - Free cutting on PVC pipes
session:
  ttl: 2h
  sweep_interval: 10m
`)

	cfg := Default()
	require.NoError(t, cfg.LoadFile(path))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Kandy Hardware", cfg.Store.Name)
	assert.Equal(t, "037-1234567", cfg.Store.Phone, "unset keys keep defaults")
	assert.True(t, cfg.Store.Hours.Sunday.Closed)
	assert.Equal(t, "08:00", cfg.Store.Hours.Monday.Open)
	assert.False(t, cfg.Features.EnableDelivery)
	assert.True(t, cfg.Features.EnableOrdering)
	assert.Equal(t, []string{"Free cutting on PVC pipes"}, cfg.Offers)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 10*time.Minute, cfg.Session.SweepInterval)
}

func TestLoadFileErrors(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))

	bad := writeFile(t, "bad.yaml", "store: [unclosed")
	assert.ErrorContains(t, cfg.LoadFile(bad), "failed to parse config file")
}

func TestLoadCatalogFile(t *testing.T) {
	wrapped := writeFile(t, "catalog.yaml", `
products:
  - id: SAND-1
    name: River Sand (cube)
    price: 18000
    category: cement
    available: true
    unit: cube
`)
	products, err := LoadCatalogFile(wrapped)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, models.Product{
		ID: "SAND-1", Name: "River Sand (cube)", UnitPrice: 18000,
		Category: models.CategoryCement, Available: true, Unit: "cube",
	}, products[0])

	bare := writeFile(t, "list.yaml", `
- id: NAIL-2
  name: Wire Nails 2"
  price: 450
  category: tools
`)
	products, err = LoadCatalogFile(bare)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "NAIL-2", products[0].ID)
	assert.False(t, products[0].Available)

	empty := writeFile(t, "empty.yaml", "[]")
	_, err = LoadCatalogFile(empty)
	assert.ErrorContains(t, err, "has no products")
}

func TestLoadAppliesEnvironment(t *testing.T) {
	catalog := writeFile(t, "catalog.yaml", `
- id: X-1
  name: Thing
  price: 10
  category: other
  available: true
`)
	file := writeFile(t, "config.yaml", "store:\n  name: From File\n")

	t.Setenv("CONFIG_FILE", file)
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("PORT", "3000")
	t.Setenv("STORE_PHONE", "011-7654321")
	t.Setenv("CATALOG_FILE", catalog)
	t.Setenv("FEATURE_ORDERING", "false")
	t.Setenv("SESSION_TTL", "45m")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC1")
	t.Setenv("TWILIO_AUTH_TOKEN", "token")
	t.Setenv("TWILIO_WHATSAPP_FROM", "whatsapp:+14155238886")
	t.Setenv("STORE_WHATSAPP_NUMBER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "From File", cfg.Store.Name)
	assert.Equal(t, "011-7654321", cfg.Store.Phone)
	assert.False(t, cfg.Features.EnableOrdering)
	assert.Equal(t, 45*time.Minute, cfg.Session.TTL)
	assert.True(t, cfg.Twilio.Configured())
	assert.Equal(t, "+14155238886", cfg.Store.WhatsAppNumber)
	require.Len(t, cfg.Products, 1)
	assert.Equal(t, "X-1", cfg.Products[0].ID)
}

func TestLoadRejectsBadEnvironment(t *testing.T) {
	t.Setenv("CONFIG_FILE", writeFile(t, "config.yaml", "{}"))

	t.Run("bool", func(t *testing.T) {
		t.Setenv("FEATURE_DELIVERY", "maybe")
		_, err := Load()
		assert.ErrorContains(t, err, "FEATURE_DELIVERY")
	})

	t.Run("duration", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "forever")
		_, err := Load()
		assert.ErrorContains(t, err, "SESSION_TTL")
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Store.Name = " "
	cfg.Session.TTL = time.Hour
	cfg.Session.SweepInterval = 0
	cfg.Store.Hours.Friday = TimeSlot{Open: "18:00", Close: "08:00"}
	cfg.Store.Hours.Sunday = TimeSlot{Open: "8am", Close: "13:00"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "store name is required")
	assert.ErrorContains(t, err, "sweep interval must be positive")
	assert.ErrorContains(t, err, "hours for Friday")
	assert.ErrorContains(t, err, `hours for Sunday: invalid open time "8am"`)

	cfg = Default()
	cfg.Session.TTL = -time.Second
	assert.ErrorContains(t, cfg.Validate(), "must not be negative")
}

func TestStoreTimezone(t *testing.T) {
	cfg := Default()
	assert.Equal(t, time.Local, cfg.Store.Location())

	cfg.Store.Timezone = "UTC"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, time.UTC, cfg.Store.Location())

	cfg.Store.Timezone = "Mars/Olympus_Mons"
	assert.ErrorContains(t, cfg.Validate(), `invalid store timezone "Mars/Olympus_Mons"`)
	assert.Equal(t, time.Local, cfg.Store.Location())
}
