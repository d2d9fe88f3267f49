package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Roshen-Perera/whatsapp-bot-test/internal/config"
)

func TestClickToChatURL(t *testing.T) {
	link, err := clickToChatURL("whatsapp:+94 77 123-4567", "hi")
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/94771234567?text=hi", link)

	link, err = clickToChatURL("+94771234567", "")
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/94771234567", link)

	_, err = clickToChatURL("", "hi")
	assert.Error(t, err)
}

func TestChatLoop(t *testing.T) {
	cfg = config.Default()
	b, err := newBot(cfg, zap.NewNop())
	require.NoError(t, err)

	in := strings.NewReader("hi\nSam\nadd CEM-TS-50 2\nconfirm\nexit\nhours\n")
	var out bytes.Buffer
	require.NoError(t, chatLoop(b, "+94770000001", in, &out))

	transcript := out.String()
	assert.Contains(t, transcript, "May I know your name?")
	assert.Contains(t, transcript, "Nice to meet you, Sam!")
	assert.Contains(t, transcript, "✅ *Order placed!*")
	assert.NotContains(t, transcript, "Opening Hours", "input after exit is ignored")
	assert.Len(t, b.sessions.GetOrders(), 1)
}

func TestNewCatalogFallsBackToBuiltIn(t *testing.T) {
	catalog, err := newCatalog(config.Default())
	require.NoError(t, err)
	assert.Len(t, catalog.Products(), 6)
}
