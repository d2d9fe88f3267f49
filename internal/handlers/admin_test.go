package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getJSON(t *testing.T, app *fiber.App, target string, out any) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestAdminOrders(t *testing.T) {
	bot, sessions := newTestBot(t)
	for _, msg := range []string{"hi", "Sam", "add CEM-TS-50 2", "confirm"} {
		_, err := bot.ProcessMessage("+94770000001", msg)
		require.NoError(t, err)
	}

	admin := NewAdminHandler(sessions)
	app := fiber.New()
	app.Get("/admin/orders", admin.GetOrders)
	app.Get("/admin/stats", admin.GetStats)
	app.Get("/admin/sessions/:sender", admin.GetSession)

	var orders struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
		Orders  []struct {
			ID       string `json:"id"`
			SenderID string `json:"sender_id"`
			Total    int64  `json:"total"`
			Status   string `json:"status"`
		} `json:"orders"`
	}
	assert.Equal(t, fiber.StatusOK, getJSON(t, app, "/admin/orders", &orders))
	assert.True(t, orders.Success)
	require.Equal(t, 1, orders.Count)
	assert.Equal(t, int64(4400), orders.Orders[0].Total)
	assert.Equal(t, "pending", orders.Orders[0].Status)

	var filtered struct {
		Count int `json:"count"`
	}
	getJSON(t, app, "/admin/orders?status=delivered", &filtered)
	assert.Zero(t, filtered.Count)

	var stats struct {
		Stats struct {
			TotalSessions int   `json:"total_sessions"`
			OrderValue    int64 `json:"order_value"`
		} `json:"stats"`
	}
	getJSON(t, app, "/admin/stats", &stats)
	assert.Equal(t, 1, stats.Stats.TotalSessions)
	assert.Equal(t, int64(4400), stats.Stats.OrderValue)
}

func TestAdminSession(t *testing.T) {
	bot, sessions := newTestBot(t)
	for _, msg := range []string{"hi", "Sam", "add PAI-NIP-4L 1 white"} {
		_, err := bot.ProcessMessage("+94770000001", msg)
		require.NoError(t, err)
	}

	app := fiber.New()
	app.Get("/admin/sessions/:sender", NewAdminHandler(sessions).GetSession)

	var found struct {
		Session struct {
			DisplayName string `json:"display_name"`
			VisitCount  int    `json:"visit_count"`
			Cart        []struct {
				Quantity int    `json:"quantity"`
				Note     string `json:"note"`
			} `json:"cart"`
		} `json:"session"`
	}
	assert.Equal(t, fiber.StatusOK, getJSON(t, app, "/admin/sessions/+94770000001", &found))
	assert.Equal(t, "Sam", found.Session.DisplayName)
	assert.Equal(t, 3, found.Session.VisitCount, "lookups do not count as visits")
	require.Len(t, found.Session.Cart, 1)
	assert.Equal(t, "white", found.Session.Cart[0].Note)

	var missing map[string]any
	assert.Equal(t, fiber.StatusNotFound, getJSON(t, app, "/admin/sessions/+94000000000", &missing))
}

func TestHealthCheck(t *testing.T) {
	_, sessions := newTestBot(t)
	app := fiber.New()
	app.Get("/health", NewHealthHandler("1.0.0", "Jayabima Hardware", false, sessions).Check)

	var body struct {
		Status   string `json:"status"`
		Service  string `json:"service"`
		Services struct {
			Twilio   bool `json:"twilio"`
			Sessions struct {
				TotalSessions int `json:"total_sessions"`
			} `json:"sessions"`
		} `json:"services"`
	}
	assert.Equal(t, fiber.StatusOK, getJSON(t, app, "/health", &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "Jayabima Hardware WhatsApp Bot", body.Service)
	assert.False(t, body.Services.Twilio)
	assert.Zero(t, body.Services.Sessions.TotalSessions)
}
