package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/Roshen-Perera/whatsapp-bot-test/internal/models"
	"github.com/Roshen-Perera/whatsapp-bot-test/internal/storage"
)

// SessionManager manages per-sender sessions on top of a Store
type SessionManager struct {
	store      storage.Store
	logger     *zap.Logger
	sessionTTL time.Duration // 0 keeps sessions for the process lifetime
	now        func() time.Time
}

// NewSessionManager creates a new session manager
func NewSessionManager(store storage.Store, sessionTTL time.Duration, logger *zap.Logger) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{
		store:      store,
		logger:     logger,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// Touch returns the sender's session and records the visit
func (sm *SessionManager) Touch(senderID string) *models.Session {
	session, created := sm.store.GetOrCreateSession(senderID)
	if created {
		sm.logger.Info("🆕 Session created", zap.Int("sessions", sm.store.Count()))
	}
	return session
}

// TTL returns the idle timeout; zero means sessions never expire.
func (sm *SessionManager) TTL() time.Duration {
	return sm.sessionTTL
}

// ExpireIdleSessions removes sessions idle for longer than the TTL
func (sm *SessionManager) ExpireIdleSessions() int {
	if sm.sessionTTL <= 0 {
		return 0
	}

	removed := sm.store.DeleteIdleSessions(sm.now().Add(-sm.sessionTTL))
	if len(removed) > 0 {
		sm.logger.Info("🧹 Cleaned up idle sessions",
			zap.Int("removed", len(removed)),
			zap.Int("remaining", sm.store.Count()))
	}
	return len(removed)
}

// GetActiveSessions returns snapshots of all sessions (for monitoring)
func (sm *SessionManager) GetActiveSessions() []models.SessionSnapshot {
	sessions := sm.store.ListSessions()
	out := make([]models.SessionSnapshot, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Snapshot())
	}
	return out
}

// GetSession returns a snapshot of one sender's session without counting a visit
func (sm *SessionManager) GetSession(senderID string) (models.SessionSnapshot, error) {
	session, err := sm.store.GetSession(senderID)
	if err != nil {
		return models.SessionSnapshot{}, err
	}
	return session.Snapshot(), nil
}

// GetOrders returns every order placed, oldest sender first
func (sm *SessionManager) GetOrders() []models.Order {
	var orders []models.Order
	for _, s := range sm.GetActiveSessions() {
		orders = append(orders, s.Orders...)
	}
	return orders
}

// SessionStats provides session statistics
type SessionStats struct {
	TotalSessions  int   `json:"total_sessions"`
	NamedSessions  int   `json:"named_sessions"`
	OpenCarts      int   `json:"open_carts"`
	OrdersPlaced   int   `json:"orders_placed"`
	OrderValue     int64 `json:"order_value"`
	SessionTTLSecs int64 `json:"session_ttl_seconds"`
}

// GetSessionStats returns current session statistics
func (sm *SessionManager) GetSessionStats() SessionStats {
	stats := SessionStats{SessionTTLSecs: int64(sm.sessionTTL.Seconds())}

	for _, s := range sm.GetActiveSessions() {
		stats.TotalSessions++
		if s.DisplayName != "" {
			stats.NamedSessions++
		}
		if len(s.Cart) > 0 {
			stats.OpenCarts++
		}
		stats.OrdersPlaced += len(s.Orders)
		for _, o := range s.Orders {
			stats.OrderValue += o.Total
		}
	}
	return stats
}
