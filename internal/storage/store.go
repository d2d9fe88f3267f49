package storage

import (
	"errors"
	"time"

	"github.com/Roshen-Perera/whatsapp-bot-test/internal/models"
)

// ErrSessionNotFound is returned when no session exists for a sender
var ErrSessionNotFound = errors.New("session not found")

// Store defines the interface for session storage operations
type Store interface {
	// GetOrCreateSession returns the sender's session, creating it on first
	// contact. Every call counts as a visit: VisitCount is incremented and
	// LastSeenAt refreshed. created reports whether the session is new.
	GetOrCreateSession(senderID string) (session *models.Session, created bool)

	// GetSession returns an existing session without counting a visit.
	GetSession(senderID string) (*models.Session, error)

	// ListSessions returns every stored session.
	ListSessions() []*models.Session

	// DeleteIdleSessions removes sessions last seen before cutoff and
	// returns the removed sender ids.
	DeleteIdleSessions(cutoff time.Time) []string

	// Count returns the number of stored sessions.
	Count() int
}
