package models

import (
	"sync"
	"time"
)

// Session stores per-sender conversation state for WhatsApp conversations.
// Callers hold the session lock while reading or mutating it.
type Session struct {
	mu sync.Mutex

	SenderID     string     `json:"sender_id"`
	DisplayName  string     `json:"display_name"` // empty until captured
	VisitCount   int        `json:"visit_count"`
	FirstSeenAt  time.Time  `json:"first_seen_at"`
	LastSeenAt   time.Time  `json:"last_seen_at"`
	Cart         []CartLine `json:"cart"`
	OrderHistory []Order    `json:"order_history"`
}

// NewSession creates an empty session for a sender
func NewSession(senderID string, now time.Time) *Session {
	return &Session{
		SenderID:    senderID,
		FirstSeenAt: now,
		LastSeenAt:  now,
		Cart:        []CartLine{},
	}
}

// Lock acquires the session lock.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// HasName reports whether a display name has been captured.
func (s *Session) HasName() bool {
	return s.DisplayName != ""
}

// IsFirstVisit reports whether the current message is the sender's first.
func (s *Session) IsFirstVisit() bool {
	return s.VisitCount == 1
}

// Snapshot returns a copy of the session that is safe to read without the lock.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := SessionSnapshot{
		SenderID:    s.SenderID,
		DisplayName: s.DisplayName,
		VisitCount:  s.VisitCount,
		FirstSeenAt: s.FirstSeenAt,
		LastSeenAt:  s.LastSeenAt,
		Cart:        append([]CartLine(nil), s.Cart...),
		Orders:      append([]Order(nil), s.OrderHistory...),
	}
	return snap
}

// SessionSnapshot is a lock-free copy of a Session
type SessionSnapshot struct {
	SenderID    string     `json:"sender_id"`
	DisplayName string     `json:"display_name"`
	VisitCount  int        `json:"visit_count"`
	FirstSeenAt time.Time  `json:"first_seen_at"`
	LastSeenAt  time.Time  `json:"last_seen_at"`
	Cart        []CartLine `json:"cart"`
	Orders      []Order    `json:"orders"`
}
