package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/Roshen-Perera/whatsapp-bot-test/internal/models"
)

// MemoryStore holds all sessions in memory for the lifetime of the process
type MemoryStore struct {
	sessions map[string]*entry
	mu       sync.RWMutex

	now func() time.Time
}

// entry tracks the last visit under the store lock, so a sweep never has
// to take a session lock and never misses a visit in progress
type entry struct {
	session  *models.Session
	lastSeen time.Time
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

// NewMemoryStoreWithClock creates a store that reads time from now (for tests)
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	s := NewMemoryStore()
	s.now = now
	return s
}

func (m *MemoryStore) GetOrCreateSession(senderID string) (*models.Session, bool) {
	now := m.now()

	m.mu.Lock()
	e, exists := m.sessions[senderID]
	if !exists {
		e = &entry{session: models.NewSession(senderID, now)}
		m.sessions[senderID] = e
	}
	e.lastSeen = now
	session := e.session
	m.mu.Unlock()

	session.Lock()
	session.VisitCount++
	session.LastSeenAt = now
	session.Unlock()

	return session, !exists
}

func (m *MemoryStore) GetSession(senderID string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, exists := m.sessions[senderID]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return e.session, nil
}

// ListSessions returns sessions ordered by first contact
func (m *MemoryStore) ListSessions() []*models.Session {
	m.mu.RLock()
	sessions := make([]*models.Session, 0, len(m.sessions))
	for _, e := range m.sessions {
		sessions = append(sessions, e.session)
	}
	m.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].FirstSeenAt.Before(sessions[j].FirstSeenAt)
	})
	return sessions
}

func (m *MemoryStore) DeleteIdleSessions(cutoff time.Time) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed []string
	for senderID, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(m.sessions, senderID)
			removed = append(removed, senderID)
		}
	}
	sort.Strings(removed)
	return removed
}

func (m *MemoryStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
