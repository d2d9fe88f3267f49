package storage

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roshen-Perera/whatsapp-bot-test/internal/models"
)

func TestGetOrCreateSessionCountsVisits(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStoreWithClock(func() time.Time { return now })

	session, created := store.GetOrCreateSession("+94770000001")
	require.True(t, created)
	assert.Equal(t, 1, session.VisitCount)
	assert.Equal(t, now, session.FirstSeenAt)
	assert.NotNil(t, session.Cart)

	now = now.Add(time.Minute)
	again, created := store.GetOrCreateSession("+94770000001")
	assert.False(t, created)
	assert.Same(t, session, again)
	assert.Equal(t, 2, again.VisitCount)
	assert.Equal(t, now, again.LastSeenAt)
	assert.Equal(t, 1, store.Count())
}

func TestGetSession(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.GetSession("+94770000001")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	store.GetOrCreateSession("+94770000001")
	session, err := store.GetSession("+94770000001")
	require.NoError(t, err)
	assert.Equal(t, "+94770000001", session.SenderID)
}

func TestListSessionsOrderedByFirstContact(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStoreWithClock(func() time.Time { return now })

	for _, id := range []string{"c", "a", "b"} {
		store.GetOrCreateSession(id)
		now = now.Add(time.Second)
	}

	var ids []string
	for _, s := range store.ListSessions() {
		ids = append(ids, s.SenderID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestDeleteIdleSessions(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStoreWithClock(func() time.Time { return now })

	store.GetOrCreateSession("old-2")
	store.GetOrCreateSession("old-1")
	now = now.Add(time.Hour)
	store.GetOrCreateSession("fresh")

	removed := store.DeleteIdleSessions(now.Add(-30 * time.Minute))
	assert.Equal(t, []string{"old-1", "old-2"}, removed)
	assert.Equal(t, 1, store.Count())

	assert.Empty(t, store.DeleteIdleSessions(now.Add(-30*time.Minute)))
}

func TestConcurrentSendersAreIndependent(t *testing.T) {
	store := NewMemoryStore()

	const senders, visits = 50, 20
	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		for j := 0; j < visits; j++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				store.GetOrCreateSession(fmt.Sprintf("sender-%d", i))
			}(i)
		}
	}
	wg.Wait()

	require.Equal(t, senders, store.Count())
	for _, s := range store.ListSessions() {
		s.Lock()
		assert.Equal(t, visits, s.VisitCount, s.SenderID)
		s.Unlock()
	}
}

func TestSweepNeverDropsARevivedSession(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	var clock sync.Mutex
	now := start
	store := NewMemoryStoreWithClock(func() time.Time {
		clock.Lock()
		defer clock.Unlock()
		return now
	})

	const senders = 200
	for i := 0; i < senders; i++ {
		store.GetOrCreateSession(fmt.Sprintf("sender-%d", i))
	}
	clock.Lock()
	now = start.Add(time.Hour)
	clock.Unlock()
	cutoff := start.Add(30 * time.Minute)

	revived := make([]*models.Session, senders)
	var wg sync.WaitGroup
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			store.DeleteIdleSessions(cutoff)
		}
	}()
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			session, _ := store.GetOrCreateSession(fmt.Sprintf("sender-%d", i))
			revived[i] = session
		}(i)
	}
	wg.Wait()
	<-done

	for i := 0; i < senders; i++ {
		stored, err := store.GetSession(fmt.Sprintf("sender-%d", i))
		require.NoError(t, err)
		assert.Same(t, revived[i], stored, "sender-%d was swept while being revived", i)
	}
}
