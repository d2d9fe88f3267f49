package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Roshen-Perera/whatsapp-bot-test/internal/services"
)

// SessionJanitor periodically expires idle sessions
type SessionJanitor struct {
	sessions *services.SessionManager
	interval time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSessionJanitor creates a new janitor that sweeps every interval
func NewSessionJanitor(sessions *services.SessionManager, interval time.Duration, logger *zap.Logger) *SessionJanitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionJanitor{
		sessions: sessions,
		interval: interval,
		logger:   logger,
	}
}

// Start begins sweeping in the background. It does nothing when sessions
// never expire or the janitor is already running.
func (j *SessionJanitor) Start(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.cancel != nil {
		j.logger.Warn("Session janitor already running")
		return
	}
	if j.sessions.TTL() <= 0 || j.interval <= 0 {
		j.logger.Info("Session expiry disabled, janitor not started")
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.done = make(chan struct{})

	j.logger.Info("Starting session janitor",
		zap.Duration("ttl", j.sessions.TTL()),
		zap.Duration("interval", j.interval))
	go j.run(ctx, j.done)
}

// Stop halts the janitor and waits for the sweep loop to exit
func (j *SessionJanitor) Stop() {
	j.mu.Lock()
	cancel, done := j.cancel, j.done
	j.cancel, j.done = nil, nil
	j.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	j.logger.Info("Session janitor stopped")
}

func (j *SessionJanitor) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.sessions.ExpireIdleSessions()
		}
	}
}
