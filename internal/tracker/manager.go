package tracker

import (
	"context"
	"sync"
)

// Factory builds a Tracker for the given session user. The indirection
// lets the caller bind per-user state (for example the email recipient)
// without the manager knowing about it.
type Factory func(userID uint64) *Tracker

// Manager ties a tracker's lifetime to the active session: started on
// login, stopped on logout or process shutdown. One session at a time:
// starting a new tracker stops the previous one first. A stopped tracker
// is never resumed; login constructs a fresh one with an empty
// already-notified set.
type Manager struct {
	mu      sync.Mutex
	factory Factory
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewManager(factory Factory) *Manager {
	return &Manager{factory: factory}
}

// Start launches a tracker for the user, replacing any running one.
func (m *Manager) Start(userID uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	t := m.factory(userID)

	go func() {
		defer close(done)
		t.Run(ctx)
	}()

	m.cancel = cancel
	m.done = done
}

// Stop cancels the running tracker, if any, and waits for it to exit.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *Manager) stopLocked() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
	m.cancel = nil
	m.done = nil
}
