package store

import (
	"context"
	"sync"
	"time"

	"github.com/voxhire/interview-poc/gateway/internal/interview"
)

// Memory is the process-wide map registry. Sessions live for the process
// lifetime unless deleted.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemory creates an empty in-memory registry.
func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]*Session)}
}

// Create registers a new empty session for id.
func (m *Memory) Create(ctx context.Context, id string, cfg interview.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = &Session{ID: id, Config: cfg, CreatedAt: time.Now().UTC()}
	return nil
}

// Get returns a copy of the session so callers cannot mutate the registry's
// history out from under concurrent readers.
func (m *Memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *sess
	cp.History = append([]interview.Entry(nil), sess.History...)
	return &cp, nil
}

// AppendTurns adds entries to the session history in order.
func (m *Memory) AppendTurns(ctx context.Context, id string, entries ...interview.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	sess.History = append(sess.History, entries...)
	return nil
}

// Delete removes the session.
func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close is a no-op for the in-memory registry.
func (m *Memory) Close() error { return nil }
