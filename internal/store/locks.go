package store

import "sync"

// Locks serializes answer processing per interview id: at most one turn is in
// flight for a given id at a time, turns for different ids run independently.
// Without this, concurrent answers for one interview could interleave their
// history appends out of order.
//
// Mutexes are created on demand and kept for the registry's lifetime, which
// is bounded by the number of sessions.
type Locks struct {
	mu   sync.Mutex
	held map[string]*sync.Mutex
}

// NewLocks creates an empty lock table.
func NewLocks() *Locks {
	return &Locks{held: make(map[string]*sync.Mutex)}
}

// Acquire locks the mutex for id and returns its release function.
func (l *Locks) Acquire(id string) (release func()) {
	l.mu.Lock()
	m, ok := l.held[id]
	if !ok {
		m = &sync.Mutex{}
		l.held[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
