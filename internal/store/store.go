// Package store is the backend session registry: the server-side half of an
// interview, keyed by interview id. The interface is injected so handlers can
// run against the in-memory map in tests and a durable Postgres store in
// production.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/voxhire/interview-poc/gateway/internal/interview"
)

// ErrNotFound is returned when no session exists for an interview id, e.g.
// after a process restart with the in-memory store.
var ErrNotFound = errors.New("session not found")

// Session is the server-side record of one interview.
type Session struct {
	ID        string              `json:"id"`
	Config    interview.Config    `json:"config"`
	History   []interview.Entry   `json:"history"`
	CreatedAt time.Time           `json:"createdAt"`
}

// Store is the session registry. History is append-only, so mutation is
// modeled as AppendTurns rather than whole-record replacement.
type Store interface {
	// Create registers a new empty session for id.
	Create(ctx context.Context, id string, cfg interview.Config) error
	// Get returns the session for id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)
	// AppendTurns adds entries to the session history in order.
	AppendTurns(ctx context.Context, id string, entries ...interview.Entry) error
	// Delete removes the session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
	// Close releases any backing resources.
	Close() error
}
