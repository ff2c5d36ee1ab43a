package interview

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// SnapshotStore persists one serialized session to a single slot on disk,
// mirroring the browser localStorage slot the web client uses. Every state
// mutation is followed by a Save; Load applies the restore rule: only a
// session that was in progress or paused is worth resurrecting, anything
// else yields the default session.
type SnapshotStore struct {
	path string
}

// NewSnapshotStore creates a store writing to path. Parent directories are
// created on first save.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Save serializes the full session into the slot.
func (st *SnapshotStore) Save(s *Session) error {
	if err := os.MkdirAll(filepath.Dir(st.path), 0o755); err != nil {
		return fmt.Errorf("snapshot dir: %w", err)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("snapshot marshal: %w", err)
	}
	tmp := st.path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("snapshot write: %w", err)
	}
	if err = os.Rename(tmp, st.path); err != nil {
		return fmt.Errorf("snapshot rename: %w", err)
	}
	return nil
}

// Load restores the stored session, or the default session when the slot is
// empty, unreadable, or holds a session that is neither in progress nor
// paused. A stale completed session never resurrects.
func (st *SnapshotStore) Load() *Session {
	data, err := os.ReadFile(st.path)
	if err != nil {
		return New()
	}
	var s Session
	if err = json.Unmarshal(data, &s); err != nil {
		slog.Warn("discarding unreadable session snapshot", "path", st.path, "error", err)
		return New()
	}
	if !s.Active() {
		return New()
	}
	return &s
}

// Clear removes the slot entirely.
func (st *SnapshotStore) Clear() error {
	err := os.Remove(st.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("snapshot clear: %w", err)
	}
	return nil
}
