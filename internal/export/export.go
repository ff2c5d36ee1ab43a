// Package export renders a finished interview for download. Only the JSON
// shape lives here; visual formatting (PDF layout) is a frontend concern and
// consumes the same Summary.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/voxhire/interview-poc/gateway/internal/interview"
)

// Summary is the exported view of a session: the full session plus the
// derived interview duration.
type Summary struct {
	Session    interview.Session `json:"session"`
	DurationMs int64             `json:"durationMs"`
	Duration   string            `json:"duration"`
	ExportedAt time.Time         `json:"exportedAt"`
}

// NewSummary derives the export view from a session. Duration is zero until
// both start and end times are set.
func NewSummary(s interview.Session) Summary {
	var ms int64
	if s.StartTime > 0 && s.EndTime > s.StartTime {
		ms = s.EndTime - s.StartTime
	}
	return Summary{
		Session:    s,
		DurationMs: ms,
		Duration:   (time.Duration(ms) * time.Millisecond).Round(time.Second).String(),
		ExportedAt: time.Now().UTC(),
	}
}

// WriteJSON renders the summary for s to w.
func WriteJSON(w io.Writer, s interview.Session) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewSummary(s)); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}
