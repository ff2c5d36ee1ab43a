package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxhire/interview-poc/gateway/internal/interview"
)

func TestNewSummaryDerivesDuration(t *testing.T) {
	s := interview.Session{
		ID:        "abc",
		Status:    interview.StatusCompleted,
		StartTime: 1_000_000,
		EndTime:   1_000_000 + 90_000, // 90s later
	}

	sum := NewSummary(s)
	assert.Equal(t, int64(90_000), sum.DurationMs)
	assert.Equal(t, "1m30s", sum.Duration)
	assert.Equal(t, s, sum.Session)
	assert.False(t, sum.ExportedAt.IsZero())
}

func TestNewSummaryUnfinishedSession(t *testing.T) {
	// No end time yet: duration stays zero rather than going negative.
	sum := NewSummary(interview.Session{StartTime: 5_000})
	assert.Zero(t, sum.DurationMs)
	assert.Equal(t, "0s", sum.Duration)
}

func TestWriteJSON(t *testing.T) {
	s := interview.Session{
		ID:        "abc",
		Status:    interview.StatusCompleted,
		StartTime: 1_000,
		EndTime:   61_000,
		History: []interview.Entry{
			{Speaker: interview.SpeakerAI, Text: "Hello", Timestamp: 1_000},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, s))

	var sum Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &sum))
	assert.Equal(t, "abc", sum.Session.ID)
	assert.Equal(t, int64(60_000), sum.DurationMs)
	require.Len(t, sum.Session.History, 1)
	assert.Equal(t, "Hello", sum.Session.History[0].Text)
}
