package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxhire/interview-poc/gateway/internal/interview"
)

func TestMemoryCreateGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	cfg := interview.Config{Role: interview.RoleBackend, Difficulty: interview.DifficultySenior, Duration: 30}

	require.NoError(t, m.Create(ctx, "id-1", cfg))

	sess, err := m.Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "id-1", sess.ID)
	assert.Equal(t, cfg, sess.Config)
	assert.Empty(t, sess.History)
	assert.False(t, sess.CreatedAt.IsZero())
}

func TestMemoryGetUnknown(t *testing.T) {
	m := NewMemory()
	_, err := m.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryAppendTurns(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Create(ctx, "id-1", interview.DefaultConfig()))

	err := m.AppendTurns(ctx, "id-1",
		interview.Entry{Speaker: interview.SpeakerCandidate, Text: "a", Timestamp: 1},
		interview.Entry{Speaker: interview.SpeakerAI, Text: "q", Timestamp: 2},
	)
	require.NoError(t, err)

	sess, err := m.Get(ctx, "id-1")
	require.NoError(t, err)
	require.Len(t, sess.History, 2)
	assert.Equal(t, "a", sess.History[0].Text)
	assert.Equal(t, "q", sess.History[1].Text)

	assert.ErrorIs(t, m.AppendTurns(ctx, "missing", interview.Entry{}), ErrNotFound)
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Create(ctx, "id-1", interview.DefaultConfig()))
	require.NoError(t, m.AppendTurns(ctx, "id-1", interview.Entry{Text: "original"}))

	sess, err := m.Get(ctx, "id-1")
	require.NoError(t, err)
	sess.History[0].Text = "mutated"

	again, err := m.Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "original", again.History[0].Text)
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Create(ctx, "id-1", interview.DefaultConfig()))
	require.NoError(t, m.Delete(ctx, "id-1"))

	_, err := m.Get(ctx, "id-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an unknown id is not an error.
	require.NoError(t, m.Delete(ctx, "id-1"))
	assert.Zero(t, m.Len())
}

func TestLocksSerializePerID(t *testing.T) {
	locks := NewLocks()

	const workers = 8
	const iterations = 200
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				release := locks.Acquire("same-id")
				counter++
				release()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*iterations, counter)
}

func TestLocksIndependentIDs(t *testing.T) {
	locks := NewLocks()

	releaseA := locks.Acquire("a")
	defer releaseA()

	// A held lock on "a" must not block "b".
	done := make(chan struct{})
	go func() {
		releaseB := locks.Acquire("b")
		releaseB()
		close(done)
	}()
	<-done
}
