package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartTransition(t *testing.T) {
	s := New()
	require.Equal(t, StatusNotStarted, s.Status)

	err := s.Start(Config{Role: RoleBackend, Difficulty: DifficultySenior, Duration: 45})
	require.NoError(t, err)

	assert.Equal(t, StatusInProgress, s.Status)
	assert.Equal(t, RoleBackend, s.Config.Role)
	assert.NotZero(t, s.StartTime)
	assert.Empty(t, s.History)
	assert.Zero(t, s.QuestionsAnswered)

	// Starting an already-started session is illegal.
	assert.ErrorIs(t, s.Start(Config{}), ErrInvalidTransition)
}

func TestStartAppliesDefaults(t *testing.T) {
	s := New()
	require.NoError(t, s.Start(Config{}))
	assert.Equal(t, RoleFullStack, s.Config.Role)
	assert.Equal(t, DifficultyMid, s.Config.Difficulty)
	assert.Equal(t, 30, s.Config.Duration)
}

func TestStartRejectsBadConfig(t *testing.T) {
	cases := []Config{
		{Role: "Astronaut"},
		{Difficulty: "Impossible"},
		{Duration: 3},
		{Duration: 121},
	}
	for _, cfg := range cases {
		s := New()
		assert.Error(t, s.Start(cfg), "config %+v", cfg)
		assert.Equal(t, StatusNotStarted, s.Status)
	}
}

func TestOpenedAssignsIDOnce(t *testing.T) {
	s := New()
	require.NoError(t, s.Start(Config{}))
	require.NoError(t, s.Opened("abc", "Tell me about yourself."))

	assert.Equal(t, "abc", s.ID)
	assert.Equal(t, "Tell me about yourself.", s.CurrentQuestion)
	require.Len(t, s.History, 1)
	assert.Equal(t, SpeakerAI, s.History[0].Speaker)

	assert.ErrorIs(t, s.Opened("other", "q"), ErrInvalidTransition)
	assert.Equal(t, "abc", s.ID)
}

func TestApplyTurn(t *testing.T) {
	s := New()
	require.NoError(t, s.Start(Config{}))
	require.NoError(t, s.Opened("abc", "greeting"))

	require.NoError(t, s.ApplyTurn("my answer", "next question", false))

	assert.Equal(t, StatusInProgress, s.Status)
	assert.Equal(t, 1, s.QuestionsAnswered)
	assert.Equal(t, "next question", s.CurrentQuestion)
	require.Len(t, s.History, 3)
	assert.Equal(t, SpeakerCandidate, s.History[1].Speaker)
	assert.Equal(t, "my answer", s.History[1].Text)
	assert.Equal(t, SpeakerAI, s.History[2].Speaker)
	assert.Zero(t, s.EndTime)
}

func TestApplyTurnHistoryGrowth(t *testing.T) {
	s := New()
	require.NoError(t, s.Start(Config{}))
	require.NoError(t, s.Opened("abc", "greeting"))

	const n = 5
	for i := 0; i < n; i++ {
		require.NoError(t, s.ApplyTurn("answer", "question", false))
	}
	// 2N entries plus the synthesized opening AI entry.
	assert.Len(t, s.History, 2*n+1)
	assert.Equal(t, n, s.QuestionsAnswered)

	candidates := 0
	for _, e := range s.History {
		if e.Speaker == SpeakerCandidate {
			candidates++
		}
	}
	assert.Equal(t, s.QuestionsAnswered, candidates)
}

func TestApplyTurnCompletes(t *testing.T) {
	s := New()
	require.NoError(t, s.Start(Config{}))
	require.NoError(t, s.Opened("abc", "greeting"))

	require.NoError(t, s.ApplyTurn("answer", "That concludes our technical interview. Thank you for your time!", true))

	assert.Equal(t, StatusCompleted, s.Status)
	assert.NotZero(t, s.EndTime)

	// No transition out of completed except reset.
	assert.ErrorIs(t, s.ApplyTurn("more", "q", false), ErrNoActiveSession)
	assert.ErrorIs(t, s.Pause(), ErrInvalidTransition)
	assert.ErrorIs(t, s.End(), ErrInvalidTransition)
}

func TestApplyTurnRequiresActiveSession(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.ApplyTurn("a", "q", false), ErrNoActiveSession)

	require.NoError(t, s.Start(Config{}))
	require.NoError(t, s.Pause())
	assert.ErrorIs(t, s.ApplyTurn("a", "q", false), ErrNoActiveSession)
}

func TestPauseResume(t *testing.T) {
	s := New()
	require.NoError(t, s.Start(Config{}))
	require.NoError(t, s.Opened("abc", "greeting"))
	before := len(s.History)

	require.NoError(t, s.Pause())
	assert.Equal(t, StatusPaused, s.Status)
	assert.ErrorIs(t, s.Pause(), ErrInvalidTransition)

	require.NoError(t, s.Resume())
	assert.Equal(t, StatusInProgress, s.Status)
	assert.ErrorIs(t, s.Resume(), ErrInvalidTransition)

	assert.Len(t, s.History, before)
}

func TestEndFromPaused(t *testing.T) {
	s := New()
	require.NoError(t, s.Start(Config{}))
	require.NoError(t, s.Pause())
	require.NoError(t, s.End())
	assert.Equal(t, StatusCompleted, s.Status)
	assert.NotZero(t, s.EndTime)
}

func TestResetFromAnyState(t *testing.T) {
	s := New()
	require.NoError(t, s.Start(Config{Role: RoleDevOps}))
	require.NoError(t, s.Opened("abc", "greeting"))
	require.NoError(t, s.End())

	s.Reset()
	assert.Equal(t, StatusNotStarted, s.Status)
	assert.Empty(t, s.ID)
	assert.Empty(t, s.History)
	assert.Equal(t, DefaultConfig(), s.Config)
}
