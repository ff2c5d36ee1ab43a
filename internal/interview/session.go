package interview

import (
	"errors"
	"time"
)

var (
	// ErrNoActiveSession is returned when a turn is applied to a session
	// that is not in progress.
	ErrNoActiveSession = errors.New("no active session")

	// ErrInvalidTransition is returned for any other illegal lifecycle move.
	ErrInvalidTransition = errors.New("invalid session transition")
)

// Session is the full client-side state of one interview. All mutation goes
// through the methods below; collaborators get value copies and return delta
// instructions (next question, completion flag), never write directly.
//
// Invariants held by the methods:
//   - ID is empty only while Status == not_started and is assigned once.
//   - QuestionsAnswered equals the number of Candidate entries.
//   - History never shrinks.
//   - CurrentQuestion equals the text of the most recent AI entry.
//   - EndTime is set exactly once, on the transition to completed.
type Session struct {
	ID                string  `json:"id,omitempty"`
	Config            Config  `json:"config"`
	Status            Status  `json:"status"`
	History           []Entry `json:"conversationHistory"`
	CurrentQuestion   string  `json:"currentQuestion"`
	StartTime         int64   `json:"startTime,omitempty"` // ms since epoch
	EndTime           int64   `json:"endTime,omitempty"`   // ms since epoch
	QuestionsAnswered int     `json:"questionsAnswered"`
}

// New returns a session in its default not-started state.
func New() *Session {
	return &Session{
		Config: DefaultConfig(),
		Status: StatusNotStarted,
	}
}

// Active reports whether the session can still accept turns (possibly after
// a resume).
func (s *Session) Active() bool {
	return s.Status == StatusInProgress || s.Status == StatusPaused
}

// Start moves not_started -> in_progress, records the start time and clears
// any previous history. Zero config fields are defaulted before validation.
func (s *Session) Start(cfg Config) error {
	if s.Status != StatusNotStarted {
		return ErrInvalidTransition
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.Config = cfg
	s.Status = StatusInProgress
	s.StartTime = nowMillis()
	s.EndTime = 0
	s.History = nil
	s.CurrentQuestion = ""
	s.QuestionsAnswered = 0
	return nil
}

// Opened records the backend-assigned interview id and the opening question.
// The id is assigned exactly once.
func (s *Session) Opened(id, firstQuestion string) error {
	if s.Status != StatusInProgress || s.ID != "" {
		return ErrInvalidTransition
	}
	s.ID = id
	s.History = append(s.History, Entry{Speaker: SpeakerAI, Text: firstQuestion, Timestamp: nowMillis()})
	s.CurrentQuestion = firstQuestion
	return nil
}

// ApplyTurn appends one candidate entry and one AI entry for a completed
// answer round. If the gateway flagged the turn as terminal the session
// completes and the end time is recorded.
func (s *Session) ApplyTurn(answer, nextQuestion string, isComplete bool) error {
	if s.Status != StatusInProgress {
		return ErrNoActiveSession
	}
	now := nowMillis()
	s.History = append(s.History,
		Entry{Speaker: SpeakerCandidate, Text: answer, Timestamp: now},
		Entry{Speaker: SpeakerAI, Text: nextQuestion, Timestamp: now},
	)
	s.QuestionsAnswered++
	s.CurrentQuestion = nextQuestion
	if isComplete {
		s.Status = StatusCompleted
		s.EndTime = now
	}
	return nil
}

// Pause moves in_progress -> paused. History is untouched.
func (s *Session) Pause() error {
	if s.Status != StatusInProgress {
		return ErrInvalidTransition
	}
	s.Status = StatusPaused
	return nil
}

// Resume moves paused -> in_progress.
func (s *Session) Resume() error {
	if s.Status != StatusPaused {
		return ErrInvalidTransition
	}
	s.Status = StatusInProgress
	return nil
}

// End forces completion from in_progress or paused.
func (s *Session) End() error {
	if !s.Active() {
		return ErrInvalidTransition
	}
	s.Status = StatusCompleted
	s.EndTime = nowMillis()
	return nil
}

// Fail marks the session errored, e.g. after an unrecoverable transport
// failure. Only reset leaves this state.
func (s *Session) Fail() {
	s.Status = StatusError
}

// Reset discards the session back to the default not-started value. Legal
// from any state.
func (s *Session) Reset() {
	*s = *New()
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
