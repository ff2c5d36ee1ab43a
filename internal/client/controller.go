package client

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/voxhire/interview-poc/gateway/internal/interview"
)

// ErrStaleResponse marks an answer response that arrived after the session
// it belonged to was reset or ended; the result is discarded.
var ErrStaleResponse = errors.New("stale response discarded")

// ErrEmptyTranscript rejects an answer submission with nothing in it before
// any network call is made.
var ErrEmptyTranscript = errors.New("transcript is empty")

// Controller owns the client-side session state machine. It is the only
// writer of the session; the API layer returns delta instructions that the
// controller applies, and every mutation is followed by a snapshot save.
type Controller struct {
	api   *API
	snaps *interview.SnapshotStore

	mu      sync.Mutex
	session *interview.Session
}

// NewController restores the persisted session (if it was in progress or
// paused) and wires the turn-protocol client.
func NewController(api *API, snaps *interview.SnapshotStore) *Controller {
	return &Controller{
		api:     api,
		snaps:   snaps,
		session: snaps.Load(),
	}
}

// Session returns a copy of the current session state.
func (c *Controller) Session() interview.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *c.session
	cp.History = append([]interview.Entry(nil), c.session.History...)
	return cp
}

// Begin starts a new interview: flips the local machine to in-progress,
// opens the server-side session and records the assigned id and greeting.
func (c *Controller) Begin(ctx context.Context, cfg interview.Config) (string, error) {
	c.mu.Lock()
	if err := c.session.Start(cfg); err != nil {
		c.mu.Unlock()
		return "", err
	}
	c.save()
	cfg = c.session.Config // defaults applied
	c.mu.Unlock()

	resp, err := c.api.StartInterview(ctx, StartRequest{
		Role:       string(cfg.Role),
		Difficulty: string(cfg.Difficulty),
		Duration:   cfg.Duration,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.session.Fail()
		c.save()
		return "", err
	}
	if err = c.session.Opened(resp.InterviewID, resp.FirstQuestion); err != nil {
		// Session was reset while the start request was in flight.
		return "", ErrStaleResponse
	}
	c.save()
	return resp.FirstQuestion, nil
}

// SubmitAnswer posts the transcript and applies the resulting turn. The lock
// is released during the network call; ending or resetting the session
// meanwhile does not abort the request, but its late response is discarded
// when the interview id no longer matches.
func (c *Controller) SubmitAnswer(ctx context.Context, transcript string) (*AnswerResponse, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, ErrEmptyTranscript
	}

	c.mu.Lock()
	if c.session.Status != interview.StatusInProgress || c.session.ID == "" {
		c.mu.Unlock()
		return nil, interview.ErrNoActiveSession
	}
	id := c.session.ID
	c.mu.Unlock()

	resp, err := c.api.ProcessAnswer(ctx, AnswerRequest{InterviewID: id, Transcript: transcript})
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.ID != id || c.session.Status != interview.StatusInProgress {
		slog.Info("discarding stale answer response", "interview_id", id)
		return nil, ErrStaleResponse
	}
	if err = c.session.ApplyTurn(transcript, resp.NextQuestion, resp.IsComplete); err != nil {
		return nil, err
	}
	c.save()
	return resp, nil
}

// Pause suspends the interview without touching history.
func (c *Controller) Pause() error { return c.transition((*interview.Session).Pause) }

// Resume continues a paused interview.
func (c *Controller) Resume() error { return c.transition((*interview.Session).Resume) }

// End forces completion.
func (c *Controller) End() error { return c.transition((*interview.Session).End) }

func (c *Controller) transition(fn func(*interview.Session) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := fn(c.session); err != nil {
		return err
	}
	c.save()
	return nil
}

// Reset discards the session and clears the persisted slot. Any in-flight
// answer response becomes stale.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.Reset()
	if err := c.snaps.Clear(); err != nil {
		slog.Warn("clear session snapshot", "error", err)
	}
}

// save persists the session; callers hold the lock.
func (c *Controller) save() {
	if err := c.snaps.Save(c.session); err != nil {
		slog.Warn("save session snapshot", "error", err)
	}
}
