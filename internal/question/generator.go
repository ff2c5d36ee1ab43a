// Package question wraps the external generative-model services that produce
// interview questions and audio transcripts. Backends are interchangeable
// engines behind a router; generation failures degrade to a fixed fallback
// question rather than surfacing to the caller.
package question

import (
	"context"

	"github.com/voxhire/interview-poc/gateway/internal/interview"
)

// Generator produces the next interview question from the transcript so far.
// Implementations swallow model failures and return the fallback question;
// a non-nil error means the backend itself is unusable.
type Generator interface {
	NextQuestion(ctx context.Context, history []interview.Entry, latestAnswer string, cfg interview.Config) (string, error)
}

// Transcriber turns raw candidate audio into text. Unlike generation there is
// no sensible fallback text, so failures propagate.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}
