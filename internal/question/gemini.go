package question

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	genai "google.golang.org/genai"

	"github.com/voxhire/interview-poc/gateway/internal/interview"
	"github.com/voxhire/interview-poc/gateway/internal/metrics"
	"github.com/voxhire/interview-poc/gateway/internal/prompts"
)

// DefaultGeminiModel supports both text generation and audio input.
const DefaultGeminiModel = "gemini-2.0-flash"

var (
	errGeminiDisabled = errors.New("gemini client not configured")
	errEmptyResponse  = errors.New("empty model response")
)

// GeminiClient generates questions and transcribes audio with the Gemini API.
// With no API key the client still constructs; every generation call then
// takes the fallback path so the process keeps serving.
type GeminiClient struct {
	cli     *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini creates a Gemini-backed generator/transcriber.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) *GeminiClient {
	if model == "" {
		model = DefaultGeminiModel
	}
	c := &GeminiClient{model: model, timeout: timeout}
	if apiKey == "" {
		slog.Warn("GEMINI_API_KEY not set, question generation degraded to fallback")
		return c
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		slog.Error("gemini client init, degrading to fallback", "error", err)
		return c
	}
	c.cli = cli
	return c
}

// NextQuestion builds the interviewer prompt and asks the model for the next
// question. Failures are logged and masked with the fixed fallback question.
func (c *GeminiClient) NextQuestion(ctx context.Context, history []interview.Entry, latestAnswer string, cfg interview.Config) (string, error) {
	start := time.Now()
	prompt := prompts.NextQuestion(history, latestAnswer, cfg)

	text, err := c.generate(ctx, []*genai.Part{{Text: prompt}})
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		slog.Error("question generation failed, using fallback", "engine", "gemini", "error", err)
		metrics.GenerationFallbacks.Inc()
		metrics.Errors.WithLabelValues("generate", "model").Inc()
		return prompts.FallbackQuestion, nil
	}
	return strings.TrimSpace(text), nil
}

// Transcribe sends raw audio plus the fixed transcription instruction to the
// model and returns the spoken text.
func (c *GeminiClient) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	start := time.Now()
	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: mimeType, Data: audio}},
		{Text: prompts.TranscribeInstruction},
	}

	text, err := c.generate(ctx, parts)
	metrics.TranscriptionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.Errors.WithLabelValues("transcribe", "model").Inc()
		return "", fmt.Errorf("transcribe audio: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (c *GeminiClient) generate(ctx context.Context, parts []*genai.Part) (string, error) {
	if c.cli == nil {
		return "", errGeminiDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.cli.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Parts: parts}}, nil)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errEmptyResponse
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
