package question

import (
	"context"
	"log/slog"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/voxhire/interview-poc/gateway/internal/interview"
	"github.com/voxhire/interview-poc/gateway/internal/metrics"
	"github.com/voxhire/interview-poc/gateway/internal/prompts"
)

// DefaultOpenAIModel is used when no model is configured for the engine.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIClient is the alternate generation engine, a single-shot chat
// completion. It applies the same degrade-to-fallback policy as Gemini.
type OpenAIClient struct {
	cli     openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAI creates an OpenAI-backed generator.
func NewOpenAI(apiKey, model string, timeout time.Duration) *OpenAIClient {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIClient{
		cli:     openai.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		timeout: timeout,
	}
}

// NextQuestion builds the interviewer prompt and requests a completion.
// Failures are logged and masked with the fixed fallback question.
func (c *OpenAIClient) NextQuestion(ctx context.Context, history []interview.Entry, latestAnswer string, cfg interview.Config) (string, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.cli.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompts.NextQuestion(history, latestAnswer, cfg)),
		},
	})
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil || len(resp.Choices) == 0 {
		slog.Error("question generation failed, using fallback", "engine", "openai", "error", err)
		metrics.GenerationFallbacks.Inc()
		metrics.Errors.WithLabelValues("generate", "model").Inc()
		return prompts.FallbackQuestion, nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
