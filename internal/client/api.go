// Package client is the Go half of the turn protocol: a typed HTTP client
// with the retry policy the web client applies, plus a controller that owns
// the client-side session state machine.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"
)

const (
	defaultMaxAttempts = 3
	defaultRetryBase   = 1000 * time.Millisecond
)

// APIError is a non-2xx response from the gateway. 4xx-class errors are
// surfaced immediately and never retried.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Retryable reports whether the failure may succeed on a later attempt.
func (e *APIError) Retryable() bool {
	return e.StatusCode < 400 || e.StatusCode >= 500
}

// StartRequest configures a new interview. Every field is optional and
// defaulted server-side.
type StartRequest struct {
	Role       string `json:"role,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Duration   int    `json:"duration,omitempty"` // minutes
}

// StartResponse is the server's reply to a start request.
type StartResponse struct {
	InterviewID   string `json:"interviewId"`
	Message       string `json:"message"`
	FirstQuestion string `json:"firstQuestion"`
}

// AnswerRequest submits one candidate answer.
type AnswerRequest struct {
	InterviewID string `json:"interviewId"`
	Transcript  string `json:"transcript"`
}

// AnswerResponse carries the next turn.
type AnswerResponse struct {
	Transcript   string `json:"transcript"`
	NextQuestion string `json:"nextQuestion"`
	IsComplete   bool   `json:"isComplete"`
}

// TranscribeResponse is the reply to an audio upload.
type TranscribeResponse struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

// API talks to the interview gateway. Start and answer calls retry up to
// maxAttempts with exponential backoff (base * 2^(attempt-1)); validation
// failures surface immediately.
type API struct {
	baseURL     string
	http        *http.Client
	maxAttempts int
	retryBase   time.Duration
	sleep       func(time.Duration)
}

// Option customizes an API client.
type Option func(*API)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option { return func(a *API) { a.http = c } }

// WithMaxAttempts overrides the retry budget.
func WithMaxAttempts(n int) Option { return func(a *API) { a.maxAttempts = n } }

// WithRetryBase overrides the first backoff delay.
func WithRetryBase(d time.Duration) Option { return func(a *API) { a.retryBase = d } }

// WithSleep replaces the delay function, for tests.
func WithSleep(fn func(time.Duration)) Option { return func(a *API) { a.sleep = fn } }

// New creates an API client for the gateway at baseURL.
func New(baseURL string, opts ...Option) *API {
	a := &API{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		maxAttempts: defaultMaxAttempts,
		retryBase:   defaultRetryBase,
		sleep:       time.Sleep,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// StartInterview opens a new server-side session.
func (a *API) StartInterview(ctx context.Context, req StartRequest) (*StartResponse, error) {
	var resp StartResponse
	if err := a.postWithRetry(ctx, "/start-interview", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ProcessAnswer submits a transcript and returns the next question.
func (a *API) ProcessAnswer(ctx context.Context, req AnswerRequest) (*AnswerResponse, error) {
	var resp AnswerResponse
	if err := a.postWithRetry(ctx, "/process-answer", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TranscribeAudio uploads recorded audio for server-side transcription.
// Uploads are not retried; the recording is still held client-side and the
// user can resubmit.
func (a *API) TranscribeAudio(ctx context.Context, interviewID string, audioData []byte, filename, contentType string) (*TranscribeResponse, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("interviewId", interviewID); err != nil {
		return nil, fmt.Errorf("write field: %w", err)
	}
	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="audio"; filename=%q`, filename)}
	hdr["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return nil, fmt.Errorf("create part: %w", err)
	}
	if _, err = part.Write(audioData); err != nil {
		return nil, fmt.Errorf("write audio: %w", err)
	}
	if err = mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/transcribe-audio", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp TranscribeResponse
	if err = a.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health checks gateway liveness.
func (a *API) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: "gateway unhealthy"}
	}
	return nil
}

func (a *API) postWithRetry(ctx context.Context, path string, payload, out any) error {
	var lastErr error
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		err := a.postJSON(ctx, path, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if apiErr, ok := err.(*APIError); ok && !apiErr.Retryable() {
			return err
		}
		if ctx.Err() != nil {
			return lastErr
		}
		if attempt < a.maxAttempts {
			delay := a.retryBase * (1 << (attempt - 1))
			slog.Warn("request failed, retrying", "path", path, "attempt", attempt, "delay", delay, "error", err)
			a.sleep(delay)
		}
	}
	return lastErr
}

func (a *API) postJSON(ctx context.Context, path string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return a.do(req, out)
}

func (a *API) do(req *http.Request, out any) error {
	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("server error: %d", resp.StatusCode)
		var serverErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &serverErr) == nil && serverErr.Error != "" {
			msg = serverErr.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err = json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
