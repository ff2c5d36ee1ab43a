package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voxhire/interview-poc/gateway/internal/audio"
	"github.com/voxhire/interview-poc/gateway/internal/interview"
	"github.com/voxhire/interview-poc/gateway/internal/metrics"
	"github.com/voxhire/interview-poc/gateway/internal/prompts"
	"github.com/voxhire/interview-poc/gateway/internal/question"
	"github.com/voxhire/interview-poc/gateway/internal/store"
	"github.com/voxhire/interview-poc/gateway/internal/ws"
)

type deps struct {
	registry      store.Store
	locks         *store.Locks
	generator     question.Generator
	transcriber   question.Transcriber
	hub           *ws.Hub
	maxAudioBytes int64
	production    bool
}

// registerRoutes wires all HTTP endpoints to the shared mux.
func registerRoutes(mux *http.ServeMux, d deps) {
	mux.HandleFunc("GET /{$}", handleRoot)
	mux.HandleFunc("/health", handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/ws/events", d.hub)
	mux.HandleFunc("/start-interview", d.handleStart)
	mux.HandleFunc("/process-answer", d.handleAnswer)
	mux.HandleFunc("/transcribe-audio", d.handleTranscribe)
	mux.HandleFunc("GET /sessions/{id}", d.handleSession)
	mux.HandleFunc("DELETE /sessions/{id}", d.handleSessionDelete)
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("AI Interviewer Gateway is running"))
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type startRequest struct {
	Role       string `json:"role"`
	Difficulty string `json:"difficulty"`
	Duration   int    `json:"duration"`
}

func (d deps) handleStart(w http.ResponseWriter, r *http.Request) {
	if done := preflight(w, r); done {
		return
	}

	var req startRequest
	if r.Body != nil {
		body, _ := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if len(body) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
		}
	}

	cfg := interview.Config{
		Role:       interview.Role(req.Role),
		Difficulty: interview.Difficulty(req.Difficulty),
		Duration:   req.Duration,
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	interviewID := uuid.NewString()
	if err := d.registry.Create(r.Context(), interviewID, cfg); err != nil {
		slog.Error("create session", "interview_id", interviewID, "error", err)
		d.internalError(w, "Failed to start interview", err)
		return
	}

	firstQuestion := prompts.Greeting(cfg.Role)
	metrics.InterviewsTotal.Inc()
	metrics.InterviewsActive.Inc()
	d.hub.Broadcast(ws.Event{
		Type:        "interview_started",
		InterviewID: interviewID,
		Question:    firstQuestion,
		Timestamp:   time.Now().UnixMilli(),
	})
	slog.Info("interview started", "interview_id", interviewID, "role", cfg.Role, "difficulty", cfg.Difficulty)

	writeJSON(w, http.StatusOK, map[string]any{
		"interviewId":   interviewID,
		"message":       prompts.StartedMessage,
		"firstQuestion": firstQuestion,
	})
}

type answerRequest struct {
	InterviewID string `json:"interviewId"`
	Transcript  string `json:"transcript"`
}

func (d deps) handleAnswer(w http.ResponseWriter, r *http.Request) {
	if done := preflight(w, r); done {
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.InterviewID == "" {
		writeError(w, http.StatusBadRequest, "Interview ID required")
		return
	}
	if req.Transcript == "" {
		writeError(w, http.StatusBadRequest, "Transcript required")
		return
	}

	// One answer in flight per interview; concurrent requests for other
	// interviews proceed independently.
	release := d.locks.Acquire(req.InterviewID)
	defer release()

	sess, err := d.registry.Get(r.Context(), req.InterviewID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("load session", "interview_id", req.InterviewID, "error", err)
		d.internalError(w, "Processing failed", err)
		return
	}

	slog.Info("processing answer", "interview_id", req.InterviewID, "transcript_length", len(req.Transcript))

	now := time.Now().UnixMilli()
	candidate := interview.Entry{Speaker: interview.SpeakerCandidate, Text: req.Transcript, Timestamp: now}
	history := append(sess.History, candidate)

	nextQuestion, err := d.generator.NextQuestion(r.Context(), history, req.Transcript, sess.Config)
	if err != nil {
		slog.Error("generate next question", "interview_id", req.InterviewID, "error", err)
		metrics.Errors.WithLabelValues("answer", "generation").Inc()
		d.internalError(w, "Processing failed", err)
		return
	}

	ai := interview.Entry{Speaker: interview.SpeakerAI, Text: nextQuestion, Timestamp: time.Now().UnixMilli()}
	if err = d.registry.AppendTurns(r.Context(), req.InterviewID, candidate, ai); err != nil {
		slog.Error("append turns", "interview_id", req.InterviewID, "error", err)
		d.internalError(w, "Processing failed", err)
		return
	}

	isComplete := prompts.IsConcluding(nextQuestion)
	metrics.TurnsTotal.Inc()
	eventType := "turn"
	if isComplete {
		metrics.CompletionsTotal.Inc()
		eventType = "interview_completed"
	}
	d.hub.Broadcast(ws.Event{
		Type:        eventType,
		InterviewID: req.InterviewID,
		Question:    nextQuestion,
		Transcript:  req.Transcript,
		Timestamp:   ai.Timestamp,
	})
	slog.Info("next question generated", "interview_id", req.InterviewID, "is_complete", isComplete)

	writeJSON(w, http.StatusOK, map[string]any{
		"transcript":   req.Transcript,
		"nextQuestion": nextQuestion,
		"isComplete":   isComplete,
	})
}

func (d deps) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if done := preflight(w, r); done {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, d.maxAudioBytes)
	if err := r.ParseMultipartForm(d.maxAudioBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form or audio too large")
		return
	}

	interviewID := r.FormValue("interviewId")
	if interviewID == "" {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	if _, err := d.registry.Get(r.Context(), interviewID); err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No audio file provided")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !audio.Allowed(contentType) {
		writeError(w, http.StatusBadRequest, "Invalid file type. Only audio files are allowed.")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read audio file")
		return
	}
	if audio.IsWAV(contentType) {
		if err = audio.ValidateWAV(data); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid file type. Only audio files are allowed.")
			return
		}
	}

	slog.Info("transcribing audio", "interview_id", interviewID, "bytes", len(data), "content_type", contentType)

	transcript, err := d.transcriber.Transcribe(r.Context(), data, contentType)
	if err != nil {
		slog.Error("transcription failed", "interview_id", interviewID, "error", err)
		d.internalError(w, "Transcription failed", err)
		return
	}

	slog.Info("transcription complete", "interview_id", interviewID, "transcript_length", len(transcript))

	writeJSON(w, http.StatusOK, map[string]any{
		"transcript": transcript,
		"confidence": 1.0,
	})
}

func (d deps) handleSession(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	sess, err := d.registry.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		d.internalError(w, "Failed to load session", err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (d deps) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	id := r.PathValue("id")
	if _, err := d.registry.Get(r.Context(), id); errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	if err := d.registry.Delete(r.Context(), id); err != nil {
		d.internalError(w, "Failed to delete session", err)
		return
	}
	metrics.InterviewsActive.Dec()
	slog.Info("session deleted", "interview_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// preflight applies the CORS policy (all origins, GET/POST/OPTIONS,
// Content-Type) and handles the OPTIONS preflight and wrong-method cases.
// It reports whether the request is fully handled.
func preflight(w http.ResponseWriter, r *http.Request) bool {
	setCORS(w)
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return true
	case http.MethodPost:
		return false
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return true
	}
}

func setCORS(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

// internalError hides failure detail from production responses; logs carry
// the full error either way.
func (d deps) internalError(w http.ResponseWriter, msg string, err error) {
	if !d.production && err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": msg, "detail": err.Error()})
		return
	}
	writeError(w, http.StatusInternalServerError, msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
