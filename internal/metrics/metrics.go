package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	InterviewsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "interview_sessions_active",
		Help: "Interview sessions currently live in the registry",
	})

	InterviewsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interview_sessions_total",
		Help: "Total interview sessions started",
	})

	TurnsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interview_turns_total",
		Help: "Total answer rounds processed",
	})

	CompletionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interview_completions_total",
		Help: "Interviews ended by the completion heuristic",
	})

	GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "interview_generation_duration_seconds",
		Help:    "Question generation latency",
		Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 20.0, 30.0},
	})

	GenerationFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interview_generation_fallbacks_total",
		Help: "Generation calls that degraded to the fixed fallback question",
	})

	TranscriptionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "interview_transcription_duration_seconds",
		Help:    "Audio transcription latency",
		Buckets: []float64{0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 20.0, 30.0},
	})

	Errors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "interview_errors_total",
		Help: "Error counts by operation",
	}, []string{"operation", "error_type"})
)
