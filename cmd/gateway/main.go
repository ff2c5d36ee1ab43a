package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/voxhire/interview-poc/gateway/internal/question"
	"github.com/voxhire/interview-poc/gateway/internal/store"
	"github.com/voxhire/interview-poc/gateway/internal/ws"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg := loadConfig()
	ctx := context.Background()

	// Session registry
	var registry store.Store
	if cfg.DatabaseURL != "" {
		pg, err := store.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			slog.Error("open session registry", "error", err)
			os.Exit(1)
		}
		registry = pg
		slog.Info("session registry: postgres")
	} else {
		registry = store.NewMemory()
		slog.Info("session registry: in-memory (sessions lost on restart)")
	}

	// Generation engines
	gemini := question.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GenerationTimeout)
	backends := map[string]question.Generator{"gemini": gemini}
	if cfg.OpenAIAPIKey != "" {
		backends["openai"] = question.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.GenerationTimeout)
	}
	generator := question.NewGeneratorRouter(backends, cfg.Engine)

	hub := ws.NewHub()

	mux := http.NewServeMux()
	registerRoutes(mux, deps{
		registry:      registry,
		locks:         store.NewLocks(),
		generator:     generator,
		transcriber:   gemini,
		hub:           hub,
		maxAudioBytes: cfg.MaxAudioBytes,
		production:    cfg.production(),
	})

	addr := ":" + cfg.Port
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		if err := registry.Close(); err != nil {
			slog.Warn("close registry", "error", err)
		}
	}()

	slog.Info("gateway starting", "addr", addr, "engine", cfg.Engine, "engines", generator.Engines())

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("gateway stopped")
}
