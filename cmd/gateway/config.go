package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type config struct {
	Port string `env:"GATEWAY_PORT" envDefault:"5000"`
	Env  string `env:"APP_ENV" envDefault:"development"`

	// Generation engines. Without a Gemini key the gateway still serves,
	// degrading every generation call to the fixed fallback question.
	Engine            string        `env:"LLM_ENGINE" envDefault:"gemini"`
	GeminiAPIKey      string        `env:"GEMINI_API_KEY"`
	GeminiModel       string        `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	OpenAIAPIKey      string        `env:"OPENAI_API_KEY"`
	OpenAIModel       string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	GenerationTimeout time.Duration `env:"GENERATION_TIMEOUT" envDefault:"20s"`

	// Session registry. Empty DATABASE_URL selects the in-memory map.
	DatabaseURL string `env:"DATABASE_URL"`

	MaxAudioBytes int64 `env:"MAX_AUDIO_BYTES" envDefault:"10485760"`
}

func loadConfig() config {
	// Missing .env is fine; variables may come from the environment.
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		slog.Error("parse config", "error", err)
		os.Exit(1)
	}
	return cfg
}

func (c config) production() bool {
	return c.Env == "production"
}
