// Package config loads runtime settings from a .env file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/abhisek/ailearn/internal/chat"
	"github.com/abhisek/ailearn/internal/llm"
	"github.com/abhisek/ailearn/internal/logging"
)

// DefaultAddr is the chat backend listen address when none is configured.
const DefaultAddr = ":5000"

// Config holds all runtime settings.
type Config struct {
	// DBPath is the database DSN. Empty means the default XDG location.
	DBPath string

	// ChatURL is the chat endpoint the study assistant posts to.
	ChatURL string

	// Addr is the listen address for the chat backend.
	Addr string

	LogLevel slog.Level

	// LLM is the provider configuration; LLMConfigured is false when no
	// provider key was found.
	LLM           llm.Config
	LLMConfigured bool
}

// Load reads .env files (missing files are ignored) and then builds the
// configuration from the environment. Variables already set in the
// environment are not overridden by .env.
func Load(envFiles ...string) (Config, error) {
	if err := LoadEnvFiles(envFiles...); err != nil {
		return Config{}, err
	}
	return FromEnv()
}

// LoadEnvFiles loads the given .env files, or ".env" when none are given.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (Config, error) {
	level, err := logging.ParseLevel(os.Getenv("AILEARN_LOG_LEVEL"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:   os.Getenv("AILEARN_DB"),
		ChatURL:  envOr("AILEARN_CHAT_URL", chat.DefaultURL),
		Addr:     resolveAddr(),
		LogLevel: level,
	}
	cfg.LLM, cfg.LLMConfigured = llm.ResolveConfig()
	return cfg, nil
}

func resolveAddr() string {
	if a := os.Getenv("AILEARN_ADDR"); a != "" {
		return a
	}
	if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
		return ":" + p
	}
	return DefaultAddr
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
