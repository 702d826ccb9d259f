package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingAPIKey = errors.New("GEMINI_API_KEY environment variable not set")

// Config holds application configuration.
type Config struct {
	Port             string
	Env              string
	GeminiAPIKey     string
	LLMModel         string
	Language         string
	ExportsDBURL     string
	ChromePath       string
	AllowCrossOrigin bool
	CaptureTimeout   time.Duration
	SessionIdle      time.Duration
}

// Load reads configuration from environment variables with sensible
// defaults. The Gemini API key is required.
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	cfg := Config{
		Port:             getEnv("PORT", "3000"),
		Env:              normalizeEnv(getEnv("ENV", "dev")),
		GeminiAPIKey:     firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("API_KEY")),
		LLMModel:         getEnv("LLM_MODEL", "gemini-2.5-flash"),
		Language:         getEnv("AI_LANGUAGE", ""),
		ExportsDBURL:     os.Getenv("EXPORTS_DATABASE_URL"),
		ChromePath:       os.Getenv("CHROME_PATH"),
		AllowCrossOrigin: getBool("ALLOW_CROSS_ORIGIN", true),
		CaptureTimeout:   getDuration("CAPTURE_TIMEOUT", 60*time.Second),
		SessionIdle:      getDuration("SESSION_IDLE_TIMEOUT", 24*time.Hour),
	}
	if cfg.GeminiAPIKey == "" {
		return cfg, ErrMissingAPIKey
	}
	return cfg, nil
}

// loadEnvFiles loads KEY=VALUE files that exist; variables already set in
// the environment win.
func loadEnvFiles(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		_ = godotenv.Load(p)
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "dev"
	}
}
