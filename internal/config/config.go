package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Configuration is the environment-driven runtime config. Persisted user preferences
// (current workspace, glyphs) live in store.GlobalConfig instead.
type Configuration struct {
	GeminiAPIKey  string        `env:"GEMINI_API_KEY"`
	LegacyAPIKey  string        `env:"API_KEY"`
	AIModel       string        `env:"FRAMEFLOW_AI_MODEL" envDefault:"gemini-2.5-flash"`
	AIBaseURL     string        `env:"FRAMEFLOW_AI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	AITimeout     time.Duration `env:"FRAMEFLOW_AI_TIMEOUT" envDefault:"120s"`
	LogLevel      string        `env:"FRAMEFLOW_LOG_LEVEL" envDefault:"info"`
	LogStderr     bool          `env:"FRAMEFLOW_LOG_STDERR" envDefault:"false"`
	LogMaxSizeMB  int           `env:"FRAMEFLOW_LOG_MAX_SIZE_MB" envDefault:"5"`
	LogMaxBackups int           `env:"FRAMEFLOW_LOG_MAX_BACKUPS" envDefault:"3"`
}

// Load reads .env files (when present) and then the process environment.
// Missing .env files are not an error.
func Load(files ...string) (*Configuration, error) {
	_ = godotenv.Load(files...)

	var cfg Configuration
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// APIKey prefers GEMINI_API_KEY and falls back to the older API_KEY name.
func (c *Configuration) APIKey() string {
	if c == nil {
		return ""
	}
	if k := strings.TrimSpace(c.GeminiAPIKey); k != "" {
		return k
	}
	return strings.TrimSpace(c.LegacyAPIKey)
}
