// Package config loads the bot configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full application configuration.
type Config struct {
	Database DatabaseConfig
	AI       AIConfig
	Bot      BotConfig
	Metrics  MetricsConfig
	Log      LogConfig
}

// LogConfig holds the logging settings.
type LogConfig struct {
	Level string
}

// DatabaseConfig holds the Postgres connection settings. URL, when set,
// overrides the individual fields.
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds the connection string for pgx.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// AIConfig holds the Gemini settings. APIKey may be empty; the gateway then
// rejects requests without ever touching the network.
type AIConfig struct {
	APIKey         string
	RequestTimeout time.Duration
	RatePerSecond  float64
	RateBurst      int
}

// BotConfig holds the dialogue defaults.
type BotConfig struct {
	DefaultLanguage string
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Addr string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Database: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "travelbot"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		AI: AIConfig{
			APIKey:         os.Getenv("GEMINI_API_KEY"),
			RequestTimeout: getEnvDuration("AI_REQUEST_TIMEOUT", 45*time.Second),
			RatePerSecond:  getEnvFloat("AI_RATE_PER_SECOND", 1),
			RateBurst:      getEnvInt("AI_RATE_BURST", 3),
		},
		Bot: BotConfig{
			DefaultLanguage: getEnv("BOT_DEFAULT_LANGUAGE", "en"),
		},
		Metrics: MetricsConfig{
			Addr: getEnv("METRICS_ADDR", ":9090"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if cfg.Database.URL == "" && cfg.Database.Password == "" {
		return nil, fmt.Errorf("DATABASE_URL or DB_PASSWORD is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
