package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	BotToken    string
	APIBaseURL  string
	DatabaseURL string
	Location    *time.Location
	HTTPAddr    string
	LogLevel    string
	Env         string // dev|prod
	SentryDSN   string
	SessionTTL  time.Duration
}

func Load() (*Config, error) {
	tz := getenv("TZ", "America/Bogota")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.Local
	}

	ttl, err := time.ParseDuration(getenv("SESSION_TTL", "720h"))
	if err != nil {
		ttl = 720 * time.Hour
	}

	cfg := &Config{
		BotToken:    mustEnv("BOT_TOKEN"),
		APIBaseURL:  strings.TrimRight(mustEnv("API_BASE_URL"), "/"),
		DatabaseURL: mustEnv("DATABASE_URL"),
		Location:    loc,
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		Env:         getenv("ENV", "dev"),
		SentryDSN:   os.Getenv("SENTRY_DSN"),
		SessionTTL:  ttl,
	}
	return cfg, nil
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("required env " + k + " is empty")
	}
	return v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
