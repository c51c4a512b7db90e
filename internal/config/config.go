package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr             string
	DatabaseURL          string
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	JWTSecret string

	// Reminder scanning
	ScanInterval  time.Duration
	ReminderGrace time.Duration
	ScanBatchSize int

	// External judgment service. Empty URL disables AI augmentation.
	JudgeURL     string
	JudgeTimeout time.Duration

	// Validation heuristics
	EarlyHour int

	// Social suggestions are only offered inside this local-hour window.
	SocialHourStart int
	SocialHourEnd   int

	// Optional JSON catalog override; empty means the built-in catalog.
	CatalogPath string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		DatabaseURL:          mustGetenv("DATABASE_URL"),
		CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "false") == "true",

		ScanInterval:  getenvDuration("SCAN_INTERVAL", 60*time.Second),
		ReminderGrace: getenvDuration("REMINDER_GRACE", 2*time.Minute),
		ScanBatchSize: getenvInt("SCAN_BATCH_SIZE", 50),

		JudgeURL:     getenv("JUDGE_URL", ""),
		JudgeTimeout: getenvDuration("JUDGE_TIMEOUT", 4*time.Second),

		EarlyHour:       getenvInt("EARLY_HOUR", 6),
		SocialHourStart: getenvInt("SOCIAL_HOUR_START", 9),
		SocialHourEnd:   getenvInt("SOCIAL_HOUR_END", 21),

		CatalogPath: getenv("CATALOG_PATH", ""),
	}

	origins := strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ",")
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	cfg.JWTSecret = mustGetenv("JWT_SECRET")
	return cfg, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func mustGetenv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		panic("missing env: " + key)
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
