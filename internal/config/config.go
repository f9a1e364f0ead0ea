package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr      string
	DBPath    string
	LogLevel  string
	LogFormat string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SMTPHost  string
	SMTPPort  int
	EmailUser string
	EmailPass string
	ContactTo string

	CORSOrigin        string
	ContactRateLimit  int
	ContactRateWindow time.Duration

	ResultWorkerCount  int
	ResultQueueSize    int
	SessionIdleTimeout time.Duration

	BackgroundNodes int
	BackgroundFPS   int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	user := envOr("EMAIL_USER", "")
	return Config{
		Addr:      envOr("ADDR", ":5000"),
		DBPath:    envOr("DB_PATH", "file:funzone.db"),
		LogLevel:  envOr("LOG_LEVEL", "INFO"),
		LogFormat: envOr("LOG_FORMAT", "text"),

		RedisAddr:     envOr("REDIS_ADDR", ""),
		RedisPassword: envOr("REDIS_PASSWORD", ""),
		RedisDB:       envIntOr("REDIS_DB", 0),

		SMTPHost:  envOr("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:  envIntOr("SMTP_PORT", 587),
		EmailUser: user,
		EmailPass: envOr("EMAIL_PASS", ""),
		ContactTo: envOr("CONTACT_TO", user),

		CORSOrigin:        envOr("CORS_ORIGIN", "*"),
		ContactRateLimit:  envIntOr("CONTACT_RATE_LIMIT", 5),
		ContactRateWindow: envDurationOr("CONTACT_RATE_WINDOW", 10*time.Minute),

		ResultWorkerCount:  envIntOr("RESULT_WORKER_COUNT", 2),
		ResultQueueSize:    envIntOr("RESULT_QUEUE_SIZE", 64),
		SessionIdleTimeout: envDurationOr("SESSION_IDLE_TIMEOUT", 30*time.Minute),

		BackgroundNodes: envIntOr("BACKGROUND_NODES", 50),
		BackgroundFPS:   envIntOr("BACKGROUND_FPS", 30),
	}
}

// Validate reports the first setting that would keep the server from running.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json (got %q)", c.LogFormat)
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("REDIS_DB must be >= 0 (got %d)", c.RedisDB)
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("SMTP_PORT must be between 1 and 65535 (got %d)", c.SMTPPort)
	}
	if c.ContactRateLimit <= 0 {
		return fmt.Errorf("CONTACT_RATE_LIMIT must be > 0 (got %d)", c.ContactRateLimit)
	}
	if c.ContactRateWindow <= 0 {
		return fmt.Errorf("CONTACT_RATE_WINDOW must be > 0 (got %s)", c.ContactRateWindow)
	}
	if c.ResultWorkerCount <= 0 {
		return fmt.Errorf("RESULT_WORKER_COUNT must be > 0 (got %d)", c.ResultWorkerCount)
	}
	if c.ResultQueueSize <= 0 {
		return fmt.Errorf("RESULT_QUEUE_SIZE must be > 0 (got %d)", c.ResultQueueSize)
	}
	if c.SessionIdleTimeout <= 0 {
		return fmt.Errorf("SESSION_IDLE_TIMEOUT must be > 0 (got %s)", c.SessionIdleTimeout)
	}
	if c.BackgroundNodes < 0 || c.BackgroundNodes > 500 {
		return fmt.Errorf("BACKGROUND_NODES must be between 0 and 500 (got %d)", c.BackgroundNodes)
	}
	if c.BackgroundFPS <= 0 || c.BackgroundFPS > 120 {
		return fmt.Errorf("BACKGROUND_FPS must be between 1 and 120 (got %d)", c.BackgroundFPS)
	}
	return nil
}

// MailConfigured reports whether SMTP credentials are present.
func (c Config) MailConfigured() bool {
	return c.EmailUser != "" && c.EmailPass != ""
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
