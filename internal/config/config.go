package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DBDriver   string
	DBFile     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	MaxConnections int

	SessionSecret string
	GinMode       string
	HTTPAddr      string

	// Tracker settings
	PollInterval    time.Duration
	LookAheadWindow time.Duration
	QueryTimeout    time.Duration

	// Notification channel: "desktop" or "email"
	NotifyChannel string
	SMTPHost      string
	SMTPPort      string
	SMTPUser      string
	SMTPPassword  string

	// Seeded per user at registration. Priorities are "name:color" pairs.
	DefaultPriorities []string
	DefaultCategories []string
}

func Load() *Config {
	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBFile:     getEnv("DB_FILE", "taskdesk.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "taskuser"),
		DBPassword: getEnv("DB_PASSWORD", "taskpassword"),
		DBName:     getEnv("DB_NAME", "taskdesk"),

		MaxConnections: getEnvInt("MAX_CONNECTION", 5),

		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),

		PollInterval:    getEnvDuration("POLL_INTERVAL", 60*time.Second),
		LookAheadWindow: getEnvDuration("LOOKAHEAD_WINDOW", 24*time.Hour),
		QueryTimeout:    getEnvDuration("QUERY_TIMEOUT", 5*time.Second),

		NotifyChannel: getEnv("NOTIFY_CHANNEL", "desktop"),
		SMTPHost:      getEnv("SMTP_URL", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUser:      getEnv("SMTP_USER", ""),
		SMTPPassword:  getEnv("SMTP_PASS", ""),

		DefaultPriorities: getEnvList("DEFAULT_PRIORITIES", "High:#e53935,Medium:#fb8c00,Low:#43a047"),
		DefaultCategories: getEnvList("DEFAULT_CATEGORIES", "Work,Personal,Shopping"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
