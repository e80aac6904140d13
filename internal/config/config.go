package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort     string
	CORSOrigins []string

	CreatorBaseURL      string
	CreatorAccountsURL  string
	CreatorOwner        string
	CreatorApp          string
	CreatorClientID     string
	CreatorClientSecret string
	CreatorRefreshToken string
	CreatorPublicKey    string
	CreatorTimeout      time.Duration

	DatabaseURL    string
	RedisURL       string
	LookupCacheTTL time.Duration
	RabbitMQURL    string

	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string

	Timezone           string
	PhoneRegion        string
	ConversionRollback bool
	ReminderTick       time.Duration
	RateLimitPerMinute int
	LogLevel           string
}

// Load reads .env when present and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIPort:     getEnv("API_PORT", "8080"),
		CORSOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),

		CreatorBaseURL:      getEnv("CREATOR_BASE_URL", "https://creator.zoho.com"),
		CreatorAccountsURL:  getEnv("CREATOR_ACCOUNTS_URL", "https://accounts.zoho.com"),
		CreatorOwner:        getEnv("CREATOR_OWNER", ""),
		CreatorApp:          getEnv("CREATOR_APP", ""),
		CreatorClientID:     getEnv("CREATOR_CLIENT_ID", ""),
		CreatorClientSecret: getEnv("CREATOR_CLIENT_SECRET", ""),
		CreatorRefreshToken: getEnv("CREATOR_REFRESH_TOKEN", ""),
		CreatorPublicKey:    getEnv("CREATOR_PUBLIC_KEY", ""),
		CreatorTimeout:      time.Duration(getEnvInt("CREATOR_TIMEOUT_SECONDS", 15)) * time.Second,

		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		LookupCacheTTL: time.Duration(getEnvInt("LOOKUP_CACHE_TTL_MINUTES", 30)) * time.Minute,
		RabbitMQURL:    getEnv("RABBITMQ_URL", ""),

		MailHost: getEnv("MAIL_HOST", ""),
		MailPort: getEnvInt("MAIL_PORT", 587),
		MailUser: getEnv("MAIL_USER", ""),
		MailPass: getEnv("MAIL_PASS", ""),
		MailFrom: getEnv("MAIL_FROM", "no-reply@ligue.dev"),

		Timezone:           getEnv("TIMEZONE", ""),
		PhoneRegion:        getEnv("PHONE_REGION", "BR"),
		ConversionRollback: getEnvBool("CONVERSION_ROLLBACK", true),
		ReminderTick:       time.Duration(getEnvInt("REMINDER_TICK_SECONDS", 60)) * time.Second,
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
}

// Location resolves TIMEZONE, falling back to the machine's zone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// CreatorConfigured reports whether the platform credentials are present.
func (c *Config) CreatorConfigured() bool {
	return c.CreatorOwner != "" && c.CreatorApp != "" && c.CreatorRefreshToken != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
