// Package config loads process configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port string

	PricingFile   string
	KnowledgeFile string

	OpenAIAPIKey     string
	OpenAIModel      string
	OpenAIBaseURL    string
	TranslateTimeout time.Duration

	RedisURL          string
	TranslateCacheTTL time.Duration

	DatabaseURL string

	OperatorWebhookURL   string
	OperatorWebhookToken string

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int

	HandoffEmail string
}

// Load reads .env (if present) and the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:  getEnv("APP_ENV", "development"),
		Port: getEnv("PORT", "8080"),

		PricingFile:   getEnv("PRICING_FILE", "data/pricing_matrix.json"),
		KnowledgeFile: getEnv("KNOWLEDGE_FILE", "data/knowledge_base.json"),

		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", ""),
		TranslateTimeout: durationOr(getEnv("TRANSLATE_TIMEOUT", ""), 8*time.Second),

		RedisURL:          getEnv("REDIS_URL", ""),
		TranslateCacheTTL: durationOr(getEnv("TRANSLATE_CACHE_TTL", ""), 24*time.Hour),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		OperatorWebhookURL:   getEnv("OPERATOR_WEBHOOK_URL", ""),
		OperatorWebhookToken: getEnv("OPERATOR_WEBHOOK_TOKEN", ""),

		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "*")),
		RateLimitRPS:   floatOr(getEnv("RATE_LIMIT_RPS", ""), 5),
		RateLimitBurst: intOr(getEnv("RATE_LIMIT_BURST", ""), 10),

		HandoffEmail: getEnv("HANDOFF_EMAIL", "info@aztrosys.com"),
	}
}

func (c *Config) TranslationEnabled() bool { return c.OpenAIAPIKey != "" }
func (c *Config) CacheEnabled() bool       { return c.RedisURL != "" }
func (c *Config) TranscriptsEnabled() bool { return c.DatabaseURL != "" }
func (c *Config) OperatorEnabled() bool    { return c.OperatorWebhookURL != "" }

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}
	return fallback
}

func durationOr(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func floatOr(value string, fallback float64) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}

func intOr(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
