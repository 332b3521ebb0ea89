package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "OPENAI_API_KEY", "REDIS_URL", "DATABASE_URL", "TRANSLATE_TIMEOUT", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.TranslateTimeout != 8*time.Second {
		t.Fatalf("expected 8s translate timeout, got %v", cfg.TranslateTimeout)
	}
	if cfg.TranslationEnabled() || cfg.CacheEnabled() || cfg.TranscriptsEnabled() {
		t.Fatal("expected optional integrations to be disabled by default")
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("expected wildcard CORS default, got %v", cfg.CORSOrigins)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("TRANSLATE_TIMEOUT", "soon")
	t.Setenv("RATE_LIMIT_RPS", "-3")
	t.Setenv("RATE_LIMIT_BURST", "many")

	cfg := Load()

	if cfg.TranslateTimeout != 8*time.Second {
		t.Fatalf("expected fallback timeout, got %v", cfg.TranslateTimeout)
	}
	if cfg.RateLimitRPS != 5 || cfg.RateLimitBurst != 10 {
		t.Fatalf("expected fallback limiter 5/10, got %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("TRANSLATE_CACHE_TTL", "90m")

	cfg := Load()

	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORSOrigins)
	}
	if !cfg.TranslationEnabled() {
		t.Fatal("expected translation enabled when key is set")
	}
	if cfg.TranslateCacheTTL != 90*time.Minute {
		t.Fatalf("expected 90m ttl, got %v", cfg.TranslateCacheTTL)
	}
}
