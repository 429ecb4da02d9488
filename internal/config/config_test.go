package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("SESSION_BACKEND", "")
	t.Setenv("EMAIL_PROVIDER", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.OpenAIModel != "gpt-4o" {
		t.Fatalf("expected default chat model, got %s", cfg.OpenAIModel)
	}
	if cfg.OpenAIEmailModel != "gpt-4o-mini" {
		t.Fatalf("expected default email model, got %s", cfg.OpenAIEmailModel)
	}
	if cfg.SessionBackend != "memory" {
		t.Fatalf("expected memory session backend, got %s", cfg.SessionBackend)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("expected default session TTL, got %s", cfg.SessionTTL)
	}
	if cfg.EmailProvider != "smtp" {
		t.Fatalf("expected smtp email provider, got %s", cfg.EmailProvider)
	}
	if cfg.EmailMaxRetries != 3 {
		t.Fatalf("expected 3 email retries, got %d", cfg.EmailMaxRetries)
	}
	if cfg.EmailRetryDelay != 5*time.Second {
		t.Fatalf("expected 5s retry delay, got %s", cfg.EmailRetryDelay)
	}
	if cfg.SMTPPort != 465 {
		t.Fatalf("expected default smtp port, got %d", cfg.SMTPPort)
	}
	if cfg.SheetName != "Sheet1" {
		t.Fatalf("expected default sheet name, got %s", cfg.SheetName)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SESSION_BACKEND", "Redis")
	t.Setenv("SESSION_TTL", "45m")
	t.Setenv("EMAIL_PROVIDER", "SendGrid")
	t.Setenv("EMAIL_MAX_RETRIES", "5")
	t.Setenv("EMAIL_RETRY_DELAY", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.OpenAIAPIKey != "sk-test" {
		t.Fatalf("expected api key override, got %s", cfg.OpenAIAPIKey)
	}
	if cfg.SessionBackend != "redis" {
		t.Fatalf("expected lowercased session backend, got %s", cfg.SessionBackend)
	}
	if cfg.SessionTTL != 45*time.Minute {
		t.Fatalf("expected TTL override, got %s", cfg.SessionTTL)
	}
	if cfg.EmailProvider != "sendgrid" {
		t.Fatalf("expected lowercased email provider, got %s", cfg.EmailProvider)
	}
	if cfg.EmailMaxRetries != 5 {
		t.Fatalf("expected retry override, got %d", cfg.EmailMaxRetries)
	}
	if cfg.EmailRetryDelay != 2*time.Second {
		t.Fatalf("expected delay override, got %s", cfg.EmailRetryDelay)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("expected parsed origins, got %v", cfg.CORSAllowedOrigins)
	}
}
