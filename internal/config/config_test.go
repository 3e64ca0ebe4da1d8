package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CALCOM_API_KEY", "")
	t.Setenv("SLOT_CACHE_TTL", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.CalcomAPIURL != "https://api.cal.com/v2" {
		t.Fatalf("expected default cal.com url, got %s", cfg.CalcomAPIURL)
	}
	if cfg.EmailProvider != "resend" {
		t.Fatalf("expected default email provider resend, got %s", cfg.EmailProvider)
	}
	if cfg.SlotCacheTTL != 60*time.Second {
		t.Fatalf("expected default slot cache TTL, got %s", cfg.SlotCacheTTL)
	}
	if cfg.RateLimitBurst != 5 {
		t.Fatalf("expected default rate limit burst, got %d", cfg.RateLimitBurst)
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Fatalf("expected no CORS origins by default, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("CALCOM_API_KEY", "cal_live_xxx")
	t.Setenv("CALCOM_EVENT_TYPE_ID", "123456")
	t.Setenv("EMAIL_PROVIDER", "SES")
	t.Setenv("SLOT_CACHE_TTL", "2m")
	t.Setenv("RATE_LIMIT_PER_SECOND", "0.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://example.com, https://www.example.com,")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.CalcomAPIKey != "cal_live_xxx" {
		t.Fatalf("expected cal.com key override, got %s", cfg.CalcomAPIKey)
	}
	if cfg.EmailProvider != "ses" {
		t.Fatalf("expected provider lowered to ses, got %s", cfg.EmailProvider)
	}
	if cfg.SlotCacheTTL != 2*time.Minute {
		t.Fatalf("expected TTL override, got %s", cfg.SlotCacheTTL)
	}
	if cfg.RateLimitPerSecond != 0.5 {
		t.Fatalf("expected rate override, got %f", cfg.RateLimitPerSecond)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected 2 CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
}
