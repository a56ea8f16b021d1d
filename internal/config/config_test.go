package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_PATH", "GIN_MODE", "ADMIN_KEY", "ALLOWED_ORIGINS",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "REMINDER_INTERVAL", "REMINDER_AFTER", "AUTO_CANCEL_AFTER"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "8080" || cfg.DatabasePath != "./data/battleships.db" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("expected wildcard origin, got %v", cfg.AllowedOrigins)
	}
	if cfg.RateLimitRPS != 5 || cfg.RateLimitBurst != 20 {
		t.Fatalf("unexpected rate limit defaults: %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.ReminderEvery != time.Hour || cfg.ReminderAfter != time.Hour || cfg.AutoCancelAfter != 72*time.Hour {
		t.Fatalf("unexpected sweep defaults: %+v", cfg)
	}
	if cfg.Release() {
		t.Fatalf("expected debug mode by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("REMINDER_AFTER", "30m")
	t.Setenv("AUTO_CANCEL_AFTER", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "9090" || !cfg.Release() {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.ReminderAfter != 30*time.Minute || cfg.AutoCancelAfter != 0 {
		t.Fatalf("unexpected durations: %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"rps":          {"RATE_LIMIT_RPS", "fast"},
		"burst":        {"RATE_LIMIT_BURST", "0"},
		"interval":     {"REMINDER_INTERVAL", "soon"},
		"negative":     {"REMINDER_AFTER", "-1h"},
		"cancelBefore": {"AUTO_CANCEL_AFTER", "1m"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", kv[0], kv[1])
			}
		})
	}
}
