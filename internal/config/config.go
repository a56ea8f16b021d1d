package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the server settings read from the environment
type Config struct {
	Port            string
	DatabasePath    string
	GinMode         string
	AdminKey        string
	AllowedOrigins  []string
	RateLimitRPS    float64
	RateLimitBurst  int
	ReminderEvery   time.Duration
	ReminderAfter   time.Duration
	AutoCancelAfter time.Duration
}

// Load reads the environment. Call godotenv.Load first to pick up a .env file.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "./data/battleships.db"),
		GinMode:      os.Getenv("GIN_MODE"),
		AdminKey:     os.Getenv("ADMIN_KEY"),
	}

	for _, origin := range strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	var err error
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "5"), 64); err != nil || cfg.RateLimitRPS <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must be a positive number")
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20")); err != nil || cfg.RateLimitBurst < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_BURST must be a positive integer")
	}
	if cfg.ReminderEvery, err = getDuration("REMINDER_INTERVAL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.ReminderAfter, err = getDuration("REMINDER_AFTER", time.Hour); err != nil {
		return nil, err
	}
	if cfg.AutoCancelAfter, err = getDuration("AUTO_CANCEL_AFTER", 72*time.Hour); err != nil {
		return nil, err
	}

	if cfg.ReminderEvery <= 0 {
		return nil, fmt.Errorf("REMINDER_INTERVAL must be positive")
	}
	if cfg.AutoCancelAfter > 0 && cfg.AutoCancelAfter < cfg.ReminderAfter {
		return nil, fmt.Errorf("AUTO_CANCEL_AFTER (%s) must not be shorter than REMINDER_AFTER (%s)", cfg.AutoCancelAfter, cfg.ReminderAfter)
	}

	return cfg, nil
}

// Release reports whether the server runs in gin release mode
func (c *Config) Release() bool {
	return c.GinMode == "release"
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	if raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%s must be a duration like 30m or 72h", key)
	}
	return d, nil
}
