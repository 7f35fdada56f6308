package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear anything the environment might carry
	for _, key := range []string{"PORT", "ENV", "CATALOG_PATH", "HISTORY_DAYS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "RATE_LIMIT_ENABLED", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8090" {
		t.Errorf("Port = %s, want 8090", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %s, want development", cfg.Env)
	}
	if cfg.History.Days != 30 {
		t.Errorf("History.Days = %d, want 30", cfg.History.Days)
	}
	if cfg.Catalog.Path != "" {
		t.Errorf("Catalog.Path = %s, want empty", cfg.Catalog.Path)
	}
	if !cfg.RateLimit.Enabled || cfg.RateLimit.RPS != 50 || cfg.RateLimit.Burst != 100 {
		t.Errorf("RateLimit = %+v, want enabled 50/100", cfg.RateLimit)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("ENV", "production")
	t.Setenv("HISTORY_DAYS", "60")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9001" {
		t.Errorf("Port = %s, want 9001", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %s, want production", cfg.Env)
	}
	if cfg.History.Days != 60 {
		t.Errorf("History.Days = %d, want 60", cfg.History.Days)
	}
	if cfg.RateLimit.Enabled {
		t.Error("RateLimit.Enabled = true, want false")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %s, want warn", cfg.LogLevel)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("HISTORY_DAYS", "not-a-number")
	t.Setenv("RATE_LIMIT_ENABLED", "maybe")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.History.Days != 30 {
		t.Errorf("History.Days = %d, want default 30", cfg.History.Days)
	}
	if !cfg.RateLimit.Enabled {
		t.Error("RateLimit.Enabled = false, want default true")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "bad env",
			mutate:  func(c *Config) { c.Env = "test" },
			wantErr: true,
		},
		{
			name:    "zero history days",
			mutate:  func(c *Config) { c.History.Days = 0 },
			wantErr: true,
		},
		{
			name:    "rate limit enabled without rps",
			mutate:  func(c *Config) { c.RateLimit = RateLimitConfig{Enabled: true, RPS: 0} },
			wantErr: true,
		},
		{
			name:    "rate limit disabled allows zero rps",
			mutate:  func(c *Config) { c.RateLimit = RateLimitConfig{Enabled: false, RPS: 0} },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Env:       "development",
				History:   HistoryConfig{Days: 30},
				RateLimit: RateLimitConfig{RPS: 50, Burst: 100, Enabled: true},
			}
			tt.mutate(cfg)

			err := cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
