package config

import (
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	if cfg.Thresholds.Medium != 5 || cfg.Thresholds.High != 7 || cfg.Thresholds.Critical != 9 {
		t.Errorf("unexpected default thresholds: %+v", cfg.Thresholds)
	}
	if cfg.Weights.Category != 0.5 || cfg.Weights.Pattern != 0.3 {
		t.Errorf("unexpected default weights: %+v", cfg.Weights)
	}
}

func TestValidateRejectsBadThresholds(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"inverted thresholds", func(c *Config) { c.Thresholds.High = 2 }},
		{"critical above 10", func(c *Config) { c.Thresholds.Critical = 11 }},
		{"negative weight", func(c *Config) { c.Weights.Pattern = -0.1 }},
		{"unknown store", func(c *Config) { c.EventStore = "etcd" }},
		{"redis without url", func(c *Config) { c.EventStore = StoreRedis; c.RedisURL = "" }},
		{"postgres without dsn", func(c *Config) { c.EventStore = StorePostgres; c.PostgresDSN = "" }},
		{"zero timeout", func(c *Config) { c.AnalyzerTimeout = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SENTINEL_THRESHOLD_HIGH", "6")
	t.Setenv("SENTINEL_ANALYZER_TIMEOUT_MS", "2500")
	t.Setenv("SENTINEL_EVENT_STORE", "redis")
	t.Setenv("SENTINEL_REDIS_URL", "redis://localhost:6379/0")

	cfg := NewDefaultConfig()
	if cfg.Thresholds.High != 6 {
		t.Errorf("expected high threshold 6, got %d", cfg.Thresholds.High)
	}
	if cfg.AnalyzerTimeout != 2500*time.Millisecond {
		t.Errorf("expected 2.5s analyzer timeout, got %v", cfg.AnalyzerTimeout)
	}
	if cfg.EventStore != StoreRedis {
		t.Errorf("expected redis store, got %s", cfg.EventStore)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("config should validate: %v", err)
	}
}

func TestHighSensitivityConfig(t *testing.T) {
	cfg := NewHighSensitivityConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("high sensitivity config should validate: %v", err)
	}
	if cfg.Thresholds.High >= NewDefaultConfig().Thresholds.High {
		t.Error("high sensitivity config should lower the high threshold")
	}
}
