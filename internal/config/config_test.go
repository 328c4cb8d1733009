package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "STATUS_MODE", "SCRAPE_INTERVAL", "LOG_LEVEL", "LOG_FORMAT", "PROC_ROOT", "COLLECT_TIMEOUT", "COLLECT_CONCURRENCY", "JWT_SECRET", "ALLOWED_ORIGINS", "OUTPUT_FORMAT"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if cfg.Address != ":3000" || cfg.Mode != ModeServe || cfg.ProcRoot != "/proc" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Interval != 10*time.Second || cfg.CollectTimeout != 5*time.Second {
		t.Errorf("durations = %v, %v", cfg.Interval, cfg.CollectTimeout)
	}
	if cfg.OutputFormat != FormatJSON || cfg.AllowedOrigins != nil {
		t.Errorf("output = %q, origins = %v", cfg.OutputFormat, cfg.AllowedOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STATUS_MODE", "snapshot")
	t.Setenv("SCRAPE_INTERVAL", "30s")
	t.Setenv("COLLECT_TIMEOUT", "bogus")
	t.Setenv("COLLECT_CONCURRENCY", "3")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("OUTPUT_FORMAT", "yaml")

	cfg := Load()

	if cfg.Mode != ModeSnapshot || cfg.Interval != 30*time.Second {
		t.Errorf("mode = %q, interval = %v", cfg.Mode, cfg.Interval)
	}
	if cfg.CollectTimeout != 5*time.Second {
		t.Errorf("invalid timeout should fall back to default, got %v", cfg.CollectTimeout)
	}
	if cfg.CollectConcurrency != 3 || cfg.LogFormat != "json" || cfg.OutputFormat != FormatYAML {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("origins = %v", cfg.AllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Address:        ":3000",
		Mode:           "daemon",
		Interval:       time.Second,
		LogLevel:       "info",
		LogFormat:      "text",
		ProcRoot:       "/proc",
		CollectTimeout: time.Second,
		OutputFormat:   "xml",
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	for _, field := range []string{"Mode", "OutputFormat"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}
