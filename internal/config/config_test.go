package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("log defaults = (%s, %s)", cfg.Log.Level, cfg.Log.Format)
	}
	if cfg.Generator.DefaultPeriod != "1month" || cfg.Watch.Period != "1month" {
		t.Errorf("period defaults = (%s, %s)", cfg.Generator.DefaultPeriod, cfg.Watch.Period)
	}
	if cfg.Server.Addr != ":8080" || cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("server defaults = (%s, %s)", cfg.Server.Addr, cfg.Server.ReadTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	path := writeConfig(t, `
log:
  level: debug
generator:
  seed: 11
  default_period: 3months
watch:
  symbols: [AAPL, MSFT]
  cron: "0 */5 * * * *"
server:
  read_timeout: 3s
`)
	t.Setenv("SANDBOX_SEED", "42")
	t.Setenv("WATCH_SYMBOLS", "tsla, meta ,")
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %s, want debug", cfg.Log.Level)
	}
	if cfg.Generator.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Generator.Seed)
	}
	if cfg.Generator.DefaultPeriod != "3months" {
		t.Errorf("DefaultPeriod = %s, want 3months", cfg.Generator.DefaultPeriod)
	}
	if len(cfg.Watch.Symbols) != 2 || cfg.Watch.Symbols[0] != "tsla" || cfg.Watch.Symbols[1] != "meta" {
		t.Errorf("Symbols = %v, want [tsla meta]", cfg.Watch.Symbols)
	}
	if cfg.Watch.Cron != "0 */5 * * * *" {
		t.Errorf("Cron = %q", cfg.Watch.Cron)
	}
	if cfg.Server.ReadTimeout != 3*time.Second {
		t.Errorf("ReadTimeout = %s, want 3s", cfg.Server.ReadTimeout)
	}
	if cfg.Telegram.ChatID != 0 {
		t.Errorf("ChatID = %d, want 0 for unparsable value", cfg.Telegram.ChatID)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SANDBOX_PERIOD=1year\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("SANDBOX_PERIOD", "")
	os.Unsetenv("SANDBOX_PERIOD")

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Generator.DefaultPeriod != "1year" {
		t.Errorf("DefaultPeriod = %s, want 1year from .env", cfg.Generator.DefaultPeriod)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	chdir(t, t.TempDir())
	if _, err := Load(writeConfig(t, "log: [unclosed")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad_MalformedNumericEnv(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"SANDBOX_SEED", "42x"},
		{"TELEGRAM_CHAT_ID", "not-a-chat"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(tt.key, tt.value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			if err == nil || !strings.Contains(err.Error(), tt.key) {
				t.Errorf("got %v, want error naming %s", err, tt.key)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad period", func(c *Config) { c.Generator.DefaultPeriod = "2weeks" }},
		{"bad watch period", func(c *Config) { c.Watch.Period = "decade" }},
		{"bad location", func(c *Config) { c.Generator.Location = "Mars/Olympus" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"blank symbol", func(c *Config) { c.Watch.Symbols = []string{"AAPL", " "} }},
		{"chat without token", func(c *Config) { c.Telegram.ChatID = 5 }},
	}
	for _, tt := range tests {
		cfg := &Config{}
		applyDefaults(cfg)
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
