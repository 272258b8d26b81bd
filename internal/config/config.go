package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"StockSandbox/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // console or json
	} `yaml:"log"`
	Generator struct {
		Seed          int64  `yaml:"seed"`
		Location      string `yaml:"location"`
		DefaultPeriod string `yaml:"default_period"`
	} `yaml:"generator"`
	Server struct {
		Addr         string        `yaml:"addr"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"server"`
	Watch struct {
		Symbols []string `yaml:"symbols"`
		Period  string   `yaml:"period"`
		Cron    string   `yaml:"cron"`
	} `yaml:"watch"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env never overrides variables already present in the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("SANDBOX_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("SANDBOX_SEED: %w", err)
		}
		cfg.Generator.Seed = seed
	}
	if v := os.Getenv("SANDBOX_LOCATION"); v != "" {
		cfg.Generator.Location = v
	}
	if v := os.Getenv("SANDBOX_PERIOD"); v != "" {
		cfg.Generator.DefaultPeriod = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("WATCH_SYMBOLS"); v != "" {
		cfg.Watch.Symbols = splitSymbols(v)
	}
	if v := os.Getenv("WATCH_CRON"); v != "" {
		cfg.Watch.Cron = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.Telegram.ChatID = id
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Generator.Location == "" {
		cfg.Generator.Location = "UTC"
	}
	if cfg.Generator.DefaultPeriod == "" {
		cfg.Generator.DefaultPeriod = string(model.WindowMonth)
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10 * time.Second
	}
	if cfg.Watch.Period == "" {
		cfg.Watch.Period = string(model.WindowMonth)
	}
	if cfg.Watch.Cron == "" {
		cfg.Watch.Cron = "0 0 18 * * 1-5"
	}
}

// Validate checks that all configured values are usable.
func (c *Config) Validate() error {
	if _, err := model.ParseWindow(c.Generator.DefaultPeriod); err != nil {
		return fmt.Errorf("generator.default_period: %w", err)
	}
	if _, err := model.ParseWindow(c.Watch.Period); err != nil {
		return fmt.Errorf("watch.period: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("generator.location: %w", err)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	for _, s := range c.Watch.Symbols {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("watch.symbols contains a blank symbol")
		}
	}
	if c.Telegram.ChatID != 0 && c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required when telegram.chat_id is set")
	}
	return nil
}

// Location resolves the generator time zone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Generator.Location)
}

func splitSymbols(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
