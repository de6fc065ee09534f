package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	DataSource DataSourceConfig `yaml:"data_source"`
	Breaker    BreakerConfig    `yaml:"breaker"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
	Paper      PaperConfig      `yaml:"paper"`
	Database   DatabaseConfig   `yaml:"database"`
	Log        LogConfig        `yaml:"log"`
	Proxy      string           `yaml:"proxy" validate:"omitempty,url"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	CORS            bool          `yaml:"cors" default:"true"`
}

type DataSourceConfig struct {
	Provider          string        `yaml:"provider" default:"fmp" validate:"oneof=fmp yahoo mock"`
	BaseURL           string        `yaml:"base_url" validate:"omitempty,url"`
	APIKey            string        `yaml:"api_key"`
	Symbol            string        `yaml:"symbol" default:"AAPL" validate:"required"`
	HistoryDays       int           `yaml:"history_days" default:"30" validate:"gte=2,lte=1000"`
	RequestsPerSecond float64       `yaml:"requests_per_second" default:"2" validate:"gt=0"`
	Burst             int           `yaml:"burst" default:"4" validate:"gte=1"`
	Timeout           time.Duration `yaml:"timeout" default:"30s"`
}

type BreakerConfig struct {
	MaxFailures uint32        `yaml:"max_failures" default:"3" validate:"gte=1"`
	OpenTimeout time.Duration `yaml:"open_timeout" default:"60s"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id" validate:"required_with=BotToken"`
}

type ScheduleConfig struct {
	DigestCron string `yaml:"digest_cron" default:"0 30 22 * * 1-5"`
	RunOnStart bool   `yaml:"run_on_start"`
}

type PaperConfig struct {
	StateFile string `yaml:"state_file" default:"data/paper_state.json"`
}

type DatabaseConfig struct {
	SQLitePath string `yaml:"sqlite_path" default:"data/chartpulse.db"`
}

type LogConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" default:"console" validate:"oneof=json console"`
	Output string `yaml:"output" default:"stdout"`
}

var validate = validator.New()

// Load applies defaults, then the YAML file at path (if present), then environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FMP_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("CHARTPULSE_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("CHARTPULSE_SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("RUN_ON_START"); v != "" {
		cfg.Schedule.RunOnStart = v == "true"
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
}

// Validate checks field constraints and cross-field requirements.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.DataSource.Provider == "fmp" && c.DataSource.APIKey == "" {
		return fmt.Errorf("data_source.api_key is required for the fmp provider")
	}
	if c.Breaker.OpenTimeout <= 0 {
		return fmt.Errorf("breaker.open_timeout must be positive")
	}
	return nil
}

// TelegramEnabled reports whether the bot credentials are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
