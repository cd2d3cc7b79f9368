package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

// Defaults used when neither the config file nor the environment sets a value
const (
	DefaultHTTPTimeout = 5 * time.Minute
	DefaultTempDir     = "/tmp"
	DefaultMaxFileSize = 50 * 1024 * 1024 // Telegram Bot API upload limit
)

// Config holds all configuration for the video bot
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Download DownloadConfig `yaml:"download"`
	Logging  LoggingConfig  `yaml:"logging"`
	Service  ServiceConfig  `yaml:"service"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken    string        `yaml:"bot_token" envconfig:"TELEGRAM_TOKEN"`
	OwnerID     int64         `yaml:"owner_id" envconfig:"OWNER_ID"`
	HTTPTimeout time.Duration `yaml:"http_timeout" envconfig:"TELEGRAM_HTTP_TIMEOUT"`
}

// DownloadConfig holds video download configuration
type DownloadConfig struct {
	TempDir     string `yaml:"temp_dir" envconfig:"DOWNLOAD_TEMP_DIR"`
	MaxFileSize int64  `yaml:"max_file_size" envconfig:"MAX_FILE_SIZE"`
	YtDlpPath   string `yaml:"ytdlp_path" envconfig:"YTDLP_PATH"`
	AutoInstall bool   `yaml:"auto_install" envconfig:"YTDLP_AUTO_INSTALL"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" envconfig:"LOG_LEVEL"`
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	Name string `yaml:"name" envconfig:"SERVICE_NAME"`
}

// Result provides config parts for fx dependency injection using fx.Out pattern
type Result struct {
	fx.Out

	Config   *Config
	Telegram *TelegramConfig
	Download *DownloadConfig
	Logging  *LoggingConfig
	Service  *ServiceConfig
}

// Out loads configuration and returns Result for fx injection
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:   cfg,
		Telegram: &cfg.Telegram,
		Download: &cfg.Download,
		Logging:  &cfg.Logging,
		Service:  &cfg.Service,
	}, nil
}

// Load loads configuration from .env, an optional YAML file named by
// CONFIG_PATH and environment variables, in that order of precedence
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := &Config{}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults fills values left unset by both the file and the environment
func (c *Config) applyDefaults() {
	if c.Telegram.HTTPTimeout <= 0 {
		c.Telegram.HTTPTimeout = DefaultHTTPTimeout
	}
	if c.Download.TempDir == "" {
		c.Download.TempDir = DefaultTempDir
	}
	if c.Download.MaxFileSize == 0 {
		c.Download.MaxFileSize = DefaultMaxFileSize
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Service.Name == "" {
		c.Service.Name = "video-bot"
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	if c.Telegram.OwnerID <= 0 {
		return fmt.Errorf("OWNER_ID is required and must be a positive integer")
	}

	if c.Download.TempDir == "" {
		return fmt.Errorf("DOWNLOAD_TEMP_DIR must not be empty")
	}

	if c.Download.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive")
	}

	return nil
}
