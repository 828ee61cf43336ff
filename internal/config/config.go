package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of the record-copier tool.
type Config struct {
	LogLevel    string `yaml:"log_level"`
	OptionsFile string `yaml:"options_file"`
	Deep        bool   `yaml:"deep"`
}

// Load loads configuration from multiple sources with precedence:
// 1. Environment variables
// 2. ./.env (dotenv)
// 3. the YAML file at path, when path is not empty
func Load(path string) (*Config, error) {
	cfg := &Config{
		LogLevel: "info",
		Deep:     true,
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if level := os.Getenv("RECORD_COPIER_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if file := os.Getenv("RECORD_COPIER_OPTIONS"); file != "" {
		cfg.OptionsFile = file
	}
	if deep := os.Getenv("RECORD_COPIER_DEEP"); deep != "" {
		b, err := strconv.ParseBool(deep)
		if err != nil {
			return nil, fmt.Errorf("invalid RECORD_COPIER_DEEP %q: %w", deep, err)
		}
		cfg.Deep = b
	}

	return cfg, nil
}

// Level returns the slog level named by LogLevel, defaulting to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
