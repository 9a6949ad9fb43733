package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines client and dev API configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
	UI      UIConfig      `yaml:"ui"`
	DevAPI  DevAPIConfig  `yaml:"devapi"`
}

type APIConfig struct {
	BaseURL string            `yaml:"base_url"`
	Timeout time.Duration     `yaml:"timeout"`
	Headers map[string]string `yaml:"headers"`
}

type SessionConfig struct {
	DBPath string `yaml:"db_path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Path enables a rotating log file; empty logs to stderr.
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type UIConfig struct {
	Debounce      time.Duration `yaml:"debounce"`
	RedirectDelay time.Duration `yaml:"redirect_delay"`
}

type DevAPIConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	DBPath string `yaml:"db_path"`
	Seed   bool   `yaml:"seed"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:5000/api",
			Timeout: 15 * time.Second,
		},
		Session: SessionConfig{
			DBPath: "projectadmin.db",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		UI: UIConfig{
			Debounce:      350 * time.Millisecond,
			RedirectDelay: 2 * time.Second,
		},
		DevAPI: DevAPIConfig{
			Host:   "127.0.0.1",
			Port:   5000,
			DBPath: "projectadmin-dev.db",
			Seed:   true,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("PROJECTADMIN_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if baseURL := os.Getenv("PROJECTADMIN_API_BASE_URL"); baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if timeoutStr := os.Getenv("PROJECTADMIN_API_TIMEOUT"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PROJECTADMIN_API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = timeout
	}
	if dbPath := os.Getenv("PROJECTADMIN_SESSION_DB"); dbPath != "" {
		cfg.Session.DBPath = dbPath
	}
	if level := os.Getenv("PROJECTADMIN_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("PROJECTADMIN_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if portStr := os.Getenv("PROJECTADMIN_DEVAPI_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PROJECTADMIN_DEVAPI_PORT: %w", err)
		}
		cfg.DevAPI.Port = port
	}
	if dbPath := os.Getenv("PROJECTADMIN_DEVAPI_DB"); dbPath != "" {
		cfg.DevAPI.DBPath = dbPath
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
