// Package config loads tasklist settings from, in increasing priority:
// built-in defaults, a TOML file, TASKLIST_* environment variables and
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

// Defaults.
const (
	DefaultFile     = "tasklist.json"
	DefaultStorage  = "json"
	DefaultDatabase = "tasklist.db"
	DefaultColor    = "auto"
	DefaultLogLevel = "warn"
	DefaultAddr     = ":8080"

	projectConfigFile = "tasklist.toml"
	appName           = "tasklist"
)

// Config holds the resolved settings.
type Config struct {
	File     string `toml:"file"`
	Storage  string `toml:"storage"`
	Database string `toml:"database"`
	Color    string `toml:"color"`
	LogLevel string `toml:"log_level"`
	Addr     string `toml:"addr"`

	// ConfigFile is the TOML file that was read, if any.
	ConfigFile string `toml:"-"`
}

// StoragePath returns the path used by the selected storage backend.
func (c *Config) StoragePath() string {
	if c.Storage == "sqlite" {
		return c.Database
	}
	return c.File
}

// Validate rejects settings no component can act on.
func (c *Config) Validate() error {
	switch c.Storage {
	case "json", "sqlite":
	default:
		return fmt.Errorf("storage must be 'json' or 'sqlite', got %q", c.Storage)
	}

	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be 'auto', 'always' or 'never', got %q", c.Color)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}

	if c.StoragePath() == "" {
		return errors.New("storage path is empty")
	}

	return nil
}

func defaults() *Config {
	return &Config{
		File:     DefaultFile,
		Storage:  DefaultStorage,
		Database: DefaultDatabase,
		Color:    DefaultColor,
		LogLevel: DefaultLogLevel,
		Addr:     DefaultAddr,
	}
}

// Load resolves the configuration. fs must not have been parsed yet; Load
// registers its flags on it and parses args. Positional arguments are left
// in fs.Args().
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	cfg := defaults()

	configPath := fs.String("config", "", "path to a TOML config file")
	file := fs.String("file", "", "JSON task file (storage=json)")
	storage := fs.String("storage", "", "storage backend: json or sqlite")
	database := fs.String("db", "", "SQLite database file (storage=sqlite)")
	color := fs.String("color", "", "color output: auto, always or never")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn or error")
	addr := fs.String("addr", "", "listen address for serve")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	path := *configPath
	if path == "" {
		path = os.Getenv("TASKLIST_CONFIG")
	}
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
	}

	loadFromEnv(cfg)

	setIfChanged(fs, "file", &cfg.File, *file)
	setIfChanged(fs, "storage", &cfg.Storage, *storage)
	setIfChanged(fs, "db", &cfg.Database, *database)
	setIfChanged(fs, "color", &cfg.Color, *color)
	setIfChanged(fs, "log-level", &cfg.LogLevel, *logLevel)
	setIfChanged(fs, "addr", &cfg.Addr, *addr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setIfChanged(fs *pflag.FlagSet, name string, dst *string, value string) {
	if fs.Changed(name) {
		*dst = value
	}
}

func loadFromEnv(cfg *Config) {
	cfg.File = getEnv("TASKLIST_FILE", cfg.File)
	cfg.Storage = getEnv("TASKLIST_STORAGE", cfg.Storage)
	cfg.Database = getEnv("TASKLIST_DB", cfg.Database)
	cfg.Color = getEnv("TASKLIST_COLOR", cfg.Color)
	cfg.LogLevel = getEnv("TASKLIST_LOG_LEVEL", cfg.LogLevel)
	cfg.Addr = getEnv("TASKLIST_ADDR", cfg.Addr)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// findConfigFile returns ./tasklist.toml or the per-user config file,
// whichever exists first.
func findConfigFile() string {
	if fileExists(projectConfigFile) {
		return projectConfigFile
	}
	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, appName, "config.toml")
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
