package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database DatabaseConfig `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Store    StoreConfig    `yaml:"store" json:"store" jsonschema:"description=Settings store configuration"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:overlay.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=4,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=2,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// StoreConfig holds settings store options
type StoreConfig struct {
	HistorySize  int           `yaml:"history_size" json:"history_size" jsonschema:"default=10,minimum=1,maximum=100,description=Number of undo snapshots to keep"`
	LoadOnStart  *bool         `yaml:"load_on_start" json:"load_on_start" jsonschema:"default=true,description=Load saved configuration on startup"`
	AutoSave     time.Duration `yaml:"autosave" json:"autosave" jsonschema:"default=0s,description=Interval to persist changed settings automatically (0 disables)"`
	ExportIndent string        `yaml:"export_indent" json:"export_indent" jsonschema:"default=  ,description=Indentation of exported configuration files"`
}

// ShouldLoadOnStart reports whether saved settings are loaded at startup, default true
func (s StoreConfig) ShouldLoadOnStart() bool {
	return s.LoadOnStart == nil || *s.LoadOnStart
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// Default returns configuration with all defaults applied, used when no config file is given
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

func (c *Config) setDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	if c.Database.DSN == "" {
		c.Database.DSN = "file:overlay.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 4
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 2
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	if c.Store.HistorySize == 0 {
		c.Store.HistorySize = 10
	}
	if c.Store.ExportIndent == "" {
		c.Store.ExportIndent = "  "
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Store.HistorySize < 1 || cfg.Store.HistorySize > 100 {
		return fmt.Errorf("store.history_size must be between 1 and 100")
	}
	if cfg.Store.AutoSave < 0 {
		return fmt.Errorf("store.autosave must be non-negative")
	}
	if cfg.Store.AutoSave > 0 && cfg.Store.AutoSave < time.Second {
		return fmt.Errorf("store.autosave must be at least 1 second when enabled")
	}
	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetStoreConfig returns settings store configuration
func (c *Config) GetStoreConfig() StoreConfig {
	return c.Store
}
