package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Database drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverValkey = "valkey"
	DriverBadger = "badger"
)

// Catalog sources.
const (
	SourceMemory = "memory"
	SourceJSON   = "json"
	SourceSQLite = "sqlite"
	SourceRemote = "remote"
)

// Config holds the search service configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Auth     AuthConfig     `yaml:"auth"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Search   SearchConfig   `yaml:"search"`
	Alerts   AlertsConfig   `yaml:"alerts"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings. No keys disables auth.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
	MaxBodyBytes    int `yaml:"max_body_bytes"`
}

// DatabaseConfig holds key-value store settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // memory, redis, valkey, badger (default: memory)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	Path             string   `yaml:"path"` // badger data directory
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// CatalogConfig selects where listings come from.
type CatalogConfig struct {
	Source       string `yaml:"source"`        // memory, json, sqlite, remote (default: json)
	Path         string `yaml:"path"`          // json file
	DSN          string `yaml:"dsn"`           // sqlite database
	BaseURL      string `yaml:"base_url"`      // remote API root
	TimeoutSec   int    `yaml:"timeout_sec"`   // remote fetch timeout
	FallbackPath string `yaml:"fallback_path"` // json file used when the primary fails
	Watch        bool   `yaml:"watch"`         // hot-reload json files
	Snapshot     bool   `yaml:"snapshot"`      // persist the last good catalog in the database
}

// SearchConfig holds search settings.
type SearchConfig struct {
	HistoryScope string `yaml:"history_scope"`
}

// AlertsConfig holds product alert settings.
type AlertsConfig struct {
	PoolSize int `yaml:"pool_size"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		c.HTTP.MaxBodyBytes = 10 << 20
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverMemory
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "cocreate:"
	}
	if c.Catalog.Source == "" {
		c.Catalog.Source = SourceJSON
	}
	if c.Catalog.TimeoutSec <= 0 {
		c.Catalog.TimeoutSec = 10
	}
	if c.Search.HistoryScope == "" {
		c.Search.HistoryScope = "global"
	}
	if c.Alerts.PoolSize <= 0 {
		c.Alerts.PoolSize = 4
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}

	switch c.Database.Driver {
	case DriverMemory:
	case DriverRedis, DriverValkey:
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for driver %q", c.Database.Driver)
		}
	case DriverBadger:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for driver %q", c.Database.Driver)
		}
	default:
		return fmt.Errorf("database.driver must be one of memory, redis, valkey, badger, got %q", c.Database.Driver)
	}

	switch c.Catalog.Source {
	case SourceMemory:
	case SourceJSON:
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog.path is required for source %q", SourceJSON)
		}
	case SourceSQLite:
		if c.Catalog.DSN == "" {
			return fmt.Errorf("catalog.dsn is required for source %q", SourceSQLite)
		}
	case SourceRemote:
		if c.Catalog.BaseURL == "" {
			return fmt.Errorf("catalog.base_url is required for source %q", SourceRemote)
		}
	default:
		return fmt.Errorf("catalog.source must be one of memory, json, sqlite, remote, got %q", c.Catalog.Source)
	}

	if slices.Contains(c.Auth.APIKeys, "") {
		return fmt.Errorf("auth.api_keys must not contain empty keys")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
