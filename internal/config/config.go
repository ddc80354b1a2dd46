package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the catsearch configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Search   SearchConfig   `yaml:"search"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API keys for the cache maintenance endpoints.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds Redis connection settings. Only used by the redis cache driver.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// Cache drivers.
const (
	CacheDriverRedis  = "redis"
	CacheDriverSQLite = "sqlite"
	CacheDriverMemory = "memory"
)

// CacheConfig holds search cache settings.
type CacheConfig struct {
	Driver     string `yaml:"driver"` // redis, sqlite, memory (default: memory)
	KeyPrefix  string `yaml:"key_prefix"`
	MaxAgeSec  int    `yaml:"max_age_sec"`
	MemorySize int    `yaml:"memory_size"`
	SQLitePath string `yaml:"sqlite_path"`
}

// MaxAge returns the cache max age as a duration.
func (c CacheConfig) MaxAge() time.Duration {
	return time.Duration(c.MaxAgeSec) * time.Second
}

// CatalogConfig holds the catalog database location.
type CatalogConfig struct {
	SQLitePath string `yaml:"sqlite_path"`
}

// SearchConfig holds search defaults and limits.
type SearchConfig struct {
	DefaultLocale   string `yaml:"default_locale"`
	FallbackLocale  string `yaml:"fallback_locale"`
	DefaultPageSize int    `yaml:"default_page_size"`
	MaxPageSize     int    `yaml:"max_page_size"`
	MaxQueryLength  int    `yaml:"max_query_length"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

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
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = CacheDriverMemory
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "catsearch:"
	}
	if c.Cache.MaxAgeSec <= 0 {
		c.Cache.MaxAgeSec = 86400
	}
	if c.Cache.MemorySize <= 0 {
		c.Cache.MemorySize = 1024
	}
	if c.Search.DefaultLocale == "" {
		c.Search.DefaultLocale = "en"
	}
	if c.Search.FallbackLocale == "" {
		c.Search.FallbackLocale = "en"
	}
	if c.Search.DefaultPageSize <= 0 {
		c.Search.DefaultPageSize = 10
	}
	if c.Search.MaxPageSize <= 0 {
		c.Search.MaxPageSize = 100
	}
	if c.Search.MaxQueryLength <= 0 {
		c.Search.MaxQueryLength = 256
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Cache.Driver {
	case CacheDriverRedis:
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for cache driver %q", c.Cache.Driver)
		}
	case CacheDriverSQLite:
		if c.Cache.SQLitePath == "" {
			return fmt.Errorf("cache.sqlite_path is required for cache driver %q", c.Cache.Driver)
		}
	case CacheDriverMemory:
		// ok
	default:
		return fmt.Errorf("cache.driver must be one of redis, sqlite, memory, got %q", c.Cache.Driver)
	}
	if c.Catalog.SQLitePath == "" {
		return fmt.Errorf("catalog.sqlite_path is required")
	}
	if c.Search.DefaultPageSize > c.Search.MaxPageSize {
		return fmt.Errorf(
			"search.default_page_size (%d) must not exceed search.max_page_size (%d)",
			c.Search.DefaultPageSize, c.Search.MaxPageSize,
		)
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
