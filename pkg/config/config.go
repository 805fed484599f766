package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures console level configuration loaded from config.yaml.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Backend  BackendConfig  `yaml:"backend"`
	Console  ConsoleConfig  `yaml:"console"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	CORS     CORSConfig     `yaml:"cors"`
	Redis    RedisConfig    `yaml:"redis"`
}

// ServerConfig defines the console HTTP surface options.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// BackendConfig points the console at the merchant configuration API.
type BackendConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ConsoleConfig tunes controller behaviour.
type ConsoleConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	Operator        string        `yaml:"operator"`
	// RequireOperator rejects HTTP writes that carry no X-Operator header.
	RequireOperator bool `yaml:"require_operator"`
}

// LogConfig selects the hlog level: trace, debug, info, notice, warn, error, fatal.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DatabaseConfig defines the action journal backend. An empty driver disables the journal.
type DatabaseConfig struct {
	Driver   string         `yaml:"driver"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// SQLiteConfig contains SQLite specific settings.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// MySQLConfig contains MySQL specific connection details.
type MySQLConfig struct {
	DSN string `yaml:"dsn"`
}

// PostgresConfig contains PostgreSQL specific connection details.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// StorageConfig selects where list snapshots are exported.
type StorageConfig struct {
	Type  string             `yaml:"type"`
	Local LocalStorageConfig `yaml:"local"`
	S3    S3StorageConfig    `yaml:"s3"`
}

// LocalStorageConfig holds local storage configuration.
type LocalStorageConfig struct {
	BasePath string `yaml:"base_path"`
}

// S3StorageConfig holds S3-compatible storage configuration.
type S3StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	PathStyle bool   `yaml:"path_style"`
	URLMode   string `yaml:"url_mode"`
}

// CORSConfig defines CORS middleware settings.
type CORSConfig struct {
	AllowOrigin      string `yaml:"allow_origin"`
	AllowMethods     string `yaml:"allow_methods"`
	AllowHeaders     string `yaml:"allow_headers"`
	AllowCredentials bool   `yaml:"allow_credentials"`
}

// RedisConfig enables the cross-instance write lock.
type RedisConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Address  string        `yaml:"address"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	LockKey  string        `yaml:"lock_key"`
	LockTTL  time.Duration `yaml:"lock_ttl"`
}

const (
	DefaultServerAddress   = ":8090"
	DefaultBackendURL      = "http://127.0.0.1:8080"
	DefaultBackendTimeout  = 30 * time.Second
	DefaultRefreshInterval = 30 * time.Second
	DefaultLogLevel        = "info"
	DefaultSQLitePath      = "data/console.db"
	DefaultSnapshotPath    = "data/snapshots"
	DefaultLockKey         = "merchant_console:write_lock"
	DefaultLockTTL         = 30 * time.Second
)

// Load reads a YAML configuration file from the provided path.
// It searches in the current working directory first, then next to the binary executable.
func Load(name string) (*Config, error) {
	cfg := defaultConfig()

	configPath := findConfigFile(name)
	if configPath == "" {
		log.Printf("Warning: config file %q not found, using defaults", name)
		return cfg, nil
	}

	log.Printf("Loading config from: %s", configPath)
	f, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	var parsed Config
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	applyDefaults(&parsed)
	return &parsed, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return defaultConfig()
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address: DefaultServerAddress,
		},
		Backend: BackendConfig{
			BaseURL: DefaultBackendURL,
			Timeout: DefaultBackendTimeout,
		},
		Console: ConsoleConfig{
			RefreshInterval: DefaultRefreshInterval,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			SQLite: SQLiteConfig{
				Path: DefaultSQLitePath,
			},
		},
		Storage: StorageConfig{
			Type: "local",
			Local: LocalStorageConfig{
				BasePath: DefaultSnapshotPath,
			},
			S3: S3StorageConfig{
				Region:  "us-east-1",
				URLMode: "presigned",
			},
		},
		CORS: CORSConfig{
			AllowOrigin:  "*",
			AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders: "*",
		},
		Redis: RedisConfig{
			LockKey: DefaultLockKey,
			LockTTL: DefaultLockTTL,
		},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = DefaultServerAddress
	}
	cfg.Backend.BaseURL = NormalizeBaseURL(cfg.Backend.BaseURL)
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = DefaultBackendURL
	}
	if cfg.Backend.Timeout <= 0 {
		cfg.Backend.Timeout = DefaultBackendTimeout
	}
	if cfg.Console.RefreshInterval <= 0 {
		cfg.Console.RefreshInterval = DefaultRefreshInterval
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if strings.EqualFold(cfg.Database.Driver, "sqlite") && cfg.Database.SQLite.Path == "" {
		cfg.Database.SQLite.Path = DefaultSQLitePath
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.Local.BasePath == "" {
		cfg.Storage.Local.BasePath = DefaultSnapshotPath
	}
	if cfg.Redis.LockKey == "" {
		cfg.Redis.LockKey = DefaultLockKey
	}
	if cfg.Redis.LockTTL <= 0 {
		cfg.Redis.LockTTL = DefaultLockTTL
	}
}

// findConfigFile searches for a config file in the current directory first,
// then next to the binary executable. Returns the full path or empty string.
func findConfigFile(name string) string {
	// 1. Current working directory
	if _, err := os.Stat(name); err == nil {
		abs, _ := filepath.Abs(name)
		return abs
	}

	// 2. Next to the binary executable
	exe, err := os.Executable()
	if err == nil {
		exeDir := filepath.Dir(exe)
		candidate := filepath.Join(exeDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// NormalizeBaseURL trims whitespace and trailing slashes from a backend URL.
// Examples:
//
//	""                        -> ""
//	"http://host:8080/"       -> "http://host:8080"
//	" http://host/prefix// "  -> "http://host/prefix"
func NormalizeBaseURL(input string) string {
	trimmed := strings.TrimSpace(input)
	return strings.TrimRight(trimmed, "/")
}
