package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/setsbymuscle/internal/storage"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	MetricsPort int    `toml:"metrics_port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	LogMaxSizeMB  int    `toml:"log_max_size_mb"`
	LogMaxBackups int    `toml:"log_max_backups"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// catalog
	CatalogPath     string        `toml:"catalog_path"`
	CatalogFallback bool          `toml:"catalog_fallback"`
	SearchCacheMB   int           `toml:"search_cache_mb"`
	SearchCacheTTL  time.Duration `toml:"search_cache_ttl"`
	// storage
	StorageBackend string `toml:"storage_backend"`
	FileStoreDir   string `toml:"file_store_dir"`
	SqlitePath     string `toml:"sqlite_path"`
	RedisHost      string `toml:"redis_host"`
	RedisPort      string `toml:"redis_port"`
	RedisPrefix    string `toml:"redis_prefix"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	// http
	AllowedOrigins     []string `toml:"allowed_origins"`
	RateLimitPerMinute int      `toml:"rate_limit_per_minute"`
	MCPEnabled         bool     `toml:"mcp_enabled"`
	// backups
	BackupDir  string `toml:"backup_dir"`
	BackupCron string `toml:"backup_cron"`
	BackupKeep int    `toml:"backup_keep"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the section for env, with
// defaults filled in.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] not found in %s", env, path)
	}

	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config for env [%s]: %w", env, err)
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.MetricsPort == 0 {
		c.MetricsPort = 2112
	}
	if c.CatalogPath == "" {
		c.CatalogPath = "./data/exercises.json"
	}
	if c.SearchCacheMB == 0 {
		c.SearchCacheMB = 4
	}
	if c.SearchCacheTTL == 0 {
		c.SearchCacheTTL = 10 * time.Minute
	}
	if c.StorageBackend == "" {
		c.StorageBackend = string(storage.BackendSqlite)
	}
	c.StorageBackend = strings.ToLower(c.StorageBackend)
	if c.SqlitePath == "" {
		c.SqlitePath = "./setsbymuscle.db"
	}
	if c.FileStoreDir == "" {
		c.FileStoreDir = "./data/store"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.PostgresDBName == "" {
		c.PostgresDBName = "setsbymuscle"
	}
}

func (c *Config) Validate() error {
	if !storage.Backend(c.StorageBackend).IsValid() {
		return fmt.Errorf("unknown storage backend: %s", c.StorageBackend)
	}
	if c.StorageBackend == string(storage.BackendRedis) && c.RedisHost == "" {
		return errors.New("redis storage backend needs redis_host")
	}
	if c.StorageBackend == string(storage.BackendPostgres) && c.PostgresHost == "" {
		return errors.New("postgres storage backend needs postgres_host")
	}
	if c.Port == c.MetricsPort {
		return fmt.Errorf("port and metrics_port are both %d", c.Port)
	}
	if c.BackupCron != "" && c.BackupDir == "" {
		return errors.New("backup_cron is set but backup_dir is empty")
	}
	if c.RateLimitPerMinute < 0 {
		return errors.New("rate_limit_per_minute must not be negative")
	}
	return nil
}

// RedisEnabled reports whether a redis connection is needed, either as the
// store or for rate limiting.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}
