package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. Upstream endpoints and tuning
// live here; business credentials (commerce keys, courier keys, SMS keys)
// live in the settings store and are managed at runtime.
type Config struct {
	App       AppConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Upstream  UpstreamConfig
	Store     StoreConfig
	Redis     RedisConfig
	Reconcile ReconcileConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	CORSAllowOrigins []string
}

// UpstreamConfig holds the endpoints of the external collaborators. Any URL
// left empty falls back to the built-in local store (settings, tracking,
// directory, expenses) or disables the integration (sms, insight).
type UpstreamConfig struct {
	SettingsStoreURL string
	TrackingStoreURL string
	DirectoryURL     string
	ExpenseStoreURL  string
	SMSGatewayURL    string
	InsightAPIURL    string

	// FetchTimeout bounds every outbound read; a timeout is treated like a
	// network failure (fail soft to empty for reads).
	FetchTimeout time.Duration
	// WriteTimeout bounds outbound writes (consignments, upserts, SMS).
	WriteTimeout time.Duration
}

// StoreConfig holds the built-in local store settings.
type StoreConfig struct {
	Driver     string // sqlite or postgres
	SQLitePath string
	DSN        string // postgres DSN, required when Driver is postgres
}

// RedisConfig holds the optional snapshot cache settings. Host empty means
// the in-memory cache is used.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

// ReconcileConfig tunes the reconciliation engine.
type ReconcileConfig struct {
	// AutoRefreshInterval triggers periodic reconciliation; 0 disables it.
	AutoRefreshInterval time.Duration
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with SHOPOPS_ prefix (e.g. SHOPOPS_APP_PORT)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("SHOPOPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
		},
		Upstream: UpstreamConfig{
			SettingsStoreURL: v.GetString("upstream.settings_store_url"),
			TrackingStoreURL: v.GetString("upstream.tracking_store_url"),
			DirectoryURL:     v.GetString("upstream.directory_url"),
			ExpenseStoreURL:  v.GetString("upstream.expense_store_url"),
			SMSGatewayURL:    v.GetString("upstream.sms_gateway_url"),
			InsightAPIURL:    v.GetString("upstream.insight_api_url"),
			FetchTimeout:     v.GetDuration("upstream.fetch_timeout"),
			WriteTimeout:     v.GetDuration("upstream.write_timeout"),
		},
		Store: StoreConfig{
			Driver:     v.GetString("store.driver"),
			SQLitePath: v.GetString("store.sqlite_path"),
			DSN:        v.GetString("store.dsn"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		Reconcile: ReconcileConfig{
			AutoRefreshInterval: v.GetDuration("reconcile.auto_refresh_interval"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "shopops-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.Upstream.FetchTimeout == 0 {
		cfg.Upstream.FetchTimeout = 5 * time.Second
	}
	if cfg.Upstream.WriteTimeout == 0 {
		cfg.Upstream.WriteTimeout = 10 * time.Second
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "sqlite"
	}
	if cfg.Store.SQLitePath == "" {
		cfg.Store.SQLitePath = "shopops.db"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = time.Hour
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Store.Driver {
	case "sqlite":
		// SQLitePath always has a default
	case "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required when store.driver is postgres")
		}
	default:
		return fmt.Errorf("store.driver must be sqlite or postgres, got %q", c.Store.Driver)
	}

	if c.Upstream.FetchTimeout < 0 || c.Upstream.WriteTimeout < 0 {
		return fmt.Errorf("upstream timeouts cannot be negative")
	}

	if c.App.Env == "production" {
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}

// RedisAddr returns the host:port address of the snapshot cache, or an empty
// string when redis is not configured.
func (c *RedisConfig) RedisAddr() string {
	if c.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
