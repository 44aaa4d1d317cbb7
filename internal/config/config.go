// Package config loads service settings from .env, config.toml and STOCK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment override, e.g. STOCK_DATABASE_PASSWORD.
const EnvPrefix = "STOCK"

// Config holds all application configuration.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Log      LogConfig
	HTTP     HTTPConfig
	Stock    StockConfig
}

// AppConfig holds application-specific settings.
type AppConfig struct {
	Name    string
	Env     string
	Port    string
	Version string
}

// DatabaseConfig holds PostgreSQL connection settings.
// URL, when set, wins over the individual fields.
type DatabaseConfig struct {
	URL              string
	Host             string
	Port             int
	User             string
	Password         string
	DBName           string
	SSLMode          string
	MaxConns         int32
	MinConns         int32
	StatementTimeout time.Duration
	AutoMigrate      bool
}

// JWTConfig holds token settings.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string // debug, info, warn, error
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	ShutdownTimeout  time.Duration
	CORSAllowOrigins []string
}

// StockConfig holds ledger reporting settings.
type StockConfig struct {
	CriticalThreshold int64
	LowThreshold      int64
	// Timezone decides which calendar day "today" is for dashboards.
	Timezone string
}

// Load reads the optional env file, then config.toml, then STOCK_* variables.
// Priority (highest to lowest): environment, config.toml, built-in defaults.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		// A missing .env is fine when the environment is set directly.
		_ = godotenv.Load()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/doccstock")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name:    v.GetString("app.name"),
			Env:     v.GetString("app.env"),
			Port:    v.GetString("app.port"),
			Version: v.GetString("app.version"),
		},
		Database: DatabaseConfig{
			URL:              v.GetString("database.url"),
			Host:             v.GetString("database.host"),
			Port:             v.GetInt("database.port"),
			User:             v.GetString("database.user"),
			Password:         v.GetString("database.password"),
			DBName:           v.GetString("database.dbname"),
			SSLMode:          v.GetString("database.sslmode"),
			MaxConns:         v.GetInt32("database.max_conns"),
			MinConns:         v.GetInt32("database.min_conns"),
			StatementTimeout: v.GetDuration("database.statement_timeout"),
			AutoMigrate:      v.GetBool("database.auto_migrate"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
			TTL:    v.GetDuration("jwt.ttl"),
			Issuer: v.GetString("jwt.issuer"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			ShutdownTimeout:  v.GetDuration("http.shutdown_timeout"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
		},
		Stock: StockConfig{
			CriticalThreshold: v.GetInt64("stock.critical_threshold"),
			LowThreshold:      v.GetInt64("stock.low_threshold"),
			Timezone:          v.GetString("stock.timezone"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "doccstock"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "5000"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "dev"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "doccstock"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Database.MinConns == 0 {
		cfg.Database.MinConns = 2
	}
	if cfg.Database.StatementTimeout == 0 {
		cfg.Database.StatementTimeout = 30 * time.Second
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 24 * time.Hour
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "doccstock"
	}
	if cfg.JWT.Secret == "" && cfg.App.Env == "development" {
		cfg.JWT.Secret = "dev-secret-change-me"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
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
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Stock.CriticalThreshold == 0 {
		cfg.Stock.CriticalThreshold = 10
	}
	if cfg.Stock.LowThreshold == 0 {
		cfg.Stock.LowThreshold = 50
	}
	if cfg.Stock.Timezone == "" {
		cfg.Stock.Timezone = "UTC"
	}
}

func (c *Config) validate() error {
	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("database.max_conns must be positive")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) cannot exceed database.max_conns (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	if !c.IsDevelopment() && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("jwt.secret must be at least 32 characters outside development")
	}
	if c.Stock.CriticalThreshold > c.Stock.LowThreshold {
		return fmt.Errorf("stock.critical_threshold (%d) cannot exceed stock.low_threshold (%d)",
			c.Stock.CriticalThreshold, c.Stock.LowThreshold)
	}
	if _, err := time.LoadLocation(c.Stock.Timezone); err != nil {
		return fmt.Errorf("stock.timezone: %w", err)
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// Location returns the configured business timezone. Validation guarantees it loads.
func (s StockConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DSN returns the database connection string with properly escaped values.
func (d *DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
