// Package config loads application configuration via Viper from environment
// variables and an optional config file. The resulting Config is built once in
// main and handed to constructors; no package keeps config in global state.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups all settings for one extraction run.
type Config struct {
	WMS     WMSConfig
	DB      DBConfig
	ETL     ETLConfig
	Redis   RedisConfig
	Log     LogConfig
	Backlog BacklogConfig
}

// WMSConfig holds the WMS REST API settings.
type WMSConfig struct {
	BaseURL   string
	Username  string
	Password  string
	VerifySSL bool
	Timeout   time.Duration
	Retries   int
}

// DBConfig holds the PostgreSQL settings.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// DSN returns the PostgreSQL connection string. User and password are
// URL-encoded so special characters survive.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + c.Database,
	}
	return u.String()
}

// ETLConfig holds pipeline tuning knobs.
type ETLConfig struct {
	PageSize          int
	ChunkSize         int
	DetailConcurrency int
	ContinueOnError   bool
}

// RedisConfig holds the optional run-lock backend. An empty URL disables the
// lock entirely.
type RedisConfig struct {
	URL     string
	LockTTL time.Duration
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Pretty bool
}

// BacklogConfig holds settings for the historical backlog export.
type BacklogConfig struct {
	StartDate string // YYYY-MM-DD
	OutputDir string
}

// Load reads configuration from env vars (WMS_BASE_URL, DB_HOST, ...) and an
// optional config.env file in the working directory. Env vars win. Required
// fields missing cause an immediate error so a run never fails deep inside an
// extraction.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // file is optional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{
		WMS: WMSConfig{
			BaseURL:   strings.TrimRight(v.GetString("wms.base_url"), "/"),
			Username:  v.GetString("wms.username"),
			Password:  v.GetString("wms.password"),
			VerifySSL: v.GetBool("wms.verify_ssl"),
			Timeout:   time.Duration(v.GetFloat64("wms.default_timeout") * float64(time.Second)),
			Retries:   v.GetInt("wms.default_retries"),
		},
		DB: DBConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Database: v.GetString("db.database"),
		},
		ETL: ETLConfig{
			PageSize:          v.GetInt("etl.page_size"),
			ChunkSize:         v.GetInt("etl.chunk_size"),
			DetailConcurrency: v.GetInt("etl.detail_concurrency"),
			ContinueOnError:   v.GetBool("etl.continue_on_error"),
		},
		Redis: RedisConfig{
			URL:     v.GetString("redis.url"),
			LockTTL: v.GetDuration("redis.lock_ttl"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Pretty: v.GetBool("log.pretty"),
		},
		Backlog: BacklogConfig{
			StartDate: v.GetString("backlog.start_date"),
			OutputDir: v.GetString("backlog.output_dir"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("wms.verify_ssl", true)
	v.SetDefault("wms.default_timeout", 30.0)
	v.SetDefault("wms.default_retries", 5)
	v.SetDefault("db.port", 5432)
	v.SetDefault("etl.page_size", 200)
	v.SetDefault("etl.chunk_size", 500)
	v.SetDefault("etl.detail_concurrency", 10)
	v.SetDefault("etl.continue_on_error", false)
	v.SetDefault("redis.lock_ttl", time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("backlog.output_dir", "backlog_exports")
}

func (c *Config) validate() error {
	var missing []string
	if c.WMS.BaseURL == "" {
		missing = append(missing, "wms.base_url")
	}
	if c.WMS.Username == "" {
		missing = append(missing, "wms.username")
	}
	if c.WMS.Password == "" {
		missing = append(missing, "wms.password")
	}
	if c.DB.Host == "" {
		missing = append(missing, "db.host")
	}
	if c.DB.User == "" {
		missing = append(missing, "db.user")
	}
	if c.DB.Database == "" {
		missing = append(missing, "db.database")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
