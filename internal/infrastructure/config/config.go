package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Import    ImportConfig
	Platforms PlatformsConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
}

// ImportConfig holds order import pipeline configuration
type ImportConfig struct {
	Enabled          bool
	Interval         time.Duration // wall-clock gap between automatic passes
	PageSize         int           // orders requested per client page
	BatchSize        int           // rows per insert batch on the fallback path
	StagingThreshold int           // row count at which the staging path kicks in
	DeleteChunkSize  int           // composite keys per pre-delete statement
	PassTimeout      time.Duration // hard ceiling for one full import pass
	HistorySize      int           // retained pass results for the API
	Platforms        []string      // platform codes to import, empty = all
}

// PlatformsConfig holds marketplace API credentials. A platform whose
// credentials are absent is skipped at wiring time.
type PlatformsConfig struct {
	Shopee ShopeeCredentials
	Lazada LazadaCredentials
	TikTok TikTokCredentials
}

// ShopeeCredentials holds Shopee Open Platform access settings
type ShopeeCredentials struct {
	PartnerID   string
	PartnerKey  string
	AccessToken string
	ShopID      string
	BaseURL     string
}

// Configured reports whether all required fields are present
func (c ShopeeCredentials) Configured() bool {
	return c.PartnerID != "" && c.PartnerKey != "" && c.AccessToken != "" && c.ShopID != ""
}

// LazadaCredentials holds Lazada Open Platform access settings
type LazadaCredentials struct {
	AppKey      string
	AppSecret   string
	AccessToken string
	BaseURL     string
}

// Configured reports whether all required fields are present
func (c LazadaCredentials) Configured() bool {
	return c.AppKey != "" && c.AppSecret != "" && c.AccessToken != ""
}

// TikTokCredentials holds TikTok Shop Open API access settings
type TikTokCredentials struct {
	AppKey      string
	AppSecret   string
	AccessToken string
	ShopID      string
	BaseURL     string
}

// Configured reports whether all required fields are present
func (c TikTokCredentials) Configured() bool {
	return c.AppKey != "" && c.AppSecret != "" && c.AccessToken != "" && c.ShopID != ""
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with ORDERSYNC_ prefix (e.g., ORDERSYNC_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("ORDERSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes: v.GetInt("http.max_header_bytes"),
		},
		Import: ImportConfig{
			Enabled:          v.GetBool("import.enabled"),
			Interval:         v.GetDuration("import.interval"),
			PageSize:         v.GetInt("import.page_size"),
			BatchSize:        v.GetInt("import.batch_size"),
			StagingThreshold: v.GetInt("import.staging_threshold"),
			DeleteChunkSize:  v.GetInt("import.delete_chunk_size"),
			PassTimeout:      v.GetDuration("import.pass_timeout"),
			HistorySize:      v.GetInt("import.history_size"),
			Platforms:        v.GetStringSlice("import.platforms"),
		},
		Platforms: PlatformsConfig{
			Shopee: ShopeeCredentials{
				PartnerID:   v.GetString("platforms.shopee.partner_id"),
				PartnerKey:  v.GetString("platforms.shopee.partner_key"),
				AccessToken: v.GetString("platforms.shopee.access_token"),
				ShopID:      v.GetString("platforms.shopee.shop_id"),
				BaseURL:     v.GetString("platforms.shopee.base_url"),
			},
			Lazada: LazadaCredentials{
				AppKey:      v.GetString("platforms.lazada.app_key"),
				AppSecret:   v.GetString("platforms.lazada.app_secret"),
				AccessToken: v.GetString("platforms.lazada.access_token"),
				BaseURL:     v.GetString("platforms.lazada.base_url"),
			},
			TikTok: TikTokCredentials{
				AppKey:      v.GetString("platforms.tiktok.app_key"),
				AppSecret:   v.GetString("platforms.tiktok.app_secret"),
				AccessToken: v.GetString("platforms.tiktok.access_token"),
				ShopID:      v.GetString("platforms.tiktok.shop_id"),
				BaseURL:     v.GetString("platforms.tiktok.base_url"),
			},
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
		cfg.App.Name = "ordersync-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
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
		cfg.Database.DBName = "ordersync"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
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
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.Import.Interval == 0 {
		cfg.Import.Interval = 30 * time.Minute
	}
	if cfg.Import.PageSize == 0 {
		cfg.Import.PageSize = 100
	}
	if cfg.Import.BatchSize == 0 {
		cfg.Import.BatchSize = 1000
	}
	if cfg.Import.StagingThreshold == 0 {
		cfg.Import.StagingThreshold = 5000
	}
	if cfg.Import.DeleteChunkSize == 0 {
		cfg.Import.DeleteChunkSize = 500
	}
	if cfg.Import.PassTimeout == 0 {
		cfg.Import.PassTimeout = 30 * time.Minute
	}
	if cfg.Import.HistorySize == 0 {
		cfg.Import.HistorySize = 50
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.Import.PageSize <= 0 {
		return fmt.Errorf("import.page_size must be positive")
	}
	if c.Import.BatchSize <= 0 {
		return fmt.Errorf("import.batch_size must be positive")
	}
	if c.Import.DeleteChunkSize <= 0 {
		return fmt.Errorf("import.delete_chunk_size must be positive")
	}

	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
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
