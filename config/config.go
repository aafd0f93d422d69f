package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the relay and search aggregation layer.
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Server    ServerConfig    `mapstructure:"server"`
	Search    SearchConfig    `mapstructure:"search"`
	Providers ProvidersConfig `mapstructure:"providers"`
	History   HistoryConfig   `mapstructure:"history"`
	Storage   StorageConfig   `mapstructure:"storage"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig contains HTTP relay settings. RateLimit is requests per
// second per client IP on the search endpoint; zero disables limiting.
type ServerConfig struct {
	Port      string  `mapstructure:"port"`
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`
}

// SearchConfig selects the provider strategy set for the aggregator. The
// selection happens once at startup; nothing inspects the environment at
// query time.
type SearchConfig struct {
	Provider       string        `mapstructure:"provider"`
	ImageSource    string        `mapstructure:"image_source"`
	Policy         string        `mapstructure:"policy"`
	MaxResults     int           `mapstructure:"max_results"`
	MaxImages      int           `mapstructure:"max_images"`
	Timeout        time.Duration `mapstructure:"timeout"`
	FallbackImages bool          `mapstructure:"fallback_images"`
	Breaker        bool          `mapstructure:"breaker"`
}

func (s SearchConfig) Validate() error {
	switch s.Policy {
	case "resilient", "strict", "canned":
	default:
		return fmt.Errorf("search.policy must be resilient, strict or canned (got %q)", s.Policy)
	}
	switch s.Provider {
	case "rest", "brave", "duckduckgo", "static":
	default:
		return fmt.Errorf("search.provider must be rest, brave, duckduckgo or static (got %q)", s.Provider)
	}
	switch s.ImageSource {
	case "wikimedia", "placeholder", "none":
	default:
		return fmt.Errorf("search.image_source must be wikimedia, placeholder or none (got %q)", s.ImageSource)
	}
	if s.MaxResults <= 0 || s.MaxImages <= 0 {
		return fmt.Errorf("search.max_results and search.max_images must be > 0")
	}
	return nil
}

// ProvidersConfig contains upstream endpoint and credential settings.
// A missing Brave API key does not prevent startup; it surfaces as a
// per-request error on the relay endpoint.
type ProvidersConfig struct {
	Brave      BraveConfig      `mapstructure:"brave"`
	DuckDuckGo DuckDuckGoConfig `mapstructure:"duckduckgo"`
	Wikimedia  WikimediaConfig  `mapstructure:"wikimedia"`
	Relay      RelayConfig      `mapstructure:"relay"`
}

type BraveConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Endpoint string `mapstructure:"endpoint"`
}

type DuckDuckGoConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	ProxyTemplate string `mapstructure:"proxy_template"`
}

type WikimediaConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

// RelayConfig points the generic REST provider at a relay instance, for
// callers that consume the aggregator as a library or CLI.
type RelayConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

// HistoryConfig controls visit history retention. SweepCron schedules the
// retention sweeper; history is disabled entirely when Redis is not
// configured.
type HistoryConfig struct {
	MaxEntries int           `mapstructure:"max_entries"`
	Retention  time.Duration `mapstructure:"retention"`
	SweepCron  string        `mapstructure:"sweep_cron"`
}

func (h HistoryConfig) Validate() error {
	if h.MaxEntries <= 0 {
		return fmt.Errorf("history.max_entries must be > 0")
	}
	if h.Retention <= 0 {
		return fmt.Errorf("history.retention must be > 0")
	}
	return nil
}

// StorageConfig contains optional persistence backends. Empty hosts disable
// the corresponding feature set (history for Redis, favorites for Postgres).
type StorageConfig struct {
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func (r RedisConfig) Enabled() bool { return r.Host != "" }

func (r RedisConfig) Validate() error {
	if r.Host != "" && r.Port == "" {
		return fmt.Errorf("storage.redis.port required when host is set")
	}
	return nil
}

type PostgresConfig struct {
	URL      string        `mapstructure:"url"`
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	User     string        `mapstructure:"user"`
	Password string        `mapstructure:"password"`
	DBName   string        `mapstructure:"dbname"`
	SSLMode  string        `mapstructure:"sslmode"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func (p PostgresConfig) Enabled() bool { return p.URL != "" || p.Host != "" }

// DSN builds the connection string, preferring an explicit URL.
func (p PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	port := p.Port
	if port == "" {
		port = "5432"
	}
	ssl := p.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", p.User, p.Password, p.Host, port, p.DBName, ssl)
}

func (p PostgresConfig) Validate() error {
	if p.URL == "" && p.Host != "" && p.DBName == "" {
		return fmt.Errorf("storage.postgres.dbname required when host is set")
	}
	return nil
}

// LoadConfig loads config from file. A missing config file is not an error:
// the relay can be configured entirely from MOUNTX_* environment variables.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("server.port", "3001")
	viper.SetDefault("server.rate_limit", 5.0)
	viper.SetDefault("server.rate_burst", 10)
	viper.SetDefault("search.provider", "brave")
	viper.SetDefault("search.image_source", "none")
	viper.SetDefault("search.policy", "resilient")
	viper.SetDefault("search.max_results", 8)
	viper.SetDefault("search.max_images", 6)
	viper.SetDefault("search.timeout", 8*time.Second)
	viper.SetDefault("search.breaker", true)
	viper.SetDefault("history.max_entries", 200)
	viper.SetDefault("history.retention", 30*24*time.Hour)
	viper.SetDefault("history.sweep_cron", "0 * * * *")
	viper.SetDefault("storage.redis.timeout", 5*time.Second)
	viper.SetDefault("storage.postgres.timeout", 5*time.Second)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		viper.AddConfigPath(exeDir)
		viper.AddConfigPath(filepath.Join(exeDir, ".."))
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("MOUNTX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	if err := config.Search.Validate(); err != nil {
		panic(err)
	}
	if err := config.History.Validate(); err != nil {
		panic(err)
	}
	if err := config.Storage.Redis.Validate(); err != nil {
		panic(err)
	}
	if err := config.Storage.Postgres.Validate(); err != nil {
		panic(err)
	}
	return &config
}
