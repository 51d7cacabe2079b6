package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Scraper ScraperConfig
	Ranker  RankerConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ScraperConfig holds outbound scraping configuration
type ScraperConfig struct {
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxIdleConns      int           `mapstructure:"max_idle_conns"`
	MaxConnsPerHost   int           `mapstructure:"max_conns_per_host"`
	DelayMin          time.Duration `mapstructure:"delay_min"`
	DelayMax          time.Duration `mapstructure:"delay_max"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
}

// RankerConfig holds relevance ranking configuration
type RankerConfig struct {
	RelevanceThreshold float64 `mapstructure:"relevance_threshold"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pricescope/")

	// Environment variable settings
	v.SetEnvPrefix("PRICESCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Scraper defaults mirror the connection limits the target sites
	// tolerate: 30s budget per request, small shared pool, polite delays.
	v.SetDefault("scraper.timeout", "30s")
	v.SetDefault("scraper.max_idle_conns", 10)
	v.SetDefault("scraper.max_conns_per_host", 5)
	v.SetDefault("scraper.delay_min", "1s")
	v.SetDefault("scraper.delay_max", "3s")
	v.SetDefault("scraper.requests_per_minute", 30)

	// Ranker defaults
	v.SetDefault("ranker.relevance_threshold", 0.3)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Scraper.Timeout <= 0 {
		return fmt.Errorf("scraper timeout must be positive, got: %s", config.Scraper.Timeout)
	}

	if config.Scraper.DelayMin > config.Scraper.DelayMax {
		return fmt.Errorf("scraper delay_min (%s) must not exceed delay_max (%s)",
			config.Scraper.DelayMin, config.Scraper.DelayMax)
	}

	if t := config.Ranker.RelevanceThreshold; t <= 0 || t > 1 {
		return fmt.Errorf("ranker relevance_threshold must be in (0,1], got: %v", t)
	}

	return nil
}
