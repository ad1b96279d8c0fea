package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	API   APIConfig
	Cache CacheConfig
	UI    UIConfig
	Log   LogConfig
}

// APIConfig holds settings for the characters GraphQL endpoint.
type APIConfig struct {
	Endpoint          string `mapstructure:"endpoint"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds"`
	RequestsPerSecond int    `mapstructure:"requests_per_second"`
	BurstLimit        int    `mapstructure:"burst_limit"`
}

// CacheConfig holds settings for the in-memory query cache.
type CacheConfig struct {
	Size       int `mapstructure:"size"`
	TTLMinutes int `mapstructure:"ttl_minutes"`
}

// UIConfig holds settings for the listing view.
type UIConfig struct {
	Locale string `mapstructure:"locale"`
	// ScrollThreshold is the distance, in rows, from the bottom of the
	// table at which the next page is requested.
	ScrollThreshold int    `mapstructure:"scroll_threshold"`
	Status          string `mapstructure:"status"`
	Species         string `mapstructure:"species"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
	JSON  bool   `mapstructure:"json"`
}

// Load loads the configuration from file and environment variables.
func Load() (*Config, error) {
	// Set default values
	viper.SetDefault("API.ENDPOINT", "https://rickandmortyapi.com/graphql")
	viper.SetDefault("API.TIMEOUT_SECONDS", 30)
	viper.SetDefault("API.REQUESTS_PER_SECOND", 5)
	viper.SetDefault("API.BURST_LIMIT", 10)
	viper.SetDefault("CACHE.SIZE", 128)
	viper.SetDefault("CACHE.TTL_MINUTES", 5)
	viper.SetDefault("UI.LOCALE", "en")
	viper.SetDefault("UI.SCROLL_THRESHOLD", 5)
	viper.SetDefault("UI.STATUS", "")
	viper.SetDefault("UI.SPECIES", "")
	viper.SetDefault("LOG.LEVEL", "info")
	viper.SetDefault("LOG.FILE", "character-browser.log")
	viper.SetDefault("LOG.JSON", false)

	// Load from config file
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err // Only return error if it's not a "file not found" error
		}
	}

	// Load from environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate reports settings that would make the client unusable.
func (c *Config) Validate() error {
	if c.API.Endpoint == "" {
		return errors.New("api.endpoint must not be empty")
	}
	if c.API.RequestsPerSecond <= 0 {
		return errors.New("api.requests_per_second must be positive")
	}
	if c.API.BurstLimit <= 0 {
		return errors.New("api.burst_limit must be positive")
	}
	if c.Cache.Size <= 0 {
		return errors.New("cache.size must be positive")
	}
	if c.UI.ScrollThreshold < 0 {
		return errors.New("ui.scroll_threshold must not be negative")
	}
	return nil
}
