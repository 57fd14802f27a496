package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server        ServerConfig
	FDC           FDCConfig
	CalorieNinjas CalorieNinjasConfig
	HTTP          HTTPConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// FDCConfig holds USDA FoodData Central API configuration. The key may
// be empty: the simple flow treats that as "provider unavailable" and
// the detailed flow rejects requests at call time.
type FDCConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// CalorieNinjasConfig holds CalorieNinjas API configuration; the key is
// optional for the same reason.
type CalorieNinjasConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// HTTPConfig holds outbound transport configuration. The two timeouts
// bound each request attempt within a retried call, one for the simple
// lookup flow and one for the detailed macro flow.
type HTTPConfig struct {
	MaxRetries      int           `mapstructure:"max_retries"`
	BackoffBase     time.Duration `mapstructure:"backoff_base"`
	SimpleTimeout   time.Duration `mapstructure:"simple_timeout"`
	DetailedTimeout time.Duration `mapstructure:"detailed_timeout"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/caloriehawk/")

	// Environment variable settings
	v.SetEnvPrefix("CALORIEHAWK")
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

	// Provider defaults
	v.SetDefault("fdc.base_url", "https://api.nal.usda.gov/fdc")
	v.SetDefault("calorieninjas.base_url", "https://api.calorieninjas.com")

	// Transport defaults: 4 attempts at 0.35s, 0.7s, 1.4s, 2.8s
	v.SetDefault("http.max_retries", 4)
	v.SetDefault("http.backoff_base", "350ms")
	v.SetDefault("http.simple_timeout", "10s")
	v.SetDefault("http.detailed_timeout", "15s")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.HTTP.MaxRetries < 1 {
		return fmt.Errorf("http.max_retries must be at least 1, got: %d", config.HTTP.MaxRetries)
	}

	if config.HTTP.BackoffBase <= 0 {
		return fmt.Errorf("http.backoff_base must be positive, got: %s", config.HTTP.BackoffBase)
	}

	if config.HTTP.SimpleTimeout <= 0 || config.HTTP.DetailedTimeout <= 0 {
		return fmt.Errorf("http timeouts must be positive")
	}

	return nil
}
