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
	Gemini  GeminiConfig
	SerpAPI SerpAPIConfig
	Fetcher FetcherConfig
	Hunt    HuntConfig
	Log     LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GeminiConfig holds language model configuration. Models is the ladder,
// tried in order from most capable to cheapest fallback.
type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Models  []string      `mapstructure:"models"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SerpAPIConfig holds search provider configuration. A blank key is allowed:
// the pipeline then runs without image/text evidence instead of failing.
type SerpAPIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// FetcherConfig holds page fetch configuration
type FetcherConfig struct {
	Timeout          time.Duration `mapstructure:"timeout"`
	UserAgent        string        `mapstructure:"user_agent"`
	VisibleTextLimit int           `mapstructure:"visible_text_limit"`
	JSONLDBlockLimit int           `mapstructure:"jsonld_block_limit"`
}

// HuntConfig holds evidence hunt policy knobs
type HuntConfig struct {
	MaxImageCandidates int   `mapstructure:"max_image_candidates"`
	MaxImageBytes      int64 `mapstructure:"max_image_bytes"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/datahunter/")

	// Environment variable settings
	v.SetEnvPrefix("DATAHUNTER")
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

	// Gemini defaults
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("gemini.models", []string{
		"models/gemini-2.0-flash",
		"models/gemini-2.0-flash-lite",
		"models/gemini-1.5-flash",
	})
	v.SetDefault("gemini.timeout", "30s")

	// SerpAPI defaults
	v.SetDefault("serpapi.base_url", "https://serpapi.com")

	// Fetcher defaults
	v.SetDefault("fetcher.timeout", "10s")
	v.SetDefault("fetcher.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	v.SetDefault("fetcher.visible_text_limit", 4000)
	v.SetDefault("fetcher.jsonld_block_limit", 2000)

	// Hunt policy defaults
	v.SetDefault("hunt.max_image_candidates", 5)
	v.SetDefault("hunt.max_image_bytes", 5*1024*1024)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// validate validates the configuration
func validate(config *Config) error {
	if strings.TrimSpace(config.Gemini.APIKey) == "" {
		return fmt.Errorf("Gemini API key is required (set DATAHUNTER_GEMINI_API_KEY)")
	}

	if len(config.Gemini.Models) == 0 {
		return fmt.Errorf("at least one Gemini model is required")
	}

	if config.Hunt.MaxImageCandidates <= 0 {
		return fmt.Errorf("hunt.max_image_candidates must be positive, got: %d", config.Hunt.MaxImageCandidates)
	}

	if config.Hunt.MaxImageBytes <= 0 {
		return fmt.Errorf("hunt.max_image_bytes must be positive, got: %d", config.Hunt.MaxImageBytes)
	}

	return nil
}
