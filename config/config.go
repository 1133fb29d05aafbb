package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SONARR_SWEEP_SONARR_API_KEY
const EnvPrefix = "SONARR_SWEEP"

// MaxConcurrency bounds sweep.concurrency
const MaxConcurrency = 20

// Load loads the configuration from file and environment.
//
// An explicit configPath must exist. Without one the standard locations are
// searched and a missing file is fine as long as the environment supplies the
// required settings.
func Load(configPath string) (*Config, error) {
	// A .env file next to the binary is optional
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".sonarr-sweep"))
		}

		v.AddConfigPath("/etc/sonarr-sweep/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Every key read from the
// environment needs a default so viper knows about it.
func setDefaults(v *viper.Viper) {
	// Sonarr defaults
	v.SetDefault("sonarr.url", "http://localhost:8989")
	v.SetDefault("sonarr.api_key", "")
	v.SetDefault("sonarr.timeout", 30*time.Second)

	// Filter defaults
	v.SetDefault("filter.default_expression", "")

	// Sweep defaults
	v.SetDefault("sweep.concurrency", 5)
	v.SetDefault("sweep.delete_files", true)
	v.SetDefault("sweep.unmonitor", true)

	// Safety defaults
	v.SetDefault("safety.dry_run", true)
	v.SetDefault("safety.confirm_delete", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Sonarr.URL == "" {
		return fmt.Errorf("sonarr.url is required")
	}
	u, err := url.Parse(cfg.Sonarr.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("sonarr.url must be an http or https URL, got %q", cfg.Sonarr.URL)
	}

	if cfg.Sonarr.APIKey == "" || cfg.Sonarr.APIKey == "your-api-key-here" {
		return fmt.Errorf("sonarr.api_key must be set to a valid API key")
	}

	if cfg.Sonarr.Timeout < 0 {
		return fmt.Errorf("sonarr.timeout must not be negative")
	}

	if cfg.Sweep.Concurrency < 1 || cfg.Sweep.Concurrency > MaxConcurrency {
		return fmt.Errorf("sweep.concurrency must be between 1 and %d, got %d", MaxConcurrency, cfg.Sweep.Concurrency)
	}

	for name, preset := range cfg.Filter.Presets {
		if strings.TrimSpace(preset.Expression) == "" {
			return fmt.Errorf("filter.presets.%s.expression is required", name)
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
