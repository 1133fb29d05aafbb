package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Sonarr  SonarrConfig  `mapstructure:"sonarr"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Sweep   SweepConfig   `mapstructure:"sweep"`
	Safety  SafetyConfig  `mapstructure:"safety"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SonarrConfig holds Sonarr API connection details
type SonarrConfig struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// FilterConfig contains the default filter and named presets
type FilterConfig struct {
	DefaultExpression string                  `mapstructure:"default_expression"`
	Presets           map[string]PresetConfig `mapstructure:"presets"`
}

// PresetConfig is a named filter expression
type PresetConfig struct {
	Expression  string `mapstructure:"expression"`
	Description string `mapstructure:"description"`
}

// SweepConfig controls what a sweep does to matching episodes
type SweepConfig struct {
	Concurrency int  `mapstructure:"concurrency"`
	DeleteFiles bool `mapstructure:"delete_files"`
	Unmonitor   bool `mapstructure:"unmonitor"`
}

// SafetyConfig contains safety-related settings
type SafetyConfig struct {
	DryRun        bool `mapstructure:"dry_run"`
	ConfirmDelete bool `mapstructure:"confirm_delete"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// PresetExpressions returns the preset expressions keyed by name
func (f FilterConfig) PresetExpressions() map[string]string {
	exprs := make(map[string]string, len(f.Presets))
	for name, preset := range f.Presets {
		exprs[name] = preset.Expression
	}
	return exprs
}
