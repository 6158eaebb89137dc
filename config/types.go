package config

import (
	"time"

	"github.com/s0up4200/marquee/tmdb"
)

// Config represents the complete configuration structure
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Display DisplayConfig `mapstructure:"display"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds TMDB API connection details
type TMDBConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	ImageBaseURL string        `mapstructure:"image_base_url"`
	Token        string        `mapstructure:"token"`
	AccountID    string        `mapstructure:"account_id"`
	Language     string        `mapstructure:"language"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// ClientConfig returns the subset of settings the TMDB client is built from
func (c TMDBConfig) ClientConfig() tmdb.Config {
	return tmdb.Config{
		BaseURL:   c.BaseURL,
		Token:     c.Token,
		AccountID: c.AccountID,
		Language:  c.Language,
	}
}

// FilterConfig contains filter definitions
type FilterConfig struct {
	DefaultExpression string                  `mapstructure:"default_expression"`
	Presets           map[string]FilterPreset `mapstructure:"presets"`
}

// FilterPreset is a named, reusable filter expression
type FilterPreset struct {
	Expression  string `mapstructure:"expression"`
	Description string `mapstructure:"description"`
}

// DisplayConfig contains output settings
type DisplayConfig struct {
	ShowDetails bool   `mapstructure:"show_details"`
	Output      string `mapstructure:"output"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
