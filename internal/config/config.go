// Package config provides configuration management for the match tips service.
package config

import (
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Provider ProviderConfig `mapstructure:"provider" validate:"required"`
	Refresh  RefreshConfig  `mapstructure:"refresh" validate:"required"`
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics" validate:"required"`
	Leagues  []LeagueConfig `mapstructure:"leagues" validate:"required,min=1,dive"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ProviderConfig represents the sports-data provider configuration
type ProviderConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	APIKey             string `mapstructure:"api_key"`
	TimeoutSeconds     int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RateLimitPerMinute int    `mapstructure:"rate_limit_per_minute" validate:"required,gt=0"`
	// Season 0 means "resolve to the current year at startup".
	Season int `mapstructure:"season" validate:"gte=0"`
}

// RefreshConfig represents the statistics refresh schedule
type RefreshConfig struct {
	IntervalHours  int  `mapstructure:"interval_hours" validate:"required,gt=0"`
	EagerFirstPass bool `mapstructure:"eager_first_pass"`
}

// ServerConfig represents the HTTP API server configuration
type ServerConfig struct {
	Port                    int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	CORSAllowedOrigins      []string `mapstructure:"cors_allowed_origins"`
	AnalysisCacheTTLSeconds int      `mapstructure:"analysis_cache_ttl_seconds" validate:"gte=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// LeagueConfig represents one supported league
type LeagueConfig struct {
	Name string `mapstructure:"name" validate:"required"`
	ID   int    `mapstructure:"id" validate:"required,gt=0"`
}

// ProviderTimeout returns the per-call provider timeout as a duration
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.Provider.TimeoutSeconds) * time.Second
}

// RefreshInterval returns the refresh interval as a duration
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Refresh.IntervalHours) * time.Hour
}

// AnalysisCacheTTL returns the HTTP analysis response cache TTL
func (c *Config) AnalysisCacheTTL() time.Duration {
	return time.Duration(c.Server.AnalysisCacheTTLSeconds) * time.Second
}

// EffectiveSeason resolves the configured season, defaulting to the current
// year when unset
func (c *Config) EffectiveSeason() int {
	if c.Provider.Season > 0 {
		return c.Provider.Season
	}
	return time.Now().UTC().Year()
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
