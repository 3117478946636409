// Package config provides configuration management for the match tips service.
package config

import (
	"os"
	"testing"
	"time"
)

const validConfigPath = "testdata/valid_config.yaml"

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	os.Setenv("TEST_PROVIDER_KEY", "secret-from-env")
	defer os.Unsetenv("TEST_PROVIDER_KEY")

	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	if cfg.App.Name != "matchtips" {
		t.Errorf("expected app name 'matchtips', got '%s'", cfg.App.Name)
	}
	if cfg.Provider.APIKey != "secret-from-env" {
		t.Errorf("expected expanded API key, got '%s'", cfg.Provider.APIKey)
	}
	if cfg.Provider.Season != 2026 {
		t.Errorf("expected season 2026, got %d", cfg.Provider.Season)
	}
	if len(cfg.Leagues) != 2 {
		t.Fatalf("expected 2 leagues, got %d", len(cfg.Leagues))
	}
	if cfg.Leagues[0].ID != 39 {
		t.Errorf("expected first league id 39, got %d", cfg.Leagues[0].ID)
	}
}

// TestLoadConfigMissingFile tests that a missing file is an error for Load
func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := Load("testdata/nonexistent.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestLoadWithDefaultsMissingFile tests that defaults alone describe a
// runnable service
func TestLoadWithDefaultsMissingFile(t *testing.T) {
	cfg, err := LoadWithDefaults("testdata/nonexistent.yaml")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Provider.Host != "v3.football.api-sports.io" {
		t.Errorf("unexpected default provider host '%s'", cfg.Provider.Host)
	}
	if cfg.Refresh.IntervalHours != 8 {
		t.Errorf("expected default interval 8h, got %d", cfg.Refresh.IntervalHours)
	}
	if len(cfg.Leagues) == 0 {
		t.Error("expected default league registry to be non-empty")
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("default configuration must validate, got %v", err)
	}
}

// TestValidateRejectsBadValues tests custom validation rules
func TestValidateRejectsBadValues(t *testing.T) {
	cfg, err := LoadWithDefaults("testdata/nonexistent.yaml")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	cfg.App.LogLevel = "loud"
	if err := Validate(cfg); err == nil {
		t.Error("expected validation error for bad log level")
	}

	cfg.App.LogLevel = "info"
	cfg.App.Environment = "qa"
	if err := Validate(cfg); err == nil {
		t.Error("expected validation error for bad environment")
	}
}

// TestValidateRejectsDuplicateLeagueIDs tests the cross-field league check
func TestValidateRejectsDuplicateLeagueIDs(t *testing.T) {
	cfg, err := LoadWithDefaults("testdata/nonexistent.yaml")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	cfg.Leagues = []LeagueConfig{
		{Name: "premier league", ID: 39},
		{Name: "epl", ID: 39},
	}
	if err := Validate(cfg); err == nil {
		t.Error("expected validation error for duplicate league ids")
	}
}

// TestDurationHelpers tests duration and season derivation
func TestDurationHelpers(t *testing.T) {
	cfg := &Config{
		Provider: ProviderConfig{TimeoutSeconds: 30, Season: 0},
		Refresh:  RefreshConfig{IntervalHours: 8},
		Server:   ServerConfig{AnalysisCacheTTLSeconds: 300},
	}

	if cfg.ProviderTimeout() != 30*time.Second {
		t.Errorf("unexpected provider timeout %v", cfg.ProviderTimeout())
	}
	if cfg.RefreshInterval() != 8*time.Hour {
		t.Errorf("unexpected refresh interval %v", cfg.RefreshInterval())
	}
	if cfg.AnalysisCacheTTL() != 5*time.Minute {
		t.Errorf("unexpected analysis cache TTL %v", cfg.AnalysisCacheTTL())
	}
	if got := cfg.EffectiveSeason(); got != time.Now().UTC().Year() {
		t.Errorf("expected current year season, got %d", got)
	}

	cfg.Provider.Season = 2025
	if cfg.EffectiveSeason() != 2025 {
		t.Errorf("expected configured season to win, got %d", cfg.EffectiveSeason())
	}
}
