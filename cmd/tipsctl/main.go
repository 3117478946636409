// Package main provides tipsctl, an operational CLI for the match tips service.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yourusername/matchtips/internal/config"
	"github.com/yourusername/matchtips/internal/league"
	"github.com/yourusername/matchtips/internal/logger"
	"github.com/yourusername/matchtips/internal/provider"
	"github.com/yourusername/matchtips/internal/scheduler"
	"github.com/yourusername/matchtips/internal/stats"
	"github.com/yourusername/matchtips/internal/tips"
)

var configPath string

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "tipsctl",
		Short:         "Operational CLI for the match tips service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("MATCHTIPS_CONFIG"), "path to config file")

	root.AddCommand(leaguesCmd(), refreshCmd(), analyzeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithDefaults(configPath)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildRegistry(cfg *config.Config) *league.Registry {
	entries := make([]league.Entry, len(cfg.Leagues))
	for i, l := range cfg.Leagues {
		entries[i] = league.Entry{Label: l.Name, ID: l.ID}
	}
	return league.NewRegistry(entries)
}

// leaguesCmd lists the configured league registry
func leaguesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leagues",
		Short: "List supported leagues",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			for _, e := range buildRegistry(cfg).Entries() {
				fmt.Printf("%-30s %d\n", e.Label, e.ID)
			}
			return nil
		},
	}
}

// refreshCmd runs a single refresh pass and prints its summary
func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Run one statistics refresh pass over every configured league",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
			cache := stats.NewStore()
			refresher := scheduler.NewRefresher(
				provider.New(&cfg.Provider, appLog),
				cache,
				buildRegistry(cfg),
				cfg.EffectiveSeason(),
				cfg.ProviderTimeout()*25,
				appLog,
			)

			result := refresher.RunOnce(cmd.Context())
			fmt.Println("Refresh pass:", result.String())
			if result.Refreshed == 0 && result.Failed > 0 {
				return fmt.Errorf("every league refresh failed")
			}
			return nil
		},
	}
}

// analyzeCmd fetches one league's statistics and analyzes a single fixture
func analyzeCmd() *cobra.Command {
	var leagueLabel string

	cmd := &cobra.Command{
		Use:   "analyze <home team> <away team>",
		Short: "Fetch fresh statistics and print tips for one fixture",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			registry := buildRegistry(cfg)
			leagueID, ok := registry.Resolve(leagueLabel)
			if !ok {
				return fmt.Errorf("league not found: %s", leagueLabel)
			}

			appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.ProviderTimeout()*25)
			defer cancel()

			records, err := provider.New(&cfg.Provider, appLog).
				FetchLeagueStatistics(ctx, leagueID, cfg.EffectiveSeason())
			if err != nil {
				return err
			}

			cache := stats.NewStore()
			cache.ReplaceLeague(leagueID, records)

			home, ok := cache.Lookup(leagueID, args[0])
			if !ok {
				return fmt.Errorf("team not found in league: %s", args[0])
			}
			away, ok := cache.Lookup(leagueID, args[1])
			if !ok {
				return fmt.Errorf("team not found in league: %s", args[1])
			}

			result, err := tips.NewEngine().Analyze(tips.FromStatistics(home), tips.FromStatistics(away))
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&leagueLabel, "league", "", "league label to analyze in")
	_ = cmd.MarkFlagRequired("league")
	return cmd
}
