// Package main provides the entry point for the match tips API server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchtips/internal/config"
	"github.com/yourusername/matchtips/internal/league"
	"github.com/yourusername/matchtips/internal/logger"
	"github.com/yourusername/matchtips/internal/metrics"
	"github.com/yourusername/matchtips/internal/provider"
	"github.com/yourusername/matchtips/internal/scheduler"
	"github.com/yourusername/matchtips/internal/server"
	"github.com/yourusername/matchtips/internal/stats"
	"github.com/yourusername/matchtips/internal/tips"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.LoadWithDefaults(os.Getenv("MATCHTIPS_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"leagues":     len(cfg.Leagues),
	}).Info("Match tips service starting")

	entries := make([]league.Entry, len(cfg.Leagues))
	for i, l := range cfg.Leagues {
		entries[i] = league.Entry{Label: l.Name, ID: l.ID}
	}
	registry := league.NewRegistry(entries)

	cache := stats.NewStore()
	providerClient := provider.New(&cfg.Provider, appLog)
	engine := tips.NewEngine()

	season := cfg.EffectiveSeason()
	// A league refresh fans out to one request per team; give a pass room
	// for a full top flight plus the roster call.
	leagueBudget := cfg.ProviderTimeout() * 25
	refresher := scheduler.NewRefresher(providerClient, cache, registry, season, leagueBudget, appLog)

	if err := refresher.Schedule(cfg.RefreshInterval()); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule refresh job")
	}
	if err := refresher.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start refresher")
	}

	if cfg.Refresh.EagerFirstPass {
		go func() {
			appLog.Info("Running eager first refresh pass")
			result := refresher.RunOnce(context.Background())
			appLog.WithField("result", result.String()).Info("Eager refresh pass completed")
		}()
	}

	if cfg.Metrics.Enabled {
		go serveMetrics(cfg, appLog)
	}

	apiServer := server.New(cfg, registry, cache, engine, appLog)

	errCh := make(chan error, 1)
	go func() {
		errCh <- apiServer.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		appLog.WithField("signal", sig.String()).Info("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			appLog.WithError(err).Error("API server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Error("Failed to shut down API server cleanly")
	}
	refresher.Stop()
	appLog.Info("Match tips service stopped")
}

// serveMetrics runs the Prometheus endpoint on its own port
func serveMetrics(cfg *config.Config, appLog *logrus.Logger) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())

	addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
	appLog.WithField("addr", addr).Info("Metrics server starting")
	if err := http.ListenAndServe(addr, mux); err != nil {
		appLog.WithError(err).Error("Metrics server failed")
	}
}
