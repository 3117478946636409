// Package scheduler keeps the statistics cache populated on a fixed interval,
// independently of request handling.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchtips/internal/league"
	"github.com/yourusername/matchtips/internal/metrics"
	"github.com/yourusername/matchtips/internal/stats"
)

// Provider fetches the full per-team statistics table for one league/season.
type Provider interface {
	FetchLeagueStatistics(ctx context.Context, leagueID, season int) ([]stats.TeamStatistics, error)
}

// PassResult summarizes one refresh pass over the registry.
type PassResult struct {
	Refreshed int
	Failed    int
	Teams     int
}

// String returns a human-readable pass summary
func (r PassResult) String() string {
	return fmt.Sprintf("refreshed=%d failed=%d teams=%d", r.Refreshed, r.Failed, r.Teams)
}

// Refresher runs the recurring statistics refresh. Every fetch failure is
// non-fatal: the affected league keeps its previous snapshot and the pass
// moves on to the next league.
type Refresher struct {
	cron         *cron.Cron
	provider     Provider
	cache        *stats.Store
	registry     *league.Registry
	season       int
	leagueBudget time.Duration
	logger       *logrus.Logger

	mu        sync.RWMutex
	isRunning bool
	jobID     cron.EntryID
	scheduled bool
}

// NewRefresher creates a refresher. leagueBudget caps how long one league's
// fetch may run inside a pass; it should comfortably exceed the provider's
// per-call timeout times the league's team count.
func NewRefresher(provider Provider, cache *stats.Store, registry *league.Registry, season int, leagueBudget time.Duration, logger *logrus.Logger) *Refresher {
	return &Refresher{
		cron:         cron.New(cron.WithLocation(time.UTC)),
		provider:     provider,
		cache:        cache,
		registry:     registry,
		season:       season,
		leagueBudget: leagueBudget,
		logger:       logger,
	}
}

// Schedule registers the recurring refresh job at the given interval
func (r *Refresher) Schedule(interval time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return fmt.Errorf("cannot schedule job while refresher is running")
	}
	if r.scheduled {
		return fmt.Errorf("refresh job already scheduled")
	}

	jobID, err := r.cron.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		result := r.RunOnce(context.Background())
		r.logger.WithField("result", result.String()).Info("Scheduled refresh pass completed")
	})
	if err != nil {
		return fmt.Errorf("failed to add refresh job: %w", err)
	}

	r.jobID = jobID
	r.scheduled = true
	r.logger.WithField("interval", interval.String()).Info("Refresh job scheduled")
	return nil
}

// RunOnce performs one refresh pass over every configured league. One
// league's failure never aborts the pass for the others.
func (r *Refresher) RunOnce(ctx context.Context) PassResult {
	var result PassResult

	for _, entry := range r.registry.Entries() {
		leagueCtx, cancel := context.WithTimeout(ctx, r.leagueBudget)
		records, err := r.provider.FetchLeagueStatistics(leagueCtx, entry.ID, r.season)
		cancel()

		if err != nil {
			result.Failed++
			metrics.LeagueRefreshFailuresTotal.WithLabelValues(entry.Label).Inc()
			r.logger.WithError(err).WithFields(logrus.Fields{
				"league":    entry.Label,
				"league_id": entry.ID,
			}).Warn("League refresh failed; keeping previous snapshot")
			continue
		}

		r.cache.ReplaceLeague(entry.ID, records)
		result.Refreshed++
		result.Teams += len(records)
		metrics.LeagueRefreshTotal.WithLabelValues(entry.Label).Inc()
		metrics.CachedTeams.WithLabelValues(entry.Label).Set(float64(len(records)))
		r.logger.WithFields(logrus.Fields{
			"league": entry.Label,
			"teams":  len(records),
			"season": r.season,
		}).Info("League snapshot replaced")
	}

	metrics.RefreshPassesTotal.Inc()
	return result
}

// Start starts the cron loop. An eager first pass, when wanted, is the
// caller's job; Start only arms the timer.
func (r *Refresher) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return fmt.Errorf("refresher is already running")
	}
	if !r.scheduled {
		return fmt.Errorf("no refresh job scheduled")
	}

	r.cron.Start()
	r.isRunning = true
	r.logger.Info("Refresher started")
	return nil
}

// Stop gracefully stops the cron loop, waiting for an in-flight pass to
// finish rather than killing it mid-write.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isRunning {
		return
	}

	<-r.cron.Stop().Done()
	r.isRunning = false
	r.logger.Info("Refresher stopped")
}

// IsRunning returns whether the refresher is currently running
func (r *Refresher) IsRunning() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isRunning
}

// NextRun returns the time of the next scheduled pass, or the zero time when
// not running
func (r *Refresher) NextRun() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.isRunning || !r.scheduled {
		return time.Time{}
	}
	entry := r.cron.Entry(r.jobID)
	if !entry.Valid() {
		return time.Time{}
	}
	return entry.Next
}
