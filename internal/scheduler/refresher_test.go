package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/matchtips/internal/league"
	"github.com/yourusername/matchtips/internal/provider"
	"github.com/yourusername/matchtips/internal/stats"
)

// fakeProvider serves canned per-league results or errors.
type fakeProvider struct {
	results map[int][]stats.TeamStatistics
	errs    map[int]error
	calls   []int
}

func (f *fakeProvider) FetchLeagueStatistics(ctx context.Context, leagueID, season int) ([]stats.TeamStatistics, error) {
	f.calls = append(f.calls, leagueID)
	if err, ok := f.errs[leagueID]; ok {
		return nil, err
	}
	return f.results[leagueID], nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func testRegistry() *league.Registry {
	return league.NewRegistry([]league.Entry{
		{Label: "premier league", ID: 39},
		{Label: "la liga", ID: 140},
	})
}

// TestRunOncePopulatesAllLeagues covers the happy path of one pass
func TestRunOncePopulatesAllLeagues(t *testing.T) {
	fake := &fakeProvider{results: map[int][]stats.TeamStatistics{
		39:  {{TeamName: "Arsenal"}, {TeamName: "Chelsea"}},
		140: {{TeamName: "Barcelona"}},
	}}
	cache := stats.NewStore()
	r := NewRefresher(fake, cache, testRegistry(), 2026, time.Minute, quietLogger())

	result := r.RunOnce(context.Background())

	assert.Equal(t, 2, result.Refreshed)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 3, result.Teams)
	assert.Equal(t, []int{39, 140}, fake.calls)

	_, ok := cache.Lookup(39, "Arsenal")
	assert.True(t, ok)
	_, ok = cache.Lookup(140, "Barcelona")
	assert.True(t, ok)
}

// TestRunOnceFailureDoesNotAbortPass verifies one league's failure leaves the
// others refreshed and keeps the failed league's previous snapshot
func TestRunOnceFailureDoesNotAbortPass(t *testing.T) {
	cache := stats.NewStore()
	// Previous snapshot for the league that is about to fail.
	cache.ReplaceLeague(39, []stats.TeamStatistics{{TeamName: "Arsenal", MatchesPlayed: 10}})

	fake := &fakeProvider{
		results: map[int][]stats.TeamStatistics{
			140: {{TeamName: "Barcelona"}},
		},
		errs: map[int]error{39: provider.ErrTimeout},
	}
	r := NewRefresher(fake, cache, testRegistry(), 2026, time.Minute, quietLogger())

	result := r.RunOnce(context.Background())

	assert.Equal(t, 1, result.Refreshed)
	assert.Equal(t, 1, result.Failed)

	// Stale but available: the failed league still serves its old snapshot.
	old, ok := cache.Lookup(39, "Arsenal")
	require.True(t, ok)
	assert.Equal(t, 10, old.MatchesPlayed)

	_, ok = cache.Lookup(140, "Barcelona")
	assert.True(t, ok)
}

// TestRunOnceEmptySuccessReplacesSnapshot distinguishes a legitimate
// zero-team result from a failed fetch
func TestRunOnceEmptySuccessReplacesSnapshot(t *testing.T) {
	cache := stats.NewStore()
	cache.ReplaceLeague(39, []stats.TeamStatistics{{TeamName: "Arsenal"}})

	fake := &fakeProvider{results: map[int][]stats.TeamStatistics{
		39:  {},
		140: {},
	}}
	r := NewRefresher(fake, cache, testRegistry(), 2026, time.Minute, quietLogger())

	result := r.RunOnce(context.Background())
	assert.Equal(t, 2, result.Refreshed)

	// The league is still "ready", just empty now.
	assert.True(t, cache.HasLeague(39))
	_, ok := cache.Lookup(39, "Arsenal")
	assert.False(t, ok)
}

// TestScheduleAndLifecycle covers the cron wiring and the running-state
// guards
func TestScheduleAndLifecycle(t *testing.T) {
	fake := &fakeProvider{}
	r := NewRefresher(fake, stats.NewStore(), testRegistry(), 2026, time.Minute, quietLogger())

	require.Error(t, r.Start(), "start without a scheduled job must fail")

	require.NoError(t, r.Schedule(8*time.Hour))
	require.Error(t, r.Schedule(8*time.Hour), "double schedule must fail")

	require.NoError(t, r.Start())
	assert.True(t, r.IsRunning())
	assert.Error(t, r.Start(), "double start must fail")
	assert.False(t, r.NextRun().IsZero())

	r.Stop()
	assert.False(t, r.IsRunning())
	r.Stop() // idempotent
}
