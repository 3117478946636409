package stats

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func avg(v float64) *float64 { return &v }

// TestReplaceLeagueLookupRoundTrip verifies a record survives the cache
// exactly as supplied
func TestReplaceLeagueLookupRoundTrip(t *testing.T) {
	store := NewStore()

	rec := TeamStatistics{
		TeamName:        "Manchester City",
		GoalsForAvg:     avg(2.4),
		GoalsAgainstAvg: avg(0.9),
		YellowCards:     38,
		MatchesPlayed:   20,
		Season:          2026,
	}
	store.ReplaceLeague(39, []TeamStatistics{rec})

	got, ok := store.Lookup(39, "Manchester City")
	require.True(t, ok)
	assert.Equal(t, rec, got)
}

// TestLookupNormalizesTeamName covers casing and spacing differences between
// user input and provider data
func TestLookupNormalizesTeamName(t *testing.T) {
	store := NewStore()
	store.ReplaceLeague(39, []TeamStatistics{{TeamName: "Arsenal", MatchesPlayed: 10}})

	_, ok := store.Lookup(39, "  ARSENAL ")
	assert.True(t, ok)
}

// TestLookupUnknownLeague verifies a never-refreshed league is a miss, not a
// crash
func TestLookupUnknownLeague(t *testing.T) {
	store := NewStore()

	_, ok := store.Lookup(999, "Arsenal")
	assert.False(t, ok)
	assert.False(t, store.HasLeague(999))
	assert.Equal(t, 0, store.LeagueSize(999))
	assert.Nil(t, store.Teams(999))
}

// TestEmptySnapshotDistinctFromNeverRefreshed pins the difference between a
// successful empty refresh and no refresh at all. A failed fetch never
// reaches ReplaceLeague, so the previous snapshot stays in place.
func TestEmptySnapshotDistinctFromNeverRefreshed(t *testing.T) {
	store := NewStore()
	assert.False(t, store.HasLeague(61))

	// A legitimate zero-team result replaces whatever was there.
	store.ReplaceLeague(61, []TeamStatistics{{TeamName: "PSG"}})
	store.ReplaceLeague(61, nil)

	assert.True(t, store.HasLeague(61))
	assert.Equal(t, 0, store.LeagueSize(61))
	_, ok := store.Lookup(61, "PSG")
	assert.False(t, ok)
}

// TestDuplicateNormalizedNamesLastWins covers the duplicate-key rule
func TestDuplicateNormalizedNamesLastWins(t *testing.T) {
	store := NewStore()
	store.ReplaceLeague(78, []TeamStatistics{
		{TeamName: "Bayern ", MatchesPlayed: 1},
		{TeamName: "bayern", MatchesPlayed: 2},
	})

	got, ok := store.Lookup(78, "Bayern")
	require.True(t, ok)
	assert.Equal(t, 2, got.MatchesPlayed)
	assert.Equal(t, 1, store.LeagueSize(78))
}

// TestConcurrentReplaceAndLookup interleaves whole-snapshot writes with
// reads and asserts every observation is internally consistent: all records
// of one read belong to the same snapshot generation.
func TestConcurrentReplaceAndLookup(t *testing.T) {
	store := NewStore()
	const teams = 8
	const generations = 200

	buildSnapshot := func(gen int) []TeamStatistics {
		records := make([]TeamStatistics, teams)
		for i := range records {
			records[i] = TeamStatistics{
				TeamName:      fmt.Sprintf("team %d", i),
				MatchesPlayed: gen,
				Season:        gen,
			}
		}
		return records
	}
	store.ReplaceLeague(1, buildSnapshot(0))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for gen := 1; gen <= generations; gen++ {
			store.ReplaceLeague(1, buildSnapshot(gen))
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < generations; i++ {
				records := store.Teams(1)
				if len(records) == 0 {
					t.Error("observed empty snapshot during replacement")
					return
				}
				gen := records[0].Season
				for _, rec := range records {
					if rec.Season != gen {
						t.Errorf("observed mixed snapshot: generation %d and %d", gen, rec.Season)
						return
					}
				}
			}
		}()
	}

	wg.Wait()
}
