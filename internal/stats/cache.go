package stats

import "sync"

// snapshot is one complete league cache produced by a single refresh. It is
// never mutated after construction; replacement swaps the whole map.
type snapshot map[string]TeamStatistics

// Store caches the latest known-good statistics per league. Writers replace
// whole league snapshots, readers do point lookups; both may run concurrently.
// A failed refresh simply never reaches ReplaceLeague, so the previous
// snapshot stays servable indefinitely. There is no TTL and no eviction.
type Store struct {
	mu      sync.RWMutex
	leagues map[int]snapshot
}

// NewStore creates an empty statistics store.
func NewStore() *Store {
	return &Store{
		leagues: make(map[int]snapshot),
	}
}

// ReplaceLeague builds a fresh snapshot from records and atomically swaps it
// in for leagueID. Keys are normalized team names; if the provider returns
// duplicate normalized names the last record wins. An empty records slice is
// a valid snapshot and replaces the old one.
func (s *Store) ReplaceLeague(leagueID int, records []TeamStatistics) {
	snap := make(snapshot, len(records))
	for _, rec := range records {
		snap[NormalizeTeamName(rec.TeamName)] = rec
	}

	s.mu.Lock()
	s.leagues[leagueID] = snap
	s.mu.Unlock()
}

// Lookup returns the statistics for teamName in leagueID. The second return
// is false if the league has never been refreshed or the team is not in the
// current snapshot.
func (s *Store) Lookup(leagueID int, teamName string) (TeamStatistics, bool) {
	s.mu.RLock()
	snap, ok := s.leagues[leagueID]
	s.mu.RUnlock()

	if !ok {
		return TeamStatistics{}, false
	}
	rec, ok := snap[NormalizeTeamName(teamName)]
	return rec, ok
}

// HasLeague reports whether leagueID has at least one successful refresh
// behind it, even if that refresh returned zero teams.
func (s *Store) HasLeague(leagueID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.leagues[leagueID]
	return ok
}

// LeagueSize returns the number of teams in the current snapshot for
// leagueID, or 0 if the league was never refreshed.
func (s *Store) LeagueSize(leagueID int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.leagues[leagueID])
}

// Teams returns the records of the current snapshot for leagueID. The slice
// is a copy; order is unspecified.
func (s *Store) Teams(leagueID int) []TeamStatistics {
	s.mu.RLock()
	snap := s.leagues[leagueID]
	s.mu.RUnlock()

	if snap == nil {
		return nil
	}
	records := make([]TeamStatistics, 0, len(snap))
	for _, rec := range snap {
		records = append(records, rec)
	}
	return records
}
