// Package stats holds per-team season statistics and the in-memory cache
// that serves them to the analysis path.
package stats

import "strings"

// TeamStatistics represents one team's season statistics for one league.
// The goal averages are optional: the provider can legitimately omit them,
// and a missing average disables the markets that depend on it rather than
// failing the whole record.
type TeamStatistics struct {
	TeamName        string   `json:"team_name"`
	GoalsForAvg     *float64 `json:"goals_for_avg,omitempty"`
	GoalsAgainstAvg *float64 `json:"goals_against_avg,omitempty"`
	YellowCards     int      `json:"yellow_cards_total"`
	MatchesPlayed   int      `json:"matches_played"`
	Season          int      `json:"season"`
}

// NormalizeTeamName lower-cases and trims a team name so that user input and
// provider data key to the same cache entry.
func NormalizeTeamName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
