package tips

import "github.com/yourusername/matchtips/internal/stats"

// FromStatistics builds a TeamInput from a cached statistics record. The
// display name is the provider's canonical team name, not the user's query
// string.
func FromStatistics(rec stats.TeamStatistics) TeamInput {
	return TeamInput{
		Name:            rec.TeamName,
		GoalsForAvg:     rec.GoalsForAvg,
		GoalsAgainstAvg: rec.GoalsAgainstAvg,
		YellowCards:     rec.YellowCards,
		MatchesPlayed:   rec.MatchesPlayed,
	}
}
