package provider

import "strconv"

// API-Football v3 payload shapes, reduced to the fields this service reads.

// paging represents pagination info on every provider response
type paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// teamEntry represents a team inside the /teams roster response
type teamEntry struct {
	Team struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
}

// teamsResponse represents the /teams roster response
type teamsResponse struct {
	Results  int         `json:"results"`
	Paging   paging      `json:"paging"`
	Response []teamEntry `json:"response"`
}

// goalAverages carries per-match goal averages. The provider serializes them
// as strings ("1.4") and omits them when no data exists.
type goalAverages struct {
	Average struct {
		Home  string `json:"home"`
		Away  string `json:"away"`
		Total string `json:"total"`
	} `json:"average"`
}

// cardBucket is one minute-range bucket of the cards breakdown
type cardBucket struct {
	Total *int `json:"total"`
}

// teamStatisticsResponse represents the /teams/statistics response
type teamStatisticsResponse struct {
	Results  int    `json:"results"`
	Response struct {
		Team struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"team"`
		Fixtures struct {
			Played struct {
				Home  int `json:"home"`
				Away  int `json:"away"`
				Total int `json:"total"`
			} `json:"played"`
		} `json:"fixtures"`
		Goals struct {
			For     goalAverages `json:"for"`
			Against goalAverages `json:"against"`
		} `json:"goals"`
		Cards struct {
			Yellow map[string]cardBucket `json:"yellow"`
		} `json:"cards"`
	} `json:"response"`
}

// parseAverage converts a provider average string into an optional float.
// Empty or unparsable values mean "no data", never an error that aborts the
// record.
func parseAverage(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

// sumYellowCards totals the minute-range buckets of the cards breakdown
func sumYellowCards(buckets map[string]cardBucket) int {
	total := 0
	for _, b := range buckets {
		if b.Total != nil {
			total += *b.Total
		}
	}
	return total
}
