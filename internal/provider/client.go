package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchtips/internal/config"
	"github.com/yourusername/matchtips/internal/metrics"
	"github.com/yourusername/matchtips/internal/stats"
)

// Client fetches per-team season statistics from API-Football. It performs a
// single attempt per request; retry policy lives with the caller, and the
// refresh scheduler deliberately has none.
type Client struct {
	http    *RateLimitedHTTPClient
	baseURL string
	host    string
	apiKey  string
	timeout time.Duration
	logger  *logrus.Logger
}

// New creates a provider client from configuration. Host is normally a bare
// hostname; a full URL is accepted so tests can point at a local server.
func New(cfg *config.ProviderConfig, logger *logrus.Logger) *Client {
	httpClient := NewRateLimitedHTTPClient(HTTPClientConfig{
		Timeout:            time.Duration(cfg.TimeoutSeconds) * time.Second,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	}, logger)

	baseURL := cfg.Host
	host := cfg.Host
	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	} else if u, err := url.Parse(baseURL); err == nil {
		host = u.Host
	}

	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		host:    host,
		apiKey:  cfg.APIKey,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		logger:  logger,
	}
}

// FetchLeagueStatistics retrieves the statistics of every team in a league
// for one season. The roster call must succeed; a failed per-team statistics
// call only omits that team from the result.
func (c *Client) FetchLeagueStatistics(ctx context.Context, leagueID, season int) ([]stats.TeamStatistics, error) {
	roster, err := c.fetchRoster(ctx, leagueID, season)
	if err != nil {
		return nil, err
	}

	records := make([]stats.TeamStatistics, 0, len(roster))
	for _, entry := range roster {
		rec, err := c.fetchTeamStatistics(ctx, leagueID, season, entry.Team.ID)
		if err != nil {
			c.logger.WithError(err).WithFields(logrus.Fields{
				"league": leagueID,
				"team":   entry.Team.Name,
			}).Warn("Skipping team with failed statistics fetch")
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// fetchRoster retrieves the list of teams registered in a league/season
func (c *Client) fetchRoster(ctx context.Context, leagueID, season int) ([]teamEntry, error) {
	query := url.Values{}
	query.Set("league", fmt.Sprintf("%d", leagueID))
	query.Set("season", fmt.Sprintf("%d", season))

	var payload teamsResponse
	if err := c.getJSON(ctx, "/teams", query, &payload); err != nil {
		return nil, newError("teams", leagueID, err)
	}

	return payload.Response, nil
}

// fetchTeamStatistics retrieves and converts one team's season statistics
func (c *Client) fetchTeamStatistics(ctx context.Context, leagueID, season, teamID int) (stats.TeamStatistics, error) {
	query := url.Values{}
	query.Set("league", fmt.Sprintf("%d", leagueID))
	query.Set("season", fmt.Sprintf("%d", season))
	query.Set("team", fmt.Sprintf("%d", teamID))

	var payload teamStatisticsResponse
	if err := c.getJSON(ctx, "/teams/statistics", query, &payload); err != nil {
		return stats.TeamStatistics{}, newError("teams/statistics", leagueID, err)
	}

	resp := payload.Response
	return stats.TeamStatistics{
		TeamName:        resp.Team.Name,
		GoalsForAvg:     parseAverage(resp.Goals.For.Average.Total),
		GoalsAgainstAvg: parseAverage(resp.Goals.Against.Average.Total),
		YellowCards:     sumYellowCards(resp.Cards.Yellow),
		MatchesPlayed:   resp.Fixtures.Played.Total,
		Season:          season,
	}, nil
}

// getJSON performs one GET round trip with the per-call timeout and decodes
// the body into out
func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, query.Encode())

	header := http.Header{}
	header.Set("x-rapidapi-host", c.host)
	header.Set("x-rapidapi-key", c.apiKey)

	start := time.Now()
	resp, err := c.http.Get(callCtx, u, header)
	metrics.ProviderRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrBadResponse, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	return nil
}

// classifyTransportError maps a transport fault onto the fetch error taxonomy
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}
