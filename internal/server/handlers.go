package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/yourusername/matchtips/internal/metrics"
	"github.com/yourusername/matchtips/internal/tips"
)

// AnalyzeRequest is the inbound analysis request payload.
type AnalyzeRequest struct {
	League   string `json:"league"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
}

// LeaguesResponse lists the supported league labels in registry order.
type LeaguesResponse struct {
	Leagues []string `json:"leagues"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
}

type readyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// handleAnalyze resolves the league and both teams against the cache and
// returns ranked tips. All failures here are user-facing conditions, not
// server errors.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.AnalysisRequestsTotal.WithLabelValues("bad_request").Inc()
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if strings.TrimSpace(req.League) == "" || strings.TrimSpace(req.HomeTeam) == "" || strings.TrimSpace(req.AwayTeam) == "" {
		metrics.AnalysisRequestsTotal.WithLabelValues("bad_request").Inc()
		writeError(w, http.StatusBadRequest, "league, home_team and away_team are required")
		return
	}

	leagueID, ok := s.registry.Resolve(req.League)
	if !ok {
		metrics.AnalysisRequestsTotal.WithLabelValues("league_not_found").Inc()
		writeError(w, http.StatusNotFound, "league not found: "+req.League)
		return
	}

	key := AnalysisKey{LeagueID: leagueID, HomeTeam: req.HomeTeam, AwayTeam: req.AwayTeam}
	if cached := s.analysisCache.Get(key); cached != nil {
		metrics.AnalysisRequestsTotal.WithLabelValues("ok").Inc()
		writeJSON(w, http.StatusOK, cached)
		return
	}

	if !s.cache.HasLeague(leagueID) {
		metrics.AnalysisRequestsTotal.WithLabelValues("league_not_ready").Inc()
		writeError(w, http.StatusServiceUnavailable, "league statistics not loaded yet, retry later")
		return
	}

	home, ok := s.cache.Lookup(leagueID, req.HomeTeam)
	if !ok {
		metrics.AnalysisRequestsTotal.WithLabelValues("team_not_found").Inc()
		writeError(w, http.StatusNotFound, "team not found in league: "+req.HomeTeam)
		return
	}
	away, ok := s.cache.Lookup(leagueID, req.AwayTeam)
	if !ok {
		metrics.AnalysisRequestsTotal.WithLabelValues("team_not_found").Inc()
		writeError(w, http.StatusNotFound, "team not found in league: "+req.AwayTeam)
		return
	}

	result, err := s.engine.Analyze(tips.FromStatistics(home), tips.FromStatistics(away))
	if err != nil {
		if errors.Is(err, tips.ErrNoAnalysisPossible) {
			metrics.AnalysisRequestsTotal.WithLabelValues("no_analysis").Inc()
			writeError(w, http.StatusUnprocessableEntity, "insufficient data to analyze this match")
			return
		}
		metrics.AnalysisRequestsTotal.WithLabelValues("error").Inc()
		s.logger.WithError(err).Error("Analysis failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.analysisCache.Set(key, result)
	metrics.AnalysisRequestsTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, result)
}

// handleLeagues lists supported leagues for the collaborator UI.
func (s *Server) handleLeagues(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LeaguesResponse{Leagues: s.registry.List()})
}

// handleHealth is the basic liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Service:   s.serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// handleReady reports ready once at least one league snapshot is present.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"cache": "empty"}
	ready := false

	for _, entry := range s.registry.Entries() {
		if s.cache.HasLeague(entry.ID) {
			checks["cache"] = "ok"
			ready = true
			break
		}
	}

	status := http.StatusServiceUnavailable
	resp := readyResponse{Status: "not_ready", Checks: checks}
	if ready {
		status = http.StatusOK
		resp.Status = "ok"
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
