package httpserver

import (
	"net/http"
	"strconv"

	"github.com/driftlab/beacon-analytics/internal/analytics"
	"github.com/driftlab/beacon-analytics/internal/reports"
)

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req := reports.LeaderboardRequest{
		Days:  queryInt(r, "days"),
		Limit: queryInt(r, "limit"),
	}
	switch r.URL.Query().Get("metric") {
	case "", string(analytics.MetricScore):
		req.Metric = analytics.MetricScore
	case string(analytics.MetricClicks):
		req.Metric = analytics.MetricClicks
	default:
		s.errorResponse(w, "unknown metric", http.StatusBadRequest)
		return
	}

	board, err := s.reports.Leaderboard(r.Context(), req)
	if err != nil {
		s.internalError(w, "failed to compute leaderboard", err)
		return
	}
	s.writeJSON(w, http.StatusOK, board)
}

func (s *Server) handleProductReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rollup, err := s.reports.ProductRollup(r.Context(), queryInt(r, "days"))
	if err != nil {
		s.internalError(w, "failed to compute product rollup", err)
		return
	}
	s.writeJSON(w, http.StatusOK, rollup)
}

func (s *Server) handleProviderReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rows, err := s.reports.ProviderBalances(r.Context(), queryInt(r, "days"))
	if err != nil {
		s.internalError(w, "failed to compute provider balances", err)
		return
	}
	s.writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleSequenceReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	groups, err := s.reports.ContentSequences(r.Context())
	if err != nil {
		s.internalError(w, "failed to group content sequences", err)
		return
	}
	s.writeJSON(w, http.StatusOK, groups)
}

// queryInt parses an optional integer query parameter; malformed or
// missing values fall back to zero.
func queryInt(r *http.Request, name string) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
