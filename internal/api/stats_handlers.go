package api

import (
	"net/http"
	"strconv"

	"github.com/vytor/funzone/internal/logger"
	"github.com/vytor/funzone/internal/models"
)

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	visitor, err := requireVisitor(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	entries, err := s.StatsService.GetLeaderboard(r.Context(), visitor)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"scores": entries})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	visitor, err := requireVisitor(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	stats, err := s.StatsService.GetVisitorStats(r.Context(), visitor)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	visitor, err := requireVisitor(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	q := r.URL.Query()
	page := 1
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = p
	}

	perPage := 25
	switch q.Get("per_page") {
	case "10":
		perPage = 10
	case "50":
		perPage = 50
	case "100":
		perPage = 100
	}

	log.Debug("fetching results: page=%d, per_page=%d", page, perPage)

	results, err := s.StatsService.ListResults(r.Context(), models.ResultFilter{
		VisitorID: visitor,
		GameID:    q.Get("game"),
		Limit:     perPage,
		Offset:    (page - 1) * perPage,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"results":  results,
		"page":     page,
		"per_page": perPage,
	})
}
