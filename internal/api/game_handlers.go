package api

import (
	"net/http"

	"github.com/vytor/funzone/internal/errors"
	"github.com/vytor/funzone/internal/games"
	"github.com/vytor/funzone/internal/logger"
)

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{"games": games.Catalog()})
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	visitor, err := requireVisitor(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	menu, err := s.GameService.Menu(r.Context(), visitor, gameParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, menu)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	visitor, err := requireVisitor(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	st, err := s.GameService.State(r.Context(), visitor, gameParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, st)
}

func (s *Server) handleBestScore(w http.ResponseWriter, r *http.Request) {
	visitor, err := requireVisitor(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	game := gameParam(r)
	key := r.URL.Query().Get("key")
	if key == "" {
		if d, ok := games.Describe(game); ok && len(d.Difficulties) == 0 {
			key = games.ScoreKey(game, games.Config{})
		} else {
			handleError(w, r, errors.NewBadRequestError("key required"))
			return
		}
	}

	rec, err := s.GameService.GetBestScore(r.Context(), visitor, game, key)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"key": key, "best": rec})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	visitor, err := requireVisitor(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var cfg games.Config
	if err := decodeJSON(r, &cfg); err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("start requested: difficulty=%s, mode=%s", cfg.Difficulty, cfg.Mode)

	st, err := s.GameService.StartGame(r.Context(), visitor, gameParam(r), cfg)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, st)
}

func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	visitor, err := requireVisitor(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var in games.Input
	if err := decodeJSON(r, &in); err != nil {
		handleError(w, r, err)
		return
	}

	res, err := s.GameService.SubmitInput(r.Context(), visitor, gameParam(r), in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	visitor, err := requireVisitor(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	st, err := s.GameService.Retry(r.Context(), visitor, gameParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, st)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	visitor, err := requireVisitor(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	st, err := s.GameService.Reset(r.Context(), visitor, gameParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, st)
}
