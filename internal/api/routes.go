package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(s.metricsMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(corsMiddleware(s.CORSOrigin))

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Handle("/metrics", s.Metrics.Handler())

	r.With(s.Limiter.Middleware("/send")).Post("/send", s.handleSendContact)

	r.Group(func(r chi.Router) {
		r.Use(s.visitorMiddleware)

		r.Get("/api/games", s.handleCatalog)
		r.Route("/api/games/{game}", func(r chi.Router) {
			r.Get("/menu", s.handleMenu)
			r.Get("/state", s.handleState)
			r.Get("/best", s.handleBestScore)
			r.Post("/start", s.handleStart)
			r.Post("/input", s.handleInput)
			r.Post("/retry", s.handleRetry)
			r.Post("/reset", s.handleReset)
		})
		r.Get("/api/scores", s.handleLeaderboard)
		r.Get("/api/stats", s.handleStats)
		r.Get("/api/results", s.handleResults)
	})

	r.Get("/ws/background", s.handleBackground)
	return r
}
