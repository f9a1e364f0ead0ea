// Package api exposes the games, scores, contact relay and background stream
// over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/funzone/internal/background"
	"github.com/vytor/funzone/internal/errors"
	"github.com/vytor/funzone/internal/games"
	"github.com/vytor/funzone/internal/metrics"
	"github.com/vytor/funzone/internal/rng"
	"github.com/vytor/funzone/internal/scheduler"
	"github.com/vytor/funzone/internal/services"
)

// ReadyCheck probes one dependency for /ready.
type ReadyCheck func(ctx context.Context) error

// BackgroundConfig drives the /ws/background stream.
type BackgroundConfig struct {
	Options   background.Options
	FPS       int
	Scheduler scheduler.Scheduler
	NewSource func() rng.Source
	// Done closes every open stream when the server shuts down; hijacked
	// connections are not tracked by http.Server.Shutdown.
	Done <-chan struct{}
}

type Server struct {
	GameService    services.GameService
	StatsService   services.StatsService
	ContactService services.ContactService
	Metrics        *metrics.Metrics
	Limiter        *RateLimiter
	ReadyChecks    map[string]ReadyCheck
	Background     BackgroundConfig
	CORSOrigin     string
	SecureCookies  bool
	ReadyTimeout   time.Duration
}

func gameParam(r *http.Request) games.ID {
	return games.ID(chi.URLParam(r, "game"))
}

func requireVisitor(r *http.Request) (string, error) {
	v := visitorFromContext(r.Context())
	if v == "" {
		return "", errors.NewBadRequestError("missing visitor")
	}
	return v, nil
}
