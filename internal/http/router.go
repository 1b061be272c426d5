package http

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/preston-bernstein/nfl-scores-service/internal/http/handlers"
	"github.com/preston-bernstein/nfl-scores-service/internal/http/middleware"
	"github.com/preston-bernstein/nfl-scores-service/internal/metrics"
)

// NewRouter registers the public and admin routes. admin may be nil. A
// positive requestTimeout puts a deadline on every request context.
func NewRouter(h *handlers.Handler, admin *handlers.AdminHandler, logger *slog.Logger, recorder *metrics.Recorder, requestTimeout time.Duration) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging(logger, recorder))
	r.Use(chimw.Recoverer)
	if requestTimeout > 0 {
		r.Use(chimw.Timeout(requestTimeout))
	}
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/", h.Index)
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Get("/games", h.GamesDeprecated)
	r.Get("/games/weekly", h.Weekly)
	r.Get("/games/weekly/context", h.WeeklyContext)
	r.Get("/games/weekly/navigation", h.Navigation)

	r.Get("/standings", h.Standings)
	r.Get("/standings/live", h.LiveStandings)
	r.Get("/standings/divisions", h.Divisions)
	r.Get("/teams", h.Teams)

	r.Get("/playoffs/bracket", h.Bracket)
	r.Get("/playoffs/picture", h.Picture)
	r.Get("/news", h.News)

	if admin != nil {
		r.Post("/admin/standings/refresh", admin.RefreshStandings)
	}
	return r
}
