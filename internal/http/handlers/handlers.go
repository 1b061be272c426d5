package handlers

import (
	"context"
	"log/slog"
	"net/http"

	appstandings "github.com/preston-bernstein/nfl-scores-service/internal/app/standings"
	domaingames "github.com/preston-bernstein/nfl-scores-service/internal/domain/games"
	domainnews "github.com/preston-bernstein/nfl-scores-service/internal/domain/news"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/playoffs"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/season"
	domainstandings "github.com/preston-bernstein/nfl-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/nfl-scores-service/internal/domain/teams"
	"github.com/preston-bernstein/nfl-scores-service/internal/ingest"
)

// ServiceName is reported by the index route.
const ServiceName = "nfl-scores-service"

// Endpoints lists the public routes shown by the index route.
var Endpoints = []string{
	"/games/weekly",
	"/games/weekly/context",
	"/games/weekly/navigation",
	"/standings",
	"/standings/live",
	"/standings/divisions",
	"/teams",
	"/playoffs/bracket",
	"/playoffs/picture",
	"/news",
}

// GamesService serves weekly scoreboards and navigation.
type GamesService interface {
	Weekly(ctx context.Context, q season.Query) ([]domaingames.Game, error)
	Context(ctx context.Context, q season.Query) (season.Context, error)
	Navigation(q season.Query) season.Links
	Step(q season.Query, d season.Direction) season.Context
}

// TeamsService serves the team list.
type TeamsService interface {
	Teams(ctx context.Context) []teams.Team
}

// StandingsService serves file-backed and live standings.
type StandingsService interface {
	Cached() ([]domainstandings.Row, error)
	Live(ctx context.Context) ([]domainstandings.Row, error)
	Divisions(ctx context.Context) (appstandings.Divisions, error)
}

// PlayoffsService serves the bracket and the playoff picture.
type PlayoffsService interface {
	Bracket(ctx context.Context) playoffs.Bracket
	Picture(ctx context.Context, seasonType *season.Type) (playoffs.Picture, error)
}

// NewsService serves headlines.
type NewsService interface {
	Headlines(ctx context.Context, limit int) ([]domainnews.Headline, error)
}

// Services bundles what the public routes read from.
type Services struct {
	Games     GamesService
	Teams     TeamsService
	Standings StandingsService
	Playoffs  PlayoffsService
	News      NewsService
}

// Handler wires HTTP routes to the application services.
type Handler struct {
	games     GamesService
	teams     TeamsService
	standings StandingsService
	playoffs  PlayoffsService
	news      NewsService
	logger    *slog.Logger
	statusFn  func() ingest.Status
}

// NewHandler constructs a Handler. statusFn may be nil when no ingestion loop runs in-process.
func NewHandler(svcs Services, logger *slog.Logger, statusFn func() ingest.Status) *Handler {
	return &Handler{
		games:     svcs.Games,
		teams:     svcs.Teams,
		standings: svcs.Standings,
		playoffs:  svcs.Playoffs,
		news:      svcs.News,
		logger:    logger,
		statusFn:  statusFn,
	}
}

// Index describes the service.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service":   ServiceName,
		"status":    "ok",
		"endpoints": Endpoints,
	}, h.logger)
}

// Health reports liveness. A cancelled request context means the server is draining.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness from the in-process ingestion status.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// NotFound answers unknown routes with the JSON error shape.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed answers known routes hit with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
}
