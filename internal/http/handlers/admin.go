package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nfl-scores-service/internal/http/requestutil"
	"github.com/preston-bernstein/nfl-scores-service/internal/ingest"
	"github.com/preston-bernstein/nfl-scores-service/internal/logging"
)

// Refresher runs one standings ingestion.
type Refresher interface {
	RunOnce(ctx context.Context) (ingest.Result, error)
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	refresher Refresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token rejects every request.
func NewAdminHandler(refresher Refresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

// RefreshStandings runs one ingestion and reports how many teams were written.
func (h *AdminHandler) RefreshStandings(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if !h.authorize(r) {
		logging.Warn(logger, "admin unauthorized", slog.String("client_ip", requestutil.ClientIP(r)))
		writeError(w, r, http.StatusUnauthorized, "unauthorized", logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "standings refresh not configured", logger)
		return
	}

	res, err := h.refresher.RunOnce(r.Context())
	if err != nil {
		if errors.Is(err, ingest.ErrNoStandings) {
			writeError(w, r, http.StatusBadGateway, "upstream returned no standings", logger)
			return
		}
		status, msg := upstreamStatus(err, "standings refresh failed")
		logging.Warn(logger, "admin standings refresh failed", logging.FieldStatusCode, status, "error", err)
		writeError(w, r, status, msg, logger)
		return
	}

	logging.Info(logger, "admin standings refreshed", logging.FieldCount, res.Teams)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"teams":      res.Teams,
		"fetched_at": res.FetchedAt,
	}, logger)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	token, ok := requestutil.BearerToken(r)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.token)) == 1
}
