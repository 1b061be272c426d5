package handlers

import (
	"errors"
	"net/http"

	appstandings "github.com/preston-bernstein/nfl-scores-service/internal/app/standings"
	"github.com/preston-bernstein/nfl-scores-service/internal/logging"
)

// Standings serves the ingested standings file.
func (h *Handler) Standings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.standings.Cached()
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, rows, h.logger)
	case errors.Is(err, appstandings.ErrUnavailable):
		writeError(w, r, http.StatusServiceUnavailable, "Standings data not available - cache file missing", h.logger)
	default:
		logging.Error(loggerFromContext(r, h.logger), "standings file unreadable", err)
		writeError(w, r, http.StatusInternalServerError, "Standings cache is corrupted", h.logger)
	}
}

// LiveStandings serves standings straight from upstream, cached.
func (h *Handler) LiveStandings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.standings.Live(r.Context())
	if err != nil {
		h.writeUpstreamError(w, r, err, "Unexpected error fetching standings")
		return
	}
	writeJSON(w, http.StatusOK, rows, h.logger)
}

// Divisions serves live standings grouped by conference and division, with seeds.
func (h *Handler) Divisions(w http.ResponseWriter, r *http.Request) {
	d, err := h.standings.Divisions(r.Context())
	if err != nil {
		h.writeUpstreamError(w, r, err, "Unexpected error fetching standings")
		return
	}
	writeJSON(w, http.StatusOK, d, h.logger)
}

// Teams serves the team list. It never fails.
func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.teams.Teams(r.Context()), h.logger)
}
