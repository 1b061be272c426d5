package handlers

import (
	"net/http"

	"github.com/preston-bernstein/nfl-scores-service/internal/domain/season"
	"github.com/preston-bernstein/nfl-scores-service/internal/http/requestutil"
	"github.com/preston-bernstein/nfl-scores-service/internal/logging"
)

// GamesDeprecated answers the retired /games route.
func (h *Handler) GamesDeprecated(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotImplemented, "endpoint deprecated - use /games/weekly", h.logger)
}

// Weekly returns the games of the requested week.
func (h *Handler) Weekly(w http.ResponseWriter, r *http.Request) {
	q := requestutil.SeasonQuery(r.URL.Query())
	list, err := h.games.Weekly(r.Context(), q)
	if err != nil {
		h.writeUpstreamError(w, r, err, "Unexpected error fetching games")
		return
	}
	logging.Debug(loggerFromContext(r, h.logger), "served weekly games", logging.FieldCount, len(list))
	writeJSON(w, http.StatusOK, list, h.logger)
}

// WeeklyContext returns the season context upstream reports for the query.
func (h *Handler) WeeklyContext(w http.ResponseWriter, r *http.Request) {
	q := requestutil.SeasonQuery(r.URL.Query())
	c, err := h.games.Context(r.Context(), q)
	if err != nil {
		h.writeUpstreamError(w, r, err, "Unexpected error fetching context")
		return
	}
	writeJSON(w, http.StatusOK, c, h.logger)
}

// Navigation returns both neighbouring weeks, or one of them when direction is given.
func (h *Handler) Navigation(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	q := requestutil.SeasonQuery(values)
	if !values.Has("direction") {
		writeJSON(w, http.StatusOK, h.games.Navigation(q), h.logger)
		return
	}
	d, ok := season.ParseDirection(values.Get("direction"))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Direction must be 'next' or 'prev'", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.games.Step(q, d), h.logger)
}
