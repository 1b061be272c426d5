package handlers

import (
	"net/http"

	"github.com/preston-bernstein/nfl-scores-service/internal/domain/season"
	"github.com/preston-bernstein/nfl-scores-service/internal/http/requestutil"
)

// Bracket serves the postseason bracket. Upstream failures yield an empty bracket.
func (h *Handler) Bracket(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.playoffs.Bracket(r.Context()), h.logger)
}

// Picture serves the playoff picture for seasonType, or for the current context when absent.
func (h *Handler) Picture(w http.ResponseWriter, r *http.Request) {
	var seasonType *season.Type
	if n := requestutil.IntParam(r.URL.Query(), "seasonType"); n != nil {
		st := season.Type(*n)
		seasonType = &st
	}
	p, err := h.playoffs.Picture(r.Context(), seasonType)
	if err != nil {
		h.writeUpstreamError(w, r, err, "Unexpected error building playoff picture")
		return
	}
	writeJSON(w, http.StatusOK, p, h.logger)
}

// News serves the latest headlines.
func (h *Handler) News(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if n := requestutil.IntParam(r.URL.Query(), "limit"); n != nil {
		limit = *n
	}
	list, err := h.news.Headlines(r.Context(), limit)
	if err != nil {
		h.writeUpstreamError(w, r, err, "Unexpected error fetching news")
		return
	}
	writeJSON(w, http.StatusOK, list, h.logger)
}
