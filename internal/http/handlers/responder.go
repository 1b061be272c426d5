package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nfl-scores-service/internal/http/middleware"
	"github.com/preston-bernstein/nfl-scores-service/internal/logging"
	"github.com/preston-bernstein/nfl-scores-service/internal/providers"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeUpstreamError maps err with upstreamStatus and logs it on the request logger.
func (h *Handler) writeUpstreamError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status, msg := upstreamStatus(err, fallback)
	logger := loggerFromContext(r, h.logger)
	logging.Warn(logger, "upstream request failed",
		logging.FieldStatusCode, status,
		"error", err,
	)
	writeError(w, r, status, msg, logger)
}

// upstreamStatus maps a fetch failure that had no cached fallback to a response.
// Timeouts give 504, upstream status and transport failures give 502, anything else 500.
func upstreamStatus(err error, fallback string) (int, string) {
	if errors.Is(err, providers.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, "ESPN API timeout"
	}
	if rlErr, ok := providers.AsRateLimitError(err); ok {
		code := rlErr.StatusCode
		if code == 0 {
			code = http.StatusTooManyRequests
		}
		return http.StatusBadGateway, fmt.Sprintf("ESPN API error: %d", code)
	}
	if sErr, ok := providers.AsStatusError(err); ok {
		return http.StatusBadGateway, fmt.Sprintf("ESPN API error: %d", sErr.StatusCode)
	}
	if errors.Is(err, providers.ErrTransport) {
		return http.StatusBadGateway, "ESPN API request failed"
	}
	return http.StatusInternalServerError, fallback
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
