package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/team-matches-service/internal/coordinator"
	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
	"github.com/preston-bernstein/team-matches-service/internal/http/requestutil"
	"github.com/preston-bernstein/team-matches-service/internal/logging"
)

// Refresher triggers an out-of-band refresh cycle.
type Refresher interface {
	Refresh(ctx context.Context) error
	Current() *matches.Snapshot
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	refresher Refresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token disables every admin call.
func NewAdminHandler(refresher Refresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

// Refresh runs one refresh cycle now. Guarded by a bearer token; 409 while a cycle is in flight.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	err := h.refresher.Refresh(r.Context())
	switch {
	case errors.Is(err, coordinator.ErrRefreshInProgress):
		writeError(w, r, http.StatusConflict, "refresh already in progress", logger)
		return
	case err != nil:
		logging.Warn(logger, "admin refresh failed", "error", err)
		writeError(w, r, http.StatusBadGateway, err.Error(), logger)
		return
	}

	resp := map[string]any{"status": "ok"}
	if snap := h.refresher.Current(); snap != nil {
		resp["fetched_at"] = snap.FetchedAt
		resp["counts"] = snap.Counts
	}
	logging.Info(logger, "admin refresh complete")
	writeJSON(w, http.StatusOK, resp, logger)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	want := "Bearer " + h.token
	got := r.Header.Get("Authorization")
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
