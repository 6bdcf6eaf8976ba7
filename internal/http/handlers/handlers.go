package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/team-matches-service/internal/coordinator"
	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
	"github.com/preston-bernstein/team-matches-service/internal/logging"
	"github.com/preston-bernstein/team-matches-service/internal/views"
)

// SnapshotSource is the read side of the coordinator.
type SnapshotSource interface {
	Current() *matches.Snapshot
	Status() coordinator.Status
}

type nowFunc func() time.Time

// Handler serves the sensor views over the latest snapshot.
type Handler struct {
	src    SnapshotSource
	team   string
	logger *slog.Logger
	now    nowFunc
}

// NewHandler constructs a Handler. team names the followed side in sensor attributes.
func NewHandler(src SnapshotSource, team string, logger *slog.Logger) *Handler {
	return &Handler{
		src:    src,
		team:   team,
		logger: logger,
		now:    time.Now,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the refresh loop is healthy enough to serve traffic.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	status := h.src.Status()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":       "ready",
			"last_success": status.LastSuccess,
			"interval":     status.Interval.String(),
		}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Sensors returns every sensor document.
func (h *Handler) Sensors(w http.ResponseWriter, r *http.Request) {
	doc := views.NewDocument(h.src.Current(), h.now(), h.team)
	writeJSON(w, http.StatusOK, doc, h.logger)
}

// Sensor returns one sensor by id.
func (h *Handler) Sensor(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sensor, ok := views.SensorByID(h.src.Current(), h.now(), h.team, id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "sensor not found", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, sensor, h.logger)
}

// Matches returns the aggregate match list, or 503 before the first snapshot.
func (h *Handler) Matches(w http.ResponseWriter, r *http.Request) {
	list, ok := views.List(h.src.Current())
	if !ok {
		writeError(w, r, http.StatusServiceUnavailable, "no snapshot yet", h.logger)
		return
	}
	logging.Debug(loggerFromContext(r, h.logger), "served match list", logging.FieldCount, list.Total)
	writeJSON(w, http.StatusOK, list, h.logger)
}
