package http

import (
	nethttp "net/http"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/team-matches-service/internal/http/handlers"
)

// NewRouter registers the HTTP routes. admin and stream are optional.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler, stream nethttp.Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", handler.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", handler.Ready).Methods(nethttp.MethodGet)
	r.HandleFunc("/matches", handler.Matches).Methods(nethttp.MethodGet)
	r.HandleFunc("/sensors", handler.Sensors).Methods(nethttp.MethodGet)
	// Registered before /sensors/{id} so the id route does not capture it.
	if stream != nil {
		r.Handle("/sensors/stream", stream).Methods(nethttp.MethodGet)
	}
	r.HandleFunc("/sensors/{id}", handler.Sensor).Methods(nethttp.MethodGet)
	if admin != nil {
		r.HandleFunc("/admin/refresh", admin.Refresh).Methods(nethttp.MethodPost)
	}
	r.NotFoundHandler = nethttp.HandlerFunc(handlers.NotFound)
	r.MethodNotAllowedHandler = nethttp.HandlerFunc(handlers.MethodNotAllowed)
	return r
}
