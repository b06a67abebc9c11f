package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/groomingco/edge-voice-service/internal/session"
)

// HealthHandler serves the liveness endpoint and, when the live-call
// registry is wired, a small active-calls listing for operators.
type HealthHandler struct {
	store   session.Store
	monitor *session.Monitor
}

func NewHealthHandler(store session.Store, monitor *session.Monitor) *HealthHandler {
	return &HealthHandler{store: store, monitor: monitor}
}

// SetupHealthRoutes registers the liveness and active-calls routes.
func (h *HealthHandler) SetupHealthRoutes(router *mux.Router) {
	router.HandleFunc("/", h.HandleHealth).Methods("GET")
	router.HandleFunc("/calls", h.HandleActiveCalls).Methods("GET")
}

// HandleHealth returns a fixed liveness payload.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"message": "Edge brain running.",
	})
}

// HandleActiveCalls lists live calls. Local sessions always appear; the
// cross-instance view needs the Redis registry.
func (h *HealthHandler) HandleActiveCalls(w http.ResponseWriter, r *http.Request) {
	calls, err := h.monitor.ActiveCalls(r.Context())
	if err != nil {
		http.Error(w, "registry unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"local_sessions": h.store.Len(),
		"calls":          calls,
	})
}
