package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"mediapulse/internal/session"
)

// HealthHandler serves liveness and readiness information.
type HealthHandler struct {
	store     *session.Store
	version   string
	startedAt time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store *session.Store, version string) *HealthHandler {
	return &HealthHandler{
		store:     store,
		version:   version,
		startedAt: time.Now().UTC(),
	}
}

// ServeHTTP handles GET /healthz.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
	}
	if ds, err := h.store.Current(); err == nil {
		status["dataset"] = map[string]interface{}{
			"id":          ds.ID,
			"records":     ds.Len(),
			"uploaded_at": ds.UploadedAt,
		}
	}
	render.JSON(w, r, status)
}
