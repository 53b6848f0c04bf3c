package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/heartmarshall/pidgin-backend/internal/service/translation/phraseindex"
)

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// indexStatus reports the state of the translation engine.
type indexStatus interface {
	Loaded() bool
	Stats() (phraseindex.Stats, error)
	RemoteEnabled() bool
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	index   indexStatus
	db      dbPinger
	version string
}

// NewHealthHandler creates a HealthHandler. db may be nil when phrases are not
// stored in Postgres.
func NewHealthHandler(index indexStatus, db dbPinger, version string) *HealthHandler {
	return &HealthHandler{index: index, db: db, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string             `json:"status"`
	Latency string             `json:"latency,omitempty"`
	Index   *phraseindex.Stats `json:"index,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 200 once the phrase index is loaded and the
// database (if any) answers, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ready := h.index.Loaded()
	if ready && h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			ready = false
		}
	}

	if !ready {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "down",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check: index stats, DB latency, remote
// translator presence and version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	components := make(map[string]CompStatus)
	overallStatus := "ok"

	if stats, err := h.index.Stats(); err != nil {
		components["phrase_index"] = CompStatus{Status: "down"}
		overallStatus = "down"
	} else {
		components["phrase_index"] = CompStatus{Status: "ok", Index: &stats}
	}

	if h.db != nil {
		start := time.Now()
		err := h.db.Ping(ctx)
		latency := time.Since(start)

		if err != nil {
			components["database"] = CompStatus{Status: "down"}
			overallStatus = "down"
		} else {
			components["database"] = CompStatus{
				Status:  "ok",
				Latency: latency.String(),
			}
		}
	}

	remote := "disabled"
	if h.index.RemoteEnabled() {
		remote = "enabled"
	}
	components["remote_translator"] = CompStatus{Status: remote}

	status := http.StatusOK
	if overallStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overallStatus,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}
