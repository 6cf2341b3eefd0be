// internal/adapters/in/http/handlers/dashboard_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"padoca/internal/adapters/in/http/middleware"
	"padoca/internal/application/stats"
)

// DashboardHandler serves the aggregate snapshot, both as a one-shot
// JSON document and as a live SSE stream that pushes a fresh snapshot
// on every recompute.
type DashboardHandler struct {
	Registry *stats.Registry
}

func NewDashboardHandler(reg *stats.Registry) *DashboardHandler {
	return &DashboardHandler{Registry: reg}
}

func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")

	uid, ok := middleware.CurrentUID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	switch {
	case path == "/dashboard/stats" && r.Method == http.MethodGet:
		h.Stats(w, r, uid)
	case path == "/dashboard/stats/stream" && r.Method == http.MethodGet:
		h.Stream(w, r, uid)
	case path == "/dashboard/stats" || path == "/dashboard/stats/stream":
		methodNotAllowed(w)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type dashboardStatsDTO struct {
	stats.Snapshot
	Insight stats.Suggestion    `json:"insight"`
	Weekly  []stats.WeeklyPoint `json:"weekly"`
}

// Stats returns the current snapshot. On the very first call for a
// user the engine may still be waiting on its initial emission; give it
// a moment so the dashboard does not flash an empty state.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request, uid string) {
	engine, err := h.Registry.For(uid)
	if err != nil {
		log.Printf("[dashboard_handler] subscribe failed uid=%s err=%v", uid, err)
		writeError(w, http.StatusServiceUnavailable, "stats unavailable")
		return
	}

	select {
	case <-engine.Ready():
	case <-time.After(2 * time.Second):
		log.Printf("[dashboard_handler] first emission timeout uid=%s", uid)
	case <-r.Context().Done():
		return
	}

	snap := engine.Current()
	writeJSON(w, http.StatusOK, dashboardStatsDTO{
		Snapshot: snap,
		Insight:  stats.Insight(snap),
		Weekly:   stats.WeeklySeries(snap.TotalItems > 0),
	})
}

// Stream pushes snapshots as Server-Sent Events until the client
// disconnects.
func (h *DashboardHandler) Stream(w http.ResponseWriter, r *http.Request, uid string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "SSE not supported")
		return
	}

	engine, err := h.Registry.For(uid)
	if err != nil {
		log.Printf("[dashboard_handler] subscribe failed uid=%s err=%v", uid, err)
		writeError(w, http.StatusServiceUnavailable, "stats unavailable")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan stats.Snapshot, 10)
	engine.Listen(ch)
	defer engine.Drop(ch)

	log.Printf("[dashboard_handler] SSE client connected uid=%s", uid)

	// current state first, then updates
	h.writeEvent(w, engine.Current())
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			log.Printf("[dashboard_handler] SSE client disconnected uid=%s", uid)
			return
		case snap := <-ch:
			h.writeEvent(w, snap)
			flusher.Flush()
		}
	}
}

func (h *DashboardHandler) writeEvent(w http.ResponseWriter, snap stats.Snapshot) {
	payload := dashboardStatsDTO{
		Snapshot: snap,
		Insight:  stats.Insight(snap),
		Weekly:   stats.WeeklySeries(snap.TotalItems > 0),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[dashboard_handler] marshal snapshot failed: %v", err)
		return
	}
	fmt.Fprintf(w, "event: stats\ndata: %s\n\n", data)
}
