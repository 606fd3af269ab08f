package handler

import (
	"context"
	"log"
	"net/http"
	"time"
)

// rebuilds can outlive the request timeout, so they run detached.
const rebuildTimeout = 10 * time.Minute

// POST /admin/similarity/rebuild
func (h *Handler) TriggerRebuild(w http.ResponseWriter, r *http.Request) {
	if h.rebuilder == nil {
		writeError(w, http.StatusServiceUnavailable, "rebuild_unavailable",
			"Index rebuilds are not enabled on this instance")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), rebuildTimeout)
		defer cancel()
		if _, err := h.rebuilder.Rebuild(ctx); err != nil {
			log.Printf("[handler] manual rebuild failed: %v", err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "rebuild_started"})
}
