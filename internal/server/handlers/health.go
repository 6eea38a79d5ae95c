package handlers

import (
	"net/http"

	"github.com/agentstation/ultrasearch/internal/server/response"
)

// HandleHealth handles GET /health (liveness).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "ultrasearch-api",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready. The server is ready once every
// configured catalog has a snapshot.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	var missing []string
	for _, inst := range h.catalogs.Instruments() {
		if _, err := h.catalogs.Snapshot(inst); err != nil {
			missing = append(missing, inst.String())
		}
	}
	if len(missing) > 0 {
		response.JSON(w, http.StatusServiceUnavailable, response.Response{
			Data: map[string]any{"status": "loading", "missing": missing},
			Error: &response.Error{
				Code:    "SERVICE_UNAVAILABLE",
				Message: "Catalogs not loaded",
			},
		})
		return
	}

	response.OK(w, map[string]any{
		"status":   "ready",
		"catalogs": h.catalogs.Infos(),
		"cache": map[string]any{
			"items": h.cache.ItemCount(),
		},
		"websocket_clients": h.wsHub.ClientCount(),
		"sse_clients":       h.sseBroadcaster.ClientCount(),
	})
}
