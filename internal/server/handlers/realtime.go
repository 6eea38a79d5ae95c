package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/ultrasearch/internal/server/events"
	ws "github.com/agentstation/ultrasearch/internal/server/websocket"
)

// HandleWebSocket handles WebSocket connections at /api/v1/updates/ws.
// Clients receive a greeting followed by every catalog event.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written an HTTP error.
		h.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	id := uuid.NewString()
	client := ws.NewClient(id, h.wsHub, conn, ws.Message{
		Type:      string(events.ClientConnected),
		Timestamp: time.Now(),
		Data: map[string]any{
			"client_id": id,
			"catalogs":  h.catalogs.Infos(),
		},
	})
	h.wsHub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

// HandleSSE handles Server-Sent Events at /api/v1/updates.
func (h *Handlers) HandleSSE(w http.ResponseWriter, r *http.Request) {
	h.sseBroadcaster.ServeHTTP(w, r)
}
