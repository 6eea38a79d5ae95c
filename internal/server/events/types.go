// Package events fans catalog events out to the streaming transports.
//
// The catalog store reports reloads through its hooks; the server publishes
// them to a Broker, which forwards every event to each registered
// Subscriber (WebSocket hub, SSE broadcaster).
package events

import "time"

// EventType represents the type of catalog event.
type EventType string

// Event types.
const (
	// CatalogReloaded is published after a snapshot has been swapped in.
	CatalogReloaded EventType = "catalog.reloaded"

	// ReloadFailed is published when a requested reload did not complete.
	ReloadFailed EventType = "catalog.reload_failed"

	// ClientConnected is sent by transports to a newly connected client.
	ClientConnected EventType = "client.connected"
)

// Event represents a catalog event with type, timestamp, and data.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}
