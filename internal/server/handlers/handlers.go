// Package handlers provides HTTP request handlers for the ultrasearch API.
package handlers

import (
	"context"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/ultrasearch/internal/server/cache"
	"github.com/agentstation/ultrasearch/internal/server/events"
	"github.com/agentstation/ultrasearch/internal/server/filter"
	"github.com/agentstation/ultrasearch/internal/server/sse"
	ws "github.com/agentstation/ultrasearch/internal/server/websocket"
	"github.com/agentstation/ultrasearch/pkg/catalog"
)

// Catalogs is the part of catalog.Store the handlers use.
type Catalogs interface {
	Instruments() []catalog.Instrument
	Snapshot(inst catalog.Instrument) (*catalog.Snapshot, error)
	Reload(ctx context.Context, inst catalog.Instrument) (*catalog.Snapshot, error)
	Infos() []catalog.Info
}

// Options carries the request defaults and link settings.
type Options struct {
	// PathPrefix is where the API is mounted, e.g. "/api/v1".
	PathPrefix string

	// LogBaseURL is the root of the nightly observation logs.
	LogBaseURL string

	Defaults filter.Defaults
}

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	catalogs       Catalogs
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	opts           Options
}

// New creates a new Handlers instance.
func New(
	catalogs Catalogs,
	cache *cache.Cache,
	broker *events.Broker,
	wsHub *ws.Hub,
	sseBroadcaster *sse.Broadcaster,
	upgrader websocket.Upgrader,
	logger *zerolog.Logger,
	opts Options,
) *Handlers {
	return &Handlers{
		catalogs:       catalogs,
		cache:          cache,
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader:       upgrader,
		logger:         logger,
		opts:           opts,
	}
}
