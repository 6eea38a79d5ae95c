// Package server provides the HTTP API over the observation catalogs.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/ultrasearch/internal/server/cache"
	"github.com/agentstation/ultrasearch/internal/server/events"
	"github.com/agentstation/ultrasearch/internal/server/events/adapters"
	"github.com/agentstation/ultrasearch/internal/server/filter"
	"github.com/agentstation/ultrasearch/internal/server/handlers"
	"github.com/agentstation/ultrasearch/internal/server/middleware"
	"github.com/agentstation/ultrasearch/internal/server/sse"
	ws "github.com/agentstation/ultrasearch/internal/server/websocket"
	"github.com/agentstation/ultrasearch/pkg/catalog"
	"github.com/agentstation/ultrasearch/pkg/constants"
	"github.com/agentstation/ultrasearch/pkg/errors"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	store          *catalog.Store
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	rateLimiter    *middleware.RateLimiter
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
	startTime      time.Time
}

// New creates a server over store. Call Start to run the background
// services before serving requests.
func New(store *catalog.Store, cfg Config, logger *zerolog.Logger) *Server {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = constants.CacheTTL
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	sseBroadcaster := sse.NewBroadcaster(logger)

	broker.Subscribe(adapters.NewWebSocketSubscriber(wsHub))
	broker.Subscribe(adapters.NewSSESubscriber(sseBroadcaster))
	logger.Debug().Msg("Streaming transports subscribed to event broker")

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, logger)
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		store:          store,
		cache:          cache.New(cfg.CacheTTL, constants.CacheCleanupInterval),
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		rateLimiter:    rateLimiter,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true // the API is read-only and open
			},
		},
		logger:    logger,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
	s.connectHooks()
	return s
}

// connectHooks publishes every catalog reload to the broker.
func (s *Server) connectHooks() {
	s.store.OnReload(func(snap *catalog.Snapshot) {
		s.broker.Publish(events.CatalogReloaded, snap.Info())
		s.logger.Debug().
			Str("instrument", snap.Instrument.String()).
			Uint64("generation", snap.Generation).
			Msg("Catalog reload event published")
	})
}

func (s *Server) handlerOptions() handlers.Options {
	var inst catalog.Instrument
	if insts := s.store.Instruments(); len(insts) > 0 {
		inst = insts[0]
	}
	return handlers.Options{
		PathPrefix: s.config.PathPrefix,
		LogBaseURL: s.config.LogBaseURL,
		Defaults: filter.Defaults{
			Instrument:       inst,
			RadiusDeg:        s.config.DefaultRadiusDeg,
			MinExposeMinutes: s.config.DefaultMinExposeMinutes,
		},
	}
}

// Start starts background services (broker, WebSocket hub, SSE
// broadcaster, rate limiter eviction).
func (s *Server) Start() {
	go s.broker.Run(s.ctx)
	go s.wsHub.Run(s.ctx)
	go s.sseBroadcaster.Run(s.ctx)
	if s.rateLimiter != nil {
		go s.rateLimiter.Run(s.ctx)
	}
	s.logger.Debug().Msg("Background services started")
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Shutdown stops the background services. Streaming clients are
// disconnected.
func (s *Server) Shutdown(_ context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")
	s.cancel()
	return nil
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.Start()

	srv := &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("addr", srv.Addr).
			Str("prefix", s.config.PathPrefix).
			Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		_ = s.Shutdown(context.Background())
		if err != nil {
			return errors.WrapIO("listen", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	// Streaming responses never finish on their own; stop them first.
	_ = s.Shutdown(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn().Err(err).Msg("HTTP server shutdown incomplete")
		return errors.NewTimeoutError("shutdown", constants.ShutdownTimeout.String(), err.Error())
	}
	s.logger.Info().Msg("HTTP server stopped")
	return nil
}

// Cache returns the server's cache instance.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// Broker returns the event broker for publishing events.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
