package server

import (
	"context"
	"net/http"

	"github.com/agentstation/ultrasearch/internal/server/handlers"
	"github.com/agentstation/ultrasearch/internal/server/middleware"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(
		s.store,
		s.cache,
		s.broker,
		s.wsHub,
		s.sseBroadcaster,
		s.upgrader,
		s.logger,
		s.handlerOptions(),
	)

	s.registerRoutes(mux, h)
	return s.applyMiddleware(s.withStartTime(mux))
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/ready", h.HandleReady)

	// Catalog endpoints
	mux.HandleFunc("GET "+prefix+"/instruments", h.HandleInstruments)
	mux.HandleFunc("GET "+prefix+"/targets", h.HandleTargets)
	mux.HandleFunc("GET "+prefix+"/targets.html", h.HandleTargetsPage)
	mux.HandleFunc("GET "+prefix+"/search", h.HandleSearch)
	mux.HandleFunc("GET "+prefix+"/search.html", h.HandleSearchPage)

	// Admin endpoints
	mux.HandleFunc("POST "+prefix+"/reload", h.HandleReload)
	mux.HandleFunc("GET "+prefix+"/stats", h.HandleStats)

	// Real-time endpoints
	mux.HandleFunc("GET "+prefix+"/updates", h.HandleSSE)
	mux.HandleFunc("GET "+prefix+"/updates/ws", h.HandleWebSocket)
}

// applyMiddleware wraps handler with the middleware chain. The order is
// request ID, access log, recovery, CORS, then rate limiting, so rejected
// requests are still logged with their ID.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	chain := []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.Logger(s.logger),
		middleware.Recovery(s.logger),
	}

	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
			corsConfig.AllowAll = false
		} else {
			corsConfig.AllowAll = true
		}
		chain = append(chain, middleware.CORS(corsConfig))
	}

	if s.rateLimiter != nil {
		chain = append(chain, middleware.RateLimit(s.rateLimiter))
	}

	return middleware.Chain(chain...)(handler)
}

func (s *Server) withStartTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), handlers.StartTimeKey{}, s.startTime)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
