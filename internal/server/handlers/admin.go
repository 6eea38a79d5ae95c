package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/agentstation/ultrasearch/internal/server/events"
	"github.com/agentstation/ultrasearch/internal/server/response"
	"github.com/agentstation/ultrasearch/pkg/catalog"
	"github.com/agentstation/ultrasearch/pkg/constants"
	"github.com/agentstation/ultrasearch/pkg/errors"
	"github.com/agentstation/ultrasearch/pkg/logging"
)

// HandleReload handles POST /api/v1/reload. Without an instrument
// parameter every configured catalog is reloaded. Each reload replaces the
// whole snapshot; a failed reload leaves the previous one in service.
func (h *Handlers) HandleReload(w http.ResponseWriter, r *http.Request) {
	insts := h.catalogs.Instruments()
	if raw := r.URL.Query().Get("instrument"); raw != "" {
		inst, err := catalog.ParseInstrument(raw)
		if err != nil {
			response.ErrorFromType(w, err)
			return
		}
		insts = []catalog.Instrument{inst}
	}

	ctx, cancel := context.WithTimeout(r.Context(), constants.ReloadTimeout)
	defer cancel()
	logger := logging.FromContext(r.Context())

	reloaded := make([]catalog.Info, 0, len(insts))
	for _, inst := range insts {
		snap, err := h.catalogs.Reload(ctx, inst)
		if err != nil {
			logger.Error().Err(err).Str("instrument", inst.String()).Msg("Reload failed")
			h.broker.Publish(events.ReloadFailed, map[string]any{
				"instrument": inst,
				"error":      err.Error(),
			})
			reloadError(w, err)
			return
		}
		reloaded = append(reloaded, snap.Info())
	}

	response.OK(w, map[string]any{
		"status":   "reloaded",
		"catalogs": reloaded,
	})
}

// reloadError reports a failed reload. A catalog that does not parse is a
// server-side problem, not a bad request, so only lookup and cancellation
// errors keep their usual status.
func reloadError(w http.ResponseWriter, err error) {
	switch {
	case errors.IsNotFound(err), errors.IsCanceled(err), errors.IsTimeout(err):
		response.ErrorFromType(w, err)
	default:
		response.JSON(w, http.StatusInternalServerError, response.Fail(
			"RELOAD_FAILED",
			"Catalog reload failed",
			err.Error(),
		))
	}
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	uptime := time.Duration(0)
	if srv, ok := r.Context().Value(StartTimeKey{}).(time.Time); ok {
		uptime = time.Since(srv)
	}

	response.OK(w, map[string]any{
		"runtime": map[string]any{
			"uptime_seconds": int64(uptime.Seconds()),
			"goroutines":     runtime.NumGoroutine(),
			"memory_mb":      memStats.Alloc / 1024 / 1024,
			"memory_sys_mb":  memStats.Sys / 1024 / 1024,
		},
		"catalogs": h.catalogs.Infos(),
		"events": map[string]any{
			"published_total": h.broker.EventsPublished(),
			"dropped_total":   h.broker.EventsDropped(),
			"queue_depth":     h.broker.QueueDepth(),
		},
		"realtime": map[string]any{
			"websocket_clients": h.wsHub.ClientCount(),
			"sse_clients":       h.sseBroadcaster.ClientCount(),
		},
		"cache": h.cache.GetStats(),
	})
}

// StartTimeKey is the context key under which the server stores its start
// time for uptime reporting.
type StartTimeKey struct{}
