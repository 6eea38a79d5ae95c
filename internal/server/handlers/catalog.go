package handlers

import (
	"bytes"
	"net/http"
	"net/url"
	"strconv"

	"github.com/agentstation/ultrasearch/internal/render"
	"github.com/agentstation/ultrasearch/internal/server/cache"
	"github.com/agentstation/ultrasearch/internal/server/filter"
	"github.com/agentstation/ultrasearch/internal/server/response"
	"github.com/agentstation/ultrasearch/pkg/catalog"
	"github.com/agentstation/ultrasearch/pkg/logging"
	"github.com/agentstation/ultrasearch/pkg/observations"
)

// TargetList is the body of GET /targets.
type TargetList struct {
	Instrument catalog.Instrument            `json:"instrument"`
	Generation uint64                        `json:"generation"`
	Total      int                           `json:"total"`
	Targets    []observations.TargetIdentity `json:"targets"`
}

// SearchResult is the body of GET /search.
type SearchResult struct {
	Instrument catalog.Instrument         `json:"instrument"`
	Generation uint64                     `json:"generation"`
	Target     string                     `json:"target,omitempty"`
	Query      observations.Query         `json:"query"`
	Count      int                        `json:"count"`
	Matches    []observations.MatchResult `json:"matches"`
}

// HandleInstruments handles GET /api/v1/instruments.
func (h *Handlers) HandleInstruments(w http.ResponseWriter, _ *http.Request) {
	infos := h.catalogs.Infos()
	if infos == nil {
		infos = []catalog.Info{}
	}
	response.OK(w, infos)
}

// HandleTargets handles GET /api/v1/targets.
func (h *Handlers) HandleTargets(w http.ResponseWriter, r *http.Request) {
	req, err := filter.ParseTargets(r, h.opts.Defaults)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	snap, err := h.catalogs.Snapshot(req.Instrument)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	key := cache.Key("targets", req.Instrument.String(), snap.Generation, r.URL.RawQuery)
	if cached, ok := h.cache.Get(key); ok {
		response.OK(w, cached)
		return
	}

	page, total := req.Apply(snap.Targets())
	body := TargetList{
		Instrument: req.Instrument,
		Generation: snap.Generation,
		Total:      total,
		Targets:    page,
	}
	h.cache.Set(key, body)
	response.OK(w, body)
}

// HandleSearch handles GET /api/v1/search.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	req, snap, err := h.searchRequest(r)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	key := cache.Key("search", req.Instrument.String(), snap.Generation, r.URL.RawQuery)
	if cached, ok := h.cache.Get(key); ok {
		response.OK(w, cached)
		return
	}

	matches := snap.Search(req.Query)
	body := SearchResult{
		Instrument: req.Instrument,
		Generation: snap.Generation,
		Target:     req.Target,
		Query:      req.Query,
		Count:      len(matches),
		Matches:    matches,
	}
	h.cache.Set(key, body)
	response.OK(w, body)
}

// HandleSearchPage handles GET /api/v1/search.html.
func (h *Handlers) HandleSearchPage(w http.ResponseWriter, r *http.Request) {
	req, snap, err := h.searchRequest(r)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	key := cache.Key("search.html", req.Instrument.String(), snap.Generation, r.URL.RawQuery)
	h.servePage(w, r, key, func(buf *bytes.Buffer) error {
		return render.SearchPage(buf, req.Query, snap.Search(req.Query), h.pageOptions(req.Instrument, nil))
	})
}

// HandleTargetsPage handles GET /api/v1/targets.html. Target IDs link to
// the search page, carrying over the request's radius and expose.
func (h *Handlers) HandleTargetsPage(w http.ResponseWriter, r *http.Request) {
	req, err := filter.ParseTargets(r, h.opts.Defaults)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	snap, err := h.catalogs.Snapshot(req.Instrument)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	params := url.Values{}
	params.Set("instrument", req.Instrument.String())
	for _, name := range []string{"radius", "expose"} {
		if v := r.URL.Query().Get(name); v != "" {
			params.Set(name, v)
		}
	}

	key := cache.Key("targets.html", req.Instrument.String(), snap.Generation, r.URL.RawQuery)
	h.servePage(w, r, key, func(buf *bytes.Buffer) error {
		page, _ := req.Apply(snap.Targets())
		return render.TargetsPage(buf, page, h.pageOptions(req.Instrument, params))
	})
}

// searchRequest parses a search and resolves a target parameter into a
// query centre. A catalog ID can label several positions; the first numeric
// one in RA order is used.
func (h *Handlers) searchRequest(r *http.Request) (filter.SearchRequest, *catalog.Snapshot, error) {
	req, err := filter.ParseSearch(r, h.opts.Defaults)
	if err != nil {
		return req, nil, err
	}
	snap, err := h.catalogs.Snapshot(req.Instrument)
	if err != nil {
		return req, nil, err
	}

	if err := req.Resolve(snap.Targets()); err != nil {
		return req, nil, err
	}

	ctx := logging.WithInstrument(r.Context(), req.Instrument.String())
	ctx = logging.WithQuery(ctx, req.Query.CenterRAHours, req.Query.CenterDecDeg, req.Query.RadiusDeg, req.Query.MinExposeMinutes)
	logging.FromContext(ctx).Debug().
		Uint64("generation", snap.Generation).
		Str("target", req.Target).
		Msg("Search")
	return req, snap, nil
}

func (h *Handlers) pageOptions(inst catalog.Instrument, params url.Values) render.PageOptions {
	return render.PageOptions{
		Title:        inst.Title(),
		LogBaseURL:   h.opts.LogBaseURL,
		SearchURL:    h.opts.PathPrefix + "/search.html",
		SearchParams: params,
	}
}

// servePage writes a rendered page, rendering it only on a cache miss.
func (h *Handlers) servePage(w http.ResponseWriter, r *http.Request, key string, renderFn func(*bytes.Buffer) error) {
	var page []byte
	if cached, ok := h.cache.Get(key); ok {
		page = cached.([]byte)
	} else {
		var buf bytes.Buffer
		if err := renderFn(&buf); err != nil {
			logging.FromContext(r.Context()).Error().Err(err).Msg("Page render failed")
			response.InternalError(w, err)
			return
		}
		page = buf.Bytes()
		h.cache.Set(key, page)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(page)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}
