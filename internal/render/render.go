// Package render writes search results and target listings as standalone
// HTML pages, in the layout of the observation log web pages.
package render

import (
	"embed"
	"html/template"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/agentstation/ultrasearch/internal/cmd/table"
	"github.com/agentstation/ultrasearch/pkg/errors"
	"github.com/agentstation/ultrasearch/pkg/observations"
	"github.com/agentstation/ultrasearch/pkg/sexagesimal"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("pages").Funcs(template.FuncMap{
	"ra":     sexagesimal.FormatRA,
	"dec":    sexagesimal.FormatDec,
	"numra":  table.FormatRA,
	"numdec": table.FormatDec,
	"expose": table.FormatExpose,
	"names":  table.JoinNames,
	"num":    formatNumber,
	"fixed": func(v float64, prec int) string {
		return strconv.FormatFloat(v, 'f', prec, 64)
	},
}).ParseFS(templateFS, "templates/*.html"))

// DefaultStylesheet is the stylesheet the log pages share.
const DefaultStylesheet = "ultras.css"

// PageOptions controls links and labels on rendered pages.
type PageOptions struct {
	// Title names the instrument, e.g. "ULTRACAM".
	Title string

	// LogBaseURL is prepended to night links, which point at
	// <night>/<night>.html in the nightly log tree.
	LogBaseURL string

	// SearchURL is the search page target IDs link to. Empty disables the
	// links.
	SearchURL string

	// SearchParams are added to every target link, e.g. instrument, radius
	// and expose.
	SearchParams url.Values

	// Stylesheet defaults to DefaultStylesheet.
	Stylesheet string
}

func (o PageOptions) stylesheet() string {
	if o.Stylesheet == "" {
		return DefaultStylesheet
	}
	return o.Stylesheet
}

// NightURL returns the log page for a night.
func (o PageOptions) NightURL(night string) string {
	path := url.PathEscape(night) + "/" + url.PathEscape(night) + ".html"
	if o.LogBaseURL == "" {
		return path
	}
	return strings.TrimSuffix(o.LogBaseURL, "/") + "/" + path
}

// TargetURL returns the search link centred on a target, or "" when the
// target has no usable position or links are disabled.
func (o PageOptions) TargetURL(id observations.TargetIdentity) string {
	if o.SearchURL == "" || !id.RA.Valid() || !id.Dec.Valid() {
		return ""
	}
	params := url.Values{}
	for k, v := range o.SearchParams {
		params[k] = append([]string(nil), v...)
	}
	params.Set("ra", id.RA.String())
	params.Set("dec", id.Dec.String())
	return o.SearchURL + "?" + params.Encode()
}

type searchRow struct {
	observations.MatchResult
	NightURL string
}

type searchView struct {
	Title      string
	Stylesheet string
	Query      observations.Query
	Rows       []searchRow
}

// SearchPage writes the results of a proximity search. Rows appear in the
// order given.
func SearchPage(w io.Writer, q observations.Query, matches []observations.MatchResult, opts PageOptions) error {
	view := searchView{
		Title:      opts.Title,
		Stylesheet: opts.stylesheet(),
		Query:      q,
		Rows:       make([]searchRow, 0, len(matches)),
	}
	for _, m := range matches {
		view.Rows = append(view.Rows, searchRow{MatchResult: m, NightURL: opts.NightURL(m.Night)})
	}
	return execute(w, "search", view)
}

type targetRow struct {
	observations.TargetIdentity
	SearchURL string
}

type targetsView struct {
	Title      string
	Stylesheet string
	Rows       []targetRow
}

// TargetsPage writes the unique target list.
func TargetsPage(w io.Writer, ids []observations.TargetIdentity, opts PageOptions) error {
	view := targetsView{
		Title:      opts.Title,
		Stylesheet: opts.stylesheet(),
		Rows:       make([]targetRow, 0, len(ids)),
	}
	for _, id := range ids {
		view.Rows = append(view.Rows, targetRow{TargetIdentity: id, SearchURL: opts.TargetURL(id)})
	}
	return execute(w, "targets", view)
}

func execute(w io.Writer, name string, view any) error {
	if err := pages.ExecuteTemplate(w, name, view); err != nil {
		return errors.WrapResource("render", "page", name, err)
	}
	return nil
}

// formatNumber prints user-entered limits the way they were typed where
// possible: 0.1 stays "0.1" and 5 stays "5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
