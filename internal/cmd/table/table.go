// Package table projects catalog results into rows for the CLI table
// formatter, the HTML pages and the TUI.
package table

import (
	"strconv"
	"strings"

	"github.com/agentstation/ultrasearch/pkg/catalog"
	"github.com/agentstation/ultrasearch/pkg/observations"
	"github.com/agentstation/ultrasearch/pkg/sexagesimal"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// MatchesToTableData converts search results to table format.
func MatchesToTableData(matches []observations.MatchResult) Data {
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, []string{
			m.Target,
			m.CatalogID,
			FormatRA(m.RA),
			FormatDec(m.Dec),
			strconv.FormatFloat(m.DistanceDeg, 'f', 2, 64),
			m.Run,
			m.Night,
			m.Num.String(),
			FormatExpose(m.Expose),
			m.Comment,
		})
	}
	return Data{
		Headers: []string{"Target", "ID", "RA", "Dec", "Dist", "Run", "Night", "Num", "Expose", "Comment"},
		Rows:    rows,
		ColumnAlignment: []Align{
			AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight,
			AlignLeft, AlignLeft, AlignRight, AlignRight, AlignLeft,
		},
	}
}

// TargetsToTableData converts resolved targets to table format.
func TargetsToTableData(ids []observations.TargetIdentity) Data {
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, []string{
			id.CatalogID,
			FormatRA(id.RA),
			FormatDec(id.Dec),
			JoinNames(id.Names),
			strconv.Itoa(id.Runs),
		})
	}
	return Data{
		Headers:         []string{"ID", "RA", "Dec", "Names", "Runs"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignLeft, AlignRight},
	}
}

// IssuesToTableData converts validation issues to table format.
func IssuesToTableData(issues []catalog.Issue) Data {
	rows := make([][]string, 0, len(issues))
	for _, is := range issues {
		rows = append(rows, []string{
			strconv.Itoa(is.Index),
			orDash(is.CatalogID),
			orDash(is.Run),
			orDash(is.Night),
			is.Field,
			is.Message,
		})
	}
	return Data{
		Headers: []string{"Index", "ID", "Run", "Night", "Field", "Problem"},
		Rows:    rows,
	}
}

// InfosToTableData converts snapshot summaries to table format.
func InfosToTableData(infos []catalog.Info) Data {
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{
			info.Instrument.Title(),
			strconv.Itoa(info.Records),
			strconv.Itoa(info.Targets),
			strconv.FormatUint(info.Generation, 10),
			info.Source,
		})
	}
	return Data{
		Headers:         []string{"Instrument", "Records", "Targets", "Generation", "Source"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignLeft},
	}
}

// FormatRA renders a catalog RA as HH:MM:SS.ss. Malformed values are shown
// as written.
func FormatRA(n observations.Number) string {
	if !n.Valid() {
		return orDash(n.String())
	}
	return sexagesimal.FormatRA(n.Float())
}

// FormatDec renders a catalog Dec as +DD:MM:SS.s. Malformed values are shown
// as written.
func FormatDec(n observations.Number) string {
	if !n.Valid() {
		return orDash(n.String())
	}
	return sexagesimal.FormatDec(n.Float())
}

// FormatExpose renders an exposure in minutes to one decimal place.
func FormatExpose(n observations.Number) string {
	if !n.Valid() {
		return orDash(n.String())
	}
	return strconv.FormatFloat(n.Float(), 'f', 1, 64)
}

// JoinNames lists the name spellings of a target, space separated. Names
// are already normalised, so the separator cannot be confused with a space
// inside a name.
func JoinNames(names []string) string {
	return strings.Join(names, " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
