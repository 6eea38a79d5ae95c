// Package tui implements the interactive catalog browser: a table of the
// unique targets of one instrument's catalog and, for the selected target, a
// table of the runs within the search radius.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	tabledata "github.com/agentstation/ultrasearch/internal/cmd/table"
	"github.com/agentstation/ultrasearch/internal/tui/keymap"
	"github.com/agentstation/ultrasearch/internal/tui/styles"
	"github.com/agentstation/ultrasearch/pkg/catalog"
	"github.com/agentstation/ultrasearch/pkg/observations"
	"github.com/agentstation/ultrasearch/pkg/search"
	"github.com/agentstation/ultrasearch/pkg/targets"
)

const (
	// chromeLines is the height taken by the title, filter box, status and
	// help lines around a table.
	chromeLines    = 8
	minTableRows   = 5
	maxColumnWidth = 40
)

// Catalogs provides the snapshots the browser reads.
type Catalogs interface {
	Instruments() []catalog.Instrument
	Snapshot(inst catalog.Instrument) (*catalog.Snapshot, error)
}

// Options configures the browser.
type Options struct {
	Instrument       catalog.Instrument
	RadiusDeg        float64
	MinExposeMinutes float64
}

// App is the browser model. It implements tea.Model.
type App struct {
	ctx      context.Context
	catalogs Catalogs
	opts     Options
	styles   *styles.Styles
	keys     *keymap.KeyMap
	help     help.Model

	instrument catalog.Instrument
	snap       *catalog.Snapshot
	visible    []observations.TargetIdentity
	results    SearchCompleted

	filter       textinput.Model
	targetsTable table.Model
	resultsTable table.Model

	currentView ViewType
	err         error
	width       int
	height      int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a browser over catalogs.
func NewApp(catalogs Catalogs, opts Options) *App {
	s := styles.DefaultStyles()

	ti := textinput.New()
	ti.Prompt = "Filter: "
	ti.Placeholder = "name or id"
	ti.CharLimit = 64
	ti.Width = 40

	inst := opts.Instrument
	if inst == "" {
		if all := catalogs.Instruments(); len(all) > 0 {
			inst = all[0]
		}
	}

	return &App{
		ctx:          context.Background(),
		catalogs:     catalogs,
		opts:         opts,
		styles:       s,
		keys:         keymap.DefaultKeyMap(),
		help:         help.New(),
		instrument:   inst,
		filter:       ti,
		targetsTable: newTable(s, tabledata.TargetsToTableData(nil), true),
		resultsTable: newTable(s, tabledata.MatchesToTableData(nil), false),
		currentView:  ViewTargets,
	}
}

// WithContext sets the context the program runs under.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("ultrasearch"),
		a.loadSnapshot(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case SnapshotLoaded:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.err = nil
		a.snap = msg.Snapshot
		a.instrument = msg.Snapshot.Instrument
		a.applyFilter()
		return a, nil

	case SearchCompleted:
		a.results = msg
		setData(&a.resultsTable, tabledata.MatchesToTableData(msg.Matches))
		a.resultsTable.SetCursor(0)
		a.resultsTable.Focus()
		a.currentView = ViewResults
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.currentView == ViewResults {
			return a.updateResults(msg)
		}
		return a.updateTargets(msg)
	}

	return a, nil
}

func (a *App) updateTargets(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.filter.Focused() {
		switch msg.Type {
		case tea.KeyEsc:
			a.filter.SetValue("")
			a.applyFilter()
			fallthrough
		case tea.KeyEnter:
			a.filter.Blur()
			a.targetsTable.Focus()
			return a, nil
		}
		var cmd tea.Cmd
		a.filter, cmd = a.filter.Update(msg)
		a.applyFilter()
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Filter):
		a.targetsTable.Blur()
		return a, a.filter.Focus()
	case key.Matches(msg, a.keys.Back):
		if a.filter.Value() != "" {
			a.filter.SetValue("")
			a.applyFilter()
		}
		return a, nil
	case key.Matches(msg, a.keys.Instrument):
		a.instrument = a.nextInstrument()
		return a, a.loadSnapshot()
	case key.Matches(msg, a.keys.Refresh):
		return a, a.loadSnapshot()
	case key.Matches(msg, a.keys.Search):
		if id, ok := a.Selected(); ok {
			return a, a.searchAround(id)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.targetsTable, cmd = a.targetsTable.Update(msg)
	return a, cmd
}

func (a *App) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Back):
		a.resultsTable.Blur()
		a.currentView = ViewTargets
		return a, nil
	}

	var cmd tea.Cmd
	a.resultsTable, cmd = a.resultsTable.Update(msg)
	return a, cmd
}

// loadSnapshot reads the current snapshot of the active instrument. The
// store swaps snapshots on reload, so refreshing picks up watcher reloads.
func (a *App) loadSnapshot() tea.Cmd {
	inst := a.instrument
	return func() tea.Msg {
		snap, err := a.catalogs.Snapshot(inst)
		return SnapshotLoaded{Snapshot: snap, Err: err}
	}
}

func (a *App) searchAround(id observations.TargetIdentity) tea.Cmd {
	snap := a.snap
	radius, expose := a.opts.RadiusDeg, a.opts.MinExposeMinutes
	return func() tea.Msg {
		return SearchCompleted{
			Target:  id,
			Matches: search.Around(snap.Records(), id, radius, expose),
		}
	}
}

func (a *App) nextInstrument() catalog.Instrument {
	all := a.catalogs.Instruments()
	if len(all) == 0 {
		return a.instrument
	}
	i := slices.Index(all, a.instrument)
	return all[(i+1)%len(all)]
}

func (a *App) applyFilter() {
	if a.snap == nil {
		a.visible = nil
	} else {
		a.visible = targets.Filter(a.snap.Targets(), a.filter.Value())
	}
	setData(&a.targetsTable, tabledata.TargetsToTableData(a.visible))
}

func (a *App) resize() {
	rows := max(a.height-chromeLines, minTableRows)
	a.targetsTable.SetHeight(rows)
	a.resultsTable.SetHeight(rows)
	if a.width > 0 {
		a.targetsTable.SetWidth(a.width)
		a.resultsTable.SetWidth(a.width)
		a.help.Width = a.width
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if a.snap == nil {
		if a.err != nil {
			return a.styles.Error.Render("Error: "+a.err.Error()) + "\n"
		}
		return a.styles.Muted.Render("Loading "+a.instrument.Title()+" catalog...") + "\n"
	}
	if a.currentView == ViewResults {
		return a.resultsView()
	}
	return a.targetsView()
}

func (a *App) targetsView() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render(a.snap.Instrument.Title() + " targets"))
	b.WriteString("\n")
	b.WriteString(a.styles.Subtitle.Render(fmt.Sprintf("%d of %d targets, generation %d",
		len(a.visible), len(a.snap.Targets()), a.snap.Generation)))
	b.WriteString("\n")
	b.WriteString(a.styles.Filter.Render(a.filter.View()))
	b.WriteString("\n")
	b.WriteString(a.targetsTable.View())
	b.WriteString("\n")
	if a.err != nil {
		b.WriteString(a.styles.Error.Render("Error: " + a.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(a.styles.StatusBar.Render(a.help.ShortHelpView(a.keys.TargetsHelp())))
	return b.String()
}

func (a *App) resultsView() string {
	id := a.results.Target

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Runs near " + id.CatalogID))
	b.WriteString("\n")
	b.WriteString(a.styles.Subtitle.Render(fmt.Sprintf("%s at %s %s: %d within %s° with exposure over %s min",
		tabledata.JoinNames(id.Names),
		tabledata.FormatRA(id.RA),
		tabledata.FormatDec(id.Dec),
		len(a.results.Matches),
		strconv.FormatFloat(a.opts.RadiusDeg, 'g', -1, 64),
		strconv.FormatFloat(a.opts.MinExposeMinutes, 'g', -1, 64))))
	b.WriteString("\n\n")
	if len(a.results.Matches) == 0 {
		b.WriteString(a.styles.Muted.Render("No runs match."))
	} else {
		b.WriteString(a.resultsTable.View())
	}
	b.WriteString("\n")
	b.WriteString(a.styles.StatusBar.Render(a.help.ShortHelpView(a.keys.ResultsHelp())))
	return b.String()
}

// Run starts the browser and blocks until the user quits or the context is
// cancelled.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	if _, err := p.Run(); err != nil && a.ctx.Err() == nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// CurrentView returns the active view.
func (a *App) CurrentView() ViewType {
	return a.currentView
}

// Instrument returns the instrument being browsed.
func (a *App) Instrument() catalog.Instrument {
	return a.instrument
}

// Visible returns the targets that pass the filter.
func (a *App) Visible() []observations.TargetIdentity {
	return a.visible
}

// Selected returns the target under the cursor.
func (a *App) Selected() (observations.TargetIdentity, bool) {
	i := a.targetsTable.Cursor()
	if i < 0 || i >= len(a.visible) {
		return observations.TargetIdentity{}, false
	}
	return a.visible[i], true
}

// Results returns the last search.
func (a *App) Results() SearchCompleted {
	return a.results
}

// Err returns the last load error.
func (a *App) Err() error {
	return a.err
}

func newTable(s *styles.Styles, data tabledata.Data, focused bool) table.Model {
	t := table.New(
		table.WithColumns(columnsFor(data)),
		table.WithFocused(focused),
		table.WithHeight(minTableRows),
	)
	t.SetStyles(s.Table)
	return t
}

// setData replaces a table's contents. Rows are cleared before the columns
// change so the table never renders a row against the wrong column set.
func setData(t *table.Model, data tabledata.Data) {
	t.SetRows(nil)
	t.SetColumns(columnsFor(data))
	rows := make([]table.Row, len(data.Rows))
	for i, r := range data.Rows {
		rows[i] = table.Row(r)
	}
	t.SetRows(rows)
}

// columnsFor sizes each column to its widest cell.
func columnsFor(data tabledata.Data) []table.Column {
	cols := make([]table.Column, len(data.Headers))
	for i, h := range data.Headers {
		w := lipgloss.Width(h)
		for _, r := range data.Rows {
			if i < len(r) {
				w = max(w, lipgloss.Width(r[i]))
			}
		}
		cols[i] = table.Column{Title: h, Width: min(w, maxColumnWidth)}
	}
	return cols
}
