package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/province/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show filter sidebar
	sidebarWidth       = 20  // Width of filter sidebar
	maxResults         = 100 // Max results to load
)

// ResultSource provides finished games. storage.Store implements it.
type ResultSource interface {
	RecentResults(limit int) ([]storage.Result, error)
	Stats() (*storage.Stats, error)
}

// resultFilter narrows the results shown in the table.
type resultFilter struct {
	title string
	keep  func(storage.Result) bool
}

var resultFilters = []resultFilter{
	{"All games", func(storage.Result) bool { return true }},
	{"Wins", storage.Result.Won},
	{"Losses", func(r storage.Result) bool { return !r.Won() }},
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextFilter key.Binding
	PrevFilter key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextFilter, k.PrevFilter, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextFilter, k.PrevFilter},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextFilter: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next filter"),
		),
		PrevFilter: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev filter"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the results screen.
type ScoreboardModel struct {
	source      ResultSource
	filter      int
	results     []storage.Result
	stats       *storage.Stats
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show filter sidebar
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(source ResultSource, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		source:      source,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Result", Width: 8},
		{Title: "Game", Width: 14},
		{Title: "Size", Width: 7},
		{Title: "Left", Width: 5},
		{Title: "Moves", Width: 6},
		{Title: "Time", Width: 6},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)), // Leave room for header, stats, help and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads results and aggregates from the source.
func (m *ScoreboardModel) load() {
	m.results, m.stats = nil, nil
	if m.source != nil {
		if results, err := m.source.RecentResults(maxResults); err == nil {
			m.results = results
		}
		if stats, err := m.source.Stats(); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// visible returns the results that pass the current filter.
func (m ScoreboardModel) visible() []storage.Result {
	keep := resultFilters[m.filter].keep
	var out []storage.Result
	for _, r := range m.results {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// updateTableRows updates the table with the filtered results.
func (m *ScoreboardModel) updateTableRows() {
	results := m.visible()
	rows := make([]table.Row, len(results))
	for i, r := range results {
		outcome := "lost"
		if r.Won() {
			outcome = "won"
		}
		rows[i] = table.Row{
			outcome,
			r.Name,
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			fmt.Sprintf("%d", r.ResourcesLeft),
			fmt.Sprintf("%d", r.Moves),
			formatClock(r.Elapsed),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextFilter):
			m.filter = (m.filter + 1) % len(resultFilters)
			m.updateTableRows()
			return m, nil

		case key.Matches(msg, m.keys.PrevFilter):
			m.filter = (m.filter + len(resultFilters) - 1) % len(resultFilters)
			m.updateTableRows()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	accentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// View renders the results screen.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := fmt.Sprintf("RESULTS - %s", resultFilters[m.filter].title)
	body := m.renderNarrowLayout()
	if m.showSidebar {
		body = m.renderWideLayout()
	}
	return strings.Join([]string{
		accentStyle.MarginBottom(1).Render(centerText(title, m.width)),
		"",
		centerText(m.summary(), m.width),
		"",
		body,
		"",
		dimStyle.Render(m.help.View(m.keys)),
	}, "\n")
}

// summary renders the aggregate line.
func (m ScoreboardModel) summary() string {
	if m.stats == nil || m.stats.Played == 0 {
		return "No games played yet."
	}
	s := m.stats
	line := fmt.Sprintf("played %d   won %d   lost %d   win rate %.0f%%", s.Played, s.Won, s.Lost, s.WinRate*100)
	if s.Won > 0 {
		line += fmt.Sprintf("   best left %d   fastest %s", s.BestResourcesLeft, formatClock(s.FastestWin))
	}
	return line
}

// renderWideLayout puts the filter list in a panel left of the table.
func (m ScoreboardModel) renderWideLayout() string {
	lines := []string{"Show", strings.Repeat("-", sidebarWidth-4)}
	for i, f := range resultFilters {
		if i == m.filter {
			lines = append(lines, accentStyle.Render("> "+f.title))
		} else {
			lines = append(lines, "  "+f.title)
		}
	}
	sidebar := panelStyle.Width(sidebarWidth).Render(strings.Join(lines, "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", panelStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout puts the filters as tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	active := accentStyle.Background(lipgloss.Color("57")).Padding(0, 1)
	tabs := make([]string, len(resultFilters))
	for i, f := range resultFilters {
		if i == m.filter {
			tabs[i] = active.Render(f.title)
		} else {
			tabs[i] = dimStyle.Render(" " + f.title + " ")
		}
	}
	return centerText(strings.Join(tabs, " "), m.width) + "\n\n" + panelStyle.Render(m.renderTableContent())
}

// renderTableContent renders the table, or a hint when the filter hides everything.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.visible()) == 0 {
		return dimStyle.Italic(true).Padding(2, 4).Render("Nothing here yet.\nFinish a game to record a result!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the results screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(source ResultSource, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(source, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
