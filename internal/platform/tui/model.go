package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/province/internal/core"
	"github.com/vovakirdan/province/internal/province"
	"github.com/vovakirdan/province/internal/session"
)

// Rows taken by the header above the board and the help below it.
const (
	headerRows = 3
	footerRows = 2
)

// Model is the Bubble Tea model for the board screen.
type Model struct {
	session  *session.Session
	screen   *core.Screen
	keys     BoardKeyMap
	help     help.Model
	logger   *log.Logger
	config   core.RuntimeConfig
	cursor   province.Coord
	view     core.Rect // Visible tiles, 0-based
	message  string
	quitting bool
	back     bool // User asked for the menu
}

// NewModel creates a board model for a session that already holds a game.
func NewModel(sess *session.Session, logger *log.Logger, cfg core.RuntimeConfig) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := Model{
		session: sess,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:    DefaultBoardKeyMap(),
		help:    help.New(),
		logger:  logger,
		config:  cfg,
		cursor:  province.C(1, 1),
	}
	m.help.Width = cfg.ScreenW
	m.updateView()
	return m
}

// Init starts the clock, and resumes an end sequence restored from a snapshot.
func (m Model) Init() tea.Cmd {
	if m.session.Animating() {
		return tea.Batch(tickCmd(), endStepCmd(province.EndStepDelayStart))
	}
	return tickCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		m.updateView()
		return m, nil

	case TickMsg:
		if m.session.Tick() {
			m.message = "Time is up."
			return m, tea.Batch(tickCmd(), endStepCmd(province.EndStepDelayStart))
		}
		return m, tickCmd()

	case EndStepMsg:
		_, delay, done := m.session.StepEndSequence()
		if !done {
			return m, endStepCmd(delay)
		}
		m.message = outcomeMessage(m.session.State().Status)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.back = true
		return m, tea.Quit

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.updateView()

	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		dx, dy := action.Delta()
		size := m.session.Config().BoardSize
		m.cursor.X = core.Clamp(m.cursor.X+dx, 1, size.Width)
		m.cursor.Y = core.Clamp(m.cursor.Y+dy, 1, size.Height)
		m.updateView()

	case core.ActionSelect:
		return m.selectTile()

	case core.ActionPause:
		if m.session.State().IsPaused {
			m.session.Resume()
			m.message = ""
		} else {
			m.session.Pause()
			m.message = "Paused."
		}

	case core.ActionRestart:
		if m.session.RestartGame() {
			m.message = "Restarted."
		} else {
			m.message = "Cannot restart now."
		}

	case core.ActionNewGame:
		if m.session.NewRandomGame() {
			m.cursor = province.C(1, 1)
			m.view = core.Rect{}
			m.updateView()
			m.message = "New game."
		} else {
			m.message = "Cannot start a new game now."
		}
	}

	return m, nil
}

// selectTile plays a turn at the cursor.
func (m Model) selectTile() (tea.Model, tea.Cmd) {
	res, err := m.session.SelectTile(m.cursor.X, m.cursor.Y)
	switch {
	case errors.Is(err, session.ErrMovesDisabled):
		m.message = "Moves are disabled."
		return m, nil
	case errors.Is(err, session.ErrNotSelectable):
		m.message = "That tile cannot be selected."
		return m, nil
	case err != nil:
		m.logger.Error("turn failed", "at", m.cursor, "error", err)
		m.message = "Something went wrong."
		return m, nil
	}

	switch {
	case len(res.Harvested) > 0:
		m.message = fmt.Sprintf("Harvested %d tiles, +%d.", len(res.Harvested), -res.Cost)
	case !res.Grew:
		m.message = "Harvested, nothing ripe around."
	default:
		m.message = fmt.Sprintf("Spent %d.", res.Cost)
	}
	if res.Outcome.Terminal() {
		return m, endStepCmd(province.EndStepDelayStart)
	}
	return m, nil
}

// updateView resizes the visible tile window and keeps the cursor inside it.
func (m *Model) updateView() {
	size := m.session.Config().BoardSize
	helpRows := footerRows
	if m.help.ShowAll {
		helpRows = 4
	}
	w := max((m.config.ScreenW-2)/tileWidth, 1)
	h := max(m.config.ScreenH-headerRows-helpRows-2, 1)
	m.view.W = min(size.Width, w)
	m.view.H = min(size.Height, h)
	m.view = m.view.ScrollTo(m.cursor.X-1, m.cursor.Y-1, size.Width, size.Height)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	cfg := m.session.Config()
	st := m.session.State()

	m.screen.Clear()
	title := "PROVINCE"
	if cfg.Name != "" {
		title += "  " + cfg.Name
	}
	m.screen.DrawTextColored(0, 0, title, core.ColorAccent)

	clock := "time " + formatClock(st.ElapsedTime)
	if !cfg.CountUp() {
		clock = "left " + formatClock(st.ElapsedTime)
	}
	status := fmt.Sprintf("resources %d/%d   %s   moves %d", st.ResourcesLeft, cfg.ResourceLimit, clock, st.Moves)
	if st.IsPaused {
		status += "   [paused]"
	}
	m.screen.DrawText(0, 1, status)
	m.screen.DrawTextColored(0, 2, m.message, core.ColorMuted)

	box := core.NewRect(0, headerRows, m.view.W*tileWidth+2, m.view.H+2)
	m.screen.DrawBox(box, core.ColorMuted)
	drawBoard(m.screen, st.TileStates, m.view, m.cursor, 1, headerRows+1)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(colorStyles[core.ColorMuted].Render(m.help.View(m.keys)))
	return b.String()
}

// saveScreenshot saves the current board as plain text.
func (m *Model) saveScreenshot() {
	m.View()

	dir := filepath.Join(os.Getenv("HOME"), ".province", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("province_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.message = "Saved " + path
}

// WantsMenu reports whether the user left the board for the menu.
func (m Model) WantsMenu() bool {
	return m.back
}

// Config returns the current runtime config (may have been updated by resize).
func (m Model) Config() core.RuntimeConfig {
	return m.config
}

func outcomeMessage(s province.Status) string {
	switch s {
	case province.StatusPlayerWon:
		return "The province is yours. Press n for a new game."
	case province.StatusEnemyWon:
		return "The enemy holds the province. Press r to try again."
	default:
		return ""
	}
}

// Run starts the board screen. It returns the final runtime config and
// whether the user asked to go back to the menu.
func Run(sess *session.Session, logger *log.Logger, cfg core.RuntimeConfig) (core.RuntimeConfig, bool, error) {
	model := NewModel(sess, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return cfg, false, err
	}
	m, ok := finalModel.(Model)
	if !ok {
		return cfg, false, nil
	}
	return m.Config(), m.WantsMenu(), nil
}
