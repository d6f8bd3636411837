package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/province/internal/core"
	"github.com/vovakirdan/province/internal/library"
	"github.com/vovakirdan/province/internal/province"
)

// MenuItemKind tells what a menu entry starts.
type MenuItemKind int

const (
	MenuItemResume MenuItemKind = iota // Continue the saved game
	MenuItemRandom                     // Random preset
	MenuItemPreset
	MenuItemCustom
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Kind   MenuItemKind
	Title  string
	Detail string
	Config province.GameConfig // Unset for resume and random
	ID     int                 // Custom game ID
}

// MenuOptions lists what the menu offers.
type MenuOptions struct {
	CanResume bool
	Presets   []province.GameConfig
	Custom    []library.Entry
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	quitting  bool
	selected  *MenuItem // Set when user selects a game
	openStats bool      // True if user pressed Tab for stats
}

// NewMenuModel creates a new menu model.
func NewMenuModel(opts MenuOptions, cfg core.RuntimeConfig) MenuModel {
	items := make([]MenuItem, 0, len(opts.Presets)+len(opts.Custom)+2)
	if opts.CanResume {
		items = append(items, MenuItem{Kind: MenuItemResume, Title: "Continue"})
	}
	items = append(items, MenuItem{Kind: MenuItemRandom, Title: "Random game"})

	for i, p := range opts.Presets {
		items = append(items, MenuItem{
			Kind:   MenuItemPreset,
			Title:  fmt.Sprintf("%d. %s", i+1, presetTitle(p)),
			Detail: Describe(p),
			Config: p,
		})
	}
	for _, e := range opts.Custom {
		items = append(items, MenuItem{
			Kind:   MenuItemCustom,
			Title:  fmt.Sprintf("#%d %s", e.ID, presetTitle(e.Config)),
			Detail: Describe(e.Config),
			Config: e.Config,
			ID:     e.ID,
		})
	}

	return MenuModel{
		items:  items,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
	}
}

func presetTitle(cfg province.GameConfig) string {
	switch {
	case cfg.Description != "":
		return cfg.Description
	case cfg.Name != "":
		return cfg.Name
	default:
		return "Untitled"
	}
}

// Describe summarizes a config on one line.
func Describe(cfg province.GameConfig) string {
	parts := []string{
		cfg.BoardSize.String(),
		fmt.Sprintf("budget %d", cfg.ResourceLimit),
	}
	if !cfg.CountUp() {
		parts = append(parts, formatClock(cfg.TimeLimit))
	}
	if cfg.FogOfWar {
		parts = append(parts, "fog")
	}
	return strings.Join(parts, ", ")
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionStats:
		m.openStats = true
		return m, tea.Quit // Exit menu to show stats
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(colorStyles[core.ColorAccent].Render(centerText("  P R O V I N C E  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := cursor + item.Title
		if item.Detail != "" {
			line += "  (" + item.Detail + ")"
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Stats  |  Q: Quit"
	b.WriteString(colorStyles[core.ColorMuted].Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Item       *MenuItem
	Config     core.RuntimeConfig
	WantsStats bool
	Quit       bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(opts MenuOptions, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(opts, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.config}
	switch {
	case m.openStats:
		result.WantsStats = true
	case m.selected != nil:
		result.Item = m.selected
	default:
		result.Quit = true
	}
	return result, nil
}
