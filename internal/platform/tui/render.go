package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/province/internal/core"
	"github.com/vovakirdan/province/internal/province"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorHidden:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	core.ColorNeutral:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorGrowing:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorRipe:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorFortified: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	core.ColorEnemy:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorObstacle:  lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
	core.ColorCursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorAccent:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
	core.ColorMuted:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Board layout: every tile takes tileWidth columns and one row.
const tileWidth = 3

// tileGlyph returns how a tile is drawn.
func tileGlyph(t province.Tile) (rune, core.Color) {
	if t.IsHidden {
		return '░', core.ColorHidden
	}
	switch t.Type {
	case province.TypeFortified:
		return '▲', core.ColorFortified
	case province.TypeEnemy:
		return 'x', core.ColorEnemy
	case province.TypeObstacle:
		return '█', core.ColorObstacle
	}
	if !t.IsCaptured {
		return '·', core.ColorNeutral
	}
	if t.GrowingLevel == province.MaxGrowingLevel {
		return '6', core.ColorRipe
	}
	return rune('0' + t.GrowingLevel), core.ColorGrowing
}

// drawBoard draws the part of b inside view (0-based tile coordinates) with
// its top-left corner at (ox, oy). The cursor tile is bracketed.
func drawBoard(dst *core.Screen, b province.Board, view core.Rect, cursor province.Coord, ox, oy int) {
	for ty := view.Y; ty < view.Bottom(); ty++ {
		for tx := view.X; tx < view.Right(); tx++ {
			t, ok := b.At(tx+1, ty+1)
			if !ok {
				continue
			}
			sx := ox + (tx-view.X)*tileWidth
			sy := oy + (ty - view.Y)
			r, c := tileGlyph(t)
			dst.SetColored(sx+1, sy, r, c)
			if t.X == cursor.X && t.Y == cursor.Y {
				dst.SetColored(sx, sy, '[', core.ColorCursor)
				dst.SetColored(sx+2, sy, ']', core.ColorCursor)
			}
		}
	}
}

// formatClock renders seconds as mm:ss.
func formatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
