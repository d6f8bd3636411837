package core

// Color represents a foreground color for a screen cell.
// The TUI maps each value onto a lipgloss style.
type Color uint8

// Palette used by the board renderer.
const (
	ColorDefault Color = iota
	ColorHidden        // fogged tile
	ColorNeutral       // uncaptured territory
	ColorGrowing       // captured territory, levels 0-5
	ColorRipe          // captured territory at level 6, ready to harvest
	ColorFortified
	ColorEnemy
	ColorObstacle
	ColorCursor
	ColorAccent // headers and status lines
	ColorMuted  // help and secondary text
)
