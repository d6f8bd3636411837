// Package core provides small shared types for Province: integer geometry,
// a colored character buffer for rendering and the semantic input actions.
// It has no external dependencies so the engine and the TUI can both use it.
package core

// Rect is an axis-aligned rectangle in cell coordinates.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ScrollTo returns the rectangle moved the minimum distance needed to contain
// (x, y), kept inside [0, boundsW) x [0, boundsH).
// It is used to keep the board cursor visible when the board does not fit
// the terminal.
func (r Rect) ScrollTo(x, y, boundsW, boundsH int) Rect {
	if x < r.X {
		r.X = x
	} else if x >= r.Right() {
		r.X = x - r.W + 1
	}
	if y < r.Y {
		r.Y = y
	} else if y >= r.Bottom() {
		r.Y = y - r.H + 1
	}
	r.X = Clamp(r.X, 0, max(boundsW-r.W, 0))
	r.Y = Clamp(r.Y, 0, max(boundsH-r.H, 0))
	return r
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
