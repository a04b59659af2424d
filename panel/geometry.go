package panel

import "fmt"

// Mode selects how a dragged panel is positioned.
type Mode uint8

const (
	// ModeFixed is a free-floating panel kept inside the viewport.
	ModeFixed Mode = iota
	// ModeAbsolute moves the panel by a relative transform without clamping.
	ModeAbsolute
	// ModeInline is an embedded panel whose drag offset never affects the
	// surrounding layout.
	ModeInline
)

func (m Mode) String() string {
	switch m {
	case ModeFixed:
		return "fixed"
	case ModeAbsolute:
		return "absolute"
	case ModeInline:
		return "inline"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Geometry describes a panel's shape and screen position.
type Geometry struct {
	Width, Height int
	// Radius is the CSS-style corner radius in pixels. Zero selects the
	// aspect-adaptive fragment when no fragment is configured.
	Radius float64
	// X, Y is the top-left corner in screen pixels.
	X, Y float64
	Mode Mode
}

// Contains reports whether the screen point lies inside the panel.
func (g Geometry) Contains(x, y float64) bool {
	return x >= g.X && y >= g.Y && x < g.X+float64(g.Width) && y < g.Y+float64(g.Height)
}

// Normalize converts a screen point to panel-relative coordinates where the
// panel spans [0, 1] on both axes.
func (g Geometry) Normalize(x, y float64) (nx, ny float64) {
	return (x - g.X) / float64(g.Width), (y - g.Y) / float64(g.Height)
}

// Size is a viewport size in pixels. A zero size leaves panels unconstrained.
type Size struct {
	W, H float64
}

// clampAxis keeps v inside [offset, viewport-size-offset]. A panel larger
// than the range is pinned to offset.
func clampAxis(v, size, viewport, offset float64) float64 {
	if viewport <= 0 {
		return v
	}
	hi := viewport - size - offset
	if v > hi {
		v = hi
	}
	if v < offset {
		v = offset
	}
	return v
}
