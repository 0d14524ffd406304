// Package draw provides the drawing surface used by game objects and its
// terminal implementation.
package draw

// Align controls horizontal text alignment relative to the anchor point.
type Align int

const (
	AlignStart  Align = iota // Text begins at the anchor
	AlignEnd                 // Text ends at the anchor
	AlignCenter              // Text is centered on the anchor
)

// TextStyle describes how a text run is drawn.
type TextStyle struct {
	Size  int // Nominal font size in logical units
	Color Color
	Align Align
}

// Bold reports whether the style should be rendered emphasized.
// Terminals have a single glyph size, so large fonts become bold.
func (s TextStyle) Bold() bool {
	return s.Size >= 18
}

// Surface is a rectangular drawing target addressed in logical coordinates.
type Surface interface {
	// Size returns the logical width and height.
	Size() (width, height float64)
	// Clear fills the whole surface with c and drops any text.
	Clear(c Color)
	// FillRect fills the rectangle with top-left corner (x, y).
	FillRect(x, y, w, h float64, c Color)
	// StrokeRect outlines the rectangle with top-left corner (x, y).
	StrokeRect(x, y, w, h float64, c Color)
	// Text draws s with its baseline at y.
	Text(x, y float64, s string, style TextStyle)
}
