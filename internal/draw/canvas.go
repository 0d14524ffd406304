package draw

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// Canvas is a colour drawing buffer with 2x vertical resolution using half-block characters.
// Objects draw in logical coordinates which are scaled to the actual terminal size.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	texts []textOp // Text overlay, drawn on top of the pixels

	renderer  *lipgloss.Renderer
	cellCache map[[2]Color]string    // Rendered half-block per (top, bottom) colour pair
	textCache map[TextStyle]lipgloss.Style

	renderBuf strings.Builder // Buffer for batching render output
}

type textOp struct {
	col, row int
	value    string
	style    TextStyle
}

// Ensure Canvas satisfies Surface.
var _ Surface = (*Canvas)(nil)

// NewCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// A nil renderer falls back to lipgloss' default renderer.
func NewCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64, r *lipgloss.Renderer) *Canvas {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		renderer:      r,
		cellCache:     make(map[[2]Color]string),
		textCache:     make(map[TextStyle]lipgloss.Style),
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// Size returns the logical dimensions.
func (c *Canvas) Size() (float64, float64) {
	return c.logicalWidth, c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// Clear paints every pixel with col and drops the text overlay.
func (c *Canvas) Clear(col Color) {
	for i := range c.pixels {
		c.pixels[i] = col
	}
	c.texts = c.texts[:0]
}

// At returns the colour of the pixel at actual pixel coordinates.
func (c *Canvas) At(px, py int) Color {
	if px < 0 || px >= c.termWidth || py < 0 || py >= c.subPixelHeight {
		return Color{}
	}
	return c.pixels[py*c.termWidth+px]
}

// setPixel sets a pixel at actual pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// pixelSpan converts a logical interval to an inclusive pixel interval.
// Non-empty intervals always cover at least one pixel.
func pixelSpan(start, length, scale float64) (int, int) {
	p0 := int(math.Floor(start * scale))
	p1 := int(math.Ceil((start+length)*scale)) - 1
	if p1 < p0 {
		p1 = p0
	}
	return p0, p1
}

// FillRect fills a rectangle given in logical coordinates.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	if w <= 0 || h <= 0 {
		return
	}
	x0, x1 := pixelSpan(x, w, c.scaleX)
	y0, y1 := pixelSpan(y, h, c.scaleY)
	x0, x1 = max(x0, 0), min(x1, c.termWidth-1)
	y0, y1 = max(y0, 0), min(y1, c.subPixelHeight-1)

	for py := y0; py <= y1; py++ {
		row := c.pixels[py*c.termWidth : (py+1)*c.termWidth]
		for px := x0; px <= x1; px++ {
			row[px] = col
		}
	}
}

// StrokeRect draws a one pixel outline of a rectangle given in logical coordinates.
func (c *Canvas) StrokeRect(x, y, w, h float64, col Color) {
	if w < 0 || h < 0 {
		return
	}
	x0, x1 := pixelSpan(x, w, c.scaleX)
	y0, y1 := pixelSpan(y, h, c.scaleY)

	for px := x0; px <= x1; px++ {
		c.setPixel(px, y0, col)
		c.setPixel(px, y1, col)
	}
	for py := y0; py <= y1; py++ {
		c.setPixel(x0, py, col)
		c.setPixel(x1, py, col)
	}
}

// Text queues s for the overlay. The anchor is converted to a terminal cell;
// the glyph row sits half a font size above the baseline.
func (c *Canvas) Text(x, y float64, s string, style TextStyle) {
	if s == "" {
		return
	}
	col, row := c.LogicalToTerminal(x, y-float64(style.Size)/2)
	n := utf8.RuneCountInString(s)
	switch style.Align {
	case AlignEnd:
		col -= n - 1
	case AlignCenter:
		col -= n / 2
	}
	c.texts = append(c.texts, textOp{col: max(col, 1), row: max(row, 1), value: s, style: style})
}

// LogicalToTerminal converts logical coordinates to 1-based terminal position (col, row).
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

// cell returns the rendered half-block for a top/bottom pixel pair.
func (c *Canvas) cell(top, bottom Color) string {
	key := [2]Color{top, bottom}
	if s, ok := c.cellCache[key]; ok {
		return s
	}
	s := c.renderer.NewStyle().
		Foreground(lipgloss.Color(top.Hex())).
		Background(lipgloss.Color(bottom.Hex())).
		Render(string(BlockUpperHalf))
	c.cellCache[key] = s
	return s
}

func (c *Canvas) textStyle(ts TextStyle) lipgloss.Style {
	if st, ok := c.textCache[ts]; ok {
		return st
	}
	st := c.renderer.NewStyle().Foreground(lipgloss.Color(ts.Color.Hex())).Bold(ts.Bold())
	c.textCache[ts] = st
	return st
}

// BlockUpperHalf is the glyph used to render two vertical pixels per cell.
const BlockUpperHalf = '▀'

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1400 bytes stays under a typical 1500 byte MTU once SSH and TCP headers are added.
const maxChunkSize = 1400

// Render outputs the canvas and its text overlay to the writer.
// Every cell is rewritten each frame so no full-screen clear is needed.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 24)

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		fmt.Fprintf(&c.renderBuf, "\033[%d;1H", row+1)
		for col := 0; col < c.termWidth; col++ {
			c.renderBuf.WriteString(c.cell(c.pixels[topOffset+col], c.pixels[bottomOffset+col]))
		}
	}

	for _, t := range c.texts {
		fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", t.row, t.col)
		c.renderBuf.WriteString(c.textStyle(t.style).Render(t.value))
	}

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}
