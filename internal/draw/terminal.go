package draw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ChunkWriter accumulates text for terminal output and writes in chunks for optimal
// network flow (e.g. over SSH). Implements io.Writer for Canvas.Render.
type ChunkWriter struct {
	buf  strings.Builder
	bufw *bufio.Writer // Buffers writes to underlying writer for fewer syscalls
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer) *ChunkWriter {
	return &ChunkWriter{
		bufw: bufio.NewWriterSize(w, 8192),
	}
}

// Write implements io.Writer for use with Canvas.Render and other writers.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteString appends a string to the buffer.
func (cw *ChunkWriter) WriteString(s string) (int, error) {
	return cw.buf.WriteString(s)
}

// Ensure ChunkWriter satisfies io.Writer.
var _ io.Writer = (*ChunkWriter)(nil)

// Flush writes the accumulated buffer to the underlying writer in chunks,
// then resets the buffer. Uses the same chunk size as Canvas.Render.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// ColorProfile picks a colour profile from a terminal's TERM value and its
// environment ("KEY=value" pairs).
func ColorProfile(termName string, environ []string) termenv.Profile {
	for _, kv := range environ {
		if v, ok := strings.CutPrefix(kv, "COLORTERM="); ok && (v == "truecolor" || v == "24bit") {
			return termenv.TrueColor
		}
	}
	switch {
	case strings.Contains(termName, "256color"), strings.Contains(termName, "kitty"):
		return termenv.ANSI256
	case termName == "" || termName == "dumb":
		return termenv.Ascii
	default:
		return termenv.ANSI
	}
}

// Terminal is a Surface backed by a Canvas that presents frames to a terminal.
type Terminal struct {
	*Canvas
	out      *ChunkWriter
	sizeFunc TermSizeFunc
}

// NewTerminal creates a terminal display writing to w. The canvas covers the
// whole terminal and maps the logical size onto it.
func NewTerminal(w io.Writer, sizeFunc TermSizeFunc, logicalWidth, logicalHeight float64, profile termenv.Profile) *Terminal {
	if sizeFunc == nil {
		sizeFunc = DefaultTermSizeFunc
	}
	width, height, err := sizeFunc()
	if err != nil {
		width, height = 80, 24
	}
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	return &Terminal{
		Canvas:   NewCanvas(width, height, logicalWidth, logicalHeight, renderer),
		out:      NewChunkWriter(w),
		sizeFunc: sizeFunc,
	}
}

// Present renders the current frame to the terminal, then adapts the canvas
// to any terminal resize for the next frame.
func (t *Terminal) Present() error {
	if err := t.Render(t.out); err != nil {
		return err
	}
	if err := t.out.Flush(); err != nil {
		return err
	}

	width, height, err := t.sizeFunc()
	if err != nil {
		return nil
	}
	if width != t.TerminalWidth() || height != t.TerminalHeight() {
		t.Resize(width, height)
		ClearScreen(t.out)
	}
	return nil
}
