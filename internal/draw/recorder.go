package draw

// OpKind identifies a recorded drawing operation.
type OpKind int

const (
	OpClear OpKind = iota
	OpFillRect
	OpStrokeRect
	OpText
)

// Op is a single drawing call captured by a Recorder.
type Op struct {
	Kind       OpKind
	X, Y, W, H float64
	Color      Color
	Text       string
	Style      TextStyle
}

// Recorder is a Surface that records drawing calls instead of rendering them.
// Each Clear starts a new frame.
type Recorder struct {
	Width, Height float64
	ops           []Op
	frames        int
}

// Ensure Recorder satisfies Surface.
var _ Surface = (*Recorder)(nil)

// NewRecorder creates a recorder with the given logical size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{Width: width, Height: height}
}

func (r *Recorder) Size() (float64, float64) { return r.Width, r.Height }

func (r *Recorder) Clear(c Color) {
	r.ops = append(r.ops[:0], Op{Kind: OpClear, W: r.Width, H: r.Height, Color: c})
	r.frames++
}

func (r *Recorder) FillRect(x, y, w, h float64, c Color) {
	r.ops = append(r.ops, Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) StrokeRect(x, y, w, h float64, c Color) {
	r.ops = append(r.ops, Op{Kind: OpStrokeRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) Text(x, y float64, s string, style TextStyle) {
	r.ops = append(r.ops, Op{Kind: OpText, X: x, Y: y, Text: s, Style: style, Color: style.Color})
}

// Present is a no-op so a Recorder can stand in for a terminal display.
func (r *Recorder) Present() error { return nil }

// Ops returns the operations recorded since the last Clear.
func (r *Recorder) Ops() []Op {
	return append([]Op(nil), r.ops...)
}

// Texts returns the strings drawn since the last Clear, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Frames returns how many frames (Clear calls) were recorded.
func (r *Recorder) Frames() int { return r.frames }
