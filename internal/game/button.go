package game

import (
	"github.com/tomz197/boxsteroids/internal/draw"
	"github.com/tomz197/boxsteroids/internal/input"
	"github.com/tomz197/boxsteroids/internal/object"
)

// Button is a text label with an action.
type Button struct {
	Text   string
	Size   int
	X, Y   float64
	Color  draw.Color
	Action func(w object.World)
}

// NewButton creates a white button.
func NewButton(text string, size int, x, y float64, action func(w object.World)) *Button {
	return &Button{Text: text, Size: size, X: x, Y: y, Color: draw.White, Action: action}
}

// WithColor sets the label color.
func (b *Button) WithColor(c draw.Color) *Button {
	b.Color = c
	return b
}

func (b *Button) Select(w object.World) {
	if b.Action != nil {
		b.Action(w)
	}
}

func (b *Button) Draw(s draw.Surface) {
	s.Text(b.X, b.Y, b.Text, draw.TextStyle{Size: b.Size, Color: b.Color})
}

// OptionSelect is a titled list of buttons navigated with the arrow keys
// and activated with Space. Scenes embed it.
type OptionSelect struct {
	object.Base
	Title     string
	TitleSize int
	Buttons   []*Button
	Selected  int
}

func newOptionSelect(title string, size int, buttons ...*Button) OptionSelect {
	return OptionSelect{
		Base:      object.NewBase(0, 0),
		Title:     title,
		TitleSize: size,
		Buttons:   buttons,
	}
}

// Step moves the selection, wrapping at both ends, and fires the selected button.
func (o *OptionSelect) Step(ctx object.UpdateContext) error {
	n := len(o.Buttons)
	if n == 0 {
		return nil
	}
	if ctx.Keys.Clicked(input.KeyArrowUp) || ctx.Keys.Clicked(input.KeyArrowLeft) {
		o.Selected = (n + o.Selected - 1) % n
	}
	if ctx.Keys.Clicked(input.KeyArrowDown) || ctx.Keys.Clicked(input.KeyArrowRight) {
		o.Selected = (o.Selected + 1) % n
	}
	if ctx.Keys.Clicked(input.KeySpace) {
		o.Buttons[o.Selected].Select(ctx.World)
	}
	return nil
}

// Draw draws the title, the buttons and a marker left of the selected one.
func (o *OptionSelect) Draw(ctx object.DrawContext) error {
	s := ctx.Surface
	s.Text(30, 60, o.Title, draw.TextStyle{Size: o.TitleSize, Color: draw.White})
	for _, b := range o.Buttons {
		b.Draw(s)
	}
	if len(o.Buttons) > 0 {
		sel := o.Buttons[o.Selected]
		s.FillRect(sel.X-18, sel.Y-8, 8, 8, draw.White)
	}
	return nil
}
