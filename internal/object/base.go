package object

// Base carries identity and position. Embed it to get no-op Step and Draw.
type Base struct {
	id   ID
	X, Y float64
}

// NewBase creates a positioned base with a fresh ID.
func NewBase(x, y float64) Base {
	return Base{id: NextID(), X: x, Y: y}
}

// ID returns the object's identity.
func (b *Base) ID() ID {
	return b.id
}

// Step is a no-op.
func (b *Base) Step(UpdateContext) error {
	return nil
}

// Draw is a no-op.
func (b *Base) Draw(DrawContext) error {
	return nil
}
