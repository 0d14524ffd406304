package object

import "github.com/tomz197/boxsteroids/internal/physics"

// Collider is an invisible object with a bounding box and a collision reaction.
// Use it directly for compound shapes, or embed it and override OnCollision.
type Collider struct {
	Base
	Width, Height float64
	tag           Tag
	reaction      func(w World, other Collidable)
}

// Ensure Collider satisfies Collidable.
var _ Collidable = (*Collider)(nil)

// NewCollider creates a collider with its top-left corner at (x, y).
// An empty tag defaults to TagCollider; reaction may be nil.
func NewCollider(x, y, w, h float64, tag Tag, reaction func(w World, other Collidable)) *Collider {
	if tag == "" {
		tag = TagCollider
	}
	return &Collider{
		Base:     NewBase(x, y),
		Width:    max(w, 0),
		Height:   max(h, 0),
		tag:      tag,
		reaction: reaction,
	}
}

// Box returns the collider's bounding box.
func (c *Collider) Box() physics.Box {
	return physics.Box{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height}
}

// Tag returns the collider's category.
func (c *Collider) Tag() Tag {
	return c.tag
}

// OnCollision invokes the reaction, if any.
func (c *Collider) OnCollision(w World, other Collidable) {
	if c.reaction != nil {
		c.reaction(w, other)
	}
}
