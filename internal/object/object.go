// Package object defines the engine's game objects: identity, position,
// colliders and the contexts passed to them every frame.
package object

import (
	"sync/atomic"
	"time"

	"github.com/tomz197/boxsteroids/internal/draw"
	"github.com/tomz197/boxsteroids/internal/input"
	"github.com/tomz197/boxsteroids/internal/physics"
)

// ID identifies an object. IDs increase monotonically and are never reused.
type ID uint64

var lastID atomic.Uint64

// NextID returns a fresh object ID.
func NextID() ID {
	return ID(lastID.Add(1))
}

// Tag is a free-form collider category used for reaction dispatch.
type Tag string

// TagCollider is the tag of colliders created without one.
const TagCollider Tag = "Collider"

// World is the object registry as seen by objects during a frame.
// Creations and destructions are deferred to frame boundaries.
type World interface {
	// Create queues obj; it becomes live at the next frame. Returns obj.
	Create(obj Object) Object
	// Destroy queues id for removal at the end of the current frame.
	Destroy(id ID)
	// Clear drops every live and pending object.
	Clear()
}

// Screen is the logical play area.
type Screen struct {
	Width  float64
	Height float64
}

// Contains reports whether (x, y) lies inside the screen, edges included.
func (s Screen) Contains(x, y float64) bool {
	return x >= 0 && x <= s.Width && y >= 0 && y <= s.Height
}

// UpdateContext provides all the information an object needs during a step.
type UpdateContext struct {
	Delta  time.Duration
	Keys   input.Snapshot
	World  World
	Screen Screen
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Surface draw.Surface
	Screen  Screen
}

// Object is a drawable and steppable game entity.
type Object interface {
	ID() ID
	// Step advances the object by one frame.
	Step(ctx UpdateContext) error
	// Draw draws the object on ctx.Surface.
	Draw(ctx DrawContext) error
}

// Collidable is an object taking part in the collision pass.
type Collidable interface {
	Object
	Box() physics.Box
	Tag() Tag
	// OnCollision is called with the opposing collider on overlap.
	OnCollision(w World, other Collidable)
}

// Cleaner is implemented by objects that release resources when destroyed.
type Cleaner interface {
	// Cleanup runs exactly once, when the object is removed from the world.
	Cleanup(w World)
}
