package game

import (
	"math"
	"time"

	"github.com/tomz197/boxsteroids/internal/draw"
	"github.com/tomz197/boxsteroids/internal/object"
)

const (
	asteroidUnit     = 8 // Box side per size step
	maxFragments     = 4
	fragmentSpread   = 120
	fragmentMaxSpeed = 15
)

// Asteroid is a square rock of side size*8. It takes size projectile hits
// to break, then splits into up to four rocks of half its size.
type Asteroid struct {
	object.Collider
	env *Env

	VX, VY     float64
	size       int
	resistance int
	flash      time.Duration // Remaining damage flash
}

// NewAsteroid creates an asteroid with its top-left corner at (x, y).
func NewAsteroid(env *Env, x, y, vx, vy float64, size int) *Asteroid {
	side := float64(size * asteroidUnit)
	return &Asteroid{
		Collider:   *object.NewCollider(x, y, side, side, TagAsteroid, nil),
		env:        env,
		VX:         vx,
		VY:         vy,
		size:       size,
		resistance: size,
	}
}

// Size returns the asteroid's size class.
func (a *Asteroid) Size() int {
	return a.size
}

// Resistance returns how many more hits the asteroid takes.
func (a *Asteroid) Resistance() int {
	return a.resistance
}

// Flashing reports whether the damage flash is showing.
func (a *Asteroid) Flashing() bool {
	return a.flash > 0
}

// OnCollision takes damage from projectiles and vanishes on touching the player.
// An asteroid already broken this frame ignores further projectiles.
func (a *Asteroid) OnCollision(w object.World, other object.Collidable) {
	switch other.Tag() {
	case TagProjectile:
		if a.resistance <= 0 {
			return
		}
		a.resistance--
		a.flash = a.env.Tuning.Asteroid.FlashDuration
		if a.resistance > 0 {
			return
		}

		fragments := a.Fragments()
		for _, f := range fragments {
			w.Create(f)
		}
		if len(fragments) == 0 {
			spawnDebris(a.env, w, a.X+a.Width/2, a.Y+a.Height/2, a.size*4)
		}
		if p, ok := other.(*Projectile); ok && p.owner != nil {
			p.owner.IncreaseScore()
		}
		w.Destroy(a.ID())
	case TagPlayer:
		w.Destroy(a.ID())
	}
}

// Fragments returns the children of a broken asteroid: up to four of half
// its size, or none once half the size is below 1. Each child drifts with
// the parent's velocity plus a small random push.
func (a *Asteroid) Fragments() []*Asteroid {
	half := a.size / 2
	if half < 1 {
		return nil
	}
	rng := a.env.Rand
	push := func() float64 {
		v := -fragmentSpread + rng.Float64()*2*fragmentSpread
		return math.Copysign(min(fragmentMaxSpeed, math.Abs(v)), v)
	}

	out := make([]*Asteroid, 0, maxFragments)
	for i := range maxFragments {
		px, py := 1.0, 1.0
		if i%2 == 1 {
			px = -1
		}
		if i > 2 {
			py = -1
		}
		offset := float64(half * asteroidUnit / 2)
		out = append(out, NewAsteroid(a.env,
			a.X+px*offset, a.Y+py*offset,
			a.VX+push(), a.VY+push(),
			half))
	}
	return out
}

func (a *Asteroid) Step(ctx object.UpdateContext) error {
	dt := ctx.Delta.Seconds()
	a.X += a.VX * dt
	a.Y += a.VY * dt

	if !ctx.Screen.Contains(a.X, a.Y) || a.resistance <= 0 {
		ctx.World.Destroy(a.ID())
	}
	if a.flash > 0 {
		a.flash -= ctx.Delta
	}
	return nil
}

func (a *Asteroid) Draw(ctx object.DrawContext) error {
	if a.resistance <= 0 {
		return nil
	}
	color := draw.Azure
	if a.flash > 0 {
		color = draw.Magenta
	}
	ctx.Surface.FillRect(a.X, a.Y, a.Width, a.Height, color)
	return nil
}
