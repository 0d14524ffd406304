package game

import (
	"math"
	"sync"

	"github.com/tomz197/boxsteroids/internal/draw"
	"github.com/tomz197/boxsteroids/internal/object"
)

const (
	debrisSpeed    = 40.0
	debrisLifetime = 0.5 // seconds
	debrisDrag     = 0.95
	debrisSide     = 2
)

var debrisPool = sync.Pool{
	New: func() any {
		return &Debris{}
	},
}

var debrisColors = []draw.Color{draw.Azure, draw.White, draw.Magenta}

// Debris is a short-lived fleck left by a vaporized asteroid. It does not collide.
type Debris struct {
	object.Base
	VX, VY      float64
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64
	Color       draw.Color
}

// newDebris takes a fleck from the pool.
func newDebris(x, y, vx, vy, lifetime float64, c draw.Color) *Debris {
	d := debrisPool.Get().(*Debris)
	*d = Debris{
		Base:        object.NewBase(x, y),
		VX:          vx,
		VY:          vy,
		Lifetime:    lifetime,
		MaxLifetime: lifetime,
		Color:       c,
	}
	return d
}

// spawnDebris bursts count flecks out of (x, y).
func spawnDebris(env *Env, w object.World, x, y float64, count int) {
	rng := env.Rand
	for range count {
		angle := rng.Float64() * 2 * math.Pi
		// 50% to 150% speed, 50% to 100% lifetime
		speed := debrisSpeed * (0.5 + rng.Float64())
		life := debrisLifetime * (0.5 + rng.Float64()*0.5)
		c := debrisColors[rng.IntN(len(debrisColors))]
		w.Create(newDebris(x, y, math.Cos(angle)*speed, math.Sin(angle)*speed, life, c))
	}
}

func (d *Debris) Step(ctx object.UpdateContext) error {
	dt := ctx.Delta.Seconds()
	d.Lifetime -= dt
	if d.Lifetime <= 0 {
		ctx.World.Destroy(d.ID())
		return nil
	}

	drag := math.Pow(debrisDrag, dt*60) // Normalized to 60fps
	d.VX *= drag
	d.VY *= drag
	d.X += d.VX * dt
	d.Y += d.VY * dt
	return nil
}

func (d *Debris) Draw(ctx object.DrawContext) error {
	// Faded out below a quarter of its lifetime
	if d.MaxLifetime > 0 && d.Lifetime/d.MaxLifetime < 0.25 {
		return nil
	}
	ctx.Surface.FillRect(d.X, d.Y, debrisSide, debrisSide, d.Color)
	return nil
}

// Cleanup returns the fleck to the pool.
func (d *Debris) Cleanup(object.World) {
	debrisPool.Put(d)
}
