package game

import (
	"github.com/tomz197/boxsteroids/internal/draw"
	"github.com/tomz197/boxsteroids/internal/object"
)

// Scorer is credited when its projectile breaks an asteroid.
type Scorer interface {
	IncreaseScore()
}

// Projectile flies straight up until it leaves the screen or hits an asteroid.
type Projectile struct {
	object.Collider
	speed float64
	owner Scorer
}

// NewProjectile creates a projectile centered on (x, y).
func NewProjectile(env *Env, x, y float64, owner Scorer) *Projectile {
	t := env.Tuning.Projectile
	return &Projectile{
		Collider: *object.NewCollider(x-t.Width/2, y-t.Height/2, t.Width, t.Height, TagProjectile, nil),
		speed:    t.Speed,
		owner:    owner,
	}
}

// Owner returns who fired the projectile.
func (p *Projectile) Owner() Scorer {
	return p.owner
}

func (p *Projectile) OnCollision(w object.World, other object.Collidable) {
	if other.Tag() == TagAsteroid {
		w.Destroy(p.ID())
	}
}

func (p *Projectile) Step(ctx object.UpdateContext) error {
	p.Y -= p.speed * ctx.Delta.Seconds()
	if !ctx.Screen.Contains(p.X+p.Width/2, p.Y+p.Height/2) {
		ctx.World.Destroy(p.ID())
	}
	return nil
}

func (p *Projectile) Draw(ctx object.DrawContext) error {
	ctx.Surface.FillRect(p.X, p.Y, p.Width, p.Height, draw.Yellow)
	return nil
}
