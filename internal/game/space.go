package game

import (
	"math"
	"time"

	"github.com/tomz197/boxsteroids/internal/object"
)

// Space is the gameplay scene: it owns the asteroid spawner and creates
// the spaceship.
type Space struct {
	object.Base
	env        *Env
	ship       *Spaceship
	untilSpawn time.Duration
}

// NewSpace creates the scene and its spaceship in w. Both become live on
// the next frame.
func NewSpace(env *Env, w object.World) *Space {
	s := &Space{
		Base: object.NewBase(0, 0),
		env:  env,
	}
	s.ship = NewSpaceship(env, w, env.Screen.Width/2, env.Screen.Height/2)
	w.Create(s.ship)
	return s
}

// Ship returns the scene's spaceship.
func (s *Space) Ship() *Spaceship {
	return s.ship
}

// Step spawns an asteroid whenever the countdown runs out.
func (s *Space) Step(ctx object.UpdateContext) error {
	if s.untilSpawn <= 0 {
		s.resetCountdown()
		ctx.World.Create(s.randomAsteroid(ctx.Screen))
	} else {
		s.untilSpawn -= ctx.Delta
	}
	return nil
}

// resetCountdown picks the next interval in [max/3, max].
func (s *Space) resetCountdown() {
	maxInterval := s.env.Tuning.Asteroid.SpawnMaxInterval
	base := maxInterval / 3
	s.untilSpawn = base + time.Duration(s.env.Rand.Float64()*float64(maxInterval-base))
}

// randomAsteroid creates an asteroid of size 1-4 on the top edge, drifting down.
func (s *Space) randomAsteroid(screen object.Screen) *Asteroid {
	rng := s.env.Rand
	x := math.Round(rng.Float64() * screen.Width)
	size := int(math.Round(1 + rng.Float64()*3))
	vx := math.Round((-180 + rng.Float64()*360) / 2)
	vy := math.Round((60 + rng.Float64()*120) / 2)
	return NewAsteroid(s.env, x, 0, vx, vy, size)
}
