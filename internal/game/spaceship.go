package game

import (
	"strconv"
	"time"

	"github.com/tomz197/boxsteroids/internal/draw"
	"github.com/tomz197/boxsteroids/internal/input"
	"github.com/tomz197/boxsteroids/internal/object"
)

// hullPart is a ship collider kept at a fixed offset from the ship position.
type hullPart struct {
	offsetX, offsetY float64
	collider         *object.Collider
}

// Spaceship is the player's ship. Its irregular shape is two colliders:
// a 24x16 body and a 12x16 nose above it.
type Spaceship struct {
	object.Base
	env *Env

	Integrity    float64
	maxIntegrity float64
	Score        int

	speed        float64
	shotInterval time.Duration
	cooldown     time.Duration
	hull         []hullPart
}

// NewSpaceship creates a ship centered at (x, y) and registers its hull in w.
// The ship itself is not registered.
func NewSpaceship(env *Env, w object.World, x, y float64) *Spaceship {
	tuning := env.Tuning.Ship
	s := &Spaceship{
		Base:         object.NewBase(x, y),
		env:          env,
		Integrity:    tuning.Integrity,
		maxIntegrity: tuning.Integrity,
		speed:        tuning.Speed,
		shotInterval: tuning.ShotInterval,
	}
	for _, part := range []struct{ x, y, w, h float64 }{
		{-12, -8, 24, 16},
		{-6, -24, 12, 16},
	} {
		c := object.NewCollider(x+part.x, y+part.y, part.w, part.h, TagPlayer, s.hit)
		w.Create(c)
		s.hull = append(s.hull, hullPart{offsetX: part.x, offsetY: part.y, collider: c})
	}
	return s
}

// Hull returns the ship's colliders.
func (s *Spaceship) Hull() []*object.Collider {
	out := make([]*object.Collider, len(s.hull))
	for i, p := range s.hull {
		out[i] = p.collider
	}
	return out
}

// IncreaseScore adds one point.
func (s *Spaceship) IncreaseScore() {
	s.Score++
}

// hit is the reaction of every hull collider.
func (s *Spaceship) hit(_ object.World, other object.Collidable) {
	if other.Tag() != TagAsteroid {
		return
	}
	if a, ok := other.(*Asteroid); ok {
		s.Integrity -= float64(a.Size() * 8)
	}
	s.IncreaseScore()
}

func (s *Spaceship) Step(ctx object.UpdateContext) error {
	if s.Integrity <= 0 {
		s.gameOver(ctx.World)
		return nil
	}
	s.move(ctx)
	s.shoot(ctx)
	return nil
}

func (s *Spaceship) gameOver(w object.World) {
	if err := s.env.Board.RecordBest(s.env.Ctx, s.Score); err != nil {
		s.env.Log.Error("Failed to record best score", "err", err)
	}
	s.env.Log.Info("Run ended", "score", s.Score)
	switchScene(w, NewHighscores(s.env, s.Score))
}

// move applies the arrow keys. A move that would leave the screen is undone.
func (s *Spaceship) move(ctx object.UpdateContext) {
	lastX, lastY := s.X, s.Y
	step := s.speed * ctx.Delta.Seconds()

	if ctx.Keys.Pressed(input.KeyArrowUp) {
		s.Y -= step
	}
	if ctx.Keys.Pressed(input.KeyArrowDown) {
		s.Y += step
	}
	if ctx.Keys.Pressed(input.KeyArrowLeft) {
		s.X -= step
	}
	if ctx.Keys.Pressed(input.KeyArrowRight) {
		s.X += step
	}

	if !ctx.Screen.Contains(s.X, s.Y) {
		s.X, s.Y = lastX, lastY
		return
	}
	for _, p := range s.hull {
		p.collider.X = s.X + p.offsetX
		p.collider.Y = s.Y + p.offsetY
	}
}

// shoot fires while Space is held, at most once per shot interval.
func (s *Spaceship) shoot(ctx object.UpdateContext) {
	if s.cooldown > 0 {
		s.cooldown -= ctx.Delta
		return
	}
	if ctx.Keys.Pressed(input.KeySpace) {
		s.cooldown = s.shotInterval
		ctx.World.Create(NewProjectile(s.env, s.X, s.Y-8, s))
	}
}

// Cleanup removes the hull with the ship.
func (s *Spaceship) Cleanup(w object.World) {
	for _, p := range s.hull {
		w.Destroy(p.collider.ID())
	}
}

func (s *Spaceship) Draw(ctx object.DrawContext) error {
	surface := ctx.Surface
	for _, p := range s.hull {
		c := p.collider
		surface.FillRect(c.X, c.Y, c.Width, c.Height, draw.White)
	}

	// Integrity gauge
	ratio := 0.0
	if s.maxIntegrity > 0 {
		ratio = s.Integrity / s.maxIntegrity
	}
	surface.FillRect(8, ctx.Screen.Height-16, max(0, (ctx.Screen.Width-16)*ratio), 8, integrityColor(ratio*100))

	surface.Text(8, 32, strconv.Itoa(s.Score), draw.TextStyle{Size: 14, Color: draw.White})
	return nil
}

func integrityColor(percent float64) draw.Color {
	switch {
	case percent > 70:
		return draw.Green
	case percent > 50:
		return draw.Yellow
	case percent > 30:
		return draw.Orange
	default:
		return draw.Red
	}
}
