// Package game implements the boxsteroids scenes (menu, credits, help,
// highscores) and the space objects (spaceship, asteroids, projectiles).
package game

import (
	"context"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/tomz197/boxsteroids/internal/config"
	"github.com/tomz197/boxsteroids/internal/highscore"
	"github.com/tomz197/boxsteroids/internal/object"
	"github.com/tomz197/boxsteroids/internal/store"
)

// Collider tags used for reaction dispatch.
const (
	TagPlayer     object.Tag = "Player"
	TagAsteroid   object.Tag = "Asteroid"
	TagProjectile object.Tag = "Projectile"
)

// Env holds what scenes share for the lifetime of a session.
type Env struct {
	// Ctx bounds store access; it is the session context.
	Ctx    context.Context
	Board  *highscore.Board
	Log    *log.Logger
	Tuning config.GameConfig
	Screen object.Screen
	Rand   *rand.Rand
}

// NewEnv creates an environment. A nil logger discards output, a nil
// board keeps scores in memory and a nil rng is seeded randomly.
func NewEnv(ctx context.Context, board *highscore.Board, cfg config.Config, logger *log.Logger, rng *rand.Rand) *Env {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if board == nil {
		board = highscore.New(store.NewMemory(), logger)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Env{
		Ctx:    ctx,
		Board:  board,
		Log:    logger,
		Tuning: cfg.Game,
		Screen: object.Screen{Width: cfg.Engine.Width, Height: cfg.Engine.Height},
		Rand:   rng,
	}
}

// switchScene replaces everything in the world with next.
func switchScene(w object.World, next object.Object) {
	w.Clear()
	w.Create(next)
}

