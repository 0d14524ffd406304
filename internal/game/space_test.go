package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/boxsteroids/internal/draw"
	"github.com/tomz197/boxsteroids/internal/highscore"
	"github.com/tomz197/boxsteroids/internal/input"
	"github.com/tomz197/boxsteroids/internal/object"
)

const frameDelta = 16 * time.Millisecond

func TestAsteroidFragments(t *testing.T) {
	env, _ := newTestEnv(t)

	tests := []struct {
		size     int
		wantN    int
		wantSize int
	}{
		{size: 1, wantN: 0},
		{size: 2, wantN: 4, wantSize: 1},
		{size: 3, wantN: 4, wantSize: 1},
		{size: 4, wantN: 4, wantSize: 2},
	}
	for _, tt := range tests {
		parent := NewAsteroid(env, 100, 100, 10, 40, tt.size)
		children := parent.Fragments()
		require.Len(t, children, tt.wantN, "size %d", tt.size)
		for _, c := range children {
			assert.Equal(t, tt.wantSize, c.Size())
			assert.Equal(t, tt.wantSize, c.Resistance())
			assert.Equal(t, float64(tt.wantSize*8), c.Width)
			assert.InDelta(t, 10, c.VX, 15)
			assert.InDelta(t, 40, c.VY, 15)
			assert.NotEqual(t, parent.ID(), c.ID())
		}
	}
}

func TestAsteroidBreaksAfterSizeHits(t *testing.T) {
	env, _ := newTestEnv(t)
	ship := &Spaceship{}
	a := NewAsteroid(env, 100, 100, 0, 0, 2)
	shot := NewProjectile(env, 100, 100, ship)
	w := &fakeWorld{}

	a.OnCollision(w, shot)
	assert.Equal(t, 1, a.Resistance())
	assert.True(t, a.Flashing())
	assert.Empty(t, w.destroyed)
	assert.Zero(t, ship.Score)

	a.OnCollision(w, shot)
	assert.Zero(t, a.Resistance())
	assert.True(t, w.destroyedID(a.ID()))
	assert.Len(t, createdOf[*Asteroid](w), 4)
	assert.Equal(t, 1, ship.Score)

	// Already broken: further hits change nothing.
	a.OnCollision(w, shot)
	assert.Len(t, createdOf[*Asteroid](w), 4)
	assert.Equal(t, 1, ship.Score)
}

func TestSmallAsteroidVaporizes(t *testing.T) {
	env, _ := newTestEnv(t)
	ship := &Spaceship{}
	a := NewAsteroid(env, 100, 100, 0, 0, 1)
	w := &fakeWorld{}

	a.OnCollision(w, NewProjectile(env, 100, 100, ship))

	assert.Zero(t, a.Resistance())
	assert.Empty(t, createdOf[*Asteroid](w), "no children below size 1")
	assert.Len(t, createdOf[*Debris](w), 4)
	assert.True(t, w.destroyedID(a.ID()))
	assert.Equal(t, 1, ship.Score)

	ctx, rec := drawCtx()
	require.NoError(t, a.Draw(ctx))
	assert.Len(t, rec.Ops(), 1, "a broken asteroid is not drawn")
}

func TestAsteroidStep(t *testing.T) {
	env, _ := newTestEnv(t)
	w := &fakeWorld{}

	a := NewAsteroid(env, 100, 100, 60, 30, 1)
	require.NoError(t, a.Step(stepCtx(w, 500*time.Millisecond, input.Snapshot{})))
	assert.Equal(t, 130.0, a.X)
	assert.Equal(t, 115.0, a.Y)
	assert.Empty(t, w.destroyed)

	gone := NewAsteroid(env, 290, 100, 60, 0, 1)
	require.NoError(t, gone.Step(stepCtx(w, time.Second, input.Snapshot{})))
	assert.True(t, w.destroyedID(gone.ID()), "off-screen asteroids are removed")
}

func TestAsteroidTouchingPlayerDestroysItself(t *testing.T) {
	env, _ := newTestEnv(t)
	w := &fakeWorld{}
	a := NewAsteroid(env, 100, 100, 0, 0, 3)
	hull := object.NewCollider(0, 0, 1, 1, TagPlayer, nil)

	a.OnCollision(w, hull)
	assert.True(t, w.destroyedID(a.ID()))
	assert.Equal(t, 3, a.Resistance())
}

func TestAsteroidFlashColor(t *testing.T) {
	env, _ := newTestEnv(t)
	w := &fakeWorld{}
	a := NewAsteroid(env, 100, 100, 0, 0, 2)
	a.OnCollision(w, NewProjectile(env, 0, 0, nil))

	ctx, rec := drawCtx()
	require.NoError(t, a.Draw(ctx))
	assert.Equal(t, draw.Magenta, rec.Ops()[1].Color)

	require.NoError(t, a.Step(stepCtx(w, 200*time.Millisecond, input.Snapshot{})))
	ctx, rec = drawCtx()
	require.NoError(t, a.Draw(ctx))
	assert.Equal(t, draw.Azure, rec.Ops()[1].Color)
}

func TestProjectile(t *testing.T) {
	env, _ := newTestEnv(t)
	w := &fakeWorld{}

	p := NewProjectile(env, 150, 142, nil)
	assert.Equal(t, TagProjectile, p.Tag())
	assert.Equal(t, 8.0, p.Width)
	assert.Equal(t, 12.0, p.Height)

	require.NoError(t, p.Step(stepCtx(w, 100*time.Millisecond, input.Snapshot{})))
	assert.InDelta(t, 100, p.Y, 1e-9, "moves 360 units per second upwards")
	assert.Empty(t, w.destroyed)

	p.OnCollision(w, object.NewCollider(0, 0, 1, 1, TagPlayer, nil))
	assert.Empty(t, w.destroyed, "only asteroids stop projectiles")
	p.OnCollision(w, NewAsteroid(env, 0, 0, 0, 0, 1))
	assert.True(t, w.destroyedID(p.ID()))

	far := NewProjectile(env, 150, 10, nil)
	require.NoError(t, far.Step(stepCtx(w, 100*time.Millisecond, input.Snapshot{})))
	assert.True(t, w.destroyedID(far.ID()))
}

func newTestShip(t *testing.T) (*Spaceship, *Env, *fakeWorld) {
	t.Helper()
	env, _ := newTestEnv(t)
	w := &fakeWorld{}
	ship := NewSpaceship(env, w, 150, 150)
	return ship, env, w
}

func TestSpaceshipHull(t *testing.T) {
	ship, _, w := newTestShip(t)

	hull := ship.Hull()
	require.Len(t, hull, 2)
	assert.Equal(t, createdOf[*object.Collider](w), hull)
	assert.Equal(t, []float64{138, 142, 24, 16}, []float64{hull[0].X, hull[0].Y, hull[0].Width, hull[0].Height})
	assert.Equal(t, []float64{144, 126, 12, 16}, []float64{hull[1].X, hull[1].Y, hull[1].Width, hull[1].Height})
	for _, c := range hull {
		assert.Equal(t, TagPlayer, c.Tag())
	}

	ship.Cleanup(w)
	assert.True(t, w.destroyedID(hull[0].ID()))
	assert.True(t, w.destroyedID(hull[1].ID()))
}

func TestSpaceshipTakesDamage(t *testing.T) {
	ship, env, w := newTestShip(t)

	ship.Hull()[0].OnCollision(w, NewAsteroid(env, 0, 0, 0, 0, 3))
	assert.Equal(t, 76.0, ship.Integrity)
	assert.Equal(t, 1, ship.Score, "surviving a hit scores")

	ship.Hull()[1].OnCollision(w, NewProjectile(env, 0, 0, nil))
	assert.Equal(t, 76.0, ship.Integrity)
	assert.Equal(t, 1, ship.Score)
}

func TestSpaceshipMovesInsideScreen(t *testing.T) {
	ship, _, w := newTestShip(t)

	require.NoError(t, ship.Step(stepCtx(w, 100*time.Millisecond, keys(input.KeyArrowLeft, input.KeyArrowUp))))
	assert.InDelta(t, 132, ship.X, 1e-9)
	assert.InDelta(t, 132, ship.Y, 1e-9)
	assert.InDelta(t, 120, ship.Hull()[0].X, 1e-9)
	assert.InDelta(t, 108, ship.Hull()[1].Y, 1e-9)

	ship.X = 299
	require.NoError(t, ship.Step(stepCtx(w, 100*time.Millisecond, keys(input.KeyArrowRight))))
	assert.Equal(t, 299.0, ship.X, "a move off the screen is undone")
}

func TestSpaceshipShotCooldown(t *testing.T) {
	ship, _, w := newTestShip(t)
	fire := keys(input.KeySpace)

	shots := func() int { return len(createdOf[*Projectile](w)) }

	require.NoError(t, ship.Step(stepCtx(w, frameDelta, fire)))
	require.Equal(t, 1, shots())
	p := createdOf[*Projectile](w)[0]
	assert.Equal(t, ship, p.Owner())
	assert.Equal(t, []float64{146, 136}, []float64{p.X, p.Y}, "centered 8 units above the ship")

	// 166ms cooldown at 16ms per frame: 11 frames to run out, then fire.
	for range 11 {
		require.NoError(t, ship.Step(stepCtx(w, frameDelta, fire)))
	}
	assert.Equal(t, 1, shots())
	require.NoError(t, ship.Step(stepCtx(w, frameDelta, fire)))
	assert.Equal(t, 2, shots())

	require.NoError(t, ship.Step(stepCtx(w, time.Second, input.Snapshot{})))
	require.NoError(t, ship.Step(stepCtx(w, frameDelta, input.Snapshot{})))
	assert.Equal(t, 2, shots(), "no shot without space")
}

func TestSpaceshipGameOver(t *testing.T) {
	ship, env, w := newTestShip(t)
	ship.Score = 7
	ship.Integrity = 0

	require.NoError(t, ship.Step(stepCtx(w, frameDelta, keys(input.KeySpace))))
	assert.Equal(t, 1, w.clears)
	scenes := createdOf[*Highscores](w)
	require.Len(t, scenes, 1)
	assert.True(t, scenes[0].Editing())
	assert.Equal(t, 7, scenes[0].Table()[0].Score)
	assert.Empty(t, createdOf[*Projectile](w), "no shot after the run ended")

	best, err := env.Board.Best(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, best)
}

func TestSpaceshipDraw(t *testing.T) {
	ship, _, _ := newTestShip(t)
	ship.Integrity = 40
	ship.Score = 3

	ctx, rec := drawCtx()
	require.NoError(t, ship.Draw(ctx))
	ops := rec.Ops()
	require.Len(t, ops, 5)
	gauge := ops[3]
	assert.Equal(t, draw.Orange, gauge.Color)
	assert.InDelta(t, 284*0.4, gauge.W, 1e-9)
	assert.Equal(t, []string{"3"}, rec.Texts())

	assert.Equal(t, draw.Green, integrityColor(100))
	assert.Equal(t, draw.Yellow, integrityColor(70))
	assert.Equal(t, draw.Red, integrityColor(30))
}

func TestSpaceSpawnsAsteroids(t *testing.T) {
	env, _ := newTestEnv(t)
	w := &fakeWorld{}
	s := NewSpace(env, w)
	require.NotNil(t, s.Ship())

	require.NoError(t, s.Step(stepCtx(w, frameDelta, input.Snapshot{})))
	asteroids := createdOf[*Asteroid](w)
	require.Len(t, asteroids, 1)
	a := asteroids[0]
	assert.Zero(t, a.Y)
	assert.GreaterOrEqual(t, a.Size(), 1)
	assert.LessOrEqual(t, a.Size(), 4)
	assert.Positive(t, a.VY)

	assert.GreaterOrEqual(t, s.untilSpawn, 222*time.Millisecond)
	assert.LessOrEqual(t, s.untilSpawn, 666*time.Millisecond)

	// Nothing more until the countdown runs out.
	require.NoError(t, s.Step(stepCtx(w, frameDelta, input.Snapshot{})))
	assert.Len(t, createdOf[*Asteroid](w), 1)
	require.NoError(t, s.Step(stepCtx(w, time.Second, input.Snapshot{})))
	require.NoError(t, s.Step(stepCtx(w, frameDelta, input.Snapshot{})))
	assert.Len(t, createdOf[*Asteroid](w), 2)
}

func TestDebrisFadesAndExpires(t *testing.T) {
	env, _ := newTestEnv(t)
	w := &fakeWorld{}
	spawnDebris(env, w, 50, 50, 3)
	flecks := createdOf[*Debris](w)
	require.Len(t, flecks, 3)

	d := flecks[0]
	ctx, rec := drawCtx()
	require.NoError(t, d.Draw(ctx))
	assert.Len(t, rec.Ops(), 2)

	require.NoError(t, d.Step(stepCtx(w, time.Second, input.Snapshot{})))
	assert.True(t, w.destroyedID(d.ID()))
	d.Cleanup(w)
}

func TestHighscoreNotEditingWithoutQualifyingScore(t *testing.T) {
	env, _ := newTestEnv(t)
	require.NoError(t, env.Board.Save(context.Background(), []highscore.Entry{
		{Name: "A", Score: 9}, {Name: "B", Score: 9}, {Name: "C", Score: 9}, {Name: "D", Score: 9}, {Name: "E", Score: 9},
		{Name: "F", Score: 9}, {Name: "G", Score: 9}, {Name: "H", Score: 9}, {Name: "I", Score: 9}, {Name: "J", Score: 9},
	}))
	assert.False(t, NewHighscores(env, 9).Editing())
	assert.True(t, NewHighscores(env, 10).Editing())
}
