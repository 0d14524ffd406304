package game

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/boxsteroids/internal/config"
	"github.com/tomz197/boxsteroids/internal/draw"
	"github.com/tomz197/boxsteroids/internal/highscore"
	"github.com/tomz197/boxsteroids/internal/input"
	"github.com/tomz197/boxsteroids/internal/object"
	"github.com/tomz197/boxsteroids/internal/store"
)

// fakeWorld records what objects ask of the world.
type fakeWorld struct {
	created   []object.Object
	destroyed []object.ID
	clears    int
}

func (w *fakeWorld) Create(obj object.Object) object.Object {
	w.created = append(w.created, obj)
	return obj
}

func (w *fakeWorld) Destroy(id object.ID) {
	w.destroyed = append(w.destroyed, id)
}

func (w *fakeWorld) Clear() {
	w.clears++
	w.created = nil
	w.destroyed = nil
}

func (w *fakeWorld) destroyedID(id object.ID) bool {
	for _, d := range w.destroyed {
		if d == id {
			return true
		}
	}
	return false
}

func createdOf[T object.Object](w *fakeWorld) []T {
	var out []T
	for _, o := range w.created {
		if t, ok := o.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

func newTestEnv(t *testing.T) (*Env, *store.Memory) {
	t.Helper()
	kv := store.NewMemory()
	return NewEnv(context.Background(), highscore.New(kv, nil), config.Default(), nil, rand.New(rand.NewPCG(1, 2))), kv
}

// keys returns a snapshot where every given key is held and clicked.
func keys(held ...string) input.Snapshot {
	m := make(map[string]bool, len(held))
	for _, k := range held {
		m[k] = true
	}
	return input.NewTracker().Update(m)
}

func stepCtx(w object.World, delta time.Duration, snap input.Snapshot) object.UpdateContext {
	return object.UpdateContext{
		Delta:  delta,
		Keys:   snap,
		World:  w,
		Screen: object.Screen{Width: 300, Height: 300},
	}
}

func drawCtx() (object.DrawContext, *draw.Recorder) {
	rec := draw.NewRecorder(300, 300)
	rec.Clear(draw.Black)
	return object.DrawContext{Surface: rec, Screen: object.Screen{Width: 300, Height: 300}}, rec
}

func TestMenuNavigationWraps(t *testing.T) {
	env, _ := newTestEnv(t)
	w := &fakeWorld{}
	m := NewMenu(env, MenuPlay)

	require.NoError(t, m.Step(stepCtx(w, 0, keys(input.KeyArrowUp))))
	assert.Equal(t, MenuScores, m.Selected)
	require.NoError(t, m.Step(stepCtx(w, 0, keys(input.KeyArrowRight))))
	assert.Equal(t, MenuPlay, m.Selected)
	require.NoError(t, m.Step(stepCtx(w, 0, keys(input.KeyArrowDown))))
	assert.Equal(t, MenuCredits, m.Selected)

	assert.Equal(t, MenuHelp, NewMenu(env, MenuHelp).Selected)
	assert.Equal(t, MenuPlay, NewMenu(env, 42).Selected)
}

func TestMenuDrawsSelectionMarker(t *testing.T) {
	env, _ := newTestEnv(t)
	ctx, rec := drawCtx()
	require.NoError(t, NewMenu(env, MenuHelp).Draw(ctx))

	assert.Equal(t, []string{"Boxsteroids", "Play", "Credits", "Help", "Scores"}, rec.Texts())
	ops := rec.Ops()
	marker := ops[len(ops)-1]
	assert.Equal(t, draw.OpFillRect, marker.Kind)
	assert.Equal(t, []float64{12, 184, 8, 8}, []float64{marker.X, marker.Y, marker.W, marker.H})
}

func TestMenuPlayStartsSpace(t *testing.T) {
	env, _ := newTestEnv(t)
	w := &fakeWorld{}
	m := NewMenu(env, MenuPlay)

	require.NoError(t, m.Step(stepCtx(w, 0, keys(input.KeySpace))))
	assert.Equal(t, 1, w.clears)

	spaces := createdOf[*Space](w)
	require.Len(t, spaces, 1)
	ships := createdOf[*Spaceship](w)
	require.Len(t, ships, 1)
	assert.Same(t, spaces[0].Ship(), ships[0])
	assert.Len(t, createdOf[*object.Collider](w), 2, "hull colliders")
	assert.Equal(t, 150.0, ships[0].X)
	assert.Equal(t, 150.0, ships[0].Y)
}

func TestSceneTransitionsReselectMenuEntry(t *testing.T) {
	env, _ := newTestEnv(t)

	tests := []struct {
		name  string
		scene object.Object
		back  int // index of the back button
		want  int
	}{
		{name: "credits", scene: NewCredits(env), back: 2, want: MenuCredits},
		{name: "help", scene: NewHelp(env), back: 2, want: MenuHelp},
		{name: "scores", scene: NewHighscores(env, 0), back: 0, want: MenuScores},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &fakeWorld{}
			switch s := tt.scene.(type) {
			case *Credits:
				s.Selected = tt.back
			case *Help:
				s.Selected = tt.back
			}
			require.NoError(t, tt.scene.Step(stepCtx(w, 0, keys(input.KeySpace))))

			menus := createdOf[*Menu](w)
			require.Len(t, menus, 1)
			assert.Equal(t, tt.want, menus[0].Selected)
			assert.Equal(t, 1, w.clears)
		})
	}
}

func TestHelpPages(t *testing.T) {
	env, _ := newTestEnv(t)
	w := &fakeWorld{}
	h := NewHelp(env)

	assert.Equal(t, 6, h.TotalPages())
	assert.Equal(t, 1, h.Selected, "next is preselected")

	topic, page, pages := h.Locate()
	assert.Equal(t, []int{0, 0, 1}, []int{topic, page, pages})

	require.NoError(t, h.Step(stepCtx(w, 0, keys(input.KeySpace))))
	topic, page, pages = h.Locate()
	assert.Equal(t, []int{1, 0, 3}, []int{topic, page, pages})

	h.Selected = 0
	require.NoError(t, h.Step(stepCtx(w, 0, keys(input.KeySpace))))
	require.NoError(t, h.Step(stepCtx(w, 0, keys(input.KeySpace))))
	assert.Equal(t, 5, h.Page(), "previous wraps to the last page")
	topic, page, pages = h.Locate()
	assert.Equal(t, []int{2, 1, 2}, []int{topic, page, pages})

	ctx, rec := drawCtx()
	require.NoError(t, h.Draw(ctx))
	assert.Contains(t, rec.Texts(), "(3/3)")
	assert.Contains(t, rec.Texts(), "(2/2)")
}

func TestCreditsLinkDoesNotLeaveScene(t *testing.T) {
	env, _ := newTestEnv(t)
	w := &fakeWorld{}
	c := NewCredits(env)
	c.Selected = 1

	require.NoError(t, c.Step(stepCtx(w, 0, keys(input.KeySpace))))
	assert.Zero(t, w.clears)
	assert.Empty(t, w.created)
}

func TestHighscoresShowOnly(t *testing.T) {
	env, _ := newTestEnv(t)
	h := NewHighscores(env, 0)
	assert.False(t, h.Editing())
	assert.Equal(t, highscore.DefaultTable(), h.Table())

	w := &fakeWorld{}
	for range 10 {
		require.NoError(t, h.Step(stepCtx(w, 0, keys(input.KeyArrowDown))))
	}
	assert.Equal(t, 6, h.anchor, "scrolling stops at the last window")
	require.NoError(t, h.Step(stepCtx(w, 0, keys(input.KeyArrowUp))))
	assert.Equal(t, 5, h.anchor)
}

func TestHighscoresNewEntry(t *testing.T) {
	env, kv := newTestEnv(t)
	ctx := context.Background()
	table := []highscore.Entry{
		{Name: "AAAAAAAAAA", Score: 100}, {Name: "BBBBBBBBBB", Score: 90}, {Name: "CCCCCCCCCC", Score: 80}, {Name: "DDDDDDDDDD", Score: 70},
		{Name: "EEEEEEEEEE", Score: 60}, {Name: "FFFFFFFFFF", Score: 50}, {Name: "GGGGGGGGGG", Score: 45}, {Name: "HHHHHHHHHH", Score: 40},
		{Name: "IIIIIIIIII", Score: 35}, {Name: "JJJJJJJJJJ", Score: 30},
	}
	require.NoError(t, env.Board.Save(ctx, table))

	h := NewHighscores(env, 50)
	require.True(t, h.Editing())
	assert.Equal(t, 6, h.Place())
	assert.Equal(t, 6, h.anchor, "window scrolls to the new entry")

	w := &fakeWorld{}
	step := func(snap input.Snapshot) {
		require.NoError(t, h.Step(stepCtx(w, 16*time.Millisecond, snap)))
	}
	step(keys("z"))
	step(keys("x", "-")) // sorted: "-" then "x"
	step(keys("?"))      // not accepted
	step(keys(input.KeyBackspace))
	step(keys(input.KeyArrowRight))
	step(keys("9"))
	assert.Equal(t, "Z-X9      ", h.Table()[6].Name)

	// Space types a blank while editing instead of leaving.
	step(keys(input.KeySpace))
	assert.Empty(t, w.created)

	step(keys(input.KeyEnter))
	assert.False(t, h.Editing())

	raw, err := kv.Get(ctx, highscore.KeyTable)
	require.NoError(t, err)
	assert.Contains(t, raw, `"Z-X9      "`)

	saved, err := env.Board.Load(ctx)
	require.NoError(t, err)
	require.Len(t, saved, highscore.TableSize)
	assert.Equal(t, highscore.Entry{Name: "Z-X9      ", Score: 50}, saved[6])
	assert.Equal(t, 35, saved[9].Score, "last entry evicted")
}

func TestHighscoresPromptBlinks(t *testing.T) {
	env, _ := newTestEnv(t)
	h := NewHighscores(env, 5)
	require.True(t, h.Editing())
	w := &fakeWorld{}

	require.NoError(t, h.Step(stepCtx(w, 340*time.Millisecond, input.Snapshot{})))
	assert.True(t, h.promptShow)
	require.NoError(t, h.Step(stepCtx(w, 0, input.Snapshot{})))
	assert.False(t, h.promptShow)

	require.NoError(t, h.Step(stepCtx(w, 0, keys(input.KeyArrowLeft))))
	assert.True(t, h.promptShow, "any edit key shows the prompt again")
}

func TestHighscoresRecoverMalformedStore(t *testing.T) {
	env, kv := newTestEnv(t)
	require.NoError(t, kv.Set(context.Background(), highscore.KeyTable, "not json"))

	h := NewHighscores(env, -1)
	assert.Equal(t, highscore.DefaultTable(), h.Table())

	ctx, rec := drawCtx()
	require.NoError(t, h.Draw(ctx))
	assert.Contains(t, rec.Texts(), "Top 10:")
}

func TestHighscoresCommitsKeepEachOther(t *testing.T) {
	env, _ := newTestEnv(t)
	w := &fakeWorld{}

	// Both scenes load the table before either player commits.
	first := NewHighscores(env, 40)
	second := NewHighscores(env, 20)
	require.True(t, first.Editing())
	require.True(t, second.Editing())

	require.NoError(t, first.Step(stepCtx(w, 0, keys("a"))))
	require.NoError(t, first.Step(stepCtx(w, 0, keys(input.KeyEnter))))
	require.NoError(t, second.Step(stepCtx(w, 0, keys("b"))))
	require.NoError(t, second.Step(stepCtx(w, 0, keys(input.KeyEnter))))

	table, err := env.Board.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, highscore.Entry{Name: "A         ", Score: 40}, table[0])
	assert.Equal(t, highscore.Entry{Name: "B         ", Score: 20}, table[1])
	assert.Equal(t, table, second.Table())
	assert.Equal(t, 1, second.Place())
}
