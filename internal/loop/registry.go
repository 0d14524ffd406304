// Package loop drives frames: it owns the live objects, applies deferred
// creations and destructions, and hosts a game session on a terminal.
package loop

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/boxsteroids/internal/draw"
	"github.com/tomz197/boxsteroids/internal/input"
	"github.com/tomz197/boxsteroids/internal/object"
)

const (
	defaultFPS        = 60
	defaultFrameDelta = 16 * time.Millisecond
)

// Display is a surface whose frames are shown by an explicit Present call.
type Display interface {
	draw.Surface
	Present() error
}

// Options configures a Registry.
type Options struct {
	Screen          object.Screen
	FPS             int
	FirstFrameDelta time.Duration // Delta reported on the first frame of a run
	Background      draw.Color
	Keyboard        *input.Keyboard
	Logger          *log.Logger
}

// Registry owns every live object and runs the per-frame cycle:
// promote creations, step, collide, draw, drain destructions.
// All methods except Run and Stop must be called from the frame goroutine
// (including from object callbacks).
type Registry struct {
	screen     object.Screen
	frameTime  time.Duration
	firstDelta time.Duration
	background draw.Color
	keyboard   *input.Keyboard
	tracker    *input.Tracker
	logger     *log.Logger

	objects   []object.Object
	colliders []object.Collidable
	creating  []object.Object
	destroy   []object.ID
	queued    map[object.ID]bool

	// generation changes on every Clear so passes can detect a scene switch.
	generation uint64
	lastFrame  time.Time
	keys       input.Snapshot

	running atomic.Bool
	mu      sync.Mutex
	cancel  context.CancelFunc
}

// Ensure Registry satisfies object.World.
var _ object.World = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry(opts Options) *Registry {
	fps := opts.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	firstDelta := opts.FirstFrameDelta
	if firstDelta <= 0 {
		firstDelta = defaultFrameDelta
	}
	kb := opts.Keyboard
	if kb == nil {
		kb = input.NewKeyboard()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Registry{
		screen:     opts.Screen,
		frameTime:  time.Second / time.Duration(fps),
		firstDelta: firstDelta,
		background: opts.Background,
		keyboard:   kb,
		tracker:    input.NewTracker(),
		logger:     logger,
		queued:     make(map[object.ID]bool),
	}
}

// Create queues obj for the next frame and returns it.
func (r *Registry) Create(obj object.Object) object.Object {
	r.creating = append(r.creating, obj)
	return obj
}

// Destroy queues id for removal at the end of the frame.
// Queuing an id twice, or an id that is not live, has no further effect.
func (r *Registry) Destroy(id object.ID) {
	if r.queued[id] {
		return
	}
	r.queued[id] = true
	r.destroy = append(r.destroy, id)
}

// Clear drops every live and pending object without running cleanup hooks.
func (r *Registry) Clear() {
	r.logger.Debug("World cleared", "objects", len(r.objects), "pending", len(r.creating))
	r.objects = nil
	r.colliders = nil
	r.creating = nil
	r.destroy = nil
	clear(r.queued)
	r.generation++
}

// Objects returns a copy of the live object list in frame order.
func (r *Registry) Objects() []object.Object {
	return slices.Clone(r.objects)
}

// Colliders returns a copy of the live collider list in frame order.
func (r *Registry) Colliders() []object.Collidable {
	return slices.Clone(r.colliders)
}

// Keys returns the input snapshot of the last frame.
func (r *Registry) Keys() input.Snapshot {
	return r.keys
}

// Keyboard returns the held-key state the registry samples every frame.
func (r *Registry) Keyboard() *input.Keyboard {
	return r.keyboard
}

// Frame runs one full frame at time now and draws it on s.
func (r *Registry) Frame(now time.Time, s draw.Surface) error {
	r.promote()

	delta := r.delta(now)
	r.keys = r.tracker.Update(r.keyboard.Held())

	if err := r.step(object.UpdateContext{
		Delta:  delta,
		Keys:   r.keys,
		World:  r,
		Screen: r.screen,
	}); err != nil {
		return err
	}

	r.collide()

	s.Clear(r.background)
	dctx := object.DrawContext{Surface: s, Screen: r.screen}
	for _, obj := range r.objects {
		if err := obj.Draw(dctx); err != nil {
			return fmt.Errorf("loop: draw object %d: %w", obj.ID(), err)
		}
	}

	r.drain()
	return nil
}

// promote makes queued creations live.
func (r *Registry) promote() {
	for _, obj := range r.creating {
		r.objects = append(r.objects, obj)
		if c, ok := obj.(object.Collidable); ok {
			r.colliders = append(r.colliders, c)
		}
	}
	r.creating = nil
}

func (r *Registry) delta(now time.Time) time.Duration {
	delta := r.firstDelta
	if !r.lastFrame.IsZero() {
		delta = max(now.Sub(r.lastFrame), 0)
	}
	r.lastFrame = now
	return delta
}

// step advances every live object. A Clear from inside a step ends the pass:
// the cleared objects no longer exist and are not stepped.
func (r *Registry) step(ctx object.UpdateContext) error {
	gen := r.generation
	for _, obj := range r.objects {
		if err := obj.Step(ctx); err != nil {
			return fmt.Errorf("loop: step object %d: %w", obj.ID(), err)
		}
		if r.generation != gen {
			return nil
		}
	}
	return nil
}

// collide runs every unordered pair once, in list order. Colliders queued
// for destruction still take part until the end of the frame.
func (r *Registry) collide() {
	gen := r.generation
	for i := 0; i < len(r.colliders)-1; i++ {
		for j := i + 1; j < len(r.colliders); j++ {
			a, b := r.colliders[i], r.colliders[j]
			if !a.Box().Intersects(b.Box()) {
				continue
			}
			a.OnCollision(r, b)
			b.OnCollision(r, a)
			if r.generation != gen {
				return
			}
		}
	}
}

// drain removes queued objects and runs their cleanup hooks. Hooks may
// queue more destructions, which are handled in the same drain.
func (r *Registry) drain() {
	for i := 0; i < len(r.destroy); i++ {
		id := r.destroy[i]

		idx := slices.IndexFunc(r.objects, func(o object.Object) bool { return o.ID() == id })
		if idx < 0 {
			continue
		}
		removed := r.objects[idx]
		r.objects = slices.Delete(r.objects, idx, idx+1)
		if cidx := slices.IndexFunc(r.colliders, func(c object.Collidable) bool { return c.ID() == id }); cidx >= 0 {
			r.colliders = slices.Delete(r.colliders, cidx, cidx+1)
		}

		if c, ok := removed.(object.Cleaner); ok {
			c.Cleanup(r)
		}
	}
	r.destroy = nil
	clear(r.queued)
}

// Run drives frames on d at the configured rate until ctx is done or Stop
// is called. Run returns at once if the registry is already running.
// Errors from objects or the display end the run.
func (r *Registry) Run(ctx context.Context, d Display) error {
	if !r.running.CompareAndSwap(false, true) {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.cancel = nil
		r.mu.Unlock()
		cancel()
		// The next run starts with the first-frame delta.
		r.lastFrame = time.Time{}
		r.running.Store(false)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frameStart := time.Now()
		if err := r.Frame(frameStart, d); err != nil {
			return err
		}
		if err := d.Present(); err != nil {
			return fmt.Errorf("loop: present frame: %w", err)
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < r.frameTime {
			timer := time.NewTimer(r.frameTime - elapsed)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil
			case <-timer.C:
			}
		}
	}
}

// Stop ends a running Run after its current frame. It is safe to call from
// any goroutine, including from object callbacks. Stop only affects a Run
// that is already active; calling it before Run has no effect on later runs.
func (r *Registry) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
}

// Running reports whether Run is active.
func (r *Registry) Running() bool {
	return r.running.Load()
}
