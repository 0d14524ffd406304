package loop

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/boxsteroids/internal/config"
	"github.com/tomz197/boxsteroids/internal/draw"
	"github.com/tomz197/boxsteroids/internal/game"
	"github.com/tomz197/boxsteroids/internal/highscore"
	"github.com/tomz197/boxsteroids/internal/input"
	"github.com/tomz197/boxsteroids/internal/object"
	"github.com/tomz197/boxsteroids/internal/store"
)

// errFramesStopped ends the session when the frame loop returns on its own.
var errFramesStopped = errors.New("loop: frames stopped")

// SessionOptions configures a session.
type SessionOptions struct {
	Config       config.Config
	Board        *highscore.Board // shared by sessions on one store; nil keeps scores in memory
	Logger       *log.Logger
	TermSizeFunc draw.TermSizeFunc
	Profile      termenv.Profile
	Rand         *rand.Rand // nil seeds randomly
}

// Session plays one game on a terminal: it reads keys from r and draws
// frames to w until the player quits or the input ends.
type Session struct {
	cfg      config.Config
	board    *highscore.Board
	logger   *log.Logger
	writer   io.Writer
	rng      *rand.Rand
	keyboard *input.Keyboard
	stream   *input.Stream
	registry *Registry
	terminal *draw.Terminal
}

// NewSession creates a session reading from r and writing to w.
func NewSession(r io.Reader, w io.Writer, opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	board := opts.Board
	if board == nil {
		board = highscore.New(store.NewMemory(), logger)
	}
	cfg := opts.Config
	screen := object.Screen{Width: cfg.Engine.Width, Height: cfg.Engine.Height}

	kb := input.NewKeyboard()
	return &Session{
		cfg:      cfg,
		board:    board,
		logger:   logger,
		writer:   w,
		rng:      opts.Rand,
		keyboard: kb,
		stream:   input.NewStream(r, kb, cfg.Input.HoldDuration),
		registry: NewRegistry(Options{
			Screen:          screen,
			FPS:             cfg.Engine.FPS,
			FirstFrameDelta: cfg.Engine.FirstFrameDelta,
			Background:      draw.Black,
			Keyboard:        kb,
			Logger:          logger,
		}),
		terminal: draw.NewTerminal(w, opts.TermSizeFunc, screen.Width, screen.Height, opts.Profile),
	}
}

// Registry returns the session's object registry.
func (s *Session) Registry() *Registry {
	return s.registry
}

// Run shows the main menu and plays until Ctrl+C, end of input or ctx is done.
// Quitting is not an error.
func (s *Session) Run(ctx context.Context) error {
	draw.HideCursor(s.writer)
	defer draw.ShowCursor(s.writer)
	draw.ClearScreen(s.writer)
	defer draw.ClearScreen(s.writer)

	g, ctx := errgroup.WithContext(ctx)
	env := game.NewEnv(ctx, s.board, s.cfg, s.logger, s.rng)
	s.registry.Create(game.NewMenu(env, game.MenuPlay))

	s.logger.Debug("Session started")
	g.Go(func() error {
		return s.stream.Run(ctx)
	})
	g.Go(func() error {
		if err := s.registry.Run(ctx, s.terminal); err != nil {
			return err
		}
		return errFramesStopped
	})

	err := g.Wait()
	switch {
	case errors.Is(err, input.ErrInterrupted):
		s.logger.Debug("Session interrupted by player")
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, errFramesStopped), errors.Is(err, context.Canceled):
		s.logger.Debug("Session ended", "reason", err)
		return nil
	}
	return err
}
