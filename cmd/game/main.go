// boxsteroids is a box-collider Asteroids game for the terminal.
//
// Usage:
//
//	boxsteroids                 - Play in this terminal
//	boxsteroids scores          - Print the top 10 table
//	boxsteroids reset-scores    - Reset the table and the best score
//
// Global flags:
//
//	--config <path>  - Config file (default: search ~/.boxsteroids, ./configs, built-in)
//	--db <path>      - Scores database (default from config)
//	--fps <rate>     - Frame rate (default from config)
//	--log <path>     - Log file; the terminal is the game screen so logs go nowhere by default
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tomz197/boxsteroids/internal/config"
	"github.com/tomz197/boxsteroids/internal/draw"
	"github.com/tomz197/boxsteroids/internal/highscore"
	"github.com/tomz197/boxsteroids/internal/loop"
	"github.com/tomz197/boxsteroids/internal/store"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagFPS     int
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "boxsteroids",
	Short: "Boxsteroids - shoot box asteroids in your terminal",
	Long: `Boxsteroids is a terminal Asteroids game where everything is a box.

Controls:
  arrows   move (menus: choose)
  space    shoot (menus: select)
  ctrl+c   quit`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")

	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(resetScoresCmd)
}

// loadConfig loads the config file and applies command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagFPS > 0 {
		cfg.Engine.FPS = flagFPS
	}
	return cfg, nil
}

// newLogger opens the log file, or discards logs when no file is given.
func newLogger() (*log.Logger, func() error, error) {
	var out io.Writer = io.Discard
	closeFn := func() error { return nil }
	if flagLogPath != "" {
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closeFn = f, f.Close
	}
	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "boxsteroids",
		Level:           log.DebugLevel,
	})
	return logger, closeFn, nil
}

// openStore opens the scores database. Without it scores last for this run only.
func openStore(cfg config.Config, logger *log.Logger) store.KV {
	db, err := store.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("Could not open scores database, scores will not be kept", "path", cfg.Storage.DBPath, "err", err)
		return store.NewMemory()
	}
	return db
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	kv := openStore(cfg, logger)
	defer kv.Close()

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("stdin is not a terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	// Raw mode turns Ctrl+C into input; SIGTERM still ends the game.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	session := loop.NewSession(bufio.NewReader(os.Stdin), os.Stdout, loop.SessionOptions{
		Config:  cfg,
		Board:   highscore.New(kv, logger),
		Logger:  logger,
		Profile: draw.ColorProfile(os.Getenv("TERM"), os.Environ()),
	})
	logger.Info("Game started", "fps", cfg.Engine.FPS, "db", cfg.Storage.DBPath)
	if err := session.Run(ctx); err != nil {
		logger.Error("Game error", "err", err)
		return fmt.Errorf("game error: %w", err)
	}
	return nil
}
