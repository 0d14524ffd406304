package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tomz197/boxsteroids/internal/highscore"
	"github.com/tomz197/boxsteroids/internal/store"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the top 10 table",
	Args:  cobra.NoArgs,
	RunE:  runScores,
}

var resetScoresCmd = &cobra.Command{
	Use:   "reset-scores",
	Short: "Reset the top 10 table and the best score",
	Args:  cobra.NoArgs,
	RunE:  runResetScores,
}

// openBoard opens the configured database for the score commands.
func openBoard() (*highscore.Board, store.KV, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := store.Open(cfg.Storage.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening scores database: %w", err)
	}
	return highscore.New(db, log.New(io.Discard)), db, nil
}

func runScores(cmd *cobra.Command, _ []string) error {
	board, db, err := openBoard()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	table, err := board.Load(ctx)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "High Scores - Boxsteroids")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", "Name", "Score")
	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "----", "-----")
	for i, e := range table {
		fmt.Fprintf(out, "  %-4d  %-10s  %d\n", i+1, strings.TrimRight(e.Name, " "), e.Score)
	}

	best, err := board.Best(ctx)
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %d\n", best)
	}
	return nil
}

func runResetScores(cmd *cobra.Command, _ []string) error {
	board, db, err := openBoard()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	if err := board.Reset(ctx); err != nil {
		return err
	}
	if err := db.Delete(ctx, highscore.KeyBest); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Scores reset.")
	return nil
}
