// Package highscore keeps the best score and the top-ten table in a key-value store.
package highscore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/tomz197/boxsteroids/internal/store"
)

const (
	KeyBest  = "highscore"  // Single integer, best score ever
	KeyTable = "highscores" // JSON array of Entry, descending
)

const (
	TableSize  = 10
	NameLength = 10
)

// Entry is one table row.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// DefaultName returns a name made of NameLength copies of ch.
func DefaultName(ch rune) string {
	return strings.Repeat(string(ch), NameLength)
}

// DefaultTable returns the placeholder table written when none is stored.
func DefaultTable() []Entry {
	table := make([]Entry, TableSize)
	for i := range table {
		table[i] = Entry{Name: DefaultName('-')}
	}
	return table
}

// Insert places score into a descending table.
// It returns the new table, the index of the new entry and whether the score
// qualified. The new entry gets a blank name and the last entry is dropped.
// The input table is not modified.
func Insert(table []Entry, score int) ([]Entry, int, bool) {
	if !Qualifies(table, score) {
		return table, -1, false
	}

	place := 0
	for i, e := range table {
		if score <= e.Score {
			place = i + 1
		}
	}

	out := make([]Entry, 0, len(table)+1)
	out = append(out, table[:place]...)
	out = append(out, Entry{Name: DefaultName(' '), Score: score})
	out = append(out, table[place:]...)
	return out[:len(table)], place, true
}

// Qualifies reports whether score beats the lowest table entry.
func Qualifies(table []Entry, score int) bool {
	if score <= 0 || len(table) == 0 {
		return false
	}
	lowest := table[0].Score
	for _, e := range table[1:] {
		lowest = min(lowest, e.Score)
	}
	return score > lowest
}

// Board reads and writes scores through a key-value store.
// A Board is safe for concurrent use; sessions sharing a store must share
// the Board so their updates do not overwrite each other.
type Board struct {
	mu     sync.Mutex
	kv     store.KV
	logger *log.Logger
}

// New creates a board backed by kv. A nil logger discards output.
func New(kv store.KV, logger *log.Logger) *Board {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Board{kv: kv, logger: logger}
}

// Load returns the stored table sorted by descending score.
// A missing or malformed table is replaced by DefaultTable and written back.
func (b *Board) Load(ctx context.Context) ([]Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.load(ctx)
}

func (b *Board) load(ctx context.Context) ([]Entry, error) {
	raw, err := b.kv.Get(ctx, KeyTable)
	if errors.Is(err, store.ErrNotFound) {
		return b.reset(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("highscore: load table: %w", err)
	}

	table, err := parseTable(raw)
	if err != nil {
		b.logger.Warn("Stored highscores are malformed, resetting", "err", err)
		return b.reset(ctx)
	}
	return table, nil
}

// Reset overwrites the stored table with DefaultTable.
func (b *Board) Reset(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := b.reset(ctx)
	return err
}

func (b *Board) reset(ctx context.Context) ([]Entry, error) {
	table := DefaultTable()
	if err := b.save(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

// Commit inserts score under name into the stored table.
// The table is reloaded first, so entries committed since it was last
// loaded are kept. It returns the stored table and the new entry's index,
// or -1 when score no longer qualifies.
func (b *Board) Commit(ctx context.Context, score int, name string) ([]Entry, int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	table, err := b.load(ctx)
	if err != nil {
		return nil, -1, err
	}
	table, place, ok := Insert(table, score)
	if !ok {
		return table, -1, nil
	}
	table[place].Name = fitName(name)
	if err := b.save(ctx, table); err != nil {
		return nil, -1, err
	}
	return table, place, nil
}

// Save stores table as JSON.
func (b *Board) Save(ctx context.Context, table []Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.save(ctx, table)
}

func (b *Board) save(ctx context.Context, table []Entry) error {
	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("highscore: encode table: %w", err)
	}
	if err := b.kv.Set(ctx, KeyTable, string(data)); err != nil {
		return fmt.Errorf("highscore: save table: %w", err)
	}
	return nil
}

// Best returns the best score ever recorded, or 0.
func (b *Board) Best(ctx context.Context) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.best(ctx)
}

func (b *Board) best(ctx context.Context) (int, error) {
	raw, err := b.kv.Get(ctx, KeyBest)
	if errors.Is(err, store.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("highscore: load best: %w", err)
	}
	best, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		b.logger.Warn("Stored best score is malformed, ignoring", "value", raw)
		return 0, nil
	}
	return best, nil
}

// RecordBest stores score as the best score if it is at least the current one.
func (b *Board) RecordBest(ctx context.Context, score int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	best, err := b.best(ctx)
	if err != nil {
		return err
	}
	if score < best {
		return nil
	}
	if err := b.kv.Set(ctx, KeyBest, strconv.Itoa(score)); err != nil {
		return fmt.Errorf("highscore: save best: %w", err)
	}
	return nil
}

// parseTable decodes and normalizes a stored table.
// Short tables are padded with placeholders and long ones truncated.
func parseTable(raw string) ([]Entry, error) {
	var table []Entry
	if err := json.Unmarshal([]byte(raw), &table); err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return nil, errors.New("empty table")
	}

	sortDescending(table)
	for len(table) < TableSize {
		table = append(table, Entry{Name: DefaultName('-')})
	}
	for i := range table {
		table[i].Name = fitName(table[i].Name)
	}
	return table[:TableSize], nil
}

// fitName pads or cuts name to NameLength runes.
func fitName(name string) string {
	r := []rune(name)
	if len(r) >= NameLength {
		return string(r[:NameLength])
	}
	return name + strings.Repeat(" ", NameLength-len(r))
}

func sortDescending(table []Entry) {
	// Stable so equal scores keep their stored order.
	slices.SortStableFunc(table, func(a, b Entry) int {
		return b.Score - a.Score
	})
}
