package game

import (
	"strconv"
	"strings"
	"time"

	"github.com/tomz197/boxsteroids/internal/draw"
	"github.com/tomz197/boxsteroids/internal/highscore"
	"github.com/tomz197/boxsteroids/internal/input"
	"github.com/tomz197/boxsteroids/internal/object"
)

const (
	scoresOnScreen = 4
	promptBlink    = 333 * time.Millisecond

	scrollBarTop    = 110
	scrollBarHeight = 110
	letterSpacing   = 12
)

// Highscores shows the top ten table. Entered with a qualifying score, it
// first lets the player type a name for the new entry.
type Highscores struct {
	OptionSelect
	env   *Env
	table []highscore.Entry
	score int

	editing     bool
	place       int
	cursor      int
	promptShow  bool
	promptTimer time.Duration

	// anchor is the first table row on screen.
	anchor int
}

// NewHighscores creates the table scene. A score <= 0 only shows the table.
func NewHighscores(env *Env, score int) *Highscores {
	h := &Highscores{
		env:         env,
		score:       score,
		promptShow:  true,
		promptTimer: promptBlink,
	}
	h.OptionSelect = newOptionSelect("Scores", 24,
		NewButton("< Back", 14, 30, 256, func(w object.World) {
			switchScene(w, NewMenu(env, MenuScores))
		}),
	)

	table, err := env.Board.Load(env.Ctx)
	if err != nil {
		env.Log.Error("Failed to load highscores", "err", err)
		table = highscore.DefaultTable()
	}
	h.table = table

	if table, place, ok := highscore.Insert(h.table, score); ok {
		h.table = table
		h.editing = true
		h.place = place
		h.anchor = h.clampAnchor(place)
	}
	return h
}

// Table returns the table as currently shown.
func (h *Highscores) Table() []highscore.Entry { return h.table }

// Editing reports whether a new entry's name is being typed.
func (h *Highscores) Editing() bool { return h.editing }

// Place returns the row index of the new entry.
func (h *Highscores) Place() int { return h.place }

func (h *Highscores) clampAnchor(a int) int {
	return max(0, min(a, len(h.table)-scoresOnScreen))
}

func (h *Highscores) Step(ctx object.UpdateContext) error {
	keys := ctx.Keys
	if !h.editing {
		if keys.Clicked(input.KeySpace) {
			h.Buttons[h.Selected].Select(ctx.World)
			return nil
		}
		if keys.Clicked(input.KeyArrowUp) {
			h.anchor = h.clampAnchor(h.anchor - 1)
		}
		if keys.Clicked(input.KeyArrowDown) {
			h.anchor = h.clampAnchor(h.anchor + 1)
		}
		return nil
	}

	for _, key := range keys.ClickedKeys() {
		if ch, ok := nameChar(key); ok {
			h.refreshPrompt()
			h.setChar(ch)
			h.seekRight()
		}
	}

	if h.promptTimer <= 0 {
		h.promptShow = !h.promptShow
		h.promptTimer = promptBlink
	} else {
		h.promptTimer -= ctx.Delta
	}

	if keys.Clicked(input.KeyBackspace) {
		h.refreshPrompt()
		h.setChar(' ')
		h.seekLeft()
	}
	if keys.Clicked(input.KeyEnter) {
		h.commit()
		h.editing = false
	}
	if keys.Clicked(input.KeyArrowLeft) {
		h.refreshPrompt()
		h.seekLeft()
	}
	if keys.Clicked(input.KeyArrowRight) {
		h.refreshPrompt()
		h.seekRight()
	}
	return nil
}

// commit stores the typed entry and shows the table as stored, which
// includes entries other sessions committed meanwhile.
func (h *Highscores) commit() {
	name := h.table[h.place].Name
	table, place, err := h.env.Board.Commit(h.env.Ctx, h.score, name)
	if err != nil {
		h.env.Log.Error("Failed to save highscores", "err", err)
		return
	}
	h.table = table
	if place < 0 {
		h.env.Log.Info("Score no longer makes the table", "score", h.score)
		return
	}
	h.place = place
	h.anchor = h.clampAnchor(place)
	h.env.Log.Info("Highscore saved",
		"name", strings.TrimSpace(name),
		"score", h.score,
		"place", place+1)
}

// nameChar upper-cases key and reports whether it may appear in a name.
func nameChar(key string) (byte, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := strings.ToUpper(key)[0]
	switch {
	case c >= '0' && c <= '9', c >= 'A' && c <= 'Z', c == '-', c == ' ':
		return c, true
	}
	return 0, false
}

func (h *Highscores) refreshPrompt() {
	h.promptTimer = promptBlink
	h.promptShow = true
}

func (h *Highscores) seekLeft() {
	h.cursor = max(0, h.cursor-1)
}

func (h *Highscores) seekRight() {
	h.cursor = min(highscore.NameLength-1, h.cursor+1)
}

func (h *Highscores) setChar(c byte) {
	name := []byte(h.table[h.place].Name)
	if h.cursor < len(name) {
		name[h.cursor] = c
	}
	h.table[h.place].Name = string(name)
}

func (h *Highscores) Draw(ctx object.DrawContext) error {
	if err := h.OptionSelect.Draw(ctx); err != nil {
		return err
	}
	s := ctx.Surface
	s.Text(30, 96, "Top 10:", draw.TextStyle{Size: 18, Color: draw.Yellow})

	rows := float64(len(h.table))
	s.StrokeRect(256, scrollBarTop, 14, scrollBarHeight, draw.White)
	s.FillRect(256, scrollBarTop+float64(h.anchor)*(scrollBarHeight/rows), 14,
		(scoresOnScreen/rows)*scrollBarHeight, draw.White)

	numbers := draw.TextStyle{Size: 14, Color: draw.Green, Align: draw.AlignEnd}
	for i := 0; i < scoresOnScreen && h.anchor+i < len(h.table); i++ {
		row := h.anchor + i
		y := float64(128 + i*32)
		entry := h.table[row]

		s.Text(40, y, strconv.Itoa(row+1), numbers)
		s.Text(224, y, strconv.Itoa(entry.Score), numbers)

		for j, r := range []rune(entry.Name) {
			x := float64(64 + letterSpacing*j)
			letter := draw.TextStyle{Size: 14, Color: draw.White}
			if h.editing && row == h.place && j == h.cursor {
				letter.Color = draw.Yellow
				if h.promptShow {
					s.FillRect(x-2, y+4, letterSpacing-2, 1, draw.Yellow)
				}
			}
			s.Text(x, y, string(r), letter)
		}
	}
	return nil
}
