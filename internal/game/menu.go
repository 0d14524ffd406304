package game

import "github.com/tomz197/boxsteroids/internal/object"

// Menu entries, in display order.
const (
	MenuPlay = iota
	MenuCredits
	MenuHelp
	MenuScores
)

// Menu is the main menu scene.
type Menu struct {
	OptionSelect
}

// NewMenu creates the main menu with the given entry selected.
func NewMenu(env *Env, selected int) *Menu {
	m := &Menu{OptionSelect: newOptionSelect("Boxsteroids", 32,
		NewButton("Play", 14, 30, 128, func(w object.World) {
			// Space creates its ship in w, so clear first.
			w.Clear()
			w.Create(NewSpace(env, w))
		}),
		NewButton("Credits", 14, 30, 160, func(w object.World) {
			switchScene(w, NewCredits(env))
		}),
		NewButton("Help", 14, 30, 192, func(w object.World) {
			switchScene(w, NewHelp(env))
		}),
		NewButton("Scores", 14, 30, 224, func(w object.World) {
			switchScene(w, NewHighscores(env, -1))
		}),
	)}
	if selected >= 0 && selected < len(m.Buttons) {
		m.Selected = selected
	}
	return m
}
