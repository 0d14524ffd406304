package game

import (
	"github.com/tomz197/boxsteroids/internal/draw"
	"github.com/tomz197/boxsteroids/internal/object"
)

const (
	developerName = "Gabriel Izoton"
	developerURL  = "https://github.com/Gaizgrol"
	projectURL    = "https://github.com/Gaizgrol/WorkshopJogos"
)

// Credits lists the developers and the project link.
type Credits struct {
	OptionSelect
}

// NewCredits creates the credits scene. Terminals cannot open a browser,
// so selecting a link logs it.
func NewCredits(env *Env) *Credits {
	open := func(url string) func(object.World) {
		return func(object.World) {
			env.Log.Info("Open link", "url", url)
		}
	}
	return &Credits{OptionSelect: newOptionSelect("Credits", 24,
		NewButton(developerName, 14, 30, 128, open(developerURL)),
		NewButton(projectURL, 12, 30, 224, open(projectURL)).WithColor(draw.Green),
		NewButton("< Back", 14, 30, 256, func(w object.World) {
			switchScene(w, NewMenu(env, MenuCredits))
		}),
	)}
}

func (c *Credits) Draw(ctx object.DrawContext) error {
	if err := c.OptionSelect.Draw(ctx); err != nil {
		return err
	}
	ctx.Surface.Text(30, 96, "Developers:", draw.TextStyle{Size: 18, Color: draw.Yellow})
	return nil
}
