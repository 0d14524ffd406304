package game

import (
	"fmt"

	"github.com/tomz197/boxsteroids/internal/draw"
	"github.com/tomz197/boxsteroids/internal/object"
)

const helpLinesPerPage = 3

type helpTopic struct {
	title string
	lines []string
}

var helpTopics = []helpTopic{
	{
		title: "Movement:",
		lines: []string{
			"Use the arrow keys to move and",
			"hold space to shoot.",
		},
	},
	{
		title: "Ship:",
		lines: []string{
			"Your ship has limited integrity:",
			"every asteroid that hits it deals",
			"permanent damage! When the",
			"integrity gauge reaches 0 your",
			"score is recorded if it is among",
			"the 10 best.",
			"Surviving a hit scores 1 point.",
		},
	},
	{
		title: "Asteroids:",
		lines: []string{
			"Asteroids resist as many shots as",
			"their size. Shoot them to break",
			"them into smaller pieces. Small",
			"asteroids are vaporized at once.",
		},
	},
}

// topicPages returns how many pages a topic spans.
func topicPages(t helpTopic) int {
	return (len(t.lines) + helpLinesPerPage - 1) / helpLinesPerPage
}

// Help pages through the help topics.
type Help struct {
	OptionSelect
	page int
}

// NewHelp creates the help scene with "Next" selected.
func NewHelp(env *Env) *Help {
	h := &Help{}
	h.OptionSelect = newOptionSelect("Help", 24,
		NewButton("Previous", 12, 30, 224, func(object.World) {
			pages := h.TotalPages()
			h.page = (pages + h.page - 1) % pages
		}).WithColor(draw.Green),
		NewButton("Next", 12, 224, 224, func(object.World) {
			h.page = (h.page + 1) % h.TotalPages()
		}).WithColor(draw.Green),
		NewButton("< Back", 14, 30, 256, func(w object.World) {
			switchScene(w, NewMenu(env, MenuHelp))
		}),
	)
	h.Selected = 1
	return h
}

// TotalPages returns the page count over all topics.
func (h *Help) TotalPages() int {
	total := 0
	for _, t := range helpTopics {
		total += topicPages(t)
	}
	return total
}

// Page returns the current page, counted over all topics from 0.
func (h *Help) Page() int {
	return h.page
}

// Locate returns the topic index shown on the current page, the page within
// that topic and the topic's page count.
func (h *Help) Locate() (topic, page, pages int) {
	first := 0
	for i, t := range helpTopics {
		n := topicPages(t)
		if h.page < first+n {
			return i, h.page - first, n
		}
		first += n
	}
	last := len(helpTopics) - 1
	return last, 0, topicPages(helpTopics[last])
}

func (h *Help) Draw(ctx object.DrawContext) error {
	if err := h.OptionSelect.Draw(ctx); err != nil {
		return err
	}
	s := ctx.Surface
	topic, page, pages := h.Locate()
	t := helpTopics[topic]

	heading := draw.TextStyle{Size: 18, Color: draw.Yellow}
	s.Text(30, 96, t.title, heading)
	heading.Align = draw.AlignEnd
	s.Text(270, 96, fmt.Sprintf("(%d/%d)", topic+1, len(helpTopics)), heading)

	s.Text(150, 224, fmt.Sprintf("(%d/%d)", page+1, pages),
		draw.TextStyle{Size: 14, Color: draw.Green, Align: draw.AlignCenter})

	body := draw.TextStyle{Size: 14, Color: draw.White}
	for i := 0; i < helpLinesPerPage; i++ {
		line := page*helpLinesPerPage + i
		if line >= len(t.lines) {
			break
		}
		s.Text(30, float64(128+24*i), t.lines[line], body)
	}
	return nil
}
