package draw

import "fmt"

// Color is a 24-bit RGB colour.
type Color struct {
	R, G, B uint8
}

// Palette used by the game.
var (
	Black   = Color{0x00, 0x00, 0x00}
	White   = Color{0xFF, 0xFF, 0xFF}
	Yellow  = Color{0xFF, 0xFF, 0x00}
	Green   = Color{0x00, 0xFF, 0x00}
	Orange  = Color{0xFF, 0x7F, 0x00}
	Red     = Color{0xFF, 0x00, 0x00}
	Azure   = Color{0x00, 0x7F, 0xFF}
	Magenta = Color{0xFF, 0x00, 0xFF}
)

// Hex returns the colour in #RRGGBB form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
