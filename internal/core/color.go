package core

// Color is a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Palette used by the reflex grid and its HUD.
const (
	ColorDefault Color = iota
	ColorDim           // unlit cells, hints
	ColorLit           // lit cells
	ColorHit           // flash after a successful activation
	ColorMiss          // flash after a wrong activation
	ColorCursor        // keyboard cursor outline
	ColorTitle
	ColorScore
	ColorWarn // GAME OVER banner, time running out
	ColorGood // win banner, new records
)
