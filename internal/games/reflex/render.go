package reflex

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-reflex/internal/config"
	"github.com/vovakirdan/tui-reflex/internal/core"
)

const (
	cellWidth  = 7 // Box width of one cell including borders
	cellHeight = 3 // Box height of one cell including borders
	cellGap    = 1

	gridWidth  = GridCols*cellWidth + (GridCols-1)*cellGap
	gridHeight = GridRows*cellHeight + (GridRows-1)*cellGap

	hudRows    = 4 // title, instructions, score panel, spacer
	footerRows = 3 // spacer, time readout, status

	// MinWidth and MinHeight are the smallest screen the game draws on.
	MinWidth  = gridWidth + 4
	MinHeight = hudRows + gridHeight + footerRows
)

// Layout places the grid and its cells on a screen of a given size.
// The platform uses it to turn mouse coordinates into cell IDs.
type Layout struct {
	Width, Height int
	TooSmall      bool
	Grid          core.Rect
	Cells         [CellCount]core.Rect
}

// NewLayout computes the layout for a screen.
func NewLayout(width, height int) Layout {
	l := Layout{
		Width:    width,
		Height:   height,
		TooSmall: width < MinWidth || height < MinHeight,
	}

	l.Grid = core.NewRect((width-gridWidth)/2, hudRows, gridWidth, gridHeight)
	for id := range CellCount {
		row, col := Position(id)
		l.Cells[id] = core.NewRect(
			l.Grid.X+col*(cellWidth+cellGap),
			l.Grid.Y+row*(cellHeight+cellGap),
			cellWidth,
			cellHeight,
		)
	}
	return l
}

// HitTest returns the cell under (x, y), or NoCell for gaps and the HUD.
func (l Layout) HitTest(x, y int) int {
	if l.TooSmall || !l.Grid.Contains(x, y) {
		return NoCell
	}
	for id, r := range l.Cells {
		if r.Contains(x, y) {
			return id
		}
	}
	return NoCell
}

// View carries presentation choices that are not game state.
type View struct {
	Title      string
	Cursor     int // NoCell hides the keyboard cursor
	TimeFormat config.TimeFormat
	Penalize   bool
}

// Render draws the engine's current state.
func (e *Engine) Render(dst *core.Screen, v View) {
	Render(dst, e.Snapshot(), v)
}

// Render draws a snapshot onto the screen.
func Render(dst *core.Screen, snap Snapshot, v View) {
	dst.Clear()

	layout := NewLayout(dst.Width(), dst.Height())
	if layout.TooSmall {
		renderTooSmall(dst)
		return
	}

	renderHUD(dst, snap, v)
	for _, c := range snap.Cells {
		renderCell(dst, layout.Cells[c.ID], c, snap.Flashes[c.ID], snap.Phase == PhaseRunning && c.ID == v.Cursor)
	}
	if snap.Phase == PhaseGameOver {
		renderGameOver(dst, layout.Grid, snap)
	}
	renderFooter(dst, layout.Grid.Bottom()+1, snap, v)
}

func renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorWarn)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", MinWidth, MinHeight), core.ColorDim)
}

func renderHUD(dst *core.Screen, snap Snapshot, v View) {
	title := v.Title
	if title == "" {
		title = "REFLEX GRID"
	}
	dst.DrawTextCentered(0, strings.ToUpper(title), core.ColorTitle)

	howTo := "Activate green cells before the grid fills up. It speeds up, be quick."
	if v.Penalize {
		howTo = "Activate green cells before the grid fills up. Wrong cells cost points."
	}
	dst.DrawTextCentered(1, howTo, core.ColorDim)

	sound := "on"
	if snap.Muted {
		sound = "off"
	}
	panel := fmt.Sprintf("Score: %d   Best: %d   Pace: x%.2f   Sound: %s",
		snap.Session.Score, snap.Records.BestScore, snap.Session.Factor, sound)
	dst.DrawTextCentered(2, panel, core.ColorScore)
}

func renderCell(dst *core.Screen, r core.Rect, c Cell, flash FlashKind, cursor bool) {
	border := core.ColorDim
	fill, fillColor := ' ', core.ColorDefault

	switch {
	case flash == FlashHit:
		border, fill, fillColor = core.ColorHit, '░', core.ColorHit
	case flash == FlashMiss:
		border, fill, fillColor = core.ColorMiss, '▒', core.ColorMiss
	case c.Lit:
		border, fill, fillColor = core.ColorLit, '█', core.ColorLit
	}
	if cursor {
		border = core.ColorCursor
	}

	dst.DrawBox(r, border)
	dst.DrawRect(r.Inset(1), fill, fillColor)
}

func renderGameOver(dst *core.Screen, grid core.Rect, snap Snapshot) {
	const w, h = 23, 5
	cx, cy := grid.Center()
	box := core.NewRect(cx-w/2, cy-h/2, w, h)

	color := core.ColorWarn
	if snap.Session.Reason == ReasonWon {
		color = core.ColorGood
	}

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)
	drawCenteredIn(dst, box, box.Y+1, "GAME OVER", color)
	drawCenteredIn(dst, box, box.Y+2, snap.Session.Reason.String(), core.ColorDefault)
	drawCenteredIn(dst, box, box.Y+3, fmt.Sprintf("score %d", snap.Session.Score), core.ColorScore)
}

func renderFooter(dst *core.Screen, y int, snap Snapshot, v View) {
	readout := fmt.Sprintf("Elapsed time to %d pts: %s   Shortest time: %s",
		snap.WinScore,
		FormatDuration(snap.Session.Elapsed, v.TimeFormat),
		FormatBestTime(snap.Records, v.TimeFormat))
	dst.DrawTextCentered(y+1, readout, core.ColorDefault)

	status, color := statusLine(snap, v.TimeFormat)
	dst.DrawTextCentered(y+2, status, color)
}

func statusLine(snap Snapshot, format config.TimeFormat) (string, core.Color) {
	switch snap.Phase {
	case PhaseIdle:
		return "Press Enter to start", core.ColorTitle
	case PhaseGameOver:
		var notes []string
		if snap.Session.NewBestScore {
			notes = append(notes, "new best score")
		}
		if snap.Session.NewBestTime {
			notes = append(notes, "new best time")
		}
		if len(notes) > 0 {
			return strings.Join(notes, ", ") + "! Press N to play again", core.ColorGood
		}
		return "Press N to play again", core.ColorTitle
	}

	lit := fmt.Sprintf("Lit %d/%d", snap.LitCount(), CellCount)
	if snap.TimeLimit <= 0 {
		return lit, core.ColorDefault
	}
	color := core.ColorDefault
	if snap.Remaining() < snap.TimeLimit/5 {
		color = core.ColorWarn
	}
	return fmt.Sprintf("%s   Time left: %s", lit, FormatDuration(snap.Remaining(), format)), color
}

func drawCenteredIn(dst *core.Screen, box core.Rect, y int, text string, c core.Color) {
	x := box.X + (box.W-len([]rune(text)))/2
	dst.DrawTextColor(x, y, text, c)
}
