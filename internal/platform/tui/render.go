package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-reflex/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorDim:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorLit:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorHit:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorMiss:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorCursor:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorTitle:   lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorScore:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	core.ColorGood:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
}

func styleFor(c core.Color) lipgloss.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen turns a Screen buffer into styled terminal output.
// Each row is split into runs of one color, and every run is styled once.
func RenderScreen(s *core.Screen) string {
	rows := make([]string, s.Height())
	for y := range rows {
		rows[y] = renderRow(s, y)
	}
	return strings.Join(rows, "\n")
}

func renderRow(s *core.Screen, y int) string {
	var (
		out   strings.Builder
		run   []rune
		color core.Color
	)
	flush := func() {
		if len(run) > 0 {
			out.WriteString(styleFor(color).Render(string(run)))
			run = run[:0]
		}
	}

	for x := range s.Width() {
		cell := s.GetCell(x, y)
		if cell.Color != color {
			flush()
			color = cell.Color
		}
		run = append(run, cell.Rune)
	}
	flush()
	return out.String()
}
