package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-reflex/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextColor(0, 0, "Score", core.ColorScore)
	s.DrawTextColor(6, 0, "7", core.ColorGood)
	s.DrawBox(core.NewRect(0, 1, 4, 2), core.ColorLit)

	out := RenderScreen(s)
	if n := strings.Count(out, "\n"); n != 2 {
		t.Errorf("expected 3 rows, got %d", n+1)
	}
	for _, want := range []string{"Score", "7", "┌──┐", "└──┘"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	got := styleFor(core.Color(200)).Render("x")
	if !strings.Contains(got, "x") {
		t.Errorf("unknown colors should render with the default style, got %q", got)
	}
}
