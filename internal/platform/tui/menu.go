package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-reflex/internal/core"
	"github.com/vovakirdan/tui-reflex/internal/registry"
)

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuPickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// MenuModel is the Bubble Tea model for the mode picker menu.
type MenuModel struct {
	items       []registry.ModeInfo
	cursor      int
	width       int
	height      int
	config      core.RuntimeConfig
	quitting    bool
	selected    *registry.ModeInfo // Set when user selects a mode
	openHistory bool               // True if user pressed Tab for history
	bests       map[string]string  // records line per mode played this session
	user        string
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:  registry.List(),
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionHistory:
		m.openHistory = true
	}

	return m, nil
}

// WithBests attaches a records line per mode ID, shown under the
// highlighted mode.
func (m MenuModel) WithBests(bests map[string]string) MenuModel {
	m.bests = bests
	return m
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{"", menuTitleStyle.Render("R E F L E X   G R I D"), ""}
	if m.user != "" {
		lines = append(lines, menuDimStyle.Render("Playing as "+m.user), "")
	}
	lines = append(lines, "Select a mode", "")

	for i, item := range m.items {
		if i == m.cursor {
			lines = append(lines, menuPickStyle.Render(fmt.Sprintf("> %-22s", item.Title)))
			continue
		}
		lines = append(lines, fmt.Sprintf("  %-22s", item.Title))
	}

	if len(m.items) > 0 {
		picked := m.items[m.cursor]
		lines = append(lines, "", menuDimStyle.Render(picked.Description))
		if best, ok := m.bests[picked.ID]; ok {
			lines = append(lines, menuPickStyle.Render(best))
		}
	}

	lines = append(lines, "",
		menuDimStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: History  |  Q: Quit"))

	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// WithUser greets the player by name above the mode list.
func (m MenuModel) WithUser(name string) MenuModel {
	m.user = name
	return m
}

// Selected returns the selected mode, or nil if none selected.
func (m MenuModel) Selected() *registry.ModeInfo {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user requested the round history.
func (m MenuModel) WantsHistory() bool {
	return m.openHistory
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
