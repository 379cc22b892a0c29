package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-reflex/internal/config"
	"github.com/vovakirdan/tui-reflex/internal/core"
	"github.com/vovakirdan/tui-reflex/internal/games/reflex"
	"github.com/vovakirdan/tui-reflex/internal/storage"
)

// Setup carries everything needed to build games for a session.
type Setup struct {
	Base    config.ReflexConfig // loaded configuration before mode and overrides
	Options reflex.Options      // Mode is ignored, the menu picks it
	Seed    int64
	Sounder reflex.Sounder // nil for silent sessions
	Store   *storage.Store
	Runtime core.RuntimeConfig
}

// NewEngine builds an engine for modeID.
func (s Setup) NewEngine(modeID string) (*reflex.Engine, error) {
	opts := s.Options
	opts.Mode = modeID

	cfg, err := reflex.Configure(s.Base, opts)
	if err != nil {
		return nil, err
	}

	e := reflex.New(cfg, s.Seed)
	if s.Sounder != nil {
		e.SetSounder(s.Sounder)
	}
	return e, nil
}

// SessionModel manages the full flow: menu -> game -> menu, plus history.
// Each mode keeps its engine for the life of the session, so records carry
// over when the player leaves a mode and comes back.
type SessionModel struct {
	setup    Setup
	username string
	engines  map[string]*reflex.Engine
	menu     MenuModel
	game     *GameModel
	history  *HistoryModel
	err      error
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(setup Setup, username string) SessionModel {
	return SessionModel{
		setup:    setup,
		username: username,
		engines:  make(map[string]*reflex.Engine),
		menu:     NewMenuModel(setup.Runtime).WithUser(username),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.setup.Runtime.ScreenW = wsm.Width
		m.setup.Runtime.ScreenH = wsm.Height
	}

	switch {
	case m.game != nil:
		return m.updateGame(msg)
	case m.history != nil:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsHistory() {
		h := NewHistoryModel(m.setup.Store, m.timeFormat(), "", m.setup.Runtime.ScreenW, m.setup.Runtime.ScreenH)
		m.history = &h
		m.menu = m.newMenu()
		return m, nil
	}

	if selected := m.menu.Selected(); selected != nil {
		engine, ok := m.engines[selected.ID]
		if !ok {
			var err error
			engine, err = m.setup.NewEngine(selected.ID)
			if err != nil {
				m.err = err
				m.menu = m.newMenu()
				return m, nil
			}
			m.engines[selected.ID] = engine
		}

		game := NewGameModel(engine, selected.ID, m.setup.Store, m.setup.Runtime).WithMenu()
		m.game = &game
		m.err = nil
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateHistory handles updates when the menu's history view is open.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.history.Update(msg)
	if h, ok := updated.(HistoryModel); ok {
		m.history = &h
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.history.IsGoingBack() {
		m.history = nil
	}
	return m, cmd
}

// newMenu builds the mode picker with the records of every mode played so far.
func (m SessionModel) newMenu() MenuModel {
	bests := make(map[string]string, len(m.engines))
	for id, e := range m.engines {
		r := e.Records()
		bests[id] = fmt.Sprintf("Best score: %d   Shortest time: %s", r.BestScore, reflex.FormatBestTime(r, m.timeFormat()))
	}
	return NewMenuModel(m.setup.Runtime).WithUser(m.username).WithBests(bests)
}

func (m SessionModel) timeFormat() config.TimeFormat {
	if m.setup.Options.TimeFormat != "" {
		return m.setup.Options.TimeFormat
	}
	return m.setup.Base.Display.TimeFormat
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.game != nil:
		return m.game.View()
	case m.history != nil:
		return m.history.View()
	}

	view := m.menu.View()
	if m.err != nil {
		view += "\n" + centerText("Error: "+m.err.Error(), m.setup.Runtime.ScreenW)
	}
	return view
}

// InGame returns true while a mode is being played.
func (m SessionModel) InGame() bool {
	return m.game != nil
}

// RunSession runs the menu flow in the local terminal.
func RunSession(setup Setup) error {
	p := tea.NewProgram(
		NewSessionModel(setup, ""),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
