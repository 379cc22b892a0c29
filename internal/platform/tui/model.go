package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-reflex/internal/core"
	"github.com/vovakirdan/tui-reflex/internal/games/reflex"
	"github.com/vovakirdan/tui-reflex/internal/registry"
	"github.com/vovakirdan/tui-reflex/internal/storage"
)

// helpRows is the space below the game screen reserved for the help bar.
const helpRows = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// GameModel is the Bubble Tea model for playing one reflex mode.
type GameModel struct {
	engine  *reflex.Engine
	modeID  string
	title   string
	screen  *core.Screen
	store   *storage.Store
	config  core.RuntimeConfig
	keys    KeyMap
	help    help.Model
	history *HistoryModel
	clock   time.Duration
	cursor  int
	now     func() time.Time

	menuFlow   bool // b/esc returns to a menu
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model around an engine for modeID.
// The store may be nil, in which case rounds are not journaled.
func NewGameModel(engine *reflex.Engine, modeID string, store *storage.Store, cfg core.RuntimeConfig) GameModel {
	title := modeID
	if mode, err := registry.Get(modeID); err == nil {
		title = mode.Title
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return GameModel{
		engine: engine,
		modeID: modeID,
		title:  title,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpRows, 0)),
		store:  store,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   h,
		clock:  reflex.ClockPeriod(engine.Config().Timing, cfg.TickRate),
		cursor: reflex.CellAt(reflex.GridRows/2, reflex.GridCols/2),
		now:    time.Now,
	}
}

// WithMenu makes b/esc leave the game instead of being ignored.
func (m GameModel) WithMenu() GameModel {
	m.menuFlow = true
	return m
}

// Init waits for the player to start a round.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.history != nil {
			return m.updateHistory(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case LightTickMsg:
		res := m.engine.Apply(reflex.LightTick{Session: msg.Session, At: msg.At})
		cmd := m.afterResult(res)
		if m.engine.Active(msg.Session) {
			cmd = tea.Batch(cmd, lightTickCmd(msg.Session, m.engine.Config().Timing.LightTick))
		}
		return m, cmd

	case ClockTickMsg:
		res := m.engine.Apply(reflex.ClockTick{Session: msg.Session, At: msg.At})
		cmd := m.afterResult(res)
		if m.engine.Active(msg.Session) {
			cmd = tea.Batch(cmd, clockTickCmd(msg.Session, m.clock))
		}
		return m, cmd

	case TimeUpMsg:
		res := m.engine.Apply(reflex.TimeUp{Session: msg.Session, At: msg.At})
		return m, m.afterResult(res)

	case FlashDoneMsg:
		m.engine.Apply(reflex.FlashExpired{Cell: msg.Cell, Seq: msg.Seq})
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.abandon()
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		if m.menuFlow {
			m.abandon()
			m.backToMenu = true
		}

	case core.ActionUp:
		m.moveCursor(-1, 0)
	case core.ActionDown:
		m.moveCursor(1, 0)
	case core.ActionLeft:
		m.moveCursor(0, -1)
	case core.ActionRight:
		m.moveCursor(0, 1)

	case core.ActionActivate:
		// Only the first round starts on activate; after a game over a late
		// reaction press must not restart, n/r do that.
		switch m.engine.Phase() {
		case reflex.PhaseRunning:
			return m.activate(m.cursor)
		case reflex.PhaseIdle:
			return m.start()
		}

	case core.ActionStart:
		return m.start()

	case core.ActionMute:
		m.engine.ToggleMute()

	case core.ActionHistory:
		h := NewHistoryModel(m.store, m.engine.Config().Display.TimeFormat, m.modeID, m.config.ScreenW, m.config.ScreenH)
		m.history = &h
	}

	return m, nil
}

// updateHistory forwards keys to the history view while it is open.
// Timer messages keep flowing to the engine.
func (m GameModel) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	updated, cmd := m.history.Update(msg)
	h, ok := updated.(HistoryModel)
	if !ok {
		return m, cmd
	}

	switch {
	case h.IsQuitting():
		m.abandon()
		m.quitting = true
		return m, tea.Quit
	case h.IsGoingBack():
		m.history = nil
	default:
		m.history = &h
	}
	return m, cmd
}

// handleMouse activates the cell under a left click.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.history != nil || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	cell := m.Layout().HitTest(msg.X, msg.Y)
	if cell == reflex.NoCell {
		return m, nil
	}

	m.cursor = cell
	if m.engine.Phase() != reflex.PhaseRunning {
		return m, nil
	}
	return m.activate(cell)
}

// handleResize processes window resize events. The round keeps running.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpRows, 0))
	m.help.Width = msg.Width

	if m.history != nil {
		updated, _ := m.history.Update(msg)
		if h, ok := updated.(HistoryModel); ok {
			m.history = &h
		}
	}
	return m, nil
}

// start begins a new round and its timer chains.
func (m GameModel) start() (tea.Model, tea.Cmd) {
	h := m.engine.Start(m.now())
	timing := m.engine.Config().Timing

	cmds := []tea.Cmd{
		lightTickCmd(h.ID(), timing.LightTick),
		clockTickCmd(h.ID(), m.clock),
	}
	if timing.TimeLimit > 0 {
		cmds = append(cmds, timeUpCmd(h.ID(), timing.TimeLimit))
	}
	return m, tea.Batch(cmds...)
}

// activate clicks a cell.
func (m GameModel) activate(cell int) (tea.Model, tea.Cmd) {
	res := m.engine.Apply(reflex.Click{Cell: cell, At: m.now()})
	return m, m.afterResult(res)
}

// abandon ends a running round before leaving the game.
func (m GameModel) abandon() {
	m.afterResult(m.engine.Apply(reflex.Abandon{At: m.now()}))
}

// afterResult schedules flash expiry and journals finished rounds.
func (m GameModel) afterResult(res reflex.Result) tea.Cmd {
	if res.Ended {
		m.recordRound()
	}
	if res.Flash != nil {
		return flashCmd(*res.Flash, m.engine.Config().Timing.Flash)
	}
	return nil
}

// recordRound appends the finished round to the journal.
func (m GameModel) recordRound() {
	if m.store == nil {
		return
	}

	s := m.engine.Session()
	//nolint:errcheck // Best-effort journal, game continues regardless
	m.store.RecordRound(storage.Round{
		Mode:    m.modeID,
		Score:   s.Score,
		Hits:    s.Hits,
		Misses:  s.Misses,
		Elapsed: s.Elapsed,
		Reason:  s.Reason.String(),
		Won:     s.Reason == reflex.ReasonWon,
		EndedAt: m.now(),
	})
}

func (m *GameModel) moveCursor(dRow, dCol int) {
	row, col := reflex.Position(m.cursor)
	row = core.Clamp(row+dRow, 0, reflex.GridRows-1)
	col = core.Clamp(col+dCol, 0, reflex.GridCols-1)
	m.cursor = reflex.CellAt(row, col)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.render()

	dir := filepath.Join(os.Getenv("HOME"), ".reflex", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.modeID, timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

func (m GameModel) render() {
	cfg := m.engine.Config()
	m.engine.Render(m.screen, reflex.View{
		Title:      m.title,
		Cursor:     m.cursor,
		TimeFormat: cfg.Display.TimeFormat,
		Penalize:   cfg.Scoring.PenalizeWrongClicks,
	})
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.history != nil {
		return m.history.View()
	}

	m.render()
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Layout returns the grid placement used for drawing and mouse hit testing.
func (m GameModel) Layout() reflex.Layout {
	return reflex.NewLayout(m.screen.Width(), m.screen.Height())
}

// Engine returns the engine driven by this model.
func (m GameModel) Engine() *reflex.Engine {
	return m.engine
}

// Cursor returns the cell under the keyboard cursor.
func (m GameModel) Cursor() int {
	return m.cursor
}

// ShowingHistory returns true while the history view is open.
func (m GameModel) ShowingHistory() bool {
	return m.history != nil
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
func Run(model GameModel) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
