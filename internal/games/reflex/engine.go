package reflex

import (
	"context"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-reflex/internal/config"
)

// Sounder plays the click sound. Play must not block.
type Sounder interface {
	Play()
}

// Engine owns the reflex grid state machine: cells, the current round and its
// handle, the pacer, records and flashes. It is not safe for concurrent use;
// drivers funnel every timer and input event through Apply from one goroutine.
type Engine struct {
	cfg   config.ReflexConfig
	rng   *rand.Rand
	grid  *Grid
	pacer *Pacer
	sound Sounder
	muted bool

	phase   Phase
	session Session
	records Records
	handle  *Handle
	lastID  SessionID

	flashes  map[int]Flash
	flashSeq uint64
}

// New creates an idle engine. A zero seed uses the current time.
func New(cfg config.ReflexConfig, seed int64) *Engine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
		grid:    NewGrid(),
		pacer:   NewPacer(cfg.Difficulty),
		muted:   !cfg.Sound.Enabled,
		phase:   PhaseIdle,
		flashes: make(map[int]Flash),
		session: Session{Factor: 1},
	}
}

// SetSounder attaches the click sound player. nil disables sound.
func (e *Engine) SetSounder(s Sounder) {
	e.sound = s
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.ReflexConfig {
	return e.cfg
}

// Phase returns the state machine phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Session returns a copy of the current round.
func (e *Engine) Session() Session {
	return e.session
}

// Records returns the best results so far.
func (e *Engine) Records() Records {
	return e.records
}

// Handle returns the handle of the current round, or nil before the first Start.
func (e *Engine) Handle() *Handle {
	return e.handle
}

// Cells returns a copy of the grid.
func (e *Engine) Cells() []Cell {
	return e.grid.Cells()
}

// Active reports whether id is the running round with a live handle.
func (e *Engine) Active(id SessionID) bool {
	return e.phase == PhaseRunning &&
		e.handle != nil &&
		e.handle.id == id &&
		!e.handle.Cancelled()
}

// live reports whether a round is running and its handle has not been
// cancelled, e.g. by Close.
func (e *Engine) live() bool {
	return e.handle != nil && e.Active(e.handle.id)
}

// Start begins a new round, cancelling any round in progress first.
// Every cell is unlit, the score and clock are reset and the pace returns to
// its starting value. Records carry over.
func (e *Engine) Start(now time.Time) *Handle {
	if e.handle != nil {
		e.handle.Cancel()
	}

	e.lastID++
	e.handle = newHandle(context.Background(), e.lastID)

	e.grid.Clear()
	e.pacer.Reset()
	clear(e.flashes)

	e.session = Session{
		ID:        e.lastID,
		Started:   true,
		StartedAt: now,
		Factor:    e.pacer.Factor(),
	}
	e.phase = PhaseRunning

	return e.handle
}

// Close cancels the current round's handle without ending the round.
func (e *Engine) Close() {
	if e.handle != nil {
		e.handle.Cancel()
	}
}

// Apply feeds one event to the state machine.
func (e *Engine) Apply(ev Event) Result {
	switch ev := ev.(type) {
	case LightTick:
		return e.onLightTick(ev)
	case ClockTick:
		return e.onClockTick(ev)
	case TimeUp:
		return e.onTimeUp(ev)
	case Click:
		return e.onClick(ev)
	case FlashExpired:
		return e.onFlashExpired(ev)
	case Abandon:
		return e.onAbandon(ev)
	default:
		return ignoredResult()
	}
}

func (e *Engine) onLightTick(ev LightTick) Result {
	if !e.Active(ev.Session) {
		return staleResult()
	}
	if !e.pacer.Tick() {
		return ignoredResult()
	}

	res := Result{Lit: NoCell}
	unlit := e.grid.Unlit()
	if len(unlit) > 0 {
		res.Lit = unlit[e.rng.Intn(len(unlit))]
		e.grid.Set(res.Lit, true)
	}

	if e.grid.Full() {
		e.endGame(e.handle, e.elapsedAt(ev.At), ReasonBoardFull)
		res.Ended = true
		res.Reason = ReasonBoardFull
	}
	return res
}

func (e *Engine) onClockTick(ev ClockTick) Result {
	if !e.Active(ev.Session) {
		return staleResult()
	}

	elapsed := e.elapsedAt(ev.At)
	if limit := e.cfg.Timing.TimeLimit; limit > 0 && elapsed >= limit {
		e.endGame(e.handle, limit, ReasonTimeUp)
		return Result{Lit: NoCell, Ended: true, Reason: ReasonTimeUp}
	}

	e.session.Elapsed = elapsed
	return Result{Lit: NoCell}
}

func (e *Engine) onTimeUp(ev TimeUp) Result {
	if !e.Active(ev.Session) {
		return staleResult()
	}
	e.endGame(e.handle, e.cfg.Timing.TimeLimit, ReasonTimeUp)
	return Result{Lit: NoCell, Ended: true, Reason: ReasonTimeUp}
}

func (e *Engine) onClick(ev Click) Result {
	if ev.Session != 0 && !e.Active(ev.Session) {
		return staleResult()
	}
	if !e.live() || !e.grid.Valid(ev.Cell) {
		return ignoredResult()
	}

	if !e.grid.IsLit(ev.Cell) {
		return e.onMiss(ev.Cell)
	}

	e.grid.Set(ev.Cell, false)
	e.session.Score++
	e.session.Hits++
	e.playClick()

	res := Result{
		Lit:        NoCell,
		Hit:        true,
		ScoreDelta: 1,
		Flash:      e.flash(ev.Cell, FlashHit),
	}

	if e.pacer.OnScore(e.session.Score) {
		e.session.Factor = e.pacer.Factor()
		res.PaceUp = true
	}

	if e.session.Score >= e.cfg.Scoring.WinScore {
		e.endGame(e.handle, e.elapsedAt(ev.At), ReasonWon)
		res.Ended = true
		res.Reason = ReasonWon
	}
	return res
}

func (e *Engine) onMiss(id int) Result {
	if !e.cfg.Scoring.PenalizeWrongClicks {
		return ignoredResult()
	}

	penalty := e.cfg.Scoring.WrongClickPenalty
	e.session.Score -= penalty
	e.session.Misses++

	return Result{
		Lit:        NoCell,
		Miss:       true,
		ScoreDelta: -penalty,
		Flash:      e.flash(id, FlashMiss),
	}
}

func (e *Engine) onFlashExpired(ev FlashExpired) Result {
	f, ok := e.flashes[ev.Cell]
	if !ok || f.Seq != ev.Seq {
		return staleResult()
	}
	delete(e.flashes, ev.Cell)
	return Result{Lit: NoCell}
}

func (e *Engine) onAbandon(ev Abandon) Result {
	if !e.live() {
		return ignoredResult()
	}
	e.endGame(e.handle, e.elapsedAt(ev.At), ReasonAbandoned)
	return Result{Lit: NoCell, Ended: true, Reason: ReasonAbandoned}
}

// endGame finishes the round owned by h: its processes are cancelled, the clock
// is frozen at elapsed and the records are updated.
func (e *Engine) endGame(h *Handle, elapsed time.Duration, reason EndReason) {
	h.Cancel()

	e.session.Over = true
	e.session.Elapsed = elapsed
	e.session.Reason = reason
	e.phase = PhaseGameOver

	e.records.observe(&e.session, e.cfg.Scoring.WinScore)
}

// elapsedAt returns the round time at t, never negative.
func (e *Engine) elapsedAt(t time.Time) time.Duration {
	d := t.Sub(e.session.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}

func (e *Engine) flash(cell int, kind FlashKind) *Flash {
	if e.cfg.Timing.Flash <= 0 {
		return nil
	}
	e.flashSeq++
	f := Flash{Cell: cell, Kind: kind, Seq: e.flashSeq}
	e.flashes[cell] = f
	return &f
}

func (e *Engine) playClick() {
	if e.muted || e.sound == nil {
		return
	}
	e.sound.Play()
}

// Muted reports whether the click sound is off.
func (e *Engine) Muted() bool {
	return e.muted
}

// SetMuted turns the click sound off or on.
func (e *Engine) SetMuted(muted bool) {
	e.muted = muted
}

// ToggleMute flips the click sound and returns the new muted state.
func (e *Engine) ToggleMute() bool {
	e.muted = !e.muted
	return e.muted
}
