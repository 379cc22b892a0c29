package reflex

import "time"

// Event is an input to the engine's reducer. Drivers produce events from
// timers and player input; Engine.Apply consumes them one at a time.
type Event interface {
	event()
}

// LightTick is one base tick of the lighting process.
type LightTick struct {
	Session SessionID
	At      time.Time
}

// ClockTick asks the engine to recompute the elapsed time.
type ClockTick struct {
	Session SessionID
	At      time.Time
}

// TimeUp fires once when the round's time limit expires.
type TimeUp struct {
	Session SessionID
	At      time.Time
}

// Click is a player activation of a cell. A zero Session targets whatever
// round is running; a non-zero one is dropped unless that round is active.
type Click struct {
	Session SessionID
	Cell    int
	At      time.Time
}

// FlashExpired reverts a cell flash if it has not been superseded.
type FlashExpired struct {
	Cell int
	Seq  uint64
}

// Abandon ends a running round early, for example when the player leaves it.
type Abandon struct {
	At time.Time
}

func (LightTick) event()    {}
func (ClockTick) event()    {}
func (TimeUp) event()       {}
func (Click) event()        {}
func (FlashExpired) event() {}
func (Abandon) event()      {}

// Result describes what an event changed.
type Result struct {
	Stale      bool // the event belonged to a replaced or finished round, or a superseded flash
	Ignored    bool // the event was valid but had nothing to act on
	Lit        int  // cell lit by a lighting tick, NoCell if none
	Hit        bool // a lit cell was activated
	Miss       bool // an unlit cell was activated
	ScoreDelta int
	PaceUp     bool   // the lighting pace sped up
	Flash      *Flash // a flash started; the driver schedules its expiry
	Ended      bool
	Reason     EndReason
}

func staleResult() Result {
	return Result{Stale: true, Lit: NoCell}
}

func ignoredResult() Result {
	return Result{Ignored: true, Lit: NoCell}
}

// FlashKind selects the flash color.
type FlashKind int

const (
	FlashHit FlashKind = iota + 1
	FlashMiss
)

// Flash is transient per-cell feedback. A newer flash on the same cell
// replaces the older one; only the newest Seq may revert it.
type Flash struct {
	Cell int
	Kind FlashKind
	Seq  uint64
}
