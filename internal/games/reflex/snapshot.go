package reflex

import "time"

// Snapshot is a read-only copy of everything needed to draw or verify the game.
type Snapshot struct {
	Phase     Phase
	Cells     []Cell
	Flashes   map[int]FlashKind
	Session   Session
	Records   Records
	Interval  int // base ticks between lit cells
	Period    time.Duration
	Muted     bool
	WinScore  int
	TimeLimit time.Duration
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	flashes := make(map[int]FlashKind, len(e.flashes))
	for id, f := range e.flashes {
		flashes[id] = f.Kind
	}

	return Snapshot{
		Phase:     e.phase,
		Cells:     e.grid.Cells(),
		Flashes:   flashes,
		Session:   e.session,
		Records:   e.records,
		Interval:  e.pacer.Interval(),
		Period:    e.pacer.Period(e.cfg.Timing.LightTick),
		Muted:     e.muted,
		WinScore:  e.cfg.Scoring.WinScore,
		TimeLimit: e.cfg.Timing.TimeLimit,
	}
}

// Remaining returns the time left in the round, or 0 when there is no limit.
func (s Snapshot) Remaining() time.Duration {
	if s.TimeLimit <= 0 {
		return 0
	}
	return max(s.TimeLimit-s.Session.Elapsed, 0)
}

// LitCount returns how many cells are lit in the snapshot.
func (s Snapshot) LitCount() int {
	n := 0
	for _, c := range s.Cells {
		if c.Lit {
			n++
		}
	}
	return n
}
