package reflex

import (
	"time"

	"github.com/vovakirdan/tui-reflex/internal/config"
)

// Pacer decides on which lighting ticks a new cell lights up.
//
// The lighting process runs on a fixed base tick. The pacer fires once every
// interval ticks; in adaptive mode the interval shrinks by one tick each time
// the score passes a milestone, down to a floor.
type Pacer struct {
	adaptive bool
	initial  int
	floor    int
	every    int

	interval      int
	counter       int
	threshold     int
	lastMilestone int
}

// NewPacer creates a pacer from the difficulty configuration.
func NewPacer(cfg config.DifficultyConfig) *Pacer {
	p := &Pacer{
		adaptive: cfg.Mode == config.DifficultyModeAdaptive,
		initial:  max(cfg.InitialInterval, 1),
		floor:    max(cfg.MinInterval, 1),
		every:    max(cfg.MilestoneEvery, 1),
	}
	p.Reset()
	return p
}

// Reset restores the starting pace.
func (p *Pacer) Reset() {
	p.interval = p.initial
	p.counter = 0
	p.threshold = p.interval
	p.lastMilestone = 0
}

// Tick advances the base tick counter and reports whether a cell should light now.
func (p *Pacer) Tick() bool {
	fire := p.counter == p.threshold
	if fire {
		p.threshold = p.counter + p.interval
	}
	p.counter++
	return fire
}

// OnScore applies the speed-up step for a new score.
// Each milestone is counted once even if the score dips and recovers.
// Returns true if the pace changed.
func (p *Pacer) OnScore(score int) bool {
	if !p.adaptive || score <= 0 {
		return false
	}

	milestone := score / p.every
	if milestone <= p.lastMilestone {
		return false
	}
	p.lastMilestone = milestone

	if p.interval <= p.floor {
		return false
	}
	p.interval--
	return true
}

// Interval returns the current number of base ticks between lit cells.
func (p *Pacer) Interval() int {
	return p.interval
}

// Factor returns how much faster the current pace is than the starting pace.
func (p *Pacer) Factor() float64 {
	return float64(p.initial) / float64(p.interval)
}

// Period converts the current interval to wall time for the given base tick.
func (p *Pacer) Period(base time.Duration) time.Duration {
	return base * time.Duration(p.interval)
}

// Adaptive reports whether the pace ramps up with the score.
func (p *Pacer) Adaptive() bool {
	return p.adaptive
}
