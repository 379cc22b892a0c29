package headless

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/vovakirdan/tui-reflex/internal/games/reflex"
)

// Clicker is where a bot sends its clicks. *Loop implements it.
type Clicker interface {
	ClickIn(session reflex.SessionID, cell int) error
}

// Bot plays by reacting to every lit cell after a fixed delay plus jitter.
// Observe is meant to be the loop's OnResult callback.
type Bot struct {
	reaction time.Duration
	jitter   time.Duration
	speed    float64
	rng      *rand.Rand
	target   atomic.Pointer[clickerBox]
	clicks   atomic.Int64
}

type clickerBox struct{ c Clicker }

// NewBot creates a bot. Reaction delays are virtual time and are divided by
// speed, matching a Loop with the same speed.
func NewBot(reaction, jitter time.Duration, speed float64, seed int64) *Bot {
	if speed <= 0 {
		speed = 1
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Bot{
		reaction: reaction,
		jitter:   jitter,
		speed:    speed,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Attach sets the bot's click target.
func (b *Bot) Attach(c Clicker) {
	b.target.Store(&clickerBox{c: c})
}

// Observe schedules a click for every cell a lighting tick lit. Each click is
// tagged with that tick's round, so the engine drops it once the round is over
// or replaced.
func (b *Bot) Observe(ev reflex.Event, res reflex.Result) {
	tick, ok := ev.(reflex.LightTick)
	if !ok || res.Lit == reflex.NoCell {
		return
	}

	cell, session := res.Lit, tick.Session
	delay := b.reaction
	if b.jitter > 0 {
		delay += time.Duration(b.rng.Int63n(int64(b.jitter)))
	}

	time.AfterFunc(time.Duration(float64(delay)/b.speed), func() {
		box := b.target.Load()
		if box == nil {
			return
		}
		if box.c.ClickIn(session, cell) == nil {
			b.clicks.Add(1)
		}
	})
}

// Clicks returns how many clicks the bot has sent.
func (b *Bot) Clicks() int64 {
	return b.clicks.Load()
}
