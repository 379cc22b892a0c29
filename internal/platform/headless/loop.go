// Package headless drives the reflex engine without a terminal.
//
// Every periodic process runs in its own goroutine on a time.Ticker bound to
// the round's context. Producers only send events; a single consumer goroutine
// owns the engine and applies them in arrival order. Cancelling a round's
// handle stops its producers, and any event they queued before stopping is
// dropped by the engine's session check.
package headless

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vovakirdan/tui-reflex/internal/games/reflex"
)

// ErrClosed is returned by Loop methods after Close.
var ErrClosed = errors.New("headless: loop closed")

const eventBuffer = 64

// Options configure a Loop.
type Options struct {
	// Clock is the elapsed-clock period. Zero uses 10ms.
	Clock time.Duration

	// Speed scales time: 2 runs every timer twice as fast and reports
	// elapsed time as if it ran in real time. Zero means 1.
	Speed float64

	// OnResult is called from the consumer goroutine after every applied event.
	// It must not block and must not call Loop methods synchronously.
	OnResult func(ev reflex.Event, res reflex.Result)
}

type startRequest struct {
	reply chan *reflex.Handle
}

type snapshotRequest struct {
	reply chan reflex.Snapshot
}

// Loop runs an engine on goroutines and real timers.
type Loop struct {
	engine *reflex.Engine
	opts   Options
	origin time.Time

	events chan any
	done   chan struct{}
	exited chan struct{}
	once   sync.Once

	producers sync.WaitGroup
}

// NewLoop starts the consumer goroutine for engine. The loop owns the engine
// until Close returns.
func NewLoop(engine *reflex.Engine, opts Options) *Loop {
	if opts.Clock <= 0 {
		opts.Clock = 10 * time.Millisecond
	}
	if opts.Speed <= 0 {
		opts.Speed = 1
	}

	l := &Loop{
		engine: engine,
		opts:   opts,
		origin: time.Now(),
		events: make(chan any, eventBuffer),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go l.consume()
	return l
}

// Start begins a new round, replacing any round in progress.
func (l *Loop) Start() (*reflex.Handle, error) {
	req := startRequest{reply: make(chan *reflex.Handle, 1)}
	if err := l.post(req); err != nil {
		return nil, err
	}
	select {
	case h := <-req.reply:
		return h, nil
	case <-l.exited:
		return nil, ErrClosed
	}
}

// Click activates a cell in whatever round is running when it arrives.
func (l *Loop) Click(cell int) error {
	return l.ClickIn(0, cell)
}

// ClickIn activates a cell in one round only. If that round has ended or been
// replaced by the time the click is applied, the click is dropped.
func (l *Loop) ClickIn(session reflex.SessionID, cell int) error {
	return l.post(reflex.Click{Session: session, Cell: cell, At: l.now()})
}

// Snapshot returns the engine state after every event queued before the call.
func (l *Loop) Snapshot() (reflex.Snapshot, error) {
	req := snapshotRequest{reply: make(chan reflex.Snapshot, 1)}
	if err := l.post(req); err != nil {
		return reflex.Snapshot{}, err
	}
	select {
	case snap := <-req.reply:
		return snap, nil
	case <-l.exited:
		return reflex.Snapshot{}, ErrClosed
	}
}

// Close stops the consumer and every producer and waits for them to exit.
// It is safe to call more than once.
func (l *Loop) Close() {
	l.once.Do(func() {
		close(l.done)
		<-l.exited
		l.engine.Close()
		l.producers.Wait()
	})
}

func (l *Loop) post(msg any) error {
	select {
	case <-l.done:
		return ErrClosed
	default:
	}

	select {
	case l.events <- msg:
		return nil
	case <-l.done:
		return ErrClosed
	}
}

func (l *Loop) consume() {
	defer close(l.exited)

	for {
		select {
		case <-l.done:
			return
		case msg := <-l.events:
			l.handle(msg)
		}
	}
}

func (l *Loop) handle(msg any) {
	switch msg := msg.(type) {
	case startRequest:
		h := l.engine.Start(l.now())
		l.spawn(h)
		msg.reply <- h

	case snapshotRequest:
		msg.reply <- l.engine.Snapshot()

	case reflex.Event:
		res := l.engine.Apply(msg)
		if res.Flash != nil {
			l.expireFlash(*res.Flash)
		}
		if l.opts.OnResult != nil {
			l.opts.OnResult(msg, res)
		}
	}
}

// spawn starts the producers of a round. Runs on the consumer goroutine.
func (l *Loop) spawn(h *reflex.Handle) {
	cfg := l.engine.Config()
	id := h.ID()

	l.producers.Add(2)
	go l.tick(h.Context(), cfg.Timing.LightTick, func(at time.Time) reflex.Event {
		return reflex.LightTick{Session: id, At: at}
	})
	go l.tick(h.Context(), l.opts.Clock, func(at time.Time) reflex.Event {
		return reflex.ClockTick{Session: id, At: at}
	})

	if cfg.Timing.TimeLimit > 0 {
		l.producers.Add(1)
		go l.after(h.Context(), cfg.Timing.TimeLimit, func(at time.Time) reflex.Event {
			return reflex.TimeUp{Session: id, At: at}
		})
	}
}

func (l *Loop) expireFlash(f reflex.Flash) {
	l.producers.Add(1)
	go l.after(context.Background(), l.engine.Config().Timing.Flash, func(time.Time) reflex.Event {
		return reflex.FlashExpired{Cell: f.Cell, Seq: f.Seq}
	})
}

// tick sends an event on every period until ctx is cancelled or the loop closes.
func (l *Loop) tick(ctx context.Context, period time.Duration, mk func(time.Time) reflex.Event) {
	defer l.producers.Done()

	t := time.NewTicker(l.scale(period))
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.done:
			return
		case <-t.C:
			if !l.send(ctx, mk(l.now())) {
				return
			}
		}
	}
}

// after sends one event once d has passed, unless ctx is cancelled first.
func (l *Loop) after(ctx context.Context, d time.Duration, mk func(time.Time) reflex.Event) {
	defer l.producers.Done()

	t := time.NewTimer(l.scale(d))
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-l.done:
	case <-t.C:
		l.send(ctx, mk(l.now()))
	}
}

func (l *Loop) send(ctx context.Context, ev reflex.Event) bool {
	select {
	case l.events <- ev:
		return true
	case <-ctx.Done():
		return false
	case <-l.done:
		return false
	}
}

// now returns the loop's virtual time.
func (l *Loop) now() time.Time {
	wall := time.Since(l.origin)
	return l.origin.Add(time.Duration(float64(wall) * l.opts.Speed))
}

// scale converts a virtual duration to wall time.
func (l *Loop) scale(d time.Duration) time.Duration {
	return max(time.Duration(float64(d)/l.opts.Speed), time.Microsecond)
}
