package headless

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vovakirdan/tui-reflex/internal/config"
	"github.com/vovakirdan/tui-reflex/internal/games/reflex"
)

// fastConfig lights a cell every 2ms and has no time limit.
func fastConfig() config.ReflexConfig {
	cfg := config.DefaultReflexConfig()
	cfg.Timing.LightTick = time.Millisecond
	cfg.Timing.TimeLimit = 0
	cfg.Timing.Flash = 5 * time.Millisecond
	cfg.Difficulty.InitialInterval = 2
	cfg.Difficulty.MinInterval = 1
	return cfg
}

func waitDone(t *testing.T, h *reflex.Handle, timeout time.Duration) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(timeout):
		t.Fatalf("round %d did not end within %v", h.ID(), timeout)
	}
}

func TestLoopFillsBoard(t *testing.T) {
	l := NewLoop(reflex.New(fastConfig(), 1), Options{Clock: time.Millisecond})
	defer l.Close()

	h, err := l.Start()
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	waitDone(t, h, 2*time.Second)

	snap, err := l.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() failed: %v", err)
	}
	if snap.Phase != reflex.PhaseGameOver || snap.Session.Reason != reflex.ReasonBoardFull {
		t.Errorf("expected board full game over, got phase %v reason %v", snap.Phase, snap.Session.Reason)
	}
	if snap.LitCount() != reflex.CellCount {
		t.Errorf("LitCount() = %d, expected %d", snap.LitCount(), reflex.CellCount)
	}
}

func TestLoopTimeLimit(t *testing.T) {
	cfg := fastConfig()
	cfg.Timing.LightTick = time.Second // nothing lights during the test
	cfg.Timing.TimeLimit = 30 * time.Millisecond

	l := NewLoop(reflex.New(cfg, 1), Options{Clock: 5 * time.Millisecond})
	defer l.Close()

	h, err := l.Start()
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	waitDone(t, h, 2*time.Second)

	snap, _ := l.Snapshot()
	if snap.Session.Reason != reflex.ReasonTimeUp {
		t.Errorf("Reason = %v, expected time up", snap.Session.Reason)
	}
	if snap.Session.Elapsed != cfg.Timing.TimeLimit {
		t.Errorf("Elapsed = %v, expected exactly %v", snap.Session.Elapsed, cfg.Timing.TimeLimit)
	}
}

func TestLoopSpeedScalesTime(t *testing.T) {
	cfg := fastConfig()
	cfg.Timing.LightTick = time.Hour
	cfg.Timing.TimeLimit = 2 * time.Second

	l := NewLoop(reflex.New(cfg, 1), Options{Speed: 40})
	defer l.Close()

	h, err := l.Start()
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	// 2s at 40x is 50ms of wall time
	waitDone(t, h, time.Second)

	snap, _ := l.Snapshot()
	if snap.Session.Elapsed != 2*time.Second {
		t.Errorf("Elapsed = %v, expected the virtual limit 2s", snap.Session.Elapsed)
	}
}

func TestLoopBackToBackStarts(t *testing.T) {
	var (
		mu     sync.Mutex
		lights = make(map[reflex.SessionID]int)
	)
	bot := NewBot(time.Millisecond, 0, 1, 3)
	l := NewLoop(reflex.New(fastConfig(), 3), Options{
		Clock: time.Millisecond,
		OnResult: func(ev reflex.Event, res reflex.Result) {
			if tick, ok := ev.(reflex.LightTick); ok && res.Lit != reflex.NoCell {
				mu.Lock()
				lights[tick.Session]++
				mu.Unlock()
			}
			bot.Observe(ev, res)
		},
	})
	bot.Attach(l)
	defer l.Close()

	var handles []*reflex.Handle
	for range 10 {
		h, err := l.Start()
		if err != nil {
			t.Fatalf("Start() failed: %v", err)
		}
		handles = append(handles, h)
	}

	last := handles[len(handles)-1]
	for _, h := range handles[:len(handles)-1] {
		if !h.Cancelled() {
			t.Errorf("round %d should be cancelled by the next Start", h.ID())
		}
	}

	waitDone(t, last, 5*time.Second)
	snap, _ := l.Snapshot()
	if snap.Session.ID != last.ID() {
		t.Errorf("snapshot shows round %d, expected the last round %d", snap.Session.ID, last.ID())
	}
	if !snap.Session.Over {
		t.Error("last round should be over")
	}

	mu.Lock()
	lit := lights[last.ID()]
	mu.Unlock()
	if snap.Session.Hits > lit {
		t.Errorf("round %d scored %d hits but only lit %d cells", last.ID(), snap.Session.Hits, lit)
	}
	if snap.Session.Score != snap.Session.Hits {
		t.Errorf("Score = %d, Hits = %d, expected equal without penalties", snap.Session.Score, snap.Session.Hits)
	}
}

func TestLoopDropsClicksFromReplacedRound(t *testing.T) {
	cfg := fastConfig()
	cfg.Timing.LightTick = 3 * time.Millisecond
	cfg.Difficulty.InitialInterval = 1

	// The bot only sees the first round and reacts after it was replaced.
	var forward atomic.Bool
	forward.Store(true)
	bot := NewBot(60*time.Millisecond, 0, 1, 1)
	l := NewLoop(reflex.New(cfg, 11), Options{
		Clock: time.Millisecond,
		OnResult: func(ev reflex.Event, res reflex.Result) {
			if forward.Load() {
				bot.Observe(ev, res)
			}
		},
	})
	bot.Attach(l)
	defer l.Close()

	first, err := l.Start()
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	forward.Store(false)
	second, err := l.Start()
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for bot.Clicks() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(60 * time.Millisecond)

	if bot.Clicks() == 0 {
		t.Fatal("bot never clicked")
	}
	snap, _ := l.Snapshot()
	if snap.Session.ID != second.ID() {
		t.Fatalf("snapshot shows round %d, expected %d", snap.Session.ID, second.ID())
	}
	if snap.Session.Score != 0 || snap.Session.Hits != 0 {
		t.Errorf("clicks aimed at round %d scored %d (%d hits) in round %d",
			first.ID(), snap.Session.Score, snap.Session.Hits, second.ID())
	}
}

func TestLoopClickScores(t *testing.T) {
	cfg := fastConfig()
	cfg.Timing.LightTick = 5 * time.Millisecond
	cfg.Difficulty.InitialInterval = 1

	lit := make(chan int, reflex.CellCount)
	l := NewLoop(reflex.New(cfg, 5), Options{
		OnResult: func(_ reflex.Event, res reflex.Result) {
			if res.Lit != reflex.NoCell {
				select {
				case lit <- res.Lit:
				default:
				}
			}
		},
	})
	defer l.Close()

	if _, err := l.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	select {
	case cell := <-lit:
		if err := l.Click(cell); err != nil {
			t.Fatalf("Click() failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no cell lit")
	}

	snap, _ := l.Snapshot()
	if snap.Session.Score != 1 {
		t.Errorf("Score = %d, expected 1", snap.Session.Score)
	}
}

func TestLoopClose(t *testing.T) {
	l := NewLoop(reflex.New(fastConfig(), 1), Options{})

	h, err := l.Start()
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	l.Close()
	l.Close() // second close is a no-op

	if !h.Cancelled() {
		t.Error("Close should cancel the running round")
	}
	if _, err := l.Start(); err != ErrClosed {
		t.Errorf("Start() after Close = %v, expected ErrClosed", err)
	}
	if err := l.Click(0); err != ErrClosed {
		t.Errorf("Click() after Close = %v, expected ErrClosed", err)
	}
	if _, err := l.Snapshot(); err != ErrClosed {
		t.Errorf("Snapshot() after Close = %v, expected ErrClosed", err)
	}
}
