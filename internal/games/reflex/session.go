package reflex

import (
	"context"
	"time"
)

// Phase is the state of the game state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseGameOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// EndReason describes why a round ended.
type EndReason int

const (
	ReasonNone      EndReason = iota
	ReasonBoardFull           // every cell was lit at once
	ReasonWon                 // the winning score was reached
	ReasonTimeUp              // the time limit expired
	ReasonAbandoned           // the player left mid-round
)

// String returns a short description of the reason.
func (r EndReason) String() string {
	switch r {
	case ReasonNone:
		return ""
	case ReasonBoardFull:
		return "board full"
	case ReasonWon:
		return "target reached"
	case ReasonTimeUp:
		return "time up"
	case ReasonAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// SessionID identifies one round. IDs increase with every Start.
type SessionID uint64

// Session is the state of the current (or last) round.
type Session struct {
	ID        SessionID
	Score     int
	Started   bool
	Over      bool
	StartedAt time.Time
	Elapsed   time.Duration // frozen once Over is set
	Factor    float64       // difficulty factor, 1.0 at the starting pace
	Hits      int
	Misses    int
	Reason    EndReason

	NewBestScore bool // this round raised BestScore
	NewBestTime  bool // this round lowered BestTime
}

// Records are the best results across all rounds played by one engine.
type Records struct {
	BestScore   int
	BestTime    time.Duration
	HasBestTime bool
}

// observe folds a finished round into the records.
// BestTime only moves for qualifying rounds and only when strictly faster.
func (r *Records) observe(s *Session, qualifyingScore int) {
	if s.Score > r.BestScore {
		r.BestScore = s.Score
		s.NewBestScore = true
	}
	if s.Score >= qualifyingScore && (!r.HasBestTime || s.Elapsed < r.BestTime) {
		r.BestTime = s.Elapsed
		r.HasBestTime = true
		s.NewBestTime = true
	}
}

// Handle owns the cancellation token of one round.
// Every periodic or one-shot process of a round is bound to its handle;
// cancelling the handle stops all of them.
type Handle struct {
	id     SessionID
	ctx    context.Context
	cancel context.CancelFunc
}

func newHandle(parent context.Context, id SessionID) *Handle {
	ctx, cancel := context.WithCancel(parent)
	return &Handle{id: id, ctx: ctx, cancel: cancel}
}

// ID returns the session this handle belongs to.
func (h *Handle) ID() SessionID {
	return h.id
}

// Context is cancelled when the round ends or is replaced.
func (h *Handle) Context() context.Context {
	return h.ctx
}

// Done is closed when the handle is cancelled.
func (h *Handle) Done() <-chan struct{} {
	return h.ctx.Done()
}

// Cancelled reports whether the handle has been cancelled.
func (h *Handle) Cancelled() bool {
	return h.ctx.Err() != nil
}

// Cancel stops every process bound to the handle. Safe to call more than once.
func (h *Handle) Cancel() {
	h.cancel()
}
