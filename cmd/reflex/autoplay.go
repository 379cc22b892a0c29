package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reflex/internal/games/reflex"
	"github.com/vovakirdan/tui-reflex/internal/platform/headless"
	"github.com/vovakirdan/tui-reflex/internal/registry"
	"github.com/vovakirdan/tui-reflex/internal/storage"
)

var (
	flagRounds   int
	flagReaction time.Duration
	flagJitter   time.Duration
	flagSpeed    float64
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay [mode]",
	Short: "Let a bot play headless rounds",
	Long: `Run rounds without a terminal UI. A bot clicks every lit cell after
its reaction delay. Every timer runs on its own goroutine, so this is also
a quick way to watch the pace ramp and the records move.

--speed scales time: at 4 a 30s round takes 7.5s of wall time while the
reported times stay in game time.

Examples:
  reflex autoplay
  reflex autoplay strict --rounds 10
  reflex autoplay --reaction 200ms --jitter 400ms --speed 4
  reflex autoplay --difficulty hard --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAutoplay,
}

func init() {
	autoplayCmd.Flags().IntVar(&flagRounds, "rounds", 3, "Number of rounds to play")
	autoplayCmd.Flags().DurationVar(&flagReaction, "reaction", 350*time.Millisecond, "Bot reaction delay")
	autoplayCmd.Flags().DurationVar(&flagJitter, "jitter", 150*time.Millisecond, "Random extra delay added to each reaction")
	autoplayCmd.Flags().Float64Var(&flagSpeed, "speed", 1, "Time scale (2 = twice as fast)")
	addGameFlags(autoplayCmd)
}

func runAutoplay(_ *cobra.Command, args []string) error {
	modeID := reflex.ModeClassic
	if len(args) > 0 {
		modeID = args[0]
	}
	if !registry.Exists(modeID) {
		return fmt.Errorf("unknown mode %q, run 'reflex list' to see available modes", modeID)
	}
	if flagRounds < 1 {
		return fmt.Errorf("--rounds must be at least 1")
	}
	if flagSpeed <= 0 {
		return fmt.Errorf("--speed must be positive")
	}

	logger, err := newLogger("reflex-bot")
	if err != nil {
		return err
	}

	base, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := gameOptions(modeID)
	if err != nil {
		return err
	}
	opts.Sound = false
	cfg, err := reflex.Configure(base, opts)
	if err != nil {
		return err
	}

	store, err := storage.OpenMemory()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := reflex.New(cfg, flagSeed)
	bot := headless.NewBot(flagReaction, flagJitter, flagSpeed, flagSeed)
	loop := headless.NewLoop(engine, headless.Options{
		Clock:    reflex.ClockPeriod(cfg.Timing, flagFPS),
		Speed:    flagSpeed,
		OnResult: bot.Observe,
	})
	bot.Attach(loop)
	defer loop.Close()

	logger.Info("autoplay", "mode", modeID, "rounds", flagRounds,
		"reaction", flagReaction, "jitter", flagJitter, "speed", flagSpeed)

	for i := 1; i <= flagRounds; i++ {
		h, err := loop.Start()
		if err != nil {
			return err
		}

		select {
		case <-h.Done():
		case <-ctx.Done():
			logger.Warn("interrupted", "round", i)
			return nil
		}

		snap, err := loop.Snapshot()
		if err != nil {
			return err
		}
		s := snap.Session

		if _, err := store.RecordRound(storage.Round{
			Mode:    modeID,
			Score:   s.Score,
			Hits:    s.Hits,
			Misses:  s.Misses,
			Elapsed: s.Elapsed,
			Reason:  s.Reason.String(),
			Won:     s.Reason == reflex.ReasonWon,
			EndedAt: time.Now(),
		}); err != nil {
			logger.Warn("journal write failed", "error", err)
		}

		logger.Info("round over",
			"round", i,
			"score", s.Score,
			"reason", s.Reason.String(),
			"elapsed", reflex.FormatDuration(s.Elapsed, cfg.Display.TimeFormat),
			"pace", fmt.Sprintf("x%.2f", s.Factor),
			"best_score", snap.Records.BestScore,
			"best_time", reflex.FormatBestTime(snap.Records, cfg.Display.TimeFormat),
		)
	}

	stats, err := store.ModeStats(modeID)
	if err != nil {
		return err
	}
	logger.Info("summary",
		"rounds", stats.Rounds,
		"wins", stats.Wins,
		"best_score", stats.BestScore,
		"avg_score", fmt.Sprintf("%.1f", stats.AvgScore),
		"clicks", bot.Clicks(),
	)
	return nil
}
