package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-reflex/internal/audio"
	"github.com/vovakirdan/tui-reflex/internal/config"
	"github.com/vovakirdan/tui-reflex/internal/core"
	"github.com/vovakirdan/tui-reflex/internal/games/reflex"
	"github.com/vovakirdan/tui-reflex/internal/platform/tui"
	"github.com/vovakirdan/tui-reflex/internal/registry"
	"github.com/vovakirdan/tui-reflex/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (classic when omitted).

Controls:
  Arrows/hjkl/wasd  - Move the cursor
  Space/Enter       - Activate the cursor cell (start when idle)
  Mouse click       - Activate a cell
  N/R               - Start or restart
  M                 - Toggle sound
  Tab               - Round history
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Slower start, gentler floor
  normal - The configured pace
  hard   - Faster start, tighter floor
  fixed  - The pace never changes

Examples:
  reflex play
  reflex play strict
  reflex play --difficulty hard --time-format clock
  reflex play --penalize --sound
  reflex play --config ./my-reflex.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	addGameFlags(playCmd)
}

func runPlay(_ *cobra.Command, args []string) error {
	modeID := reflex.ModeClassic
	if len(args) > 0 {
		modeID = args[0]
	}
	if !registry.Exists(modeID) {
		return fmt.Errorf("unknown mode %q, run 'reflex list' to see available modes", modeID)
	}

	logger, err := newLogger("reflex")
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
	cfg, err := reflex.Configure(base, opts)
	if err != nil {
		return err
	}

	engine := reflex.New(cfg, flagSeed)
	if sounder, closeAudio := openSounder(cfg.Sound, logger); sounder != nil {
		defer closeAudio()
		engine.SetSounder(sounder)
	}

	store, err := storage.OpenMemory()
	if err != nil {
		logger.Warn("round history unavailable", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	return tui.Run(tui.NewGameModel(engine, modeID, store, runtimeConfig()))
}

// runtimeConfig sizes the screen from the terminal, 80x24 when unknown.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openSounder starts the speaker. On failure the game runs silently and the
// returned sounder is nil.
func openSounder(cfg config.SoundConfig, logger *log.Logger) (reflex.Sounder, func()) {
	clicker := audio.NewClicker(cfg)
	if err := clicker.Init(); err != nil {
		if cfg.Enabled {
			logger.Warn("sound disabled", "error", err)
		} else {
			logger.Debug("sound unavailable", "error", err)
		}
		return nil, func() {}
	}
	return clicker, clicker.Close
}
