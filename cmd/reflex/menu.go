package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reflex/internal/platform/tui"
	"github.com/vovakirdan/tui-reflex/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode from a menu",
	Long: `Start Reflex Grid in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a mode.
In a game, b or Esc returns to the menu. Best score and best time
are kept per mode until you quit.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Round history
  Q            - Quit

Examples:
  reflex menu
  reflex menu --fps 30
  reflex menu --difficulty easy`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	addGameFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, err := newLogger("reflex")
	if err != nil {
		return err
	}

	base, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := gameOptions("")
	if err != nil {
		return err
	}

	setup := tui.Setup{
		Base:    base,
		Options: opts,
		Seed:    flagSeed,
		Runtime: runtimeConfig(),
	}

	sound := base.Sound
	sound.Enabled = sound.Enabled || opts.Sound
	if sounder, closeAudio := openSounder(sound, logger); sounder != nil {
		defer closeAudio()
		setup.Sounder = sounder
	}

	store, err := storage.OpenMemory()
	if err != nil {
		logger.Warn("round history unavailable", "error", err)
	} else {
		defer store.Close()
		setup.Store = store
	}

	return tui.RunSession(setup)
}
