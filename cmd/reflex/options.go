package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reflex/internal/config"
	"github.com/vovakirdan/tui-reflex/internal/games/reflex"
)

// Game option flags, shared by play, menu and serve.
var (
	flagDifficulty string
	flagPenalize   bool
	flagSound      bool
	flagTimeFormat string
)

func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().BoolVar(&flagPenalize, "penalize", false, "Wrong cells cost points")
	cmd.Flags().BoolVar(&flagSound, "sound", false, "Force the click sound on")
	cmd.Flags().StringVar(&flagTimeFormat, "time-format", "", "Time readout: seconds or clock")
}

// gameOptions turns the game flags into engine options for mode.
func gameOptions(mode string) (reflex.Options, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return reflex.Options{}, err
	}
	return reflex.Options{
		Mode:       mode,
		Preset:     preset,
		Penalize:   flagPenalize,
		Sound:      flagSound,
		TimeFormat: config.TimeFormat(flagTimeFormat),
	}, nil
}
