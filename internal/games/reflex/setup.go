package reflex

import (
	"time"

	"github.com/vovakirdan/tui-reflex/internal/config"
	"github.com/vovakirdan/tui-reflex/internal/registry"
)

// Options select a mode and the player's overrides on top of a loaded config.
type Options struct {
	Mode       string
	Preset     config.DifficultyPreset
	Penalize   bool              // force wrong-click penalties on
	Sound      bool              // force the click sound on
	TimeFormat config.TimeFormat // empty keeps the configured format
}

// Configure derives the round configuration for opts from base.
// The mode is applied first, then the difficulty preset, then overrides.
func Configure(base config.ReflexConfig, opts Options) (config.ReflexConfig, error) {
	cfg := base
	mode := opts.Mode
	if mode == "" {
		mode = ModeClassic
	}
	if err := registry.Configure(mode, &cfg); err != nil {
		return base, err
	}

	config.ApplyReflexPreset(&cfg, opts.Preset)

	if opts.Penalize {
		cfg.Scoring.PenalizeWrongClicks = true
	}
	if opts.Sound {
		cfg.Sound.Enabled = true
	}
	if opts.TimeFormat != "" {
		cfg.Display.TimeFormat = opts.TimeFormat
	}

	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// ClockPeriod returns how often the elapsed clock ticks. A zero clock_tick
// follows the render rate.
func ClockPeriod(t config.TimingConfig, fps int) time.Duration {
	if t.ClockTick > 0 {
		return t.ClockTick
	}
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}
