package reflex

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-reflex/internal/config"
)

func TestConfigureModes(t *testing.T) {
	tests := []struct {
		name         string
		opts         Options
		wantPenalize bool
		wantMode     config.DifficultyMode
	}{
		{"default is classic", Options{}, false, config.DifficultyModeAdaptive},
		{"strict", Options{Mode: ModeStrict}, true, config.DifficultyModeAdaptive},
		{"steady", Options{Mode: ModeSteady}, false, config.DifficultyModeFixed},
		{"fixed preset on classic", Options{Mode: ModeClassic, Preset: config.DifficultyFixed}, false, config.DifficultyModeFixed},
		{"penalize override", Options{Mode: ModeSteady, Penalize: true}, true, config.DifficultyModeFixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Configure(config.DefaultReflexConfig(), tt.opts)
			if err != nil {
				t.Fatalf("Configure() failed: %v", err)
			}
			if cfg.Scoring.PenalizeWrongClicks != tt.wantPenalize {
				t.Errorf("PenalizeWrongClicks = %v, expected %v", cfg.Scoring.PenalizeWrongClicks, tt.wantPenalize)
			}
			if cfg.Difficulty.Mode != tt.wantMode {
				t.Errorf("Difficulty.Mode = %q, expected %q", cfg.Difficulty.Mode, tt.wantMode)
			}
		})
	}
}

func TestConfigureOverrides(t *testing.T) {
	cfg, err := Configure(config.DefaultReflexConfig(), Options{
		Preset:     config.DifficultyEasy,
		Sound:      true,
		TimeFormat: config.TimeFormatClock,
	})
	if err != nil {
		t.Fatalf("Configure() failed: %v", err)
	}

	if !cfg.Sound.Enabled {
		t.Error("sound override not applied")
	}
	if cfg.Display.TimeFormat != config.TimeFormatClock {
		t.Errorf("TimeFormat = %q, expected clock", cfg.Display.TimeFormat)
	}
	if cfg.Timing.TimeLimit != 20*time.Second {
		t.Errorf("easy TimeLimit = %v, expected 20s", cfg.Timing.TimeLimit)
	}
}

func TestConfigureErrors(t *testing.T) {
	base := config.DefaultReflexConfig()

	if _, err := Configure(base, Options{Mode: "no-such-mode"}); err == nil {
		t.Error("expected error for unknown mode")
	}
	if _, err := Configure(base, Options{TimeFormat: "sundial"}); err == nil {
		t.Error("expected validation error for unknown time format")
	}
}

func TestClockPeriod(t *testing.T) {
	tests := []struct {
		clock time.Duration
		fps   int
		want  time.Duration
	}{
		{0, 60, time.Second / 60},
		{0, 20, 50 * time.Millisecond},
		{0, 0, time.Second / 60},
		{10 * time.Millisecond, 60, 10 * time.Millisecond},
	}

	for _, tt := range tests {
		got := ClockPeriod(config.TimingConfig{ClockTick: tt.clock}, tt.fps)
		if got != tt.want {
			t.Errorf("ClockPeriod(%v, %d) = %v, expected %v", tt.clock, tt.fps, got, tt.want)
		}
	}
}
