package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/reflex.yaml
var defaultReflexYAML []byte

// DefaultReflexConfig returns the built-in configuration.
// It mirrors defaults/reflex.yaml and is used when the embedded file cannot be parsed.
func DefaultReflexConfig() ReflexConfig {
	return ReflexConfig{
		Timing: TimingConfig{
			LightTick: 100 * time.Millisecond,
			ClockTick: 0,
			TimeLimit: 15 * time.Second,
			Flash:     100 * time.Millisecond,
		},
		Scoring: ScoringConfig{
			WinScore:            50,
			PenalizeWrongClicks: false,
			WrongClickPenalty:   1,
		},
		Difficulty: DifficultyConfig{
			Mode:            DifficultyModeAdaptive,
			InitialInterval: 10,
			MinInterval:     3,
			MilestoneEvery:  5,
		},
		Sound: SoundConfig{
			Enabled:   false,
			Volume:    0.5,
			Frequency: 880,
			Duration:  60 * time.Millisecond,
		},
		Display: DisplayConfig{
			TimeFormat: TimeFormatSeconds,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultReflexYAML
}
