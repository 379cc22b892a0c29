package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Empty means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// IsFixedPreset returns true if the preset disables the pace ramp.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyReflexPreset modifies the config based on a difficulty preset.
// Normal and empty presets leave the loaded values untouched.
func ApplyReflexPreset(cfg *ReflexConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Mode = DifficultyModeFixed
		return
	}

	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.Mode = DifficultyModeAdaptive
		cfg.Difficulty.InitialInterval = 12
		cfg.Difficulty.MinInterval = 5
		cfg.Timing.TimeLimit += cfg.Timing.TimeLimit / 3
	case DifficultyHard:
		cfg.Difficulty.Mode = DifficultyModeAdaptive
		cfg.Difficulty.InitialInterval = 7
		cfg.Difficulty.MinInterval = 2
	}
}
