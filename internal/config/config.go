// Package config provides YAML-based game configuration loading and
// difficulty presets for the reflex grid.
package config

import "time"

// ReflexConfig contains all tunables for the reflex grid game.
type ReflexConfig struct {
	Timing     TimingConfig     `yaml:"timing"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Sound      SoundConfig      `yaml:"sound"`
	Display    DisplayConfig    `yaml:"display"`
}

// TimingConfig defines the periods of the session processes.
type TimingConfig struct {
	LightTick time.Duration `yaml:"light_tick"` // Base period of the lighting process
	ClockTick time.Duration `yaml:"clock_tick"` // Period of the elapsed-time clock (0 = derive from --fps)
	TimeLimit time.Duration `yaml:"time_limit"` // Session time limit, 0 disables
	Flash     time.Duration `yaml:"flash"`      // How long a hit/miss flash stays on a cell
}

// ScoringConfig defines how activations are scored.
type ScoringConfig struct {
	WinScore            int  `yaml:"win_score"`             // Score that ends the round as a win
	PenalizeWrongClicks bool `yaml:"penalize_wrong_clicks"` // Subtract points for activating unlit cells
	WrongClickPenalty   int  `yaml:"wrong_click_penalty"`   // Points subtracted per wrong activation
}

// DifficultyConfig defines the lighting pace and how it ramps up.
type DifficultyConfig struct {
	Mode            DifficultyMode `yaml:"mode"`             // "adaptive" or "fixed"
	InitialInterval int            `yaml:"initial_interval"` // Light ticks between lit cells at the start
	MinInterval     int            `yaml:"min_interval"`     // Fastest pace reachable in adaptive mode
	MilestoneEvery  int            `yaml:"milestone_every"`  // Speed up every N points
}

// SoundConfig defines the click sound.
type SoundConfig struct {
	Enabled   bool          `yaml:"enabled"`   // Unmuted at startup
	Volume    float64       `yaml:"volume"`    // 0.0 - 1.0
	Frequency float64       `yaml:"frequency"` // Hz
	Duration  time.Duration `yaml:"duration"`
}

// DisplayConfig defines presentation options.
type DisplayConfig struct {
	TimeFormat TimeFormat `yaml:"time_format"` // "seconds" or "clock"
}

// DifficultyMode selects whether the lighting pace ramps up with the score.
type DifficultyMode string

const (
	DifficultyModeAdaptive DifficultyMode = "adaptive"
	DifficultyModeFixed    DifficultyMode = "fixed"
)

// TimeFormat selects how elapsed and best times are displayed.
type TimeFormat string

const (
	TimeFormatSeconds TimeFormat = "seconds" // 12.345
	TimeFormatClock   TimeFormat = "clock"   // 0:12.34
)
