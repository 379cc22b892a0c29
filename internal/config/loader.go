package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variables that override sound settings.
const (
	EnvSoundEnabled = "REFLEX_SOUND_ENABLED"
	EnvSoundVolume  = "REFLEX_SOUND_VOLUME" // 0-100
)

// LoadReflex loads the reflex grid configuration.
// Search order: customPath -> ~/.reflex/configs/reflex.yaml -> ./configs/reflex.yaml -> embedded default.
// Files are decoded over the defaults, so partial files only override what they set.
func LoadReflex(customPath string) (ReflexConfig, error) {
	cfg := embeddedDefault()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range []string{userConfigPath("reflex.yaml"), filepath.Join("configs", "reflex.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := cfg
		if err := yaml.Unmarshal(data, &candidate); err != nil {
			continue
		}
		if candidate.Validate() == nil {
			return candidate, nil
		}
	}

	return cfg, nil
}

// embeddedDefault decodes the embedded YAML, falling back to the hardcoded defaults.
func embeddedDefault() ReflexConfig {
	var cfg ReflexConfig
	if err := yaml.Unmarshal(defaultReflexYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultReflexConfig()
	}
	return cfg
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".reflex", "configs", filename)
}

// ApplyEnv overrides sound settings from the environment.
// Unparseable values are ignored.
func ApplyEnv(cfg *ReflexConfig, getenv func(string) string) {
	if v := getenv(EnvSoundEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Sound.Enabled = enabled
		}
	}

	if v := getenv(EnvSoundVolume); v != "" {
		if pct, err := strconv.Atoi(v); err == nil {
			cfg.Sound.Volume = min(max(float64(pct)/100.0, 0), 1)
		}
	}
}

// Validate reports every invalid field at once.
func (c ReflexConfig) Validate() error {
	var errs []error

	if c.Timing.LightTick <= 0 {
		errs = append(errs, errors.New("timing.light_tick must be positive"))
	}
	if c.Timing.ClockTick < 0 {
		errs = append(errs, errors.New("timing.clock_tick must not be negative"))
	}
	if c.Timing.TimeLimit < 0 {
		errs = append(errs, errors.New("timing.time_limit must not be negative"))
	}
	if c.Timing.Flash < 0 {
		errs = append(errs, errors.New("timing.flash must not be negative"))
	}
	if c.Scoring.WinScore <= 0 {
		errs = append(errs, errors.New("scoring.win_score must be positive"))
	}
	if c.Scoring.WrongClickPenalty < 0 {
		errs = append(errs, errors.New("scoring.wrong_click_penalty must not be negative"))
	}
	switch c.Difficulty.Mode {
	case DifficultyModeAdaptive, DifficultyModeFixed:
	default:
		errs = append(errs, fmt.Errorf("difficulty.mode %q is not adaptive or fixed", c.Difficulty.Mode))
	}
	if c.Difficulty.InitialInterval < 1 {
		errs = append(errs, errors.New("difficulty.initial_interval must be at least 1"))
	}
	if c.Difficulty.MinInterval < 1 || c.Difficulty.MinInterval > c.Difficulty.InitialInterval {
		errs = append(errs, errors.New("difficulty.min_interval must be between 1 and initial_interval"))
	}
	if c.Difficulty.MilestoneEvery < 1 {
		errs = append(errs, errors.New("difficulty.milestone_every must be at least 1"))
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		errs = append(errs, errors.New("sound.volume must be within [0, 1]"))
	}
	switch c.Display.TimeFormat {
	case TimeFormatSeconds, TimeFormatClock:
	default:
		errs = append(errs, fmt.Errorf("display.time_format %q is not seconds or clock", c.Display.TimeFormat))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid reflex config: %w", errors.Join(errs...))
}
