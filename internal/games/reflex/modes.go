package reflex

import (
	"github.com/vovakirdan/tui-reflex/internal/config"
	"github.com/vovakirdan/tui-reflex/internal/registry"
)

// Mode IDs.
const (
	ModeClassic = "classic"
	ModeStrict  = "strict"
	ModeSteady  = "steady"
)

func init() {
	registry.Register(registry.Mode{
		ID:          ModeClassic,
		Title:       "Reflex Grid",
		Description: "Wrong cells are free, the pace ramps up every 5 points",
		Configure: func(cfg *config.ReflexConfig) {
			cfg.Scoring.PenalizeWrongClicks = false
			cfg.Difficulty.Mode = config.DifficultyModeAdaptive
		},
	})
	registry.Register(registry.Mode{
		ID:          ModeStrict,
		Title:       "Reflex Grid (Strict)",
		Description: "Wrong cells cost points, the pace ramps up every 5 points",
		Configure: func(cfg *config.ReflexConfig) {
			cfg.Scoring.PenalizeWrongClicks = true
			cfg.Difficulty.Mode = config.DifficultyModeAdaptive
		},
	})
	registry.Register(registry.Mode{
		ID:          ModeSteady,
		Title:       "Reflex Grid (Steady)",
		Description: "Wrong cells are free, the pace never changes",
		Configure: func(cfg *config.ReflexConfig) {
			cfg.Scoring.PenalizeWrongClicks = false
			cfg.Difficulty.Mode = config.DifficultyModeFixed
		},
	})
}
