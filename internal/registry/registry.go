// Package registry provides a global registry of game modes.
// Modes register themselves in init() functions, allowing the CLI and menus
// to discover them without hardcoded lists.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-reflex/internal/config"
)

// Mode is a named variant of the reflex grid.
type Mode struct {
	// ID is the unique identifier used on the command line (e.g., "classic").
	ID string

	// Title is a human-readable name for menus and the HUD.
	Title string

	// Description is a one-line summary for listings.
	Description string

	// Configure adjusts a loaded configuration for this mode.
	// May be nil when the mode uses the configuration as loaded.
	Configure func(cfg *config.ReflexConfig)
}

// ModeInfo contains display metadata about a registered mode.
type ModeInfo struct {
	ID          string
	Title       string
	Description string
}

var (
	modes = make(map[string]Mode)
	mu    sync.RWMutex
)

// Register adds a mode to the registry.
// Typically called from an init() function.
// Panics if a mode with the same ID is already registered.
func Register(m Mode) {
	mu.Lock()
	defer mu.Unlock()

	if m.ID == "" {
		panic("registry: mode without ID")
	}
	if _, exists := modes[m.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", m.ID))
	}
	modes[m.ID] = m
}

// List returns information about all registered modes, sorted by ID.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModeInfo, 0, len(modes))
	for _, m := range modes {
		result = append(result, ModeInfo{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns a mode by its ID.
func Get(id string) (Mode, error) {
	mu.RLock()
	defer mu.RUnlock()

	m, ok := modes[id]
	if !ok {
		return Mode{}, fmt.Errorf("registry: unknown mode %q", id)
	}
	return m, nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modes[id]
	return ok
}

// Configure applies the mode's adjustments to cfg.
func Configure(id string, cfg *config.ReflexConfig) error {
	m, err := Get(id)
	if err != nil {
		return err
	}
	if m.Configure != nil {
		m.Configure(cfg)
	}
	return nil
}
