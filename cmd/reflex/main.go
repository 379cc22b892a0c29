// reflex is a terminal reaction game: cells of a 4x4 grid light up one by one
// and the player has to activate them before the whole board is lit.
//
// Usage:
//
//	reflex list              - List available modes
//	reflex play [mode]       - Play a mode (default: classic)
//	reflex menu              - Pick modes interactively
//	reflex serve             - Start SSH server for remote play
//	reflex autoplay [mode]   - Let a bot play headless rounds
//
// Global flags:
//
//	--fps <rate>         - Render and clock rate (default: 60)
//	--seed <value>       - RNG seed for reproducible boards
//	--config <path>      - Custom reflex.yaml
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reflex/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reflex",
	Short: "Reflex Grid - a reaction game for your terminal",
	Long: `Reflex Grid lights the cells of a 4x4 board one at a time.
Activate every lit cell before the board fills up. The pace picks up
every 5 points; reach the target score as fast as you can.

Available commands:
  list      - Show all modes
  play      - Play a mode directly
  menu      - Interactive mode picker
  serve     - Start SSH server for remote play
  autoplay  - Watch a bot play headless rounds

Examples:
  reflex list
  reflex play
  reflex play strict --difficulty hard
  reflex menu --fps 30
  reflex serve --ssh :2222
  reflex autoplay --rounds 5 --speed 4`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Render and clock rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom reflex.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(autoplayCmd)
}

// newLogger builds the stderr logger shared by every command.
func newLogger(prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// loadConfig reads the configuration and applies environment overrides.
func loadConfig() (config.ReflexConfig, error) {
	cfg, err := config.LoadReflex(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyEnv(&cfg, os.Getenv)
	return cfg, nil
}
