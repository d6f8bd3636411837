// province is a territory-conquest puzzle played in the terminal.
//
// Usage:
//
//	province                     - Start menu to pick a game interactively
//	province play [n|id]         - Play preset n, custom game id, or a random preset
//	province presets             - List presets and custom games
//	province validate <file>...  - Check game config files
//	province stats               - Show results of finished games
//	province custom add|list|remove
//	province simulate            - Play presets headlessly with the greedy policy
//
// Global flags:
//
//	--db <path>         - Set database path (default: ~/.province/province.db)
//	--seed <value>      - Set RNG seed for reproducible boards
//	--settings <path>   - Settings file (default: ~/.province/settings.yaml)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/province/internal/config"
	"github.com/vovakirdan/province/internal/province"
	"github.com/vovakirdan/province/internal/storage"
)

var (
	// Global flags
	flagDBPath   string
	flagSeed     int64
	flagSettings string
	flagLogLevel string

	settings config.Settings
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "province",
	Short: "Province - conquer the board before your resources run out",
	Long: `Province is a territory-conquest puzzle for the terminal.

Capture tiles, let your territory grow, harvest ripe land to refill your
resources and fortify everything before the enemy spreads.

Available commands:
  play      - Play a game directly
  presets   - List presets and custom games
  validate  - Check game config files
  stats     - View results of finished games
  custom    - Manage custom games
  simulate  - Play presets headlessly

Examples:
  province
  province play 3 --difficulty hard
  province play --game ./my-board.yaml
  province custom add ./my-board.yaml
  province simulate --games 500`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	RunE:              runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (default ~/.province/province.db)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagSettings, "settings", "", "Path to settings file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(customCmd)
	rootCmd.AddCommand(simulateCmd)
}

// loadSettings merges the settings file, PROVINCE_* variables and flags.
// Flags win.
func loadSettings(cmd *cobra.Command, _ []string) error {
	s, err := config.LoadSettings(flagSettings)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		s.DBPath = flagDBPath
	}
	if flags.Changed("seed") {
		s.Seed = flagSeed
	}
	if flags.Changed("log-level") {
		s.LogLevel = flagLogLevel
	}
	settings = s
	return nil
}

// newLogger creates a logger writing to w at the configured level.
func newLogger(w *os.File) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "province",
	})
	if level, err := log.ParseLevel(settings.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// openLogFile opens the play log so the alternate screen stays clean.
// It falls back to discarding when the file cannot be opened.
func openLogFile() (*log.Logger, func()) {
	path := settings.LogFile
	if path == "" {
		return newLogger(os.Stderr), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
			return newLogger(f), func() { f.Close() }
		}
	}
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return newLogger(os.Stderr), func() {}
	}
	return newLogger(devNull), func() { devNull.Close() }
}

// openStore opens the database from settings.
func openStore() (*storage.Store, error) {
	return storage.Open(settings.DBPath)
}

// newRand returns the game RNG, seeded from settings or the clock.
func newRand() province.Rand {
	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return province.NewRand(seed)
}

// loadPresets loads presets from the settings path or the default locations.
func loadPresets() ([]province.GameConfig, error) {
	return config.LoadPresets(settings.Presets)
}
