package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/province/internal/config"
	"github.com/vovakirdan/province/internal/core"
	"github.com/vovakirdan/province/internal/library"
	"github.com/vovakirdan/province/internal/platform/tui"
	"github.com/vovakirdan/province/internal/province"
	"github.com/vovakirdan/province/internal/session"
	"github.com/vovakirdan/province/internal/storage"
)

var (
	flagGame       string
	flagDifficulty string
	flagResume     bool
)

var playCmd = &cobra.Command{
	Use:   "play [preset-number|custom-id]",
	Short: "Play a game",
	Long: `Start playing a game.

Without an argument a random preset is used. A number from 1 up picks a
preset as listed by 'province presets'; numbers from 1000 pick a custom game.

Controls:
  Arrows/hjkl  - Move cursor
  Enter/Space  - Select tile
  P            - Pause
  R            - Restart from the same board
  N            - New random game
  Esc/B        - Back to the menu
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Larger budget, calmer enemy, no fog
  normal - The config as written
  hard   - Smaller budget, bolder enemy, fog of war

Examples:
  province play
  province play 2 --difficulty easy
  province play 1000
  province play --game ./my-board.yaml
  province play --resume`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagGame, "game", "", "Path to a game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Continue the saved game")

	rootCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset for games started from the menu")
}

// app bundles what a play session needs.
type app struct {
	store   *storage.Store
	lib     *library.Library
	presets []province.GameConfig
	session *session.Session
	logger  *log.Logger
	runtime core.RuntimeConfig
	level   config.DifficultyPreset
}

// newApp opens storage and builds a session. The returned cleanup closes
// everything newApp opened.
func newApp() (*app, func(), error) {
	level, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return nil, nil, err
	}
	presets, err := loadPresets()
	if err != nil {
		return nil, nil, err
	}

	logger, closeLog := openLogFile()
	a := &app{
		presets: presets,
		logger:  logger,
		runtime: terminalConfig(),
		level:   level,
	}

	opts := []session.Option{
		session.WithLogger(logger),
		session.WithRand(newRand()),
		session.WithPresets(presets),
		session.WithGameOverHook(a.saveResult),
	}

	store, err := openStore()
	if err != nil {
		// Continue without storage - the game still works
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		logger.Warn("could not open database", "error", err)
	} else {
		a.store = store
		opts = append(opts, session.WithStorage(store))
		if a.lib, err = library.New(store); err != nil {
			logger.Warn("could not load custom games", "error", err)
		}
	}
	a.session = session.New(opts...)

	cleanup := func() {
		if a.store != nil {
			a.store.Close()
		}
		closeLog()
	}
	return a, cleanup, nil
}

// terminalConfig reads the terminal size.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = settings.Seed
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

// saveResult records a finished game.
func (a *app) saveResult(sum session.Summary) {
	if a.store == nil {
		return
	}
	_, err := a.store.SaveResult(storage.Result{
		Name:          sum.Config.Name,
		Outcome:       sum.Outcome,
		ResourcesLeft: sum.ResourcesLeft,
		Moves:         sum.Moves,
		Elapsed:       sum.Elapsed,
		Width:         sum.Config.BoardSize.Width,
		Height:        sum.Config.BoardSize.Height,
	})
	if err != nil {
		a.logger.Error("could not save result", "error", err)
	}
}

// startGame begins cfg at the chosen difficulty, settling any end sequence
// left over from the previous game first.
func (a *app) startGame(cfg province.GameConfig) error {
	cfg = cfg.Clone()
	config.ApplyDifficultyPreset(&cfg, a.level)
	if errs := province.ValidateConfig(cfg); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  %v\n", e)
		}
		return fmt.Errorf("invalid game config %q", cfg.Name)
	}
	if a.session.Animating() {
		if err := a.session.SettleEndSequence(); err != nil {
			return err
		}
	}
	if !a.session.NewGame(cfg) {
		return errors.New("could not start the game")
	}
	return nil
}

// hasSavedGame reports whether a snapshot is stored.
func (a *app) hasSavedGame() bool {
	if a.store == nil {
		return false
	}
	var st province.GameState
	found, err := a.store.Get(session.KeyGameState, &st)
	return err == nil && found
}

// resolveGame finds the config named by a play argument.
func (a *app) resolveGame(arg string) (province.GameConfig, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return province.GameConfig{}, fmt.Errorf("not a preset number or custom id: %q", arg)
	}
	if n >= library.FirstID {
		if a.lib == nil {
			return province.GameConfig{}, errors.New("custom games need the database")
		}
		return a.lib.Get(n)
	}
	if n < 1 || n > len(a.presets) {
		return province.GameConfig{}, fmt.Errorf("preset %d does not exist (1-%d)", n, len(a.presets))
	}
	return a.presets[n-1], nil
}

func runPlay(_ *cobra.Command, args []string) error {
	a, cleanup, err := newApp()
	if err != nil {
		return err
	}
	defer cleanup()

	switch {
	case flagResume:
		restored, err := a.session.LoadGame()
		if err != nil {
			return err
		}
		if !restored {
			fmt.Fprintln(os.Stderr, "No saved game, starting a new one.")
		}
	case flagGame != "":
		cfg, err := config.LoadGameConfig(flagGame)
		if err != nil {
			return err
		}
		if err := a.startGame(cfg); err != nil {
			return err
		}
	case len(args) == 1:
		cfg, err := a.resolveGame(args[0])
		if err != nil {
			return err
		}
		if err := a.startGame(cfg); err != nil {
			return err
		}
	default:
		if err := a.startGame(config.RandomPreset(a.presets, newRand())); err != nil {
			return err
		}
	}

	_, _, err = tui.Run(a.session, a.logger, a.runtime)
	return err
}

func runMenu(_ *cobra.Command, _ []string) error {
	a, cleanup, err := newApp()
	if err != nil {
		return err
	}
	defer cleanup()

	for {
		opts := tui.MenuOptions{
			CanResume: a.hasSavedGame(),
			Presets:   a.presets,
		}
		if a.lib != nil {
			opts.Custom = a.lib.List()
		}

		res, err := tui.RunMenu(opts, a.runtime)
		if err != nil {
			return err
		}
		a.runtime = res.Config

		if res.Quit {
			return nil
		}
		if res.WantsStats {
			var source tui.ResultSource
			if a.store != nil {
				source = a.store
			}
			goBack, err := tui.RunScoreboard(source, a.runtime.ScreenW, a.runtime.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		switch res.Item.Kind {
		case tui.MenuItemResume:
			if _, err := a.session.LoadGame(); err != nil {
				return err
			}
		case tui.MenuItemRandom:
			if err := a.startGame(config.RandomPreset(a.presets, newRand())); err != nil {
				return err
			}
		default:
			if err := a.startGame(res.Item.Config); err != nil {
				return err
			}
		}

		runtime, back, err := tui.Run(a.session, a.logger, a.runtime)
		if err != nil {
			return err
		}
		a.runtime = runtime
		if !back {
			return nil
		}
	}
}
