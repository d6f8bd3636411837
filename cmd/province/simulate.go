package main

import (
	"errors"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/province/internal/province"
	"github.com/vovakirdan/province/internal/sim"
)

var (
	flagGames     int
	flagPreset    int
	flagMinRefund int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play presets headlessly",
	Long: `Plays games with a greedy policy and reports how often it wins.
Useful for checking whether a preset is balanced.

Examples:
  province simulate
  province simulate --games 500 --preset 3
  province simulate --seed 42`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagGames, "games", 100, "Number of games to play")
	simulateCmd.Flags().IntVar(&flagPreset, "preset", 0, "Preset number to play (0 = cycle through all)")
	simulateCmd.Flags().IntVar(&flagMinRefund, "min-refund", 2, "Smallest harvest the policy takes")
}

func runSimulate(_ *cobra.Command, _ []string) error {
	if flagGames < 1 {
		return errors.New("--games must be at least 1")
	}
	presets, err := loadPresets()
	if err != nil {
		return err
	}
	if flagPreset != 0 {
		if flagPreset < 1 || flagPreset > len(presets) {
			return fmt.Errorf("preset %d does not exist (1-%d)", flagPreset, len(presets))
		}
		presets = []province.GameConfig{presets[flagPreset-1]}
	}

	seed := settings.Seed
	if seed == 0 {
		seed = 1
	}
	policy := sim.GreedyPolicy{MinRefund: flagMinRefund}

	bar := progressbar.Default(int64(flagGames), "simulating")
	report, err := sim.Run(flagGames, presets, seed, policy, func(int, sim.Result) {
		bar.Add(1)
	})
	bar.Finish()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Games:               %d\n", report.Games)
	fmt.Printf("Won:                 %d\n", report.Won)
	fmt.Printf("Lost:                %d\n", report.Lost)
	fmt.Printf("Win rate:            %.1f%%\n", report.WinRate*100)
	if report.Stalled > 0 {
		fmt.Printf("Stalled:             %d\n", report.Stalled)
	}
	fmt.Printf("Mean moves:          %.1f\n", report.MeanMoves)
	fmt.Printf("Mean resources left: %.1f\n", report.MeanResourcesLeft)
	return nil
}
