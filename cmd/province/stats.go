package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/province/internal/province"
)

var flagClearStats bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show results of finished games",
	Long: `Displays win/loss totals and the ten most recent games.

Examples:
  province stats
  province stats --clear`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagClearStats, "clear", false, "Delete all recorded results")
}

func runStats(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	if flagClearStats {
		if err := store.ClearResults(); err != nil {
			return err
		}
		fmt.Println("Results cleared.")
		return nil
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	if stats.Played == 0 {
		fmt.Println("No games played yet.")
		fmt.Println()
		fmt.Println("Run 'province play' to start one.")
		return nil
	}

	fmt.Printf("Played %d, won %d, lost %d (%.0f%%)\n", stats.Played, stats.Won, stats.Lost, stats.WinRate*100)
	if stats.Won > 0 {
		fmt.Printf("Best win: %d resources left, fastest win %s\n", stats.BestResourcesLeft, formatSeconds(stats.FastestWin))
	}
	fmt.Println()

	recent, err := store.RecentResults(10)
	if err != nil {
		return err
	}
	fmt.Printf("  %-6s  %-20s  %-6s  %-5s  %-5s  %-6s  %s\n", "Result", "Game", "Size", "Left", "Moves", "Time", "Date")
	fmt.Printf("  %-6s  %-20s  %-6s  %-5s  %-5s  %-6s  %s\n", "------", "----", "----", "----", "-----", "----", "----")
	for _, r := range recent {
		outcome := "lost"
		if r.Won() {
			outcome = "won"
		}
		size := province.S(r.Width, r.Height).String()
		fmt.Printf("  %-6s  %-20s  %-6s  %-5d  %-5d  %-6s  %s\n",
			outcome, r.Name, size, r.ResourcesLeft, r.Moves, formatSeconds(r.Elapsed), r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func formatSeconds(s int) string {
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
