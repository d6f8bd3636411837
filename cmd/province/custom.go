package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/province/internal/config"
	"github.com/vovakirdan/province/internal/library"
	"github.com/vovakirdan/province/internal/platform/tui"
	"github.com/vovakirdan/province/internal/province"
)

var customCmd = &cobra.Command{
	Use:   "custom",
	Short: "Manage custom games",
	Long: `Custom games are game configs saved in the database. They get ids from 1000
up and can be played with 'province play <id>'.`,
}

var customAddCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Save a game config as a custom game",
	Args:  cobra.ExactArgs(1),
	RunE:  runCustomAdd,
}

var customListCmd = &cobra.Command{
	Use:   "list",
	Short: "List custom games",
	Args:  cobra.NoArgs,
	RunE:  runCustomList,
}

var customRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a custom game",
	Args:  cobra.ExactArgs(1),
	RunE:  runCustomRemove,
}

func init() {
	customCmd.AddCommand(customAddCmd, customListCmd, customRemoveCmd)
}

// withLibrary opens the database and its custom game library for fn.
func withLibrary(fn func(lib *library.Library) error) error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	lib, err := library.New(store)
	if err != nil {
		return err
	}
	return fn(lib)
}

func runCustomAdd(_ *cobra.Command, args []string) error {
	cfg, err := config.LoadGameConfig(args[0])
	if err != nil {
		return err
	}
	if errs := province.ValidateConfig(cfg); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  %v\n", e)
		}
		return library.ErrInvalidConfig
	}
	return withLibrary(func(lib *library.Library) error {
		id, err := lib.Add(cfg)
		if err != nil {
			return err
		}
		fmt.Printf("Saved as custom game %d.\n", id)
		return nil
	})
}

func runCustomList(_ *cobra.Command, _ []string) error {
	return withLibrary(func(lib *library.Library) error {
		entries := lib.List()
		if len(entries) == 0 {
			fmt.Println("No custom games saved.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("  %-5d  %-24s  %s\n", e.ID, e.Config.Name, tui.Describe(e.Config))
		}
		return nil
	})
}

func runCustomRemove(_ *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	return withLibrary(func(lib *library.Library) error {
		if err := lib.Remove(id); err != nil {
			return err
		}
		fmt.Printf("Removed custom game %d.\n", id)
		return nil
	})
}
