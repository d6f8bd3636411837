package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/province/internal/library"
	"github.com/vovakirdan/province/internal/platform/tui"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List presets and custom games",
	Long:  `Shows the presets shipped with province (or loaded from the presets file) and the custom games saved in the database.`,
	RunE:  runPresets,
}

func runPresets(_ *cobra.Command, _ []string) error {
	presets, err := loadPresets()
	if err != nil {
		return err
	}

	fmt.Println("Presets:")
	fmt.Println()
	fmt.Printf("  %-4s  %-24s  %s\n", "#", "Name", "Board")
	fmt.Printf("  %-4s  %-24s  %s\n", "-", "----", "-----")
	for i, p := range presets {
		name := p.Name
		if p.Description != "" {
			name = p.Description
		}
		fmt.Printf("  %-4d  %-24s  %s\n", i+1, name, tui.Describe(p))
	}

	if store, err := openStore(); err == nil {
		defer store.Close()
		if lib, err := library.New(store); err == nil {
			if entries := lib.List(); len(entries) > 0 {
				fmt.Println()
				fmt.Println("Custom games:")
				fmt.Println()
				for _, e := range entries {
					fmt.Printf("  %-4d  %-24s  %s\n", e.ID, e.Config.Name, tui.Describe(e.Config))
				}
			}
		}
	}

	fmt.Println()
	fmt.Println("Run 'province play <#>' to play a preset or custom game.")
	return nil
}
