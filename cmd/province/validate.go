package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/province/internal/config"
	"github.com/vovakirdan/province/internal/province"
)

var errInvalidFiles = errors.New("some game configs are invalid")

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check game config files",
	Long: `Reads each YAML game config and reports every rule it breaks.

Examples:
  province validate ./my-board.yaml
  province validate boards/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func runValidate(_ *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		cfg, err := config.LoadGameConfig(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
			continue
		}
		errs := province.ValidateConfig(cfg)
		if len(errs) == 0 {
			fmt.Printf("%s: ok\n", path)
			continue
		}
		failed++
		fmt.Printf("%s: %d problem(s)\n", path, len(errs))
		for _, e := range errs {
			fmt.Printf("  %v\n", e)
		}
	}
	if failed > 0 {
		return errInvalidFiles
	}
	return nil
}
