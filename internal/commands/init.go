package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kasflow-dev/kasflow/internal/config"
)

func newInitCommand() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new kasflow project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, address)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "tracked wallet address (required)")
	_ = cmd.MarkFlagRequired("address")

	return cmd
}

func runInit(dir, address string) error {
	for _, d := range []string{".", "data", "charts"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists in %s", config.FileName, dir)
	}

	cfg := config.Default(address)
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Initialized kasflow project at %s tracking %s\n", dir, address)
	fmt.Printf("Place the price CSV (%s) and optional label CSV (%s) there, then run `kasflow fetch`.\n",
		cfg.Inputs.PriceCSV, cfg.Inputs.LabelsCSV)
	return nil
}
