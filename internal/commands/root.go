package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kasflow-dev/kasflow/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "kasflow",
		Short:   "Wallet flow tracing and analysis for Kaspa",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newFetchCommand())
	rootCmd.AddCommand(newInflowsCommand())
	rootCmd.AddCommand(newOutflowsCommand())
	rootCmd.AddCommand(newBalanceCommand())
	rootCmd.AddCommand(newHeatmapCommand())
	rootCmd.AddCommand(newDipCommand())

	return rootCmd
}
