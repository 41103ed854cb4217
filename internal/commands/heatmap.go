package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kasflow-dev/kasflow/internal/heatmap"
	"github.com/kasflow-dev/kasflow/internal/render"
)

func newHeatmapCommand() *cobra.Command {
	var dir string
	var peaks int
	var noCharts bool

	cmd := &cobra.Command{
		Use:   "heatmap [address]",
		Short: "Weekday-by-hour grids of incoming transfers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(dir)
			if err != nil {
				return err
			}
			wallet, err := p.wallet(args)
			if err != nil {
				return err
			}
			return runHeatmap(p, wallet, peaks, !noCharts)
		},
	}

	addDirFlag(cmd, &dir)
	cmd.Flags().IntVar(&peaks, "peaks", 2, "number of peak cells to report")
	cmd.Flags().BoolVar(&noCharts, "no-charts", false, "skip PNG output")

	return cmd
}

func runHeatmap(p *project, wallet string, peaks int, charts bool) error {
	involving, err := p.data.ReadTransfersFile(p.data.InvolvingPath(wallet))
	if err != nil {
		return err
	}

	count, amount := heatmap.Build(involving, wallet)

	fmt.Printf("Top-%d peak cells:\n", peaks)
	for i, c := range heatmap.TopCells(count, peaks) {
		fmt.Printf("  COUNT  #%d -> %s @ %02d:00 = %d transfers\n",
			i+1, heatmap.Weekdays[c.Weekday], c.Hour, int(c.Value))
	}
	for i, c := range heatmap.TopCells(amount, peaks) {
		fmt.Printf("  AMOUNT #%d -> %s @ %02d:00 = %.6f KAS\n",
			i+1, heatmap.Weekdays[c.Weekday], c.Hour, c.Value)
	}

	if !charts {
		return nil
	}

	chartsDir := filepath.Join(p.dir, "charts")
	countPNG := filepath.Join(chartsDir, "inflow_heatmap_count.png")
	if err := render.Heatmap(countPNG, "Incoming Transfers: Count (Weekday x Hour, UTC)", count); err != nil {
		return err
	}
	amountPNG := filepath.Join(chartsDir, "inflow_heatmap_amount.png")
	if err := render.Heatmap(amountPNG, "Incoming Transfers: Amount KAS (Weekday x Hour, UTC)", amount); err != nil {
		return err
	}
	fmt.Printf("Saved heatmaps:\n  %s\n  %s\n", countPNG, amountPNG)
	return nil
}
