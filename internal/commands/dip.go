package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kasflow-dev/kasflow/internal/dip"
	"github.com/kasflow-dev/kasflow/internal/render"
)

func newDipCommand() *cobra.Command {
	var dir string
	var drop, rise, bigDrop float64
	var noCharts bool

	cmd := &cobra.Command{
		Use:   "dip [address]",
		Short: "Compare inflows after price drops against inflows after rises",
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

			t := dip.Thresholds{Drop: drop, Rise: rise}
			if !cmd.Flags().Changed("drop") {
				t.Drop = p.cfg.Dip.Drop
			}
			if !cmd.Flags().Changed("rise") {
				t.Rise = p.cfg.Dip.Rise
			}
			if cmd.Flags().Changed("bigdrop") {
				t.BigDrop = bigDrop
				t.HasBigDrop = true
			}

			return runDip(p, wallet, t, !noCharts)
		},
	}

	addDirFlag(cmd, &dir)
	cmd.Flags().Float64Var(&drop, "drop", -1.0, "threshold (%) for the Drop bin (prior-day return <= drop)")
	cmd.Flags().Float64Var(&rise, "rise", 1.0, "threshold (%) for the Rise bin (prior-day return >= rise)")
	cmd.Flags().Float64Var(&bigDrop, "bigdrop", -2.0, "optional threshold (%) for a Big Drop bin")
	cmd.Flags().BoolVar(&noCharts, "no-charts", false, "skip PNG output")

	return cmd
}

func runDip(p *project, wallet string, t dip.Thresholds, charts bool) error {
	daily, err := p.data.ReadDailyFlowsFile(wallet)
	if err != nil {
		return err
	}
	series, err := p.loadPrices()
	if err != nil {
		return err
	}

	obs := dip.Join(daily, series)
	if len(obs) == 0 {
		fmt.Println("No days with both an inflow and a prior-day price move.")
		return nil
	}

	analysis := dip.Run(obs, t)

	fmt.Printf("Inflow after prior-day price move (%d days analyzed)\n", len(obs))
	if t.HasBigDrop {
		fmt.Printf("Thresholds: bigdrop <= %.1f%%, drop <= %.1f%%, rise >= %.1f%%\n", t.BigDrop, t.Drop, t.Rise)
	} else {
		fmt.Printf("Thresholds: drop <= %.1f%%, rise >= %.1f%%\n", t.Drop, t.Rise)
	}
	for _, b := range analysis.Bins {
		fmt.Printf("  %-22s N=%3d  mean=%.0f  median=%.0f  95%% CI=[%.0f, %.0f] KAS  |  mean USD=%.0f at mean prev price=$%.4f\n",
			b.Category, b.KAS.N, b.KAS.Mean, b.KAS.Median, b.KAS.CILow, b.KAS.CIHigh, b.MeanUSD, b.MeanPrevPrice)
	}

	for _, pair := range analysis.Tests {
		fmt.Printf("\n%s (H1: dip inflows > rise inflows):\n", pair.Name)
		if !pair.Ran {
			fmt.Println("  Not enough data in both bins to run tests.")
			continue
		}
		fmt.Printf("  Welch t-test: t=%.3f, p=%.4f, mean_diff=%.0f KAS\n",
			pair.Welch.Stat, pair.Welch.P, pair.MeanDiffKAS)
		fmt.Printf("  Mann-Whitney U (one-sided): U=%.0f, p=%.4f\n",
			pair.MannWhitney.Stat, pair.MannWhitney.P)
	}

	summaryCSV := filepath.Join(p.data.Dir(), "dip_summary.csv")
	f, err := os.Create(summaryCSV)
	if err != nil {
		return fmt.Errorf("creating %s: %w", summaryCSV, err)
	}
	defer f.Close()
	if err := dip.WriteSummary(f, analysis.Bins); err != nil {
		return fmt.Errorf("writing %s: %w", summaryCSV, err)
	}
	fmt.Printf("\nSaved summary table: %s\n", summaryCSV)

	if !charts {
		return nil
	}

	png := filepath.Join(p.dir, "charts", "dip_bins.png")
	if err := render.DipBars(png, analysis.Bins); err != nil {
		return err
	}
	fmt.Printf("Saved chart: %s\n", png)
	return nil
}
