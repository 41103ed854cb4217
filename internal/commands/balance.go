package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kasflow-dev/kasflow/internal/render"
	"github.com/kasflow-dev/kasflow/internal/stats"
	"github.com/kasflow-dev/kasflow/internal/trace"
)

func newBalanceCommand() *cobra.Command {
	var dir string
	var noCharts bool

	cmd := &cobra.Command{
		Use:   "balance [address]",
		Short: "Reconstruct balance over time and correlate inflows with price",
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
			return runBalance(p, wallet, !noCharts)
		},
	}

	addDirFlag(cmd, &dir)
	cmd.Flags().BoolVar(&noCharts, "no-charts", false, "skip PNG output")

	return cmd
}

func runBalance(p *project, wallet string, charts bool) error {
	participants, err := p.data.ReadTransfersFile(p.data.ParticipantsPath(wallet))
	if err != nil {
		return err
	}
	series, err := p.loadPrices()
	if err != nil {
		return err
	}

	deltas := trace.Deltas(participants, wallet)
	if len(deltas) == 0 {
		fmt.Println("No balance-changing transactions found.")
		return nil
	}
	fmt.Printf("Final reconstructed balance: %s KAS over %d transactions\n",
		trace.BalanceTotal(deltas).StringFixed(6), len(deltas))

	// Pearson correlation of inflows against same-day price, both
	// per-transaction and per-day.
	var txInflow, txPrice []float64
	dailySum := make(map[int64]float64)
	for _, d := range deltas {
		if !d.Delta.IsPositive() {
			continue
		}
		day := trace.Day(d.Timestamp)
		pp, ok := series.At(day)
		if !ok {
			continue
		}
		v := d.Delta.InexactFloat64()
		txInflow = append(txInflow, v)
		txPrice = append(txPrice, pp.PriceUSD)
		dailySum[day.Unix()] += v
	}

	var dayInflow, dayPrice []float64
	for _, pp := range series.Points() {
		if v, ok := dailySum[pp.Date.Unix()]; ok {
			dayInflow = append(dayInflow, v)
			dayPrice = append(dayPrice, pp.PriceUSD)
		}
	}

	rTx, pTx := stats.Pearson(txInflow, txPrice)
	rDay, pDay := stats.Pearson(dayInflow, dayPrice)
	fmt.Println("Pearson correlation (inflow vs price):")
	fmt.Printf("  Per-transaction: r=%.3f, p=%.3g (n=%d)\n", rTx, pTx, len(txInflow))
	fmt.Printf("  Daily-summed:    r=%.3f, p=%.3g (n=%d)\n", rDay, pDay, len(dayInflow))

	if !charts {
		return nil
	}

	png := filepath.Join(p.dir, "charts", "balance_vs_price.png")
	if err := render.BalanceVsPrice(png, deltas, series.Points()); err != nil {
		return err
	}
	fmt.Printf("Saved chart: %s\n", png)
	return nil
}
