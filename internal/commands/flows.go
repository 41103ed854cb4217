package commands

import (
	"fmt"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kasflow-dev/kasflow/internal/model"
	"github.com/kasflow-dev/kasflow/internal/render"
	"github.com/kasflow-dev/kasflow/internal/trace"
)

// flowDirection selects between the inflows and outflows variants of
// the same aggregation.
type flowDirection struct {
	name        string // command name
	summaryKind string // dataset summary file kind
	counterpart string // label for the counterparty column in output
	summarize   func(records []model.Transfer, wallet string) []model.SourceSummary
}

var inflowsDirection = flowDirection{
	name:        "inflows",
	summaryKind: "inflows_by_source",
	counterpart: "source",
	summarize:   trace.BySource,
}

var outflowsDirection = flowDirection{
	name:        "outflows",
	summaryKind: "outflows_by_destination",
	counterpart: "destination",
	summarize:   trace.ByDestination,
}

func newInflowsCommand() *cobra.Command {
	return newFlowsCommand(inflowsDirection, "Aggregate inflows by source and by day")
}

func newOutflowsCommand() *cobra.Command {
	return newFlowsCommand(outflowsDirection, "Aggregate outflows by destination and by day")
}

func newFlowsCommand(dir flowDirection, short string) *cobra.Command {
	var projectDir string
	var top int
	var group bool
	var noCharts bool

	cmd := &cobra.Command{
		Use:   dir.name + " [address]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(projectDir)
			if err != nil {
				return err
			}
			wallet, err := p.wallet(args)
			if err != nil {
				return err
			}
			return runFlows(p, wallet, dir, top, group, !noCharts)
		},
	}

	addDirFlag(cmd, &projectDir)
	cmd.Flags().IntVar(&top, "top", 12, "top-N counterparties to chart")
	cmd.Flags().BoolVar(&group, "group", false, "collapse addresses into label buckets")
	cmd.Flags().BoolVar(&noCharts, "no-charts", false, "skip PNG output")

	return cmd
}

func runFlows(p *project, wallet string, dir flowDirection, top int, group, charts bool) error {
	involving, err := p.data.ReadTransfersFile(p.data.InvolvingPath(wallet))
	if err != nil {
		return err
	}

	labelSvc, err := p.loadLabels()
	if err != nil {
		return err
	}
	if labelSvc.Len() > 0 {
		fmt.Printf("Loaded %d labels from %s\n", labelSvc.Len(), p.cfg.Inputs.LabelsCSV)
	}

	summaries := dir.summarize(involving, wallet)
	if len(summaries) == 0 {
		fmt.Printf("No %s involving other addresses found.\n", dir.name)
		return nil
	}
	for i := range summaries {
		if label, ok := labelSvc.Lookup(summaries[i].Address); ok {
			summaries[i].Label = label
		}
	}
	if group {
		summaries = trace.GroupByLabel(summaries, labelSvc.Bucket)
	}

	daily := trace.DailyFlows(involving, wallet)

	// Totals and the balance sanity check against the participants set.
	totalIn, totalOut := decimal.Zero, decimal.Zero
	for _, d := range daily {
		totalIn = totalIn.Add(d.Inflow)
		totalOut = totalOut.Add(d.Outflow)
	}
	fmt.Printf("Totals: inflow=%s KAS, outflow=%s KAS, net=%s KAS\n",
		totalIn.StringFixed(6), totalOut.StringFixed(6), totalIn.Sub(totalOut).StringFixed(6))

	participants, err := p.data.ReadTransfersFile(p.data.ParticipantsPath(wallet))
	if err != nil {
		return err
	}
	dailyBalance, reconstructed, ok := trace.Reconcile(daily, participants, wallet)
	fmt.Printf("Reconstructed balance from participants: %s KAS\n", reconstructed.StringFixed(6))
	if !ok {
		fmt.Printf("warning: daily-flow balance %s KAS does not match reconstructed balance %s KAS\n",
			dailyBalance.StringFixed(6), reconstructed.StringFixed(6))
	}

	if err := p.data.WriteSummariesFile(wallet, dir.summaryKind, summaries); err != nil {
		return err
	}
	if err := p.data.WriteDailyFlowsFile(wallet, daily); err != nil {
		return err
	}
	fmt.Printf("Saved %s and %s\n", p.data.SummaryPath(wallet, dir.summaryKind), p.data.DailyFlowsPath(wallet))

	fmt.Printf("Top %s by total KAS:\n", dir.counterpart)
	for i, s := range summaries {
		if i >= top {
			break
		}
		fmt.Printf("  %-40s %s KAS (%d txs)\n", render.DisplayName(s), s.Total.StringFixed(2), s.TxCount)
	}

	if !charts {
		return nil
	}

	chartsDir := filepath.Join(p.dir, "charts")
	title := fmt.Sprintf("Top %s (KAS)", dir.counterpart+"s")
	topPNG := filepath.Join(chartsDir, fmt.Sprintf("%s_top.png", dir.name))
	if err := render.TopSources(topPNG, title, summaries, top); err != nil {
		return err
	}
	fmt.Printf("Saved chart: %s\n", topPNG)

	if dir.name == inflowsDirection.name {
		series, err := p.loadPrices()
		if err != nil {
			return err
		}
		dailyPNG := filepath.Join(chartsDir, "inflows_by_day.png")
		if err := render.DailyFlowsChart(dailyPNG, daily, series.Points()); err != nil {
			return err
		}
		fmt.Printf("Saved chart: %s\n", dailyPNG)
	}

	return nil
}
