package render

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/kasflow-dev/kasflow/internal/model"
)

// TopSources draws a horizontal bar chart of the top-N counterparties by
// total amount. Labels show the share of the grand total when it is
// positive.
func TopSources(path, title string, summaries []model.SourceSummary, topN int) error {
	if len(summaries) == 0 {
		return fmt.Errorf("no counterparties to plot")
	}
	if topN > len(summaries) {
		topN = len(summaries)
	}

	grand := decimal.Zero
	for _, s := range summaries {
		grand = grand.Add(s.Total)
	}

	// Reverse so the largest bar ends up on top.
	top := summaries[:topN]
	values := make(plotter.Values, topN)
	names := make([]string, topN)
	for i, s := range top {
		j := topN - 1 - i
		values[j] = s.Total.InexactFloat64()
		name := DisplayName(s)
		if grand.IsPositive() {
			share := s.Total.Div(grand).Mul(decimal.NewFromInt(100))
			name = fmt.Sprintf("%s (%s%%)", name, share.StringFixed(1))
		}
		names[j] = name
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Total (KAS)"

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	bars.Horizontal = true
	bars.Color = barColor
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalY(names...)

	return save(p, path, 12, 7)
}
