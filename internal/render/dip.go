package render

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/kasflow-dev/kasflow/internal/dip"
)

// DipBars draws mean daily inflow per prior-day-move bin with 95% CI
// error bars.
func DipBars(path string, bins []dip.BinStats) error {
	if len(bins) == 0 {
		return fmt.Errorf("no bins to plot")
	}

	values := make(plotter.Values, len(bins))
	names := make([]string, len(bins))
	errPts := make(errorPoints, len(bins))
	for i, b := range bins {
		mean := b.KAS.Mean
		if math.IsNaN(mean) {
			mean = 0
		}
		values[i] = mean
		names[i] = fmt.Sprintf("%s\nN=%d", b.Category, b.KAS.N)

		errPts[i].x = float64(i)
		errPts[i].y = mean
		if !math.IsNaN(b.KAS.CILow) && !math.IsNaN(b.KAS.CIHigh) {
			errPts[i].low = mean - b.KAS.CILow
			errPts[i].high = b.KAS.CIHigh - mean
		}
	}

	p := plot.New()
	p.Title.Text = "Inflows after prior-day price moves"
	p.Y.Label.Text = "Mean daily inflow (KAS)"

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(names...)

	errBars, err := plotter.NewYErrorBars(errPts)
	if err != nil {
		return fmt.Errorf("error bars: %w", err)
	}
	p.Add(errBars)

	return save(p, path, 10, 6)
}

// errorPoints implements plotter.XYer and plotter.YErrorer over bin
// centers.
type errorPoints []struct {
	x, y      float64
	low, high float64
}

func (e errorPoints) Len() int                        { return len(e) }
func (e errorPoints) XY(i int) (float64, float64)     { return e[i].x, e[i].y }
func (e errorPoints) YError(i int) (float64, float64) { return e[i].low, e[i].high }
