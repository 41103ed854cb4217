package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"

	"github.com/kasflow-dev/kasflow/internal/heatmap"
)

// weekGrid adapts a heatmap.Grid to plotter.GridXYZ. Row 0 (Monday)
// renders at the top.
type weekGrid struct {
	grid heatmap.Grid
}

func (g weekGrid) Dims() (c, r int) { return 24, 7 }

func (g weekGrid) Z(c, r int) float64 {
	// Flip rows so Monday is the top row of the image.
	return g.grid[6-r][c]
}

func (g weekGrid) X(c int) float64 { return float64(c) }
func (g weekGrid) Y(r int) float64 { return float64(r) }

// Heatmap renders a weekday×hour grid as a PNG. The value unit belongs
// in the title; gonum heatmaps carry no colorbar label.
func Heatmap(path, title string, grid heatmap.Grid) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Hour (UTC)"
	p.Y.Label.Text = "Weekday"

	h := plotter.NewHeatMap(weekGrid{grid: grid}, palette.Heat(16, 1))
	p.Add(h)

	// Weekday tick labels, top row = Monday.
	ticks := make([]plot.Tick, 7)
	for r := 0; r < 7; r++ {
		ticks[r] = plot.Tick{Value: float64(r), Label: heatmap.Weekdays[6-r]}
	}
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)

	hourTicks := make([]plot.Tick, 0, 8)
	for hr := 0; hr < 24; hr += 3 {
		hourTicks = append(hourTicks, plot.Tick{Value: float64(hr), Label: fmt.Sprintf("%02d", hr)})
	}
	p.X.Tick.Marker = plot.ConstantTicks(hourTicks)

	return save(p, path, 11, 6)
}
