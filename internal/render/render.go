// Package render turns aggregated tables into PNG charts. It holds no
// business logic: aggregation stays unit-testable without any plotting
// backend.
package render

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/kasflow-dev/kasflow/internal/model"
)

var (
	balanceColor = color.RGBA{R: 0x2e, G: 0x8b, B: 0x57, A: 0xff} // sea green
	priceColor   = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff} // steel blue
	barColor     = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
)

// TruncateAddress shortens a long address for axis labels:
// "kaspa:qpz2vgvlxhm..." -> "kaspa:qpz2…skvvwm7n".
func TruncateAddress(a string) string {
	if len(a) <= 20 {
		return a
	}
	return a[:10] + "…" + a[len(a)-8:]
}

// DisplayName returns the label when present, else the truncated
// address.
func DisplayName(s model.SourceSummary) string {
	if s.Label != "" {
		return s.Label
	}
	return TruncateAddress(s.Address)
}

func newTimePlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Add(plotter.NewGrid())
	return p
}

// BalanceVsPrice draws the reconstructed balance over time with the USD
// price overlaid. The price line is rescaled onto the balance axis; the
// legend states the scale factor.
func BalanceVsPrice(path string, deltas []model.TxDelta, price []model.PricePoint) error {
	if len(deltas) == 0 {
		return fmt.Errorf("no balance points to plot")
	}

	balancePts := make(plotter.XYs, len(deltas))
	balance := 0.0
	maxBalance := 0.0
	for i, d := range deltas {
		balance += d.Delta.InexactFloat64()
		balancePts[i].X = float64(d.Timestamp.Unix())
		balancePts[i].Y = balance
		if balance > maxBalance {
			maxBalance = balance
		}
	}

	maxPrice := 0.0
	for _, pp := range price {
		if pp.PriceUSD > maxPrice {
			maxPrice = pp.PriceUSD
		}
	}
	scale := 1.0
	if maxPrice > 0 && maxBalance > 0 {
		scale = maxBalance / maxPrice
	}

	pricePts := make(plotter.XYs, len(price))
	for i, pp := range price {
		pricePts[i].X = float64(pp.Date.Unix())
		pricePts[i].Y = pp.PriceUSD * scale
	}

	p := newTimePlot("Balance vs USD Price", "Date (UTC)", "Balance (KAS)")

	balanceLine, err := plotter.NewLine(balancePts)
	if err != nil {
		return fmt.Errorf("balance line: %w", err)
	}
	balanceLine.Color = balanceColor
	balanceLine.Width = vg.Points(2)
	p.Add(balanceLine)
	p.Legend.Add("balance (KAS)", balanceLine)

	if len(pricePts) > 0 {
		priceLine, err := plotter.NewLine(pricePts)
		if err != nil {
			return fmt.Errorf("price line: %w", err)
		}
		priceLine.Color = priceColor
		p.Add(priceLine)
		p.Legend.Add(fmt.Sprintf("price (USD × %.0f)", scale), priceLine)
	}
	p.Legend.Top = true

	return save(p, path, 12, 6)
}

// DailyFlowsChart draws per-day inflow bars with the USD price overlaid
// as a rescaled line.
func DailyFlowsChart(path string, daily []model.DailyFlow, price []model.PricePoint) error {
	if len(daily) == 0 {
		return fmt.Errorf("no daily flows to plot")
	}

	pts := make(plotter.XYs, len(daily))
	maxInflow := 0.0
	for i, d := range daily {
		v := d.Inflow.InexactFloat64()
		pts[i].X = float64(d.Date.Unix())
		pts[i].Y = v
		if v > maxInflow {
			maxInflow = v
		}
	}

	p := newTimePlot("Daily Inflows (KAS) with Price Overlay", "Date (UTC)", "Inflow (KAS)")

	// Render bars as thin vertical lines; a nominal bar chart cannot
	// share an axis with the time-indexed price line.
	for _, pt := range pts {
		seg, err := plotter.NewLine(plotter.XYs{{X: pt.X, Y: 0}, {X: pt.X, Y: pt.Y}})
		if err != nil {
			return fmt.Errorf("inflow bar: %w", err)
		}
		seg.Color = barColor
		seg.Width = vg.Points(1.5)
		p.Add(seg)
	}

	maxPrice := 0.0
	for _, pp := range price {
		if pp.PriceUSD > maxPrice {
			maxPrice = pp.PriceUSD
		}
	}
	if maxPrice > 0 && maxInflow > 0 {
		scale := maxInflow / maxPrice
		pricePts := make(plotter.XYs, len(price))
		for i, pp := range price {
			pricePts[i].X = float64(pp.Date.Unix())
			pricePts[i].Y = pp.PriceUSD * scale
		}
		priceLine, err := plotter.NewLine(pricePts)
		if err != nil {
			return fmt.Errorf("price line: %w", err)
		}
		priceLine.Color = priceColor
		p.Add(priceLine)
		p.Legend.Add(fmt.Sprintf("price (USD × %.0f)", scale), priceLine)
		p.Legend.Top = true
	}

	return save(p, path, 12, 5)
}

func save(p *plot.Plot, path string, wInches, hInches float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating chart dir: %w", err)
	}
	if err := p.Save(vg.Length(wInches)*vg.Inch, vg.Length(hInches)*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
