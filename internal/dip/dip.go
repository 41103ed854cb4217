// Package dip implements the "buy the dip" comparison: does the wallet
// receive more on days following a price drop than on days following a
// rise?
package dip

import (
	"fmt"
	"math"
	"time"

	"github.com/kasflow-dev/kasflow/internal/model"
	"github.com/kasflow-dev/kasflow/internal/prices"
	"github.com/kasflow-dev/kasflow/internal/stats"
)

// Thresholds define the prior-day-return bins, in percent.
type Thresholds struct {
	Drop       float64 // e.g. -1.0 means Drop when ret ≤ -1%
	Rise       float64 // e.g. +1.0 means Rise when ret ≥ +1%
	BigDrop    float64 // only used when HasBigDrop
	HasBigDrop bool
}

// Observation is one analyzable day: an inflow with a known prior-day
// price move.
type Observation struct {
	Date       time.Time
	InflowKAS  float64
	RetPrevPct float64 // prior calendar day's price return
	PricePrev  float64 // prior calendar day's USD price
	USDPrev    float64 // inflow valued at the prior day's price
}

// BinStats holds per-bin descriptive statistics.
type BinStats struct {
	Category      string
	KAS           stats.Summary
	MeanUSD       float64
	MeanPrevPrice float64
}

// TestPair reports one dip-vs-rise hypothesis test pair.
type TestPair struct {
	Name        string
	Ran         bool // false when a bin had fewer than 2 samples
	Welch       stats.TestResult
	MannWhitney stats.TestResult
	MeanDiffKAS float64
}

// Analysis is the full output of Run.
type Analysis struct {
	Thresholds   Thresholds
	Observations []Observation
	Bins         []BinStats
	Tests        []TestPair
}

// Join pairs daily inflows with the prior calendar day's price move.
// Only days with a positive inflow are observations: the analysis asks
// how much arrives after a move, and outflow-only days would dilute the
// bins with zeros. Days without a price point for the previous day are
// dropped.
func Join(daily []model.DailyFlow, series *prices.Series) []Observation {
	var obs []Observation
	for _, d := range daily {
		if !d.Inflow.IsPositive() {
			continue
		}
		prev, ok := series.Prev(d.Date)
		if !ok || math.IsNaN(prev.RetPct) {
			continue
		}
		inflow := d.Inflow.InexactFloat64()
		obs = append(obs, Observation{
			Date:       d.Date,
			InflowKAS:  inflow,
			RetPrevPct: prev.RetPct,
			PricePrev:  prev.PriceUSD,
			USDPrev:    inflow * prev.PriceUSD,
		})
	}
	return obs
}

// Categories returns the bin names in display order for a threshold set.
func (t Thresholds) Categories() []string {
	var cats []string
	if t.HasBigDrop {
		cats = append(cats, fmt.Sprintf("Big Drop (≤%.1f%%)", t.BigDrop))
	}
	cats = append(cats,
		fmt.Sprintf("Drop (≤%.1f%%)", t.Drop),
		fmt.Sprintf("Flat (%.1f%%..%.1f%%)", t.Drop, t.Rise),
		fmt.Sprintf("Rise (≥%.1f%%)", t.Rise),
	)
	return cats
}

// Categorize maps a prior-day return to its bin name.
func (t Thresholds) Categorize(retPrevPct float64) string {
	switch {
	case t.HasBigDrop && retPrevPct <= t.BigDrop:
		return fmt.Sprintf("Big Drop (≤%.1f%%)", t.BigDrop)
	case retPrevPct <= t.Drop:
		return fmt.Sprintf("Drop (≤%.1f%%)", t.Drop)
	case retPrevPct >= t.Rise:
		return fmt.Sprintf("Rise (≥%.1f%%)", t.Rise)
	default:
		return fmt.Sprintf("Flat (%.1f%%..%.1f%%)", t.Drop, t.Rise)
	}
}

// Run bins the observations and computes descriptive statistics plus the
// Drop-vs-Rise (and, when configured, BigDrop-vs-Rise) hypothesis tests
// with H1: dip-day inflows are greater.
func Run(obs []Observation, t Thresholds) Analysis {
	byCat := make(map[string][]Observation)
	for _, o := range obs {
		cat := t.Categorize(o.RetPrevPct)
		byCat[cat] = append(byCat[cat], o)
	}

	a := Analysis{Thresholds: t, Observations: obs}
	for _, cat := range t.Categories() {
		sel := byCat[cat]
		kas := make([]float64, len(sel))
		usd := make([]float64, len(sel))
		price := make([]float64, len(sel))
		for i, o := range sel {
			kas[i] = o.InflowKAS
			usd[i] = o.USDPrev
			price[i] = o.PricePrev
		}
		a.Bins = append(a.Bins, BinStats{
			Category:      cat,
			KAS:           stats.Describe(kas),
			MeanUSD:       stats.Describe(usd).Mean,
			MeanPrevPrice: stats.Describe(price).Mean,
		})
	}

	riseVals := inflows(byCat[fmt.Sprintf("Rise (≥%.1f%%)", t.Rise)])
	dropVals := inflows(byCat[fmt.Sprintf("Drop (≤%.1f%%)", t.Drop)])
	a.Tests = append(a.Tests, runPair("Drop vs Rise", dropVals, riseVals))

	if t.HasBigDrop {
		bigVals := inflows(byCat[fmt.Sprintf("Big Drop (≤%.1f%%)", t.BigDrop)])
		a.Tests = append(a.Tests, runPair("Big Drop vs Rise", bigVals, riseVals))
	}

	return a
}

func inflows(obs []Observation) []float64 {
	xs := make([]float64, len(obs))
	for i, o := range obs {
		xs[i] = o.InflowKAS
	}
	return xs
}

func runPair(name string, dip, rise []float64) TestPair {
	pair := TestPair{Name: name}
	if len(dip) < 2 || len(rise) < 2 {
		return pair
	}

	welch, errT := stats.WelchT(dip, rise)
	mw, errU := stats.MannWhitneyU(dip, rise)
	if errT != nil || errU != nil {
		return pair
	}

	pair.Ran = true
	pair.Welch = welch
	pair.MannWhitney = mw
	pair.MeanDiffKAS = stats.Describe(dip).Mean - stats.Describe(rise).Mean
	return pair
}
