// Package stats wraps the statistical procedures the analysis commands
// need. All inputs are float64 slices; decimal amounts convert at this
// boundary only.
package stats

import (
	"math"
	"sort"

	mstats "github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Summary holds descriptive statistics for one sample.
type Summary struct {
	N      int
	Mean   float64
	Median float64
	CILow  float64 // 95% confidence interval, normal approximation
	CIHigh float64
}

// Describe computes N, mean, median and a 95% CI (mean ± 1.96·sem).
// NaN inputs are dropped; an empty sample yields NaN statistics.
func Describe(xs []float64) Summary {
	clean := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			clean = append(clean, x)
		}
	}

	n := len(clean)
	if n == 0 {
		nan := math.NaN()
		return Summary{N: 0, Mean: nan, Median: nan, CILow: nan, CIHigh: nan}
	}

	sort.Float64s(clean)
	sample := mstats.Sample{Xs: clean, Sorted: true}
	mean := sample.Mean()
	median := sample.Quantile(0.5)

	se := 0.0
	if n > 1 {
		se = sample.StdDev() / math.Sqrt(float64(n))
	}

	return Summary{
		N:      n,
		Mean:   mean,
		Median: median,
		CILow:  mean - 1.96*se,
		CIHigh: mean + 1.96*se,
	}
}

// TestResult is the outcome of a two-sample hypothesis test.
type TestResult struct {
	Stat float64 // t statistic or U statistic
	P    float64
}

// WelchT runs Welch's two-sample t-test of x against y with the
// one-sided alternative "location of x greater than y".
func WelchT(x, y []float64) (TestResult, error) {
	res, err := mstats.TwoSampleWelchTTest(
		mstats.Sample{Xs: x},
		mstats.Sample{Xs: y},
		mstats.LocationGreater,
	)
	if err != nil {
		return TestResult{}, err
	}
	return TestResult{Stat: res.T, P: res.P}, nil
}

// MannWhitneyU runs the one-sided Mann-Whitney U test with the
// alternative "x stochastically greater than y".
func MannWhitneyU(x, y []float64) (TestResult, error) {
	res, err := mstats.MannWhitneyUTest(x, y, mstats.LocationGreater)
	if err != nil {
		return TestResult{}, err
	}
	return TestResult{Stat: res.U, P: res.P}, nil
}

// Pearson computes the Pearson correlation of paired samples and its
// two-sided p-value from the t distribution with n−2 degrees of
// freedom. Fewer than three pairs yields NaNs.
func Pearson(x, y []float64) (r, p float64) {
	n := len(x)
	if n != len(y) || n < 3 {
		return math.NaN(), math.NaN()
	}

	r = stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.Abs(r) >= 1 {
		// Degenerate: constant sample or exact fit.
		if math.Abs(r) >= 1 {
			return r, 0
		}
		return r, math.NaN()
	}

	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p = 2 * dist.Survival(math.Abs(t))
	return r, p
}
