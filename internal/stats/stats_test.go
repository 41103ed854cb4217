package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	s := Describe([]float64{2, 4, 6, 8})
	assert.Equal(t, 4, s.N)
	assert.InDelta(t, 5.0, s.Mean, 1e-12)
	assert.InDelta(t, 5.0, s.Median, 1e-12)
	assert.Less(t, s.CILow, s.Mean)
	assert.Greater(t, s.CIHigh, s.Mean)
	assert.InDelta(t, s.Mean-s.CILow, s.CIHigh-s.Mean, 1e-12, "interval is symmetric about the mean")
}

func TestDescribeDropsNaN(t *testing.T) {
	s := Describe([]float64{1, math.NaN(), 3})
	assert.Equal(t, 2, s.N)
	assert.InDelta(t, 2.0, s.Mean, 1e-12)
}

func TestDescribeEmpty(t *testing.T) {
	s := Describe(nil)
	assert.Equal(t, 0, s.N)
	assert.True(t, math.IsNaN(s.Mean))
	assert.True(t, math.IsNaN(s.CILow))
}

func TestDescribeSingleValue(t *testing.T) {
	s := Describe([]float64{7})
	assert.Equal(t, 1, s.N)
	assert.InDelta(t, 7.0, s.Mean, 1e-12)
	assert.InDelta(t, 7.0, s.CILow, 1e-12, "one observation has zero standard error")
	assert.InDelta(t, 7.0, s.CIHigh, 1e-12)
}

func TestWelchT(t *testing.T) {
	// Clearly separated samples; one-sided H1 is "x greater".
	x := []float64{10, 11, 12, 13, 14}
	y := []float64{1, 2, 3, 4, 5}

	res, err := WelchT(x, y)
	require.NoError(t, err)
	assert.Greater(t, res.Stat, 0.0)
	assert.Less(t, res.P, 0.01)

	// Reversed direction: p should be near 1.
	rev, err := WelchT(y, x)
	require.NoError(t, err)
	assert.Greater(t, rev.P, 0.95)
}

func TestWelchTTooFewSamples(t *testing.T) {
	_, err := WelchT([]float64{1}, []float64{2, 3})
	require.Error(t, err)
}

func TestMannWhitneyU(t *testing.T) {
	x := []float64{10, 11, 12, 13, 14}
	y := []float64{1, 2, 3, 4, 5}

	res, err := MannWhitneyU(x, y)
	require.NoError(t, err)
	assert.Less(t, res.P, 0.01)
}

func TestPearson(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{2.1, 3.9, 6.2, 7.8, 10.1, 11.9}

	r, p := Pearson(x, y)
	assert.Greater(t, r, 0.99)
	assert.Less(t, p, 0.01)
}

func TestPearsonNoCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := []float64{5, -3, 4, -2, 6, -4, 3, -1}

	r, p := Pearson(x, y)
	assert.Less(t, math.Abs(r), 0.5)
	assert.Greater(t, p, 0.2)
}

func TestPearsonExactFit(t *testing.T) {
	x := []float64{1, 2, 3}
	y := []float64{2, 4, 6}

	r, p := Pearson(x, y)
	assert.InDelta(t, 1.0, r, 1e-9)
	assert.Less(t, p, 1e-6)
}

func TestPearsonTooFewPairs(t *testing.T) {
	r, p := Pearson([]float64{1, 2}, []float64{3, 4})
	assert.True(t, math.IsNaN(r))
	assert.True(t, math.IsNaN(p))

	r, _ = Pearson([]float64{1, 2, 3}, []float64{1, 2})
	assert.True(t, math.IsNaN(r), "mismatched lengths")
}
