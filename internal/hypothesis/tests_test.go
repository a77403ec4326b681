package hypothesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTestKnownValues(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 3, 4, 5, 6}

	res, err := TTest(a, b)
	require.NoError(t, err)

	assert.InDelta(t, -1.0, res.T, 1e-9)
	assert.InDelta(t, 8.0, res.DF, 1e-9)
	assert.InDelta(t, 0.34659, res.P, 1e-4)
	assert.InDelta(t, 3.0, res.MeanA, 1e-9)
	assert.InDelta(t, 4.0, res.MeanB, 1e-9)
}

func TestTTestIdenticalSamples(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	res, err := TTest(a, a)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, res.T, 1e-9)
	assert.InDelta(t, 1.0, res.P, 1e-9)
}

func TestTTestErrors(t *testing.T) {
	_, err := TTest([]float64{1}, []float64{1, 2})
	assert.Error(t, err)

	// Two constant samples have zero pooled variance.
	_, err = TTest([]float64{2, 2, 2}, []float64{2, 2, 2})
	assert.Error(t, err)
}

func TestOneWayANOVAKnownValues(t *testing.T) {
	res, err := OneWayANOVA([][]float64{{1, 2, 3}, {2, 3, 4}})
	require.NoError(t, err)

	assert.InDelta(t, 1.5, res.F, 1e-9)
	assert.Equal(t, 1, res.DFBetw)
	assert.Equal(t, 4, res.DFWith)
	assert.InDelta(t, 0.2878, res.P, 1e-3)
}

func TestOneWayANOVAEqualGroups(t *testing.T) {
	g := []float64{1, 2, 3}
	res, err := OneWayANOVA([][]float64{g, g, g})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, res.F, 1e-9)
	assert.InDelta(t, 1.0, res.P, 1e-9)
}

func TestOneWayANOVASeparatedGroups(t *testing.T) {
	res, err := OneWayANOVA([][]float64{{1, 1, 2}, {10, 11, 12}})
	require.NoError(t, err)
	assert.Greater(t, res.F, 10.0)
	assert.Less(t, res.P, 0.05)
}

func TestOneWayANOVAErrors(t *testing.T) {
	_, err := OneWayANOVA([][]float64{{1, 2, 3}})
	assert.Error(t, err)

	_, err = OneWayANOVA([][]float64{{1, 2}, {}})
	assert.Error(t, err)
}

func TestChiSquareIndependentTable(t *testing.T) {
	res, err := ChiSquareIndependence([][]float64{{10, 10}, {10, 10}})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, res.Chi2, 1e-9)
	assert.InDelta(t, 1.0, res.P, 1e-9)
	assert.Equal(t, 1, res.DF)
}

func TestChiSquareDependentTable(t *testing.T) {
	res, err := ChiSquareIndependence([][]float64{{20, 5}, {5, 20}})
	require.NoError(t, err)
	assert.InDelta(t, 18.0, res.Chi2, 1e-9)
	assert.Equal(t, 1, res.DF)
	assert.Less(t, res.P, 0.001)
}

func TestChiSquareErrors(t *testing.T) {
	_, err := ChiSquareIndependence([][]float64{{1, 2}})
	assert.Error(t, err)

	_, err = ChiSquareIndependence([][]float64{{1, 2}, {3}})
	assert.Error(t, err)

	_, err = ChiSquareIndependence([][]float64{{0, 0}, {0, 0}})
	assert.Error(t, err)
}
