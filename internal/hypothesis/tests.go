package hypothesis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TTestResult is a two-sample Student's t-test outcome.
type TTestResult struct {
	T     float64
	P     float64
	DF    float64
	MeanA float64
	MeanB float64
}

// TTest performs a pooled-variance (equal variance assumed) two-sample
// t-test of the null hypothesis that both samples share a mean.
func TTest(a, b []float64) (TTestResult, error) {
	na, nb := len(a), len(b)
	if na < 2 || nb < 2 {
		return TTestResult{}, fmt.Errorf("t-test needs at least 2 observations per sample, got %d and %d", na, nb)
	}

	meanA, varA := stat.MeanVariance(a, nil)
	meanB, varB := stat.MeanVariance(b, nil)

	df := float64(na + nb - 2)
	pooled := (float64(na-1)*varA + float64(nb-1)*varB) / df
	se := math.Sqrt(pooled * (1/float64(na) + 1/float64(nb)))
	if se == 0 {
		return TTestResult{}, fmt.Errorf("t-test undefined: zero pooled variance")
	}

	t := (meanA - meanB) / se
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(t))

	return TTestResult{T: t, P: p, DF: df, MeanA: meanA, MeanB: meanB}, nil
}

// ANOVAResult is a one-way analysis-of-variance outcome.
type ANOVAResult struct {
	F      float64
	P      float64
	DFBetw int
	DFWith int
}

// OneWayANOVA tests the null hypothesis that all groups share a mean.
func OneWayANOVA(groups [][]float64) (ANOVAResult, error) {
	if len(groups) < 2 {
		return ANOVAResult{}, fmt.Errorf("ANOVA needs at least 2 groups, got %d", len(groups))
	}

	var total float64
	var n int
	for i, g := range groups {
		if len(g) == 0 {
			return ANOVAResult{}, fmt.Errorf("ANOVA group %d is empty", i)
		}
		for _, v := range g {
			total += v
		}
		n += len(g)
	}
	grand := total / float64(n)

	var ssBetween, ssWithin float64
	for _, g := range groups {
		mean := stat.Mean(g, nil)
		ssBetween += float64(len(g)) * (mean - grand) * (mean - grand)
		for _, v := range g {
			ssWithin += (v - mean) * (v - mean)
		}
	}

	dfBetween := len(groups) - 1
	dfWithin := n - len(groups)
	if dfWithin <= 0 {
		return ANOVAResult{}, fmt.Errorf("ANOVA needs more observations than groups")
	}
	if ssWithin == 0 {
		return ANOVAResult{}, fmt.Errorf("ANOVA undefined: zero within-group variance")
	}

	f := (ssBetween / float64(dfBetween)) / (ssWithin / float64(dfWithin))
	dist := distuv.F{D1: float64(dfBetween), D2: float64(dfWithin)}
	p := 1 - dist.CDF(f)

	return ANOVAResult{F: f, P: p, DFBetw: dfBetween, DFWith: dfWithin}, nil
}

// ChiSquareResult is a chi-square test-of-independence outcome.
type ChiSquareResult struct {
	Chi2 float64
	P    float64
	DF   int
}

// ChiSquareIndependence tests independence of the row and column factors of
// a contingency table of observed counts. No continuity correction is
// applied.
func ChiSquareIndependence(observed [][]float64) (ChiSquareResult, error) {
	rows := len(observed)
	if rows < 2 {
		return ChiSquareResult{}, fmt.Errorf("contingency table needs at least 2 rows, got %d", rows)
	}
	cols := len(observed[0])
	if cols < 2 {
		return ChiSquareResult{}, fmt.Errorf("contingency table needs at least 2 columns, got %d", cols)
	}

	rowSums := make([]float64, rows)
	colSums := make([]float64, cols)
	var total float64
	for i, row := range observed {
		if len(row) != cols {
			return ChiSquareResult{}, fmt.Errorf("ragged contingency table at row %d", i)
		}
		for j, v := range row {
			rowSums[i] += v
			colSums[j] += v
			total += v
		}
	}
	if total == 0 {
		return ChiSquareResult{}, fmt.Errorf("contingency table is empty")
	}

	var chi2 float64
	for i := range observed {
		for j := range observed[i] {
			expected := rowSums[i] * colSums[j] / total
			if expected == 0 {
				return ChiSquareResult{}, fmt.Errorf("zero expected count at cell (%d,%d)", i, j)
			}
			diff := observed[i][j] - expected
			chi2 += diff * diff / expected
		}
	}

	df := (rows - 1) * (cols - 1)
	dist := distuv.ChiSquared{K: float64(df)}
	p := 1 - dist.CDF(chi2)

	return ChiSquareResult{Chi2: chi2, P: p, DF: df}, nil
}
