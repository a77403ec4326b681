package forecast

import "math"

// CenteredRollingMean computes a moving average whose window is centered on
// each index. Positions where the window would run past either boundary are
// NaN: a 7-wide window over N points leaves N-6 defined values. Even window
// widths place the extra element behind the label, so a 14-wide window
// covers [i-7, i+6].
func CenteredRollingMean(values []float64, window int) []float64 {
	n := len(values)
	out := make([]float64, n)
	if window < 1 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}

	offset := window / 2
	for i := range out {
		lo := i - offset
		hi := lo + window // exclusive
		if lo < 0 || hi > n {
			out[i] = math.NaN()
			continue
		}
		var sum float64
		for _, v := range values[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(window)
	}
	return out
}

// DefinedCount returns how many entries of a rolling-mean series are not NaN.
func DefinedCount(values []float64) int {
	count := 0
	for _, v := range values {
		if !math.IsNaN(v) {
			count++
		}
	}
	return count
}
