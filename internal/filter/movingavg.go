package filter

// MovingAverage computes a centered moving average of x with the given
// window width (in bins; may be fractional, truncated to an integer
// half-width). Edges are truncated to the available samples rather than
// zero-padded, matching a simple boxcar smoother over a bin axis.
func MovingAverage(x []float64, width float64) []float64 {
	n := len(x)
	y := make([]float64, n)
	if n == 0 {
		return y
	}

	half := int(width / 2)
	if half < 0 {
		half = 0
	}

	// Prefix sums for O(n) evaluation.
	prefix := make([]float64, n+1)
	for i, v := range x {
		prefix[i+1] = prefix[i] + v
	}

	for i := 0; i < n; i++ {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi > n-1 {
			hi = n - 1
		}
		count := hi - lo + 1
		y[i] = (prefix[hi+1] - prefix[lo]) / float64(count)
	}

	return y
}
