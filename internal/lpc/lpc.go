// Package lpc solves for linear-predictive-coding coefficients via the
// Levinson-Durbin recursion over a segment's autocorrelation sequence.
package lpc

// Solve computes order-p LPC coefficients a[1..p] (a[0] is implicitly 1)
// for the signal x, such that x[n] is predicted by
// -sum_{k=1..p} a[k]*x[n-k]. Returns the coefficients and the residual
// prediction error power.
func Solve(x []float64, order int) (coeffs []float64, err float64) {
	r := autocorrelate(x, order)

	a := make([]float64, order+1)
	a[0] = 1
	e := r[0]

	if e == 0 {
		return make([]float64, order), 0
	}

	for i := 1; i <= order; i++ {
		var acc float64
		for j := 1; j < i; j++ {
			acc += a[j] * r[i-j]
		}

		k := -(r[i] + acc) / e

		prev := make([]float64, i)
		copy(prev, a[:i])

		a[i] = k
		for j := 1; j < i; j++ {
			a[j] = prev[j] + k*prev[i-j]
		}

		e *= 1 - k*k
		if e <= 0 {
			e = 1e-12
		}
	}

	return a[1:], e
}

// autocorrelate returns the biased autocorrelation r[0..maxLag] of x.
func autocorrelate(x []float64, maxLag int) []float64 {
	n := len(x)
	r := make([]float64, maxLag+1)
	for lag := 0; lag <= maxLag; lag++ {
		var sum float64
		for i := 0; i+lag < n; i++ {
			sum += x[i] * x[i+lag]
		}
		r[lag] = sum
	}
	return r
}

// Residual computes y[j] = x[j+p] + sum_{k=1..p} a[k]*x[j+p-k] for
// j in [0, n), given p+n input samples x and order-p coefficients a.
func Residual(x []float64, a []float64, n int) []float64 {
	p := len(a)
	y := make([]float64, n)
	for j := 0; j < n; j++ {
		acc := x[j+p]
		for k := 1; k <= p; k++ {
			acc += a[k-1] * x[j+p-k]
		}
		y[j] = acc
	}
	return y
}
