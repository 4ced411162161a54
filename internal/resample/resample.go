// Package resample provides a polyphase windowed-sinc resampler used to
// bring a waveform to the 48 kHz rate the loudness meter operates at.
package resample

import "math"

const tapsPerPhase = 12

// besselI0 is the modified Bessel function of the first kind, order 0,
// used to build the Kaiser window.
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0
	for k := 1; k <= 25; k++ {
		term *= (x * x) / (4.0 * float64(k) * float64(k))
		sum += term
		if term < 1e-12 {
			break
		}
	}
	return sum
}

// kaiserSincFilter builds a lowpass windowed-sinc filter with cutoff at
// 1/(2*factor) of the input rate, where factor = max(up, down) sets both
// the stopband requirement and the number of taps per output sample.
func kaiserSincFilter(factor int) []float64 {
	const beta = 6.5 // Kaiser window shape
	taps := tapsPerPhase * factor
	h := make([]float64, 2*taps+1)
	center := float64(taps)

	for n := range h {
		x := float64(n) - center
		var sinc float64
		if math.Abs(x) < 1e-10 {
			sinc = 1.0 / float64(factor)
		} else {
			arg := math.Pi * x / float64(factor)
			sinc = math.Sin(arg) / (math.Pi * x)
		}

		alpha := x / center
		window := 0.0
		if math.Abs(alpha) <= 1.0 {
			window = besselI0(beta*math.Sqrt(1-alpha*alpha)) / besselI0(beta)
		}

		h[n] = sinc * window
	}

	// Normalize to unity DC gain.
	var sum float64
	for _, v := range h {
		sum += v
	}
	if sum != 0 {
		for i := range h {
			h[i] /= sum
		}
	}

	return h
}

// gcd returns the greatest common divisor of a and b.
func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// To resamples x from rate fromRate to rate toRate using a rational
// up/down polyphase filter: upsample by L, lowpass, downsample by M,
// where L/M = toRate/fromRate in lowest terms.
func To(x []float64, fromRate, toRate int) []float64 {
	if fromRate == toRate || len(x) == 0 {
		out := make([]float64, len(x))
		copy(out, x)
		return out
	}

	g := gcd(fromRate, toRate)
	up := toRate / g
	down := fromRate / g

	factor := up
	if down > factor {
		factor = down
	}

	h := kaiserSincFilter(factor)
	center := len(h) / 2

	outLen := (len(x)*up + down - 1) / down
	out := make([]float64, outLen)

	// out[n] corresponds to the upsampled-then-filtered signal sampled at
	// positions n*down (in the upsampled-by-up domain).
	for n := 0; n < outLen; n++ {
		pos := n * down
		var acc float64
		for k := range h {
			upIdx := pos - (k - center)
			if upIdx < 0 || upIdx%up != 0 {
				continue
			}
			xi := upIdx / up
			if xi < 0 || xi >= len(x) {
				continue
			}
			acc += h[k] * x[xi] * float64(up)
		}
		out[n] = acc
	}

	return out
}
