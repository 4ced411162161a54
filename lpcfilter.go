package deadfish

import (
	"math/rand"

	"github.com/Sleepwalking/deadfish/internal/dither"
	"github.com/Sleepwalking/deadfish/internal/lpc"
	"github.com/Sleepwalking/deadfish/internal/window"
)

const ditherAmplitude = 1e-8

// InverseFilter applies block LPC analysis and residual synthesis with
// overlap-add. order is the predictor order; windowSamples is the analysis
// window length W; hopSamples is the frame hop (default W/4 when the
// caller passes 0).
func InverseFilter(x []float64, order, windowSamples, hopSamples int) []float64 {
	if hopSamples <= 0 {
		hopSamples = windowSamples / 4
	}

	w := window.Hann(windowSamples)
	normFactor := hannHopSum(w, hopSamples)

	rng := rand.New(rand.NewSource(1))

	out := make([]float64, len(x))
	nfrm := len(x) / hopSamples

	for i := 0; i < nfrm; i++ {
		center := i * hopSamples
		start := center - windowSamples/2 - order

		segment := make([]float64, windowSamples+order)
		noise := dither.Uniform(len(segment), ditherAmplitude, rng)
		for j := range segment {
			idx := start + j
			if idx >= 0 && idx < len(x) {
				segment[j] = x[idx] + noise[j]
			} else {
				segment[j] = noise[j]
			}
		}

		a, _ := lpc.Solve(segment, order)
		residual := lpc.Residual(segment, a, windowSamples)

		for j := 0; j < windowSamples; j++ {
			idx := center - windowSamples/2 + j
			if idx < 0 || idx >= len(out) {
				continue
			}
			out[idx] += residual[j] * w[j] / normFactor
		}
	}

	return out
}

// hannHopSum sums the Hann window sampled every hop samples, starting at
// position 0, matching the reference normalization convention when hop
// does not evenly divide the window length.
func hannHopSum(w []float64, hop int) float64 {
	var sum float64
	for i := 0; i < len(w); i += hop {
		sum += w[i]
	}
	if sum == 0 {
		return 1
	}
	return sum
}
