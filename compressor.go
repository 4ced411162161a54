package deadfish

import (
	"math"

	"github.com/Sleepwalking/deadfish/internal/window"
)

const compressorEps = 1e-12

// Compress applies frame-based downward compression to x. In peak mode
// threshold is a linear amplitude; in loudness mode it is LKFS and the
// loudness meter is run at block hop = hop/sampleRate seconds beforehand.
func Compress(x []float64, hop int, threshold, damping float64, loudnessMode bool, sampleRate int) []float64 {
	w := window.Hann(2 * hop)
	// One frame past len(x)/hop so every sample lies under two overlapping
	// windows, including the final partial hop.
	nfrm := len(x)/hop + 1

	var instLoudness []float64
	if loudnessMode {
		m := MeasureLoudness(x, sampleRate, hop)
		instLoudness = m.Instantaneous
	}

	acc := make([]float64, len(x))

	for i := 0; i < nfrm; i++ {
		center := i * hop

		var level float64
		if loudnessMode {
			idx := clampInt(i-2, 0, len(instLoudness)-1)
			if len(instLoudness) > 0 {
				level = instLoudness[idx]
			} else {
				level = absoluteGateLU
			}
		} else {
			level = peakLevel(x, center-hop, center+hop)
		}

		if level <= threshold {
			continue
		}

		correction := (threshold - level) * (1 - damping)

		var increment float64
		if loudnessMode {
			increment = math.Pow(10, correction/20) - 1
		} else {
			increment = correction / (level + compressorEps)
		}

		for j := 0; j < 2*hop; j++ {
			idx := center - hop + j
			if idx < 0 || idx >= len(x) {
				continue
			}
			acc[idx] += increment * w[j] * x[idx]
		}
	}

	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i] + acc[i]
	}
	return out
}

func peakLevel(x []float64, start, end int) float64 {
	var level float64
	for i := start; i < end; i++ {
		if i < 0 || i >= len(x) {
			continue
		}
		if v := math.Abs(x[i]); v > level {
			level = v
		}
	}
	return level
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
