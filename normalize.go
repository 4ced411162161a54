package deadfish

import "math"

const loudnessNormalizeHopSec = 0.1

// NormalizePeak scales x so its absolute peak equals target.
func NormalizePeak(x []float64, target float64) []float64 {
	var peak float64
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		out := make([]float64, len(x))
		copy(out, x)
		return out
	}

	gain := target / peak
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v * gain
	}
	return out
}

// NormalizeLoudness scales x so its integrated loudness equals target
// LKFS, measuring with a 0.1s block hop.
func NormalizeLoudness(x []float64, target float64, sampleRate int) []float64 {
	hop := timeDomainHop(sampleRate, loudnessNormalizeHopSec, 0)
	m := MeasureLoudness(x, sampleRate, hop)

	gain := math.Pow(10, (target-m.Integrated)/20)
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v * gain
	}
	return out
}
