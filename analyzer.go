package deadfish

import "github.com/Sleepwalking/deadfish/internal/transform"

// AnalyzeNoiseProfile computes the per-bin mean-squared magnitude of x
// across all STFT frames, dividing by the bin count rather than the frame
// count. This mirrors the reference implementation's own arithmetic
// exactly; the result is not a true per-frame mean, but existing profile
// files depend on it.
func AnalyzeNoiseProfile(x []float64, geo transform.Geometry) NoiseProfile {
	result := transform.Analyze(x, geo)
	bins := geo.Bins()

	power := make([]float64, bins)
	for _, frame := range result.Frames {
		for j := 0; j < bins; j++ {
			power[j] += frame.Magnitude[j] * frame.Magnitude[j]
		}
	}

	ns := float64(bins)
	for j := range power {
		power[j] /= ns
	}

	return NoiseProfile{Power: power}
}
