package deadfish

import (
	"math"

	"github.com/Sleepwalking/deadfish/internal/filter"
	"github.com/Sleepwalking/deadfish/internal/transform"
)

const spectralFloorEps = 1e-12

// Subtract applies noise-profile-driven spectral subtraction to x and
// reconstructs via iSTFT. denoiseRate scales the profile's contribution to
// the subtraction; smoothingBandwidthHz controls the bin-domain moving
// average applied to the raw gain before the final max(g, sqrt(s)) combine.
func Subtract(x []float64, profile NoiseProfile, geo transform.Geometry, denoiseRate, smoothingBandwidthHz float64, sampleRate int) []float64 {
	result := transform.Analyze(x, geo)
	bins := geo.Bins()

	smoothWidth := smoothingBandwidthHz / float64(sampleRate) * float64(geo.FFTLen()/2)

	for i, frame := range result.Frames {
		g := make([]float64, bins)
		for j := 0; j < bins; j++ {
			p := frame.Magnitude[j]*frame.Magnitude[j] + spectralFloorEps
			g[j] = math.Max(0, 1-profile.Power[j]*denoiseRate/p)
		}

		smoothed := filter.MovingAverage(g, smoothWidth)

		for j := 0; j < bins; j++ {
			combined := math.Max(g[j], math.Sqrt(smoothed[j]))
			frame.Magnitude[j] *= combined
		}

		result.Frames[i] = frame
	}

	return transform.Synthesize(result.Frames, geo, result.NormFactor, len(x))
}
