package deadfish

import (
	"math"

	"github.com/Sleepwalking/deadfish/internal/transform"
)

// stftGeometry derives the STFT geometry for analyze/denoise stages from
// the sample rate and an optional user-specified interval override.
func stftGeometry(sampleRate int, intervalSec float64) transform.Geometry {
	var hop int
	if intervalSec > 0 {
		hop = roundPow2(intervalSec * float64(sampleRate))
	} else {
		hop = ceilPow2(float64(sampleRate) * 0.004)
	}
	return transform.Geometry{Hop: hop, OverlapFact: 4, PadFact: 2}
}

// timeDomainHop derives a hop length for a time-domain stage (compressor,
// loudness meter) given its default fraction of a second and an optional
// user-specified interval override.
func timeDomainHop(sampleRate int, defaultFraction, intervalSec float64) int {
	if intervalSec > 0 {
		return int(math.Round(intervalSec * float64(sampleRate)))
	}
	return int(math.Round(float64(sampleRate) * defaultFraction))
}

// ceilPow2 returns 2^ceil(log2(n)).
func ceilPow2(n float64) int {
	if n <= 1 {
		return 1
	}
	return 1 << int(math.Ceil(math.Log2(n)))
}

// roundPow2 returns 2^round(log2(n)), the quantization rule used for
// user-specified STFT intervals. This must stay a round, not a ceiling:
// an interval just above a power of two should resolve down to that power,
// not up to the next one.
func roundPow2(n float64) int {
	if n <= 1 {
		return 1
	}
	return 1 << int(math.Round(math.Log2(n)))
}
