package deadfish

import (
	"math"

	"github.com/Sleepwalking/deadfish/internal/filter"
	"github.com/Sleepwalking/deadfish/internal/resample"
)

const (
	meterSampleRate = 48000
	absoluteGateLU  = -70.0
	relativeGateLU  = -10.0
)

var kWeightingSections = []filter.Section{
	filter.NewSection(
		[3]float64{1.5351248596, -2.6916961894, 1.1983928109},
		[3]float64{1.0, -1.6906592932, 0.7324807742},
	),
	filter.NewSection(
		[3]float64{1.0, -2.0, 1.0},
		[3]float64{1.0, -1.9900474548, 0.9900722504},
	),
}

// LoudnessMeasurement holds the integrated loudness and the ordered
// per-block instantaneous loudness sequence produced by the meter.
type LoudnessMeasurement struct {
	Integrated    float64
	Instantaneous []float64
	BlockStride   int // stride in samples at 48 kHz
}

// MeasureLoudness runs an ITU-R BS.1770-style K-weighted loudness
// measurement with absolute and relative gating. hopSamples is the block
// stride at the input's own sample rate.
func MeasureLoudness(x []float64, sampleRate int, hopSamples int) LoudnessMeasurement {
	resampled := resample.To(x, sampleRate, meterSampleRate)

	stride := hopSamples
	if sampleRate != meterSampleRate {
		stride = int(math.Round(float64(hopSamples) * float64(meterSampleRate) / float64(sampleRate)))
	}
	if stride < 1 {
		stride = 1
	}

	weighted := filter.Apply(resampled, kWeightingSections...)

	blockSize := 4 * stride
	nBlocks := (len(weighted) - blockSize) / stride
	if nBlocks < 1 {
		nBlocks = 1
	}

	z := make([]float64, nBlocks)
	l := make([]float64, nBlocks)
	for i := 0; i < nBlocks; i++ {
		// Block i spans [i*stride, i*stride+blockSize), centered at (i+2)*stride.
		start := i * stride
		end := start + blockSize
		var sum float64
		for j := start; j < end && j < len(weighted); j++ {
			sum += weighted[j] * weighted[j]
		}
		z[i] = sum / float64(blockSize)
		l[i] = instantaneousLoudness(z[i])
	}

	integrated := integratedLoudness(z, l)

	return LoudnessMeasurement{Integrated: integrated, Instantaneous: l, BlockStride: stride}
}

func instantaneousLoudness(z float64) float64 {
	if z <= 0 {
		return absoluteGateLU
	}
	return -0.691 + 10*math.Log10(z)
}

func integratedLoudness(z, l []float64) float64 {
	var absSum float64
	var absCount int
	for i := range z {
		if l[i] > absoluteGateLU {
			absSum += z[i]
			absCount++
		}
	}
	if absCount == 0 {
		return absoluteGateLU
	}

	absMean := absSum / float64(absCount)
	threshold := -0.691 + 10*math.Log10(absMean) + relativeGateLU

	var relSum float64
	var relCount int
	for i := range z {
		if l[i] > threshold {
			relSum += z[i]
			relCount++
		}
	}
	if relCount == 0 {
		return absoluteGateLU
	}

	relMean := relSum / float64(relCount)
	return -0.691 + 10*math.Log10(relMean)
}
