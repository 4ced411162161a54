package deadfish

import "math"

// Interval is a detected [begin,end] region in seconds where the
// waveform's absolute sample value stayed at or above a threshold; End is
// the time of the last sample in the region.
type Interval struct {
	Begin float64
	End   float64
}

// DetectThreshold runs a single pass over x, recording each contiguous
// region where |sample| >= threshold. A region still open at the end of
// the buffer is not emitted.
func DetectThreshold(x []float64, threshold float64, sampleRate int) []Interval {
	var intervals []Interval

	inside := false
	var begin int

	for i, v := range x {
		if !inside {
			if math.Abs(v) >= threshold {
				inside = true
				begin = i
			}
			continue
		}

		if math.Abs(v) < threshold {
			intervals = append(intervals, Interval{
				Begin: float64(begin) / float64(sampleRate),
				End:   float64(i-1) / float64(sampleRate),
			})
			inside = false
		}
	}

	return intervals
}
