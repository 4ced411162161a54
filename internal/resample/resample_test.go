package resample

import (
	"math"
	"testing"
)

func TestToIdentityWhenRatesEqual(t *testing.T) {
	x := []float64{0.1, -0.2, 0.3, -0.4}
	y := To(x, 44100, 44100)
	if len(y) != len(x) {
		t.Fatalf("expected same length, got %d vs %d", len(y), len(x))
	}
	for i := range x {
		if x[i] != y[i] {
			t.Fatalf("sample %d: expected %v, got %v", i, x[i], y[i])
		}
	}
}

func TestToPreservesDCLevel(t *testing.T) {
	x := make([]float64, 2000)
	for i := range x {
		x[i] = 0.5
	}

	y := To(x, 44100, 48000)

	// Ignore filter ramp-up/down at the edges; check the interior settles
	// near the DC input level.
	var sum float64
	count := 0
	for i := len(y) / 4; i < 3*len(y)/4; i++ {
		sum += y[i]
		count++
	}
	mean := sum / float64(count)

	if math.Abs(mean-0.5) > 0.05 {
		t.Fatalf("expected resampled DC level near 0.5, got %v", mean)
	}
}

func TestToChangesLengthByRateRatio(t *testing.T) {
	x := make([]float64, 44100)
	y := To(x, 44100, 48000)
	wantApprox := 48000
	if math.Abs(float64(len(y)-wantApprox)) > 100 {
		t.Fatalf("expected length near %d, got %d", wantApprox, len(y))
	}
}
