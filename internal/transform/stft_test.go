package transform

import (
	"math"
	"testing"
)

func sineWave(n int, freq, fs, amp float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/fs)
	}
	return x
}

func TestAnalyzeSynthesizeRoundTrip(t *testing.T) {
	fs := 44100.0
	x := sineWave(44100, 1000, fs, 0.5)

	geo := Geometry{Hop: 256, OverlapFact: 4, PadFact: 2}
	res := Analyze(x, geo)
	y := Synthesize(res.Frames, geo, res.NormFactor, len(x))

	// Edge frames have partial window support; compare the well-supported
	// interior only.
	edge := geo.WindowLen() * 2
	var maxDiff float64
	for i := edge; i < len(x)-edge; i++ {
		d := math.Abs(x[i] - y[i])
		if d > maxDiff {
			maxDiff = d
		}
	}

	if maxDiff > 1e-6 {
		t.Fatalf("round-trip STFT/iSTFT diverged: max diff %v", maxDiff)
	}
}

func TestAnalyzeBinCount(t *testing.T) {
	geo := Geometry{Hop: 256, OverlapFact: 4, PadFact: 2}
	if got, want := geo.FFTLen(), 2048; got != want {
		t.Fatalf("expected fft len %d, got %d", want, got)
	}
	if got, want := geo.Bins(), 1025; got != want {
		t.Fatalf("expected %d bins, got %d", want, got)
	}

	x := make([]float64, 44100)
	res := Analyze(x, geo)
	for _, fr := range res.Frames {
		if len(fr.Magnitude) != geo.Bins() {
			t.Fatalf("expected %d magnitude bins, got %d", geo.Bins(), len(fr.Magnitude))
		}
	}
}
