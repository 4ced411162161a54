package deadfish

import (
	"bytes"
	"testing"
)

func TestNoiseProfileRoundTrip(t *testing.T) {
	p := NoiseProfile{SampleRate: 44100, Power: []float64{1, 2, 3, 4, 5}}

	buf := &bytes.Buffer{}
	if err := WriteNoiseProfile(buf, p); err != nil {
		t.Fatalf("WriteNoiseProfile: %v", err)
	}

	got, err := ReadNoiseProfile(buf, len(p.Power), 44100)
	if err != nil {
		t.Fatalf("ReadNoiseProfile: %v", err)
	}
	if got.SampleRate != p.SampleRate {
		t.Fatalf("sample rate mismatch: got %v want %v", got.SampleRate, p.SampleRate)
	}
	if len(got.Power) != len(p.Power) {
		t.Fatalf("bin count mismatch: got %d want %d", len(got.Power), len(p.Power))
	}
	for i := range p.Power {
		if got.Power[i] != p.Power[i] {
			t.Fatalf("bin %d: got %v want %v", i, got.Power[i], p.Power[i])
		}
	}
}

func TestNoiseProfileRejectsSizeMismatch(t *testing.T) {
	p := NoiseProfile{SampleRate: 44100, Power: []float64{1, 2, 3}}
	buf := &bytes.Buffer{}
	if err := WriteNoiseProfile(buf, p); err != nil {
		t.Fatalf("WriteNoiseProfile: %v", err)
	}

	if _, err := ReadNoiseProfile(buf, 5, 44100); err == nil {
		t.Fatal("expected a bin count mismatch error")
	}
}

func TestNoiseProfileRejectsSampleRateMismatch(t *testing.T) {
	p := NoiseProfile{SampleRate: 44100, Power: []float64{1, 2, 3}}
	buf := &bytes.Buffer{}
	if err := WriteNoiseProfile(buf, p); err != nil {
		t.Fatalf("WriteNoiseProfile: %v", err)
	}

	if _, err := ReadNoiseProfile(buf, 3, 48000); err == nil {
		t.Fatal("expected a sample rate mismatch error")
	}
}
