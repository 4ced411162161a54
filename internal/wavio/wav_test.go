package wavio

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func TestWriteReadRoundTrip16Bit(t *testing.T) {
	samples := []float64{0, 0.5, -0.5, 0.999, -1.0, 0.25}
	format := Format{SampleRate: 44100, BitsPerSample: 16}

	buf := &bytes.Buffer{}
	if err := Write(buf, samples, format); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, gotFormat, err := Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if gotFormat.SampleRate != 44100 || gotFormat.BitsPerSample != 16 {
		t.Fatalf("format mismatch: %+v", gotFormat)
	}
	if len(got) != len(samples) {
		t.Fatalf("length mismatch: got %d want %d", len(got), len(samples))
	}
	for i := range samples {
		if math.Abs(got[i]-samples[i]) > 1.0/maxValue16 {
			t.Fatalf("sample %d: got %v want %v", i, got[i], samples[i])
		}
	}
}

func TestWriteReadRoundTrip24Bit(t *testing.T) {
	samples := []float64{0, 0.5, -0.5, 0.25, -0.125}
	format := Format{SampleRate: 48000, BitsPerSample: 24}

	buf := &bytes.Buffer{}
	if err := Write(buf, samples, format); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, gotFormat, err := Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if gotFormat.BitsPerSample != 24 {
		t.Fatalf("expected 24-bit, got %d", gotFormat.BitsPerSample)
	}
	for i := range samples {
		if math.Abs(got[i]-samples[i]) > 1.0/maxValue24 {
			t.Fatalf("sample %d: got %v want %v", i, got[i], samples[i])
		}
	}
}

func TestReadRejectsNonWAV(t *testing.T) {
	buf := bytes.NewBufferString("not a wav file at all")
	if _, _, err := Read(buf); err == nil {
		t.Fatal("expected error for non-WAV input")
	}
}

func TestReadStereoDownmixesToMono(t *testing.T) {
	// Build a minimal stereo 16-bit WAV by hand: two frames, L/R pairs
	// (32767,-32768) and (16384,0), each downmixed by averaging channels.
	const sampleRate = 44100
	const bitsPerSample = 16
	frames := [][2]int16{
		{32767, -32768},
		{16384, 0},
	}

	buf := &bytes.Buffer{}
	buf.WriteString("RIFF")
	dataSize := len(frames) * 2 * 2
	_ = binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(buf, binary.LittleEndian, uint16(2)) // stereo
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate*4))
	_ = binary.Write(buf, binary.LittleEndian, uint16(4))
	_ = binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, uint32(dataSize))
	for _, f := range frames {
		_ = binary.Write(buf, binary.LittleEndian, f[0])
		_ = binary.Write(buf, binary.LittleEndian, f[1])
	}

	got, gotFormat, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if gotFormat.SampleRate != sampleRate {
		t.Fatalf("sample rate mismatch: got %d", gotFormat.SampleRate)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 mono samples, got %d", len(got))
	}

	want := []float64{(32767.0/maxValue16 + -32768.0/maxValue16) / 2, (16384.0/maxValue16 + 0.0) / 2}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1.0/maxValue16 {
			t.Fatalf("sample %d: got %v want %v", i, got[i], want[i])
		}
	}
}
