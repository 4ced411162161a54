package deadfish

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	pfault "github.com/farcloser/primordium/fault"

	"github.com/Sleepwalking/deadfish/internal/fault"
)

// NoiseProfile is the per-bin mean-squared-magnitude estimate written by
// the analyzer and consumed by the subtractor.
type NoiseProfile struct {
	SampleRate float32
	Power      []float64
}

// WriteNoiseProfile encodes a profile as little-endian sample rate
// followed by one float32 per bin.
func WriteNoiseProfile(w io.Writer, p NoiseProfile) error {
	if err := binary.Write(w, binary.LittleEndian, p.SampleRate); err != nil {
		return fmt.Errorf("%w: %w", fault.ErrWriteFailure, err)
	}
	for _, v := range p.Power {
		if err := binary.Write(w, binary.LittleEndian, float32(v)); err != nil {
			return fmt.Errorf("%w: %w", fault.ErrWriteFailure, err)
		}
	}
	return nil
}

// ReadNoiseProfile decodes a profile and validates it against the bin
// count and sample rate the current run expects.
func ReadNoiseProfile(r io.Reader, wantBins int, wantSampleRate int) (NoiseProfile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return NoiseProfile{}, fmt.Errorf("%w: %w", pfault.ErrReadFailure, err)
	}

	wantSize := 4 * (wantBins + 1)
	if len(data) != wantSize {
		return NoiseProfile{}, fmt.Errorf("%w: file size %d bytes implies a different bin count than expected %d bytes",
			fault.ErrProfileMismatch, len(data), wantSize)
	}

	sampleRate := math.Float32frombits(binary.LittleEndian.Uint32(data[0:4]))
	if sampleRate != float32(wantSampleRate) {
		return NoiseProfile{}, fmt.Errorf("%w: stored sample rate %v does not match current sample rate %d",
			fault.ErrProfileMismatch, sampleRate, wantSampleRate)
	}

	power := make([]float64, wantBins)
	for i := 0; i < wantBins; i++ {
		off := 4 + i*4
		power[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off : off+4])))
	}

	return NoiseProfile{SampleRate: sampleRate, Power: power}, nil
}
