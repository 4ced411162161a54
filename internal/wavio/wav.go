// Package wavio reads and writes mono 16/24/32-bit PCM WAV files. Stereo
// input is mixed down to mono by averaging channels.
package wavio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	pfault "github.com/farcloser/primordium/fault"

	"github.com/Sleepwalking/deadfish/internal/fault"
)

// Format describes the container properties preserved through the chain.
type Format struct {
	SampleRate    int
	BitsPerSample int
}

const (
	maxValue16 = 32768.0
	maxValue24 = 8388608.0
	maxValue32 = 2147483648.0
)

// Read parses a PCM WAV stream, returning samples normalized to [-1,1]
// and the container format.
func Read(r io.Reader) ([]float64, Format, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Format{}, fmt.Errorf("%w: %w", pfault.ErrReadFailure, err)
	}

	if len(data) < 12 {
		return nil, Format{}, fmt.Errorf("%w: file too short", pfault.ErrReadFailure)
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, Format{}, fmt.Errorf("%w: not a WAV file", pfault.ErrReadFailure)
	}

	var (
		format      Format
		numChannels int
		pcm         []byte
		haveFmt     bool
	)

	pos := 12
	for pos+8 <= len(data) {
		chunkID := string(data[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		start := pos + 8

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 || start+16 > len(data) {
				return nil, Format{}, fmt.Errorf("%w: truncated fmt chunk", pfault.ErrReadFailure)
			}
			audioFormat := binary.LittleEndian.Uint16(data[start : start+2])
			if audioFormat != 1 {
				return nil, Format{}, fmt.Errorf("%w: unsupported audio format %d", pfault.ErrReadFailure, audioFormat)
			}
			numChannels = int(binary.LittleEndian.Uint16(data[start+2 : start+4]))
			format.SampleRate = int(binary.LittleEndian.Uint32(data[start+4 : start+8]))
			format.BitsPerSample = int(binary.LittleEndian.Uint16(data[start+14 : start+16]))
			haveFmt = true

		case "data":
			end := start + chunkSize
			if end > len(data) {
				end = len(data)
			}
			pcm = data[start:end]
		}

		pos = start + chunkSize
		if chunkSize%2 != 0 {
			pos++
		}
	}

	if !haveFmt {
		return nil, Format{}, fmt.Errorf("%w: no fmt chunk", pfault.ErrReadFailure)
	}
	if pcm == nil {
		return nil, Format{}, fmt.Errorf("%w: no data chunk", pfault.ErrReadFailure)
	}

	samples, err := decodePCM(pcm, format.BitsPerSample, numChannels)
	if err != nil {
		return nil, Format{}, err
	}

	return samples, format, nil
}

func decodePCM(pcm []byte, bitsPerSample, numChannels int) ([]float64, error) {
	if numChannels < 1 {
		numChannels = 1
	}

	bytesPerSample := bitsPerSample / 8
	frameSize := bytesPerSample * numChannels
	if frameSize == 0 {
		return nil, fmt.Errorf("%w: unsupported bit depth %d", pfault.ErrReadFailure, bitsPerSample)
	}

	numFrames := len(pcm) / frameSize
	mono := make([]float64, numFrames)

	for i := 0; i < numFrames; i++ {
		var sum float64
		base := i * frameSize
		for ch := 0; ch < numChannels; ch++ {
			off := base + ch*bytesPerSample
			var v float64
			switch bitsPerSample {
			case 16:
				v = float64(int16(binary.LittleEndian.Uint16(pcm[off:]))) / maxValue16
			case 24:
				raw := int32(pcm[off]) | int32(pcm[off+1])<<8 | int32(pcm[off+2])<<16
				if raw&0x800000 != 0 {
					raw |= ^0xFFFFFF
				}
				v = float64(raw) / maxValue24
			case 32:
				v = float64(int32(binary.LittleEndian.Uint32(pcm[off:]))) / maxValue32
			default:
				return nil, fmt.Errorf("%w: unsupported bit depth %d", pfault.ErrReadFailure, bitsPerSample)
			}
			sum += v
		}
		mono[i] = sum / float64(numChannels)
	}

	return mono, nil
}

// Write encodes mono samples (in [-1,1]) as a PCM WAV file at the given
// format's sample rate and bit depth.
func Write(w io.Writer, samples []float64, format Format) error {
	bitsPerSample := format.BitsPerSample
	if bitsPerSample == 0 {
		bitsPerSample = 16
	}
	bytesPerSample := bitsPerSample / 8

	dataSize := len(samples) * bytesPerSample
	fileSize := 36 + dataSize

	buf := &bytes.Buffer{}
	buf.Grow(44 + dataSize)

	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, uint32(fileSize)) //nolint:gosec // bounded by caller-provided buffer sizes
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(buf, binary.LittleEndian, uint16(1)) // mono
	_ = binary.Write(buf, binary.LittleEndian, uint32(format.SampleRate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(format.SampleRate*bytesPerSample))
	_ = binary.Write(buf, binary.LittleEndian, uint16(bytesPerSample))     //nolint:gosec // bit depth is a small constant
	_ = binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample)) //nolint:gosec // bit depth is a small constant

	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, uint32(dataSize)) //nolint:gosec // bounded by caller-provided buffer sizes

	for _, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}

		switch bitsPerSample {
		case 16:
			_ = binary.Write(buf, binary.LittleEndian, int16(math.Min(math.Round(s*maxValue16), maxValue16-1)))
		case 24:
			v := int32(math.Min(math.Round(s*maxValue24), maxValue24-1))
			buf.WriteByte(byte(v))
			buf.WriteByte(byte(v >> 8))
			buf.WriteByte(byte(v >> 16))
		case 32:
			_ = binary.Write(buf, binary.LittleEndian, int32(math.Min(math.Round(s*maxValue32), maxValue32-1)))
		default:
			return fmt.Errorf("%w: unsupported bit depth %d", fault.ErrWriteFailure, bitsPerSample)
		}
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", fault.ErrWriteFailure, err)
	}

	return nil
}
