// Package transform provides the framed short-time Fourier transform and
// its inverse, backed by gonum's real-input FFT.
package transform

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/Sleepwalking/deadfish/internal/window"
)

// Geometry describes one STFT analysis/synthesis configuration.
type Geometry struct {
	Hop         int // hop size in samples
	OverlapFact int // window length = Hop * OverlapFact
	PadFact     int // FFT length = window length * PadFact
}

// WindowLen is the analysis/synthesis window length in samples.
func (g Geometry) WindowLen() int { return g.Hop * g.OverlapFact }

// FFTLen is the zero-padded transform length.
func (g Geometry) FFTLen() int { return g.WindowLen() * g.PadFact }

// Bins is the number of retained (non-redundant) spectral bins, FFT/2+1.
func (g Geometry) Bins() int { return g.FFTLen()/2 + 1 }

// Frame holds one analysis frame's magnitude and phase spectrum.
type Frame struct {
	Magnitude []float64
	Phase     []float64
}

// Result is the outcome of a forward STFT analysis.
type Result struct {
	Frames     []Frame
	NormFactor float64 // sum(window^2), the analysis window's total energy
	Geometry   Geometry
	Length     int // original signal length, needed to invert exactly
}

// Analyze computes the STFT of x using frame count floor(len(x)/hop),
// frame i centered at i*hop. Frames extending past the buffer edges are
// zero-padded.
func Analyze(x []float64, geo Geometry) Result {
	windowLen := geo.WindowLen()
	nfft := geo.FFTLen()
	w := window.Hann(windowLen)
	normFactor := window.SumSquares(w)

	nfrm := len(x) / geo.Hop
	fft := fourier.NewFFT(nfft)

	frames := make([]Frame, nfrm)
	buf := make([]float64, nfft)

	for i := 0; i < nfrm; i++ {
		center := i * geo.Hop
		start := center - windowLen/2

		for j := range buf {
			buf[j] = 0
		}
		for j := 0; j < windowLen; j++ {
			idx := start + j
			if idx >= 0 && idx < len(x) {
				buf[j] = x[idx] * w[j]
			}
		}

		coeffs := fft.Coefficients(nil, buf)

		mag := make([]float64, len(coeffs))
		phase := make([]float64, len(coeffs))
		for k, c := range coeffs {
			mag[k] = cmplx.Abs(c)
			phase[k] = cmplx.Phase(c)
		}

		frames[i] = Frame{Magnitude: mag, Phase: phase}
	}

	return Result{Frames: frames, NormFactor: normFactor, Geometry: geo, Length: len(x)}
}

// Synthesize reconstructs a waveform of length outLen from magnitude/phase
// frames via windowed overlap-add, normalized per-sample by the accumulated
// squared-window energy (falling back to normFactor at the edges where the
// accumulated energy is negligible).
func Synthesize(frames []Frame, geo Geometry, normFactor float64, outLen int) []float64 {
	windowLen := geo.WindowLen()
	nfft := geo.FFTLen()
	w := window.Hann(windowLen)
	ifft := fourier.NewFFT(nfft)

	out := make([]float64, outLen)
	winSum := make([]float64, outLen)

	coeffs := make([]complex128, geo.Bins())

	// gonum's inverse transform is unnormalized: Sequence(Coefficients(x))
	// returns x scaled by the FFT length.
	scale := 1 / float64(nfft)

	for i, fr := range frames {
		center := i * geo.Hop
		start := center - windowLen/2

		for k := range coeffs {
			coeffs[k] = cmplx.Rect(fr.Magnitude[k], fr.Phase[k])
		}

		td := ifft.Sequence(nil, coeffs)

		for j := 0; j < windowLen; j++ {
			idx := start + j
			if idx >= 0 && idx < outLen {
				out[idx] += td[j] * scale * w[j]
				winSum[idx] += w[j] * w[j]
			}
		}
	}

	const eps = 1e-8
	for i := range out {
		denom := winSum[i]
		if denom < eps {
			denom = normFactor
		}
		if denom > eps {
			out[i] /= denom
		}
	}

	return out
}
