package deadfish

import (
	"fmt"
	"io"
	"math"

	pfault "github.com/farcloser/primordium/fault"

	"github.com/Sleepwalking/deadfish/internal/fault"
)

const (
	peakCompressorHopFraction     = 0.03
	loudnessCompressorHopFraction = 0.1
	loudnessMeterHopFraction      = 0.1
)

// WorkingState is the single mutable buffer and parameter set the
// executor owns for the lifetime of a run. denoise rate, smoothing
// bandwidth and the processing interval are read by each stage at the
// moment it executes, not frozen when the operation that follows them was
// appended to the chain.
type WorkingState struct {
	Samples       []float64
	SampleRate    int
	BitsPerSample int

	DenoiseRate        float64
	SmoothingBandwidth float64
	IntervalSec        float64
}

// NewWorkingState builds a WorkingState with the default global
// parameters.
func NewWorkingState(samples []float64, sampleRate, bitsPerSample int) *WorkingState {
	return &WorkingState{
		Samples:            samples,
		SampleRate:         sampleRate,
		BitsPerSample:      bitsPerSample,
		DenoiseRate:        1.0,
		SmoothingBandwidth: 500,
	}
}

// FileOpener abstracts opening the noise-profile file, so the executor
// can be exercised without touching the filesystem.
type FileOpener interface {
	OpenRead(path string) (io.ReadCloser, error)
	OpenWrite(path string) (io.WriteCloser, error)
}

// Run executes the operation chain in order against ws, writing any text
// reports to report. It returns the first stage error encountered,
// wrapped as fault.ErrStageFailed where the stage itself has no more
// specific sentinel.
func Run(ws *WorkingState, chain []Operation, files FileOpener, report io.Writer) error {
	for _, op := range chain {
		terminate, err := runOperation(ws, op, files, report)
		if err != nil {
			return err
		}
		if terminate {
			return nil
		}
	}
	return nil
}

func runOperation(ws *WorkingState, op Operation, files FileOpener, report io.Writer) (terminate bool, err error) {
	switch o := op.(type) {
	case AnalyzeOp:
		return true, runAnalyze(ws, o, files)

	case DenoiseOp:
		return false, runDenoise(ws, o, files)

	case CompressOp:
		return false, runCompress(ws, o)

	case NormalizeOp:
		return false, runNormalize(ws, o)

	case LPCOp:
		return false, runLPC(ws, o)

	case LoudnessOp:
		return false, runLoudnessReport(ws, report)

	case ThresholdOp:
		return false, runThresholdReport(ws, o, report)

	default:
		return false, fmt.Errorf("%w: unrecognized operation %T", fault.ErrStageFailed, op)
	}
}

func runAnalyze(ws *WorkingState, o AnalyzeOp, files FileOpener) error {
	geo := stftGeometry(ws.SampleRate, ws.IntervalSec)
	profile := AnalyzeNoiseProfile(ws.Samples, geo)
	profile.SampleRate = float32(ws.SampleRate)

	w, err := files.OpenWrite(o.ProfilePath)
	if err != nil {
		return fmt.Errorf("%w: %w", fault.ErrWriteFailure, err)
	}
	defer w.Close()

	return WriteNoiseProfile(w, profile)
}

func runDenoise(ws *WorkingState, o DenoiseOp, files FileOpener) error {
	geo := stftGeometry(ws.SampleRate, ws.IntervalSec)

	r, err := files.OpenRead(o.ProfilePath)
	if err != nil {
		return fmt.Errorf("%w: %w", pfault.ErrReadFailure, err)
	}
	defer r.Close()

	profile, err := ReadNoiseProfile(r, geo.Bins(), ws.SampleRate)
	if err != nil {
		return err
	}

	ws.Samples = Subtract(ws.Samples, profile, geo, ws.DenoiseRate, ws.SmoothingBandwidth, ws.SampleRate)
	return nil
}

func runCompress(ws *WorkingState, o CompressOp) error {
	fraction := peakCompressorHopFraction
	if o.LoudnessMode {
		fraction = loudnessCompressorHopFraction
	}
	hop := timeDomainHop(ws.SampleRate, fraction, ws.IntervalSec)
	if hop < 1 {
		return fmt.Errorf("%w: compressor hop resolved to %d samples", fault.ErrStageFailed, hop)
	}

	ws.Samples = Compress(ws.Samples, hop, o.Threshold, o.Damping, o.LoudnessMode, ws.SampleRate)
	return nil
}

func runNormalize(ws *WorkingState, o NormalizeOp) error {
	if o.LoudnessMode {
		ws.Samples = NormalizeLoudness(ws.Samples, o.Target, ws.SampleRate)
	} else {
		ws.Samples = NormalizePeak(ws.Samples, o.Target)
	}
	return nil
}

func runLPC(ws *WorkingState, o LPCOp) error {
	windowSamples := int(math.Round(o.WindowSec * float64(ws.SampleRate)))
	if windowSamples < o.Order+1 {
		return fmt.Errorf("%w: LPC window %d samples too short for order %d", fault.ErrStageFailed, windowSamples, o.Order)
	}

	var hopSamples int
	if ws.IntervalSec > 0 {
		hopSamples = int(math.Round(ws.IntervalSec * float64(ws.SampleRate)))
	}

	ws.Samples = InverseFilter(ws.Samples, o.Order, windowSamples, hopSamples)
	return nil
}

func runLoudnessReport(ws *WorkingState, report io.Writer) error {
	hop := timeDomainHop(ws.SampleRate, loudnessMeterHopFraction, ws.IntervalSec)
	m := MeasureLoudness(ws.Samples, ws.SampleRate, hop)

	if _, err := fmt.Fprintf(report, "Total = %f LKFS\n", m.Integrated); err != nil {
		return fmt.Errorf("%w: %w", fault.ErrWriteFailure, err)
	}

	blockSeconds := float64(m.BlockStride) / meterSampleRate
	for i, v := range m.Instantaneous {
		t := float64(i+2) * blockSeconds
		if _, err := fmt.Fprintf(report, "%f, %f LKFS\n", t, v); err != nil {
			return fmt.Errorf("%w: %w", fault.ErrWriteFailure, err)
		}
	}

	return nil
}

func runThresholdReport(ws *WorkingState, o ThresholdOp, report io.Writer) error {
	intervals := DetectThreshold(ws.Samples, o.Threshold, ws.SampleRate)
	for _, iv := range intervals {
		if _, err := fmt.Fprintf(report, "%f\t%f\n", iv.Begin, iv.End); err != nil {
			return fmt.Errorf("%w: %w", fault.ErrWriteFailure, err)
		}
	}
	return nil
}
