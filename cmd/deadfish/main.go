// Command deadfish runs the offline audio post-processing chain: noise
// profiling, spectral denoising, compression, LPC inverse filtering,
// normalization, loudness measurement and threshold detection, composed
// in the order their flags appear on the command line.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Sleepwalking/deadfish"
	"github.com/Sleepwalking/deadfish/internal/wavio"
)

const usageText = `usage: deadfish [options] [input] [output]

  -a path          analyze noise profile, write to path
  -d path          denoise using profile read from path
  -r rate          set denoise rate (default 1.0)
  -s bandwidth     set smoothing bandwidth in Hz (default 500)
  -c thr,damp[,k]  append compressor (",k" selects loudness mode)
  -n max[,k]       append normalizer (",k" selects loudness mode)
  -I order,win_s   append LPC inverse filter
  -l               append loudness measurement
  -t threshold     append amplitude threshold detector
  -i seconds       set processing interval (the last -i applies to every stage)
  -h               print this message

input/output default to stdin/stdout; an output path of "-n" suppresses
writing the processed waveform.`

func main() {
	ctx := context.Background()

	appl := &cli.Command{
		Name:            "deadfish",
		Usage:           "offline audio post-processing pipeline",
		Version:         "1.0.0",
		SkipFlagParsing: true,
		Action: func(_ context.Context, cmd *cli.Command) error {
			return run(cmd.Args().Slice())
		},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	parsed, err := parseArgs(args)
	if err != nil {
		return err
	}

	if parsed.usage {
		fmt.Fprintln(os.Stderr, usageText)
		os.Exit(1)
	}

	input, err := openInput(parsed.inputPath)
	if err != nil {
		return err
	}
	defer input.Close()

	samples, format, err := wavio.Read(input)
	if err != nil {
		return err
	}

	ws := deadfish.NewWorkingState(samples, format.SampleRate, format.BitsPerSample)
	if parsed.denoiseSet {
		ws.DenoiseRate = parsed.denoise
	}
	if parsed.smoothSet {
		ws.SmoothingBandwidth = parsed.smooth
	}
	if parsed.intervalSet {
		ws.IntervalSec = parsed.interval
	}

	if err := deadfish.Run(ws, parsed.chain, osFileOpener{}, os.Stdout); err != nil {
		return err
	}

	if parsed.outputPath == "-n" {
		return nil
	}

	output, err := openOutput(parsed.outputPath)
	if err != nil {
		return err
	}
	defer output.Close()

	return wavio.Write(output, ws.Samples, format)
}

func openInput(path string) (*inputStream, error) {
	if path == "" {
		return &inputStream{ReadCloser: os.Stdin, owned: false}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &inputStream{ReadCloser: f, owned: true}, nil
}

func openOutput(path string) (*outputStream, error) {
	if path == "" {
		return &outputStream{WriteCloser: os.Stdout, owned: false}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &outputStream{WriteCloser: f, owned: true}, nil
}
