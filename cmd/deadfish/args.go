package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Sleepwalking/deadfish"
	"github.com/Sleepwalking/deadfish/internal/fault"
)

// parsedRun is the result of scanning argv into an operation chain and
// the global parameter overrides. Argument parsing finishes in full
// before any stage runs (mirroring getopt completing before the dispatch
// loop starts), so -r/-s/-i take their LAST parsed value for every stage
// in the chain, not the value in effect at the position each flag
// appeared relative to the operations around it.
type parsedRun struct {
	chain []deadfish.Operation

	denoiseSet  bool
	denoise     float64
	smoothSet   bool
	smooth      float64
	intervalSet bool
	interval    float64

	inputPath  string
	outputPath string
	usage      bool
}

// parseArgs scans argv in getopt-style single-character flag order,
// building the operation chain in the order flags are encountered.
// Flag parsing stops at the first token that is not one of the
// recognized flags; all remaining tokens are positional (input, output).
func parseArgs(args []string) (*parsedRun, error) {
	run := &parsedRun{}

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-h":
			run.usage = true
			return run, nil

		case "-a":
			path, err := requireArg(args, i, "-a")
			if err != nil {
				return nil, err
			}
			run.chain = append(run.chain, deadfish.AnalyzeOp{ProfilePath: path})
			i += 2

		case "-d":
			path, err := requireArg(args, i, "-d")
			if err != nil {
				return nil, err
			}
			run.chain = append(run.chain, deadfish.DenoiseOp{ProfilePath: path})
			i += 2

		case "-r":
			v, err := requireFloatArg(args, i, "-r")
			if err != nil {
				return nil, err
			}
			run.denoiseSet = true
			run.denoise = v
			i += 2

		case "-s":
			v, err := requireFloatArg(args, i, "-s")
			if err != nil {
				return nil, err
			}
			run.smoothSet = true
			run.smooth = v
			i += 2

		case "-c":
			raw, err := requireArg(args, i, "-c")
			if err != nil {
				return nil, err
			}
			op, err := parseCompressArg(raw)
			if err != nil {
				return nil, err
			}
			run.chain = append(run.chain, op)
			i += 2

		case "-n":
			raw, err := requireArg(args, i, "-n")
			if err != nil {
				return nil, err
			}
			op, err := parseNormalizeArg(raw)
			if err != nil {
				return nil, err
			}
			run.chain = append(run.chain, op)
			i += 2

		case "-I":
			raw, err := requireArg(args, i, "-I")
			if err != nil {
				return nil, err
			}
			op, err := parseLPCArg(raw)
			if err != nil {
				return nil, err
			}
			run.chain = append(run.chain, op)
			i += 2

		case "-l":
			run.chain = append(run.chain, deadfish.LoudnessOp{})
			i++

		case "-t":
			v, err := requireFloatArg(args, i, "-t")
			if err != nil {
				return nil, err
			}
			run.chain = append(run.chain, deadfish.ThresholdOp{Threshold: v})
			i += 2

		case "-i":
			v, err := requireFloatArg(args, i, "-i")
			if err != nil {
				return nil, err
			}
			run.intervalSet = true
			run.interval = v
			i += 2

		default:
			// First non-flag token: everything from here on is
			// positional.
			positionals := args[i:]
			if len(positionals) > 0 {
				run.inputPath = positionals[0]
			}
			if len(positionals) > 1 {
				run.outputPath = positionals[1]
			}
			return run, nil
		}
	}

	return run, nil
}

func requireArg(args []string, i int, flag string) (string, error) {
	if i+1 >= len(args) {
		return "", fmt.Errorf("%w: %s requires an argument", fault.ErrParamParse, flag)
	}
	return args[i+1], nil
}

func requireFloatArg(args []string, i int, flag string) (float64, error) {
	raw, err := requireArg(args, i, flag)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s argument %q is not a number", fault.ErrParamParse, flag, raw)
	}
	return v, nil
}

func parseCompressArg(raw string) (deadfish.CompressOp, error) {
	parts := strings.Split(raw, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return deadfish.CompressOp{}, fmt.Errorf("%w: -c expects thr,damp[,k], got %q", fault.ErrParamParse, raw)
	}
	thr, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return deadfish.CompressOp{}, fmt.Errorf("%w: -c threshold %q is not a number", fault.ErrParamParse, parts[0])
	}
	damp, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return deadfish.CompressOp{}, fmt.Errorf("%w: -c damping %q is not a number", fault.ErrParamParse, parts[1])
	}
	loudnessMode := len(parts) == 3 && parts[2] == "k"
	return deadfish.CompressOp{Threshold: thr, Damping: damp, LoudnessMode: loudnessMode}, nil
}

func parseNormalizeArg(raw string) (deadfish.NormalizeOp, error) {
	parts := strings.Split(raw, ",")
	if len(parts) < 1 || len(parts) > 2 {
		return deadfish.NormalizeOp{}, fmt.Errorf("%w: -n expects max[,k], got %q", fault.ErrParamParse, raw)
	}
	target, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return deadfish.NormalizeOp{}, fmt.Errorf("%w: -n target %q is not a number", fault.ErrParamParse, parts[0])
	}
	loudnessMode := len(parts) == 2 && parts[1] == "k"
	return deadfish.NormalizeOp{Target: target, LoudnessMode: loudnessMode}, nil
}

func parseLPCArg(raw string) (deadfish.LPCOp, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return deadfish.LPCOp{}, fmt.Errorf("%w: -I expects order,window_sec, got %q", fault.ErrParamParse, raw)
	}
	order, err := strconv.Atoi(parts[0])
	if err != nil {
		return deadfish.LPCOp{}, fmt.Errorf("%w: -I order %q is not an integer", fault.ErrParamParse, parts[0])
	}
	windowSec, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return deadfish.LPCOp{}, fmt.Errorf("%w: -I window %q is not a number", fault.ErrParamParse, parts[1])
	}
	return deadfish.LPCOp{Order: order, WindowSec: windowSec}, nil
}
