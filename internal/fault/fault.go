// Package fault holds the sentinel errors the chain executor wraps with
// %w, so callers can classify a failure with errors.Is without parsing
// message text. Read failures use primordium/fault.ErrReadFailure
// directly; there is no equivalent write-failure sentinel upstream, so
// this package supplies one styled the same way, alongside the chain's
// own stage-level sentinels.
package fault

import "errors"

var (
	// ErrWriteFailure covers any failure writing the output waveform or a
	// noise-profile file.
	ErrWriteFailure = errors.New("write failure")

	// ErrProfileMismatch means the noise-profile file's size or stored
	// sample rate does not match the current run's geometry.
	ErrProfileMismatch = errors.New("invalid noise profile")

	// ErrParamParse means a comma-separated operation argument was
	// malformed.
	ErrParamParse = errors.New("parameter parse failure")

	// ErrStageFailed means a stage in the operation chain reported
	// failure and aborted the run.
	ErrStageFailed = errors.New("stage failed")
)
