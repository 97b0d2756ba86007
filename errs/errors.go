// Package errs defines the sentinel errors shared by mensura packages.
//
// Errors fall into two groups:
//
//   - Precondition violations (negative variance, too few samples, malformed
//     covariance input). These indicate a programming error in the caller. The core
//     packages report them by panicking with an error that wraps one of the
//     sentinels below, so a recovering caller can still classify them with errors.Is.
//   - Input failures (malformed text, corrupted dataset containers). These are
//     returned as ordinary errors by the dataset package and friends.
package errs

import (
	"errors"
	"fmt"
)

// Precondition violations.
var (
	ErrNegativeVariance    = errors.New("variance must be non-negative")
	ErrInsufficientSamples = errors.New("insufficient samples")
	ErrCovarianceLength    = errors.New("covariance terms length mismatch")
	ErrArgumentCount       = errors.New("argument count mismatch")
	ErrLengthMismatch      = errors.New("sequence length mismatch")
)

// Input and dataset container errors.
var (
	ErrMalformedInput       = errors.New("malformed numeric input")
	ErrInvalidHeaderSize    = errors.New("invalid header size")
	ErrInvalidHeaderFlags   = errors.New("invalid header flags")
	ErrInvalidMagicNumber   = errors.New("invalid magic number")
	ErrInvalidIndexEntry    = errors.New("invalid index entry")
	ErrInvalidIndexOffsets  = errors.New("invalid index offsets")
	ErrInvalidNamesPayload  = errors.New("invalid series names payload")
	ErrChecksumMismatch     = errors.New("checksum mismatch")
	ErrInvalidPayload       = errors.New("invalid compressed payload")
	ErrOffsetOutOfRange     = errors.New("offset out of range")
	ErrInvalidSeriesName    = errors.New("invalid series name")
	ErrSeriesAlreadyStarted = errors.New("series already started")
	ErrSeriesNotStarted     = errors.New("no series started")
	ErrSeriesNotEnded       = errors.New("series not ended")
	ErrDuplicateSeries      = errors.New("duplicate series name")
	ErrHashCollision        = errors.New("series name hash collision")
	ErrNoSeriesAdded        = errors.New("no series added")
	ErrSeriesNotFound       = errors.New("series not found")
	ErrValueCountMismatch   = errors.New("value count mismatch")
	ErrEncoderFinished      = errors.New("encoder already finished")
)

// Violation panics with an error wrapping sentinel. It is used by the core
// packages for contract violations that are not recoverable at runtime.
func Violation(sentinel error, format string, args ...any) {
	panic(fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)))
}
