// Package errs defines the sentinel errors returned by stringwrite packages.
//
// Errors are wrapped with additional context using fmt.Errorf and the %w verb,
// so callers should match them with errors.Is:
//
//	if errors.Is(err, errs.ErrLengthValueMismatch) {
//	    // the batch is corrupted, nothing was decoded
//	}
package errs

import "errors"

var (
	// ErrInvalidArgument is returned for negative counts, malformed mask/length
	// combinations and unknown enum values.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrLengthValueMismatch is returned when the sum of a batch's lengths does not
	// equal the size of its value buffer. It is fatal: no decode is attempted.
	ErrLengthValueMismatch = errors.New("sum of lengths does not match value buffer size")

	// ErrRepresentationMismatch reports that decoded representations of the same
	// batch differ. The harness records it per iteration and keeps going.
	ErrRepresentationMismatch = errors.New("decoded representations differ")

	// ErrInvalidBatchFile is returned when a batch file header or payload is malformed.
	ErrInvalidBatchFile = errors.New("invalid batch file")

	// ErrChecksumMismatch is returned when a batch file payload fails checksum verification.
	ErrChecksumMismatch = errors.New("batch file checksum mismatch")
)
