package evenodd

import "errors"

// Sentinel error kinds. Callers use errors.Is against these to classify a
// failure without parsing message text; the CLI dispatcher maps them to
// process exit codes.
var (
	// ErrBadArgument marks an invalid p, k, or other caller-supplied value.
	ErrBadArgument = errors.New("evenodd: bad argument")

	// ErrAlreadyExists marks a write whose logical target already exists.
	ErrAlreadyExists = errors.New("evenodd: logical file already exists")

	// ErrNotFound marks a logical file absent on every unit.
	ErrNotFound = errors.New("evenodd: logical file not found")

	// ErrTooManyFailures marks more than two missing units for one file.
	ErrTooManyFailures = errors.New("evenodd: too many unit failures")

	// ErrIoFailure marks an underlying storage error unrelated to erasure.
	ErrIoFailure = errors.New("evenodd: storage io failure")

	// ErrCorruptMetadata marks a header unreadable on every surviving unit.
	ErrCorruptMetadata = errors.New("evenodd: corrupt metadata")
)
