package media

import "errors"

// Sentinel errors for the failure kinds callers are expected to branch
// on. Everything else (raw I/O failures, permission errors) passes
// through as os/fs errors.
var (
	// ErrNotFound marks a source path that does not exist or is not a
	// regular file.
	ErrNotFound = errors.New("file not found")

	// ErrInvalidFolder marks a folder path that does not exist or is
	// not a directory.
	ErrInvalidFolder = errors.New("invalid folder path")

	// ErrUnsupportedFormat marks a file rejected before decoding, by
	// extension or by header validation.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrDecode marks a codec failure on an otherwise accepted file.
	// Decode failures are permanent faults and are never retried.
	ErrDecode = errors.New("image decode failed")
)
