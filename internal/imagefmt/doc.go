// Package imagefmt classifies image files by extension and by binary
// header magic numbers.
//
// The supported set is closed: JPEG, PNG, WebP, and GIF. Extension checks
// are pure string operations so unsupported paths are rejected before any
// I/O; header validation reads a small fixed prefix and hard-rejects
// files whose magic bytes are unrecognized or disagree with the
// extension.
package imagefmt
