package ephem

import "errors"

// Decoding failures. Every malformed input maps to exactly one of these
// (possibly wrapped with positional detail); decoding never panics.
var (
	ErrTruncated          = errors.New("ephem: truncated input")
	ErrBadMagic           = errors.New("ephem: bad magic")
	ErrUnsupportedVersion = errors.New("ephem: unsupported format version")
	ErrBadKind            = errors.New("ephem: unknown dataset kind")
	ErrChecksum           = errors.New("ephem: checksum mismatch")
	ErrBadSegment         = errors.New("ephem: invalid segment record")
	ErrTrailing           = errors.New("ephem: trailing bytes")
)
