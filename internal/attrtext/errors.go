package attrtext

import "errors"

// Errors returned by attributed text operations.
var (
	// ErrOffsetOutOfRange indicates an offset is outside the text.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid indicates an invalid range (e.g., end < start).
	ErrRangeInvalid = errors.New("invalid range")
)
