// Package errs defines the sentinel errors shared by the structpack packages.
//
// All failure paths wrap one of these values with fmt.Errorf("...: %w", ...),
// so callers can classify failures with errors.Is without parsing messages.
package errs

import "errors"

// Format string compilation errors. Every compile failure wraps ErrFormat
// in addition to its specific sentinel, so errors.Is(err, ErrFormat)
// matches any malformed format string.
var (
	// ErrFormat is the category error for any malformed format string.
	ErrFormat = errors.New("malformed format string")

	// ErrMisplacedByteOrder indicates a byte-order marker (= < > !) found
	// anywhere other than position 0 of the format string.
	ErrMisplacedByteOrder = errors.New("byte-order marker only allowed at start of format")

	// ErrInvalidRepeatCount indicates a repeat count that is not followed by
	// a type character, or one that exceeds the supported maximum.
	ErrInvalidRepeatCount = errors.New("invalid repeat count")

	// ErrUnknownTypeChar indicates a character that maps to no field kind.
	ErrUnknownTypeChar = errors.New("unknown type character")
)

// Pack and unpack errors.
var (
	// ErrArityMismatch indicates the supplied value count does not match the
	// number of values the compiled format consumes.
	ErrArityMismatch = errors.New("value count does not match format")

	// ErrValueKindMismatch indicates a value whose kind tag does not match
	// the field it is being packed into.
	ErrValueKindMismatch = errors.New("value kind does not match field")

	// ErrValueOutOfRange indicates a numeric value that cannot be
	// represented in the target field width.
	ErrValueOutOfRange = errors.New("value out of range for field")

	// ErrBufferTooSmall indicates the destination buffer cannot hold the
	// encoded output at the requested offset.
	ErrBufferTooSmall = errors.New("destination buffer too small")

	// ErrBufferTooShort indicates the source buffer was exhausted before all
	// fields were decoded.
	ErrBufferTooShort = errors.New("source buffer too short")

	// ErrCorruptPadding indicates non-zero padding bytes found while
	// decoding in strict padding mode.
	ErrCorruptPadding = errors.New("corrupt padding bytes")
)

// Size computation errors.
var (
	// ErrUndefinedSize indicates a size query on a format containing
	// variable-length fields, whose encoded size is data-dependent.
	ErrUndefinedSize = errors.New("format has no static size")
)
