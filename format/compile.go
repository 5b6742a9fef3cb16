// Package format implements the format-string compiler for structpack.
//
// A format string describes an ordered sequence of typed fields:
//
//	[=<>!]? ( [0-9]* [bBhHiIlLqQfdsot] )*
//
// An optional leading marker selects the byte order for the whole format
// ('=' native, '<' little, '>' big, '!' network/big; absent means native).
// Each field token is an optional decimal repeat count followed by a type
// character. Whitespace between tokens is ignored.
//
// Compile turns a format string into a CompiledFormat, the intermediate
// representation the codec package packs and unpacks against. Compilation
// is a pure function of the input string; CompileCached adds a small
// process-wide LRU on top for hot formats.
package format

import (
	"fmt"

	"github.com/arloliu/structpack/errs"
)

// MaxRepeat is the largest accepted repeat count. Larger counts are
// rejected with errs.ErrInvalidRepeatCount to bound the work a single
// format string can demand.
const MaxRepeat = 1 << 24

func kindOf(c byte) (FieldKind, bool) {
	switch c {
	case 'b':
		return KindInt8, true
	case 'B':
		return KindUint8, true
	case 'h':
		return KindInt16, true
	case 'H':
		return KindUint16, true
	case 'i', 'l':
		return KindInt32, true
	case 'I', 'L':
		return KindUint32, true
	case 'q':
		return KindInt64, true
	case 'Q':
		return KindUint64, true
	case 'f':
		return KindFloat32, true
	case 'd':
		return KindFloat64, true
	case 's':
		return KindCString, true
	case 'o':
		return KindBlob, true
	case 't':
		return KindTime, true
	default:
		return 0, false
	}
}

func isOrderMarker(c byte) bool {
	return c == '=' || c == '<' || c == '>' || c == '!'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Compile parses a format string into a CompiledFormat.
//
// It fails with an error wrapping errs.ErrFormat on any malformed input:
//   - errs.ErrMisplacedByteOrder: a byte-order marker after position 0
//   - errs.ErrInvalidRepeatCount: a repeat count with no type character,
//     or one exceeding MaxRepeat
//   - errs.ErrUnknownTypeChar: a character mapping to no field kind
//
// A repeat count of 0 (or an absent count) means 1. Compile is a pure
// function: the same input always yields the same result, and no call
// affects any other.
func Compile(format string) (*CompiledFormat, error) {
	cf := &CompiledFormat{Order: OrderNative}

	i := 0
	if len(format) > 0 {
		switch format[0] {
		case '=':
			cf.Order = OrderNative
			i++
		case '<':
			cf.Order = OrderLittle
			i++
		case '>', '!':
			cf.Order = OrderBig
			i++
		}
	}

	for i < len(format) {
		if isSpace(format[i]) {
			i++
			continue
		}

		repeat := uint64(0)
		hasCount := false
		for i < len(format) && format[i] >= '0' && format[i] <= '9' {
			hasCount = true
			repeat = repeat*10 + uint64(format[i]-'0')
			if repeat > MaxRepeat {
				return nil, fmt.Errorf("%w: repeat count at position %d exceeds %d: %w",
					errs.ErrFormat, i, MaxRepeat, errs.ErrInvalidRepeatCount)
			}
			i++
		}

		if hasCount && (i >= len(format) || isSpace(format[i])) {
			return nil, fmt.Errorf("%w: repeat count at position %d has no type character: %w",
				errs.ErrFormat, i, errs.ErrInvalidRepeatCount)
		}

		c := format[i]
		kind, ok := kindOf(c)
		if !ok {
			if isOrderMarker(c) {
				return nil, fmt.Errorf("%w: marker %q at position %d: %w",
					errs.ErrFormat, c, i, errs.ErrMisplacedByteOrder)
			}

			return nil, fmt.Errorf("%w: %q at position %d: %w",
				errs.ErrFormat, c, i, errs.ErrUnknownTypeChar)
		}
		i++

		// An explicit 0 count is tolerated and means a single field.
		if repeat == 0 {
			repeat = 1
		}

		cf.Fields = append(cf.Fields, FieldSpec{Repeat: uint32(repeat), Kind: kind})
	}

	return cf, nil
}
