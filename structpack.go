// Package structpack converts between compact textual format strings and
// raw byte buffers, in the manner of packed binary structs.
//
// A format string describes an ordered sequence of typed fields with an
// optional leading byte-order marker:
//
//	[=<>!]? ( [0-9]* [bBhHiIlLqQfdsot] )*
//
// 'b'/'B' are signed/unsigned 1-byte integers, 'h'/'H' 2-byte, 'i'/'I' and
// 'l'/'L' 4-byte, 'q'/'Q' 8-byte, 'f'/'d' IEEE-754 single/double, 's' a
// null-terminated length-prefixed string, 'o' a length-prefixed blob, and
// 't' a fixed 14-byte time record. Digits before a type character repeat
// it, so "4h" and "hhhh" describe the same layout.
//
// # Basic Usage
//
// Packing values into a buffer:
//
//	import (
//	    "github.com/arloliu/structpack"
//	    "github.com/arloliu/structpack/codec"
//	)
//
//	buf, err := structpack.Pack("!his", codec.Int(1), codec.Int(2), codec.Str("name"))
//
// Unpacking a buffer into values:
//
//	values, err := structpack.Unpack("!his", buf)
//	n := values[0].Int()
//
// Computing the static size of a fixed-width layout:
//
//	size, err := structpack.CalcSize("<4h2i") // 16
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the format
// and codec packages, compiling format strings through a process-wide LRU
// cache. For repeated operations on a format you compile yourself, or for
// decode options such as strict padding validation, use the format and
// codec packages directly.
package structpack

import (
	"github.com/arloliu/structpack/codec"
	"github.com/arloliu/structpack/endian"
	"github.com/arloliu/structpack/format"
)

// Pack encodes the values against the format string and returns a newly
// allocated buffer.
//
// Exactly one value is consumed per field repetition, in order. It fails
// with an error wrapping errs.ErrFormat on a malformed format string,
// errs.ErrArityMismatch on a value count mismatch, errs.ErrValueKindMismatch
// on a wrong value kind, and errs.ErrValueOutOfRange on an unrepresentable
// numeric value.
//
// Example:
//
//	buf, err := structpack.Pack("<2hB", codec.Int(1), codec.Int(2), codec.Uint(3))
func Pack(fmtStr string, values ...codec.Value) ([]byte, error) {
	cf, err := format.CompileCached(fmtStr)
	if err != nil {
		return nil, err
	}

	return codec.Pack(cf, values)
}

// PackInto encodes the values into a caller-owned buffer starting at
// offset and returns the number of bytes written.
//
// In addition to Pack's failures it fails with errs.ErrBufferTooSmall if
// buf cannot hold the encoded output at that offset; nothing is written
// on any failure.
func PackInto(offset int, buf []byte, fmtStr string, values ...codec.Value) (int, error) {
	cf, err := format.CompileCached(fmtStr)
	if err != nil {
		return 0, err
	}

	return codec.PackInto(cf, offset, buf, values)
}

// Unpack decodes buf against the format string and returns one value per
// field repetition.
//
// It fails with an error wrapping errs.ErrFormat on a malformed format
// string and errs.ErrBufferTooShort if buf is exhausted before all fields
// are decoded.
func Unpack(fmtStr string, buf []byte) ([]codec.Value, error) {
	cf, err := format.CompileCached(fmtStr)
	if err != nil {
		return nil, err
	}

	return codec.Unpack(cf, buf)
}

// UnpackFrom decodes buf starting at offset and additionally returns the
// number of bytes consumed.
func UnpackFrom(offset int, buf []byte, fmtStr string) ([]codec.Value, int, error) {
	cf, err := format.CompileCached(fmtStr)
	if err != nil {
		return nil, 0, err
	}

	return codec.UnpackFrom(cf, offset, buf)
}

// CalcSize returns the total encoded size in bytes implied by the format
// string alone.
//
// It fails with errs.ErrUndefinedSize if the format contains
// variable-length fields ('s', 'o'), whose size depends on the values.
func CalcSize(fmtStr string) (int, error) {
	cf, err := format.CompileCached(fmtStr)
	if err != nil {
		return 0, err
	}

	return cf.StaticSize()
}

// NativeEndianness reports the host's byte order, probing it on first use.
// This is the order applied when a format has no byte-order marker (or the
// '=' marker).
func NativeEndianness() endian.Endianness {
	return endian.NativeEndianness()
}
