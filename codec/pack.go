package codec

import (
	"fmt"
	"math"

	"github.com/arloliu/structpack/endian"
	"github.com/arloliu/structpack/errs"
	"github.com/arloliu/structpack/format"
	"github.com/arloliu/structpack/internal/pool"
)

const varLengthPrefixSize = 4

// varPadding returns the number of trailing zero bytes for a variable-length
// field with content length n: always at least 1, chosen so (n+r) % 4 == 0.
func varPadding(n int) int {
	return 4 - (n & 3)
}

func orderEngine(order format.ByteOrder) endian.EndianEngine {
	switch order {
	case format.OrderLittle:
		return endian.GetLittleEndianEngine()
	case format.OrderBig:
		return endian.GetBigEndianEngine()
	default:
		return endian.NativeEngine()
	}
}

func checkArity(cf *format.CompiledFormat, values []Value) error {
	if want := cf.NumValues(); len(values) != want {
		return fmt.Errorf("format consumes %d values, got %d: %w", want, len(values), errs.ErrArityMismatch)
	}

	return nil
}

// EncodedSize returns the exact number of bytes Pack would produce for the
// given format and value list.
//
// It fails with errs.ErrArityMismatch if the value count does not match the
// format, and with errs.ErrValueKindMismatch if a variable-length field is
// paired with a value of the wrong kind (fixed-width sizes do not depend on
// the value, so their kinds are only checked when packing).
func EncodedSize(cf *format.CompiledFormat, values []Value) (int, error) {
	if err := checkArity(cf, values); err != nil {
		return 0, err
	}

	size := 0
	vi := 0
	for _, spec := range cf.Fields {
		for range spec.Repeat {
			v := values[vi]
			vi++

			switch spec.Kind {
			case format.KindCString:
				if v.Kind() != ValueStr {
					return 0, fmt.Errorf("value %d: field %s needs %s, got %s: %w",
						vi-1, spec.Kind, ValueStr, v.Kind(), errs.ErrValueKindMismatch)
				}
				n := len(v.Str())
				size += varLengthPrefixSize + n + varPadding(n)
			case format.KindBlob:
				if v.Kind() != ValueBytes {
					return 0, fmt.Errorf("value %d: field %s needs %s, got %s: %w",
						vi-1, spec.Kind, ValueBytes, v.Kind(), errs.ErrValueKindMismatch)
				}
				n := len(v.Bytes())
				size += varLengthPrefixSize + n + varPadding(n)
			default:
				size += spec.Kind.Width()
			}
		}
	}

	return size, nil
}

// Pack encodes the value list against the compiled format and returns a
// newly allocated buffer.
//
// Exactly one value is consumed per field repetition, in order. Failures:
// errs.ErrArityMismatch (value count), errs.ErrValueKindMismatch (wrong
// union tag for a field), errs.ErrValueOutOfRange (numeric value not
// representable in the field width). Output is deterministic: the same
// format and values always produce byte-identical output, and padding
// bytes are always zero.
func Pack(cf *format.CompiledFormat, values []Value) ([]byte, error) {
	if err := checkArity(cf, values); err != nil {
		return nil, err
	}

	bb := pool.GetPackBuffer()
	defer pool.PutPackBuffer(bb)

	if err := encodeInto(bb, cf, values); err != nil {
		return nil, err
	}

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out, nil
}

// PackInto encodes the value list into a caller-owned buffer starting at
// offset and returns the number of bytes written.
//
// It fails with errs.ErrBufferTooSmall if buf cannot hold the encoded
// output at that offset, plus every failure Pack can report. On any
// failure nothing is written to buf.
func PackInto(cf *format.CompiledFormat, offset int, buf []byte, values []Value) (int, error) {
	size, err := EncodedSize(cf, values)
	if err != nil {
		return 0, err
	}

	if offset < 0 || offset > len(buf) {
		return 0, fmt.Errorf("offset %d outside buffer of %d bytes: %w", offset, len(buf), errs.ErrBufferTooSmall)
	}
	if len(buf)-offset < size {
		return 0, fmt.Errorf("need %d bytes at offset %d, have %d: %w",
			size, offset, len(buf)-offset, errs.ErrBufferTooSmall)
	}

	// Encode to scratch first so a mid-encode failure leaves buf untouched.
	bb := pool.GetPackBuffer()
	defer pool.PutPackBuffer(bb)

	if err := encodeInto(bb, cf, values); err != nil {
		return 0, err
	}
	copy(buf[offset:], bb.Bytes())

	return bb.Len(), nil
}

func encodeInto(bb *pool.ByteBuffer, cf *format.CompiledFormat, values []Value) error {
	engine := orderEngine(cf.Order)

	var err error
	vi := 0
	for _, spec := range cf.Fields {
		for range spec.Repeat {
			bb.B, err = appendField(bb.B, engine, spec.Kind, values[vi])
			if err != nil {
				return fmt.Errorf("value %d: field %s: %w", vi, spec.Kind, err)
			}
			vi++
		}
	}

	return nil
}

func appendField(dst []byte, engine endian.EndianEngine, kind format.FieldKind, v Value) ([]byte, error) {
	switch kind {
	case format.KindInt8, format.KindUint8, format.KindInt16, format.KindUint16,
		format.KindInt32, format.KindUint32, format.KindInt64, format.KindUint64:
		return appendIntField(dst, engine, kind, v)
	case format.KindFloat32, format.KindFloat64:
		return appendFloatField(dst, engine, kind, v)
	case format.KindCString:
		if v.Kind() != ValueStr {
			return nil, fmt.Errorf("needs %s, got %s: %w", ValueStr, v.Kind(), errs.ErrValueKindMismatch)
		}

		return appendVarField(dst, engine, []byte(v.Str()))
	case format.KindBlob:
		if v.Kind() != ValueBytes {
			return nil, fmt.Errorf("needs %s, got %s: %w", ValueBytes, v.Kind(), errs.ErrValueKindMismatch)
		}

		return appendVarField(dst, engine, v.Bytes())
	case format.KindTime:
		if v.Kind() != ValueTime {
			return nil, fmt.Errorf("needs %s, got %s: %w", ValueTime, v.Kind(), errs.ErrValueKindMismatch)
		}

		return appendTimestamp(dst, engine, v.Time()), nil
	default:
		return nil, fmt.Errorf("field kind %s: %w", kind, errs.ErrUnknownTypeChar)
	}
}

func appendIntField(dst []byte, engine endian.EndianEngine, kind format.FieldKind, v Value) ([]byte, error) {
	// Both integer variants are accepted; only the range matters.
	var bits uint64
	switch v.Kind() {
	case ValueInt:
		i := v.Int()
		if !intFits(kind, i) {
			return nil, fmt.Errorf("%d does not fit: %w", i, errs.ErrValueOutOfRange)
		}
		bits = uint64(i) //nolint:gosec
	case ValueUint:
		u := v.Uint()
		if !uintFits(kind, u) {
			return nil, fmt.Errorf("%d does not fit: %w", u, errs.ErrValueOutOfRange)
		}
		bits = u
	default:
		return nil, fmt.Errorf("needs %s or %s, got %s: %w", ValueInt, ValueUint, v.Kind(), errs.ErrValueKindMismatch)
	}

	switch kind.Width() {
	case 1:
		return append(dst, byte(bits)), nil
	case 2:
		return engine.AppendUint16(dst, uint16(bits)), nil //nolint:gosec
	case 4:
		return engine.AppendUint32(dst, uint32(bits)), nil //nolint:gosec
	default:
		return engine.AppendUint64(dst, bits), nil
	}
}

func intFits(kind format.FieldKind, i int64) bool {
	switch kind {
	case format.KindInt8:
		return i >= math.MinInt8 && i <= math.MaxInt8
	case format.KindUint8:
		return i >= 0 && i <= math.MaxUint8
	case format.KindInt16:
		return i >= math.MinInt16 && i <= math.MaxInt16
	case format.KindUint16:
		return i >= 0 && i <= math.MaxUint16
	case format.KindInt32:
		return i >= math.MinInt32 && i <= math.MaxInt32
	case format.KindUint32:
		return i >= 0 && i <= math.MaxUint32
	case format.KindUint64:
		return i >= 0
	default: // KindInt64
		return true
	}
}

func uintFits(kind format.FieldKind, u uint64) bool {
	switch kind {
	case format.KindInt8:
		return u <= math.MaxInt8
	case format.KindUint8:
		return u <= math.MaxUint8
	case format.KindInt16:
		return u <= math.MaxInt16
	case format.KindUint16:
		return u <= math.MaxUint16
	case format.KindInt32:
		return u <= math.MaxInt32
	case format.KindUint32:
		return u <= math.MaxUint32
	case format.KindInt64:
		return u <= math.MaxInt64
	default: // KindUint64
		return true
	}
}

func appendFloatField(dst []byte, engine endian.EndianEngine, kind format.FieldKind, v Value) ([]byte, error) {
	if v.Kind() != ValueFloat {
		return nil, fmt.Errorf("needs %s, got %s: %w", ValueFloat, v.Kind(), errs.ErrValueKindMismatch)
	}

	f := v.Float()
	if kind == format.KindFloat64 {
		return engine.AppendUint64(dst, math.Float64bits(f)), nil
	}

	// A finite value past float32 range must not silently collapse to Inf.
	if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
		return nil, fmt.Errorf("%g does not fit in float32: %w", f, errs.ErrValueOutOfRange)
	}

	return engine.AppendUint32(dst, math.Float32bits(float32(f))), nil
}

func appendVarField(dst []byte, engine endian.EndianEngine, content []byte) ([]byte, error) {
	n := len(content)
	if uint64(n) > math.MaxUint32 {
		return nil, fmt.Errorf("content length %d exceeds uint32 prefix: %w", n, errs.ErrValueOutOfRange)
	}

	dst = engine.AppendUint32(dst, uint32(n))
	dst = append(dst, content...)
	for range varPadding(n) {
		dst = append(dst, 0x00)
	}

	return dst, nil
}
