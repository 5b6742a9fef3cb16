package codec

import (
	"fmt"
	"math"

	"github.com/arloliu/structpack/endian"
	"github.com/arloliu/structpack/errs"
	"github.com/arloliu/structpack/format"
	"github.com/arloliu/structpack/internal/options"
)

type unpackConfig struct {
	strictPadding bool
}

// UnpackOption configures a single Unpack or UnpackFrom call.
type UnpackOption = options.Option[*unpackConfig]

// WithStrictPadding makes decoding validate that the padding bytes of
// variable-length fields are zero, failing with errs.ErrCorruptPadding
// otherwise. By default padding is skipped without inspection, since it is
// a write-time guarantee rather than a read-time contract.
func WithStrictPadding() UnpackOption {
	return options.NoError(func(cfg *unpackConfig) {
		cfg.strictPadding = true
	})
}

// Unpack decodes buf against the compiled format and returns the value
// list, one value per field repetition.
//
// Signed fields yield ValueInt (sign-extended), unsigned fields ValueUint,
// float fields ValueFloat, 's' ValueStr, 'o' ValueBytes and 't' ValueTime.
// It fails with errs.ErrBufferTooShort if buf is exhausted before all
// fields are decoded.
func Unpack(cf *format.CompiledFormat, buf []byte, opts ...UnpackOption) ([]Value, error) {
	values, _, err := UnpackFrom(cf, 0, buf, opts...)

	return values, err
}

// UnpackFrom decodes buf starting at offset and additionally returns the
// number of bytes consumed.
func UnpackFrom(cf *format.CompiledFormat, offset int, buf []byte, opts ...UnpackOption) ([]Value, int, error) {
	cfg := &unpackConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, 0, err
	}

	if offset < 0 || offset > len(buf) {
		return nil, 0, fmt.Errorf("offset %d outside buffer of %d bytes: %w", offset, len(buf), errs.ErrBufferTooShort)
	}

	engine := orderEngine(cf.Order)

	values := make([]Value, 0, cf.NumValues())
	pos := offset
	vi := 0
	for _, spec := range cf.Fields {
		for range spec.Repeat {
			v, n, err := decodeField(buf, pos, engine, spec.Kind, cfg)
			if err != nil {
				return nil, 0, fmt.Errorf("value %d: field %s at offset %d: %w", vi, spec.Kind, pos, err)
			}
			values = append(values, v)
			pos += n
			vi++
		}
	}

	return values, pos - offset, nil
}

func decodeField(buf []byte, pos int, engine endian.EndianEngine, kind format.FieldKind, cfg *unpackConfig) (Value, int, error) {
	if kind.IsVariable() {
		return decodeVarField(buf, pos, engine, kind, cfg)
	}

	width := kind.Width()
	if len(buf)-pos < width {
		return Value{}, 0, fmt.Errorf("need %d bytes, have %d: %w", width, len(buf)-pos, errs.ErrBufferTooShort)
	}
	data := buf[pos : pos+width]

	switch kind {
	case format.KindInt8:
		return Int(int64(int8(data[0]))), width, nil //nolint:gosec
	case format.KindUint8:
		return Uint(uint64(data[0])), width, nil
	case format.KindInt16:
		return Int(int64(int16(engine.Uint16(data)))), width, nil //nolint:gosec
	case format.KindUint16:
		return Uint(uint64(engine.Uint16(data))), width, nil
	case format.KindInt32:
		return Int(int64(int32(engine.Uint32(data)))), width, nil //nolint:gosec
	case format.KindUint32:
		return Uint(uint64(engine.Uint32(data))), width, nil
	case format.KindInt64:
		return Int(int64(engine.Uint64(data))), width, nil //nolint:gosec
	case format.KindUint64:
		return Uint(engine.Uint64(data)), width, nil
	case format.KindFloat32:
		return Float(float64(math.Float32frombits(engine.Uint32(data)))), width, nil
	case format.KindFloat64:
		return Float(math.Float64frombits(engine.Uint64(data))), width, nil
	default: // KindTime
		return Time(decodeTimestamp(data, engine)), width, nil
	}
}

func decodeVarField(buf []byte, pos int, engine endian.EndianEngine, kind format.FieldKind, cfg *unpackConfig) (Value, int, error) {
	if len(buf)-pos < varLengthPrefixSize {
		return Value{}, 0, fmt.Errorf("need %d prefix bytes, have %d: %w",
			varLengthPrefixSize, len(buf)-pos, errs.ErrBufferTooShort)
	}

	// The 32-bit prefix can exceed the int range on 32-bit hosts; size math
	// stays in int64.
	n64 := int64(engine.Uint32(buf[pos : pos+varLengthPrefixSize]))
	total64 := int64(varLengthPrefixSize) + n64 + int64(4-(n64&3))
	if int64(len(buf)-pos) < total64 {
		return Value{}, 0, fmt.Errorf("need %d bytes for length %d, have %d: %w",
			total64, n64, len(buf)-pos, errs.ErrBufferTooShort)
	}
	n := int(n64)
	total := int(total64)

	content := buf[pos+varLengthPrefixSize : pos+varLengthPrefixSize+n]

	if cfg.strictPadding {
		padding := buf[pos+varLengthPrefixSize+n : pos+total]
		for i, b := range padding {
			if b != 0x00 {
				return Value{}, 0, fmt.Errorf("padding byte %d is 0x%02x: %w", i, b, errs.ErrCorruptPadding)
			}
		}
	}

	if kind == format.KindCString {
		return Str(string(content)), total, nil
	}

	// Blob content is copied so the value does not alias the source buffer.
	out := make([]byte, n)
	copy(out, content)

	return Bytes(out), total, nil
}
