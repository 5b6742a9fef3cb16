package format

import (
	"fmt"

	"github.com/arloliu/structpack/errs"
)

type (
	// ByteOrder selects the byte order a compiled format encodes with.
	ByteOrder uint8

	// FieldKind identifies the type of a single field in a format.
	FieldKind uint8
)

const (
	OrderNative ByteOrder = 0x0 // OrderNative uses the host's byte order, resolved at pack/unpack time.
	OrderLittle ByteOrder = 0x1 // OrderLittle is least-significant byte first.
	OrderBig    ByteOrder = 0x2 // OrderBig is most-significant byte first (network order).
)

const (
	KindInt8    FieldKind = 0x1 // 'b': signed 1-byte integer
	KindUint8   FieldKind = 0x2 // 'B': unsigned 1-byte integer
	KindInt16   FieldKind = 0x3 // 'h': signed 2-byte integer
	KindUint16  FieldKind = 0x4 // 'H': unsigned 2-byte integer
	KindInt32   FieldKind = 0x5 // 'i'/'l': signed 4-byte integer
	KindUint32  FieldKind = 0x6 // 'I'/'L': unsigned 4-byte integer
	KindInt64   FieldKind = 0x7 // 'q': signed 8-byte integer
	KindUint64  FieldKind = 0x8 // 'Q': unsigned 8-byte integer
	KindFloat32 FieldKind = 0x9 // 'f': IEEE-754 single
	KindFloat64 FieldKind = 0xA // 'd': IEEE-754 double
	KindCString FieldKind = 0xB // 's': null-terminated text, length-prefixed on the wire
	KindBlob    FieldKind = 0xC // 'o': length-prefixed opaque bytes
	KindTime    FieldKind = 0xD // 't': fixed 14-byte timestamp record
)

// TimeRecordSize is the encoded size of a KindTime field.
const TimeRecordSize = 14

func (o ByteOrder) String() string {
	switch o {
	case OrderNative:
		return "Native"
	case OrderLittle:
		return "Little"
	case OrderBig:
		return "Big"
	default:
		return "Unknown"
	}
}

func (k FieldKind) String() string {
	switch k {
	case KindInt8:
		return "Int8"
	case KindUint8:
		return "Uint8"
	case KindInt16:
		return "Int16"
	case KindUint16:
		return "Uint16"
	case KindInt32:
		return "Int32"
	case KindUint32:
		return "Uint32"
	case KindInt64:
		return "Int64"
	case KindUint64:
		return "Uint64"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindCString:
		return "CString"
	case KindBlob:
		return "Blob"
	case KindTime:
		return "Time"
	default:
		return "Unknown"
	}
}

// Width returns the nominal encoded width of the kind in bytes, or 0 for
// variable-length kinds (CString, Blob).
func (k FieldKind) Width() int {
	switch k {
	case KindInt8, KindUint8:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32, KindFloat32:
		return 4
	case KindInt64, KindUint64, KindFloat64:
		return 8
	case KindTime:
		return TimeRecordSize
	default:
		return 0
	}
}

// IsVariable reports whether the kind's encoded size depends on the value.
func (k FieldKind) IsVariable() bool {
	return k == KindCString || k == KindBlob
}

// FieldSpec describes one field token of a compiled format: a kind and how
// many times it repeats. A spec with Repeat > 1 consumes (pack) or yields
// (unpack) Repeat independent values; for CString and Blob each repetition
// is its own variable-length value, not a fixed-width array.
type FieldSpec struct {
	Repeat uint32
	Kind   FieldKind
}

// CompiledFormat is the intermediate representation produced by Compile:
// a byte order and an ordered sequence of field specs.
//
// A CompiledFormat is immutable once produced and safe for concurrent use;
// callers must not modify Fields.
type CompiledFormat struct {
	Order  ByteOrder
	Fields []FieldSpec
}

// NumValues returns the number of values the format consumes on pack and
// yields on unpack.
func (cf *CompiledFormat) NumValues() int {
	n := 0
	for _, f := range cf.Fields {
		n += int(f.Repeat)
	}

	return n
}

// HasVariableFields reports whether the format contains any CString or
// Blob fields.
func (cf *CompiledFormat) HasVariableFields() bool {
	for _, f := range cf.Fields {
		if f.Kind.IsVariable() {
			return true
		}
	}

	return false
}

// StaticSize returns the total encoded size of the format in bytes.
//
// It fails with errs.ErrUndefinedSize if the format contains variable-length
// fields, whose size depends on the packed values. It never returns a
// partial total.
func (cf *CompiledFormat) StaticSize() (int, error) {
	size := 0
	for _, f := range cf.Fields {
		if f.Kind.IsVariable() {
			return 0, fmt.Errorf("field kind %s: %w", f.Kind, errs.ErrUndefinedSize)
		}
		size += int(f.Repeat) * f.Kind.Width()
	}

	return size, nil
}
