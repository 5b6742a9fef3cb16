package codec

import "math"

// ValueKind identifies which variant a Value holds.
type ValueKind uint8

const (
	ValueInt   ValueKind = 0x1 // signed integer, packs into b/h/i/l/q fields
	ValueUint  ValueKind = 0x2 // unsigned integer, packs into B/H/I/L/Q fields
	ValueFloat ValueKind = 0x3 // IEEE-754 double, packs into f/d fields
	ValueStr   ValueKind = 0x4 // text, packs into s fields
	ValueBytes ValueKind = 0x5 // opaque bytes, packs into o fields
	ValueTime  ValueKind = 0x6 // 14-byte time record, packs into t fields
)

// String returns the human-readable name of the value kind.
func (k ValueKind) String() string {
	switch k {
	case ValueInt:
		return "Int"
	case ValueUint:
		return "Uint"
	case ValueFloat:
		return "Float"
	case ValueStr:
		return "Str"
	case ValueBytes:
		return "Bytes"
	case ValueTime:
		return "Time"
	default:
		return "Unknown"
	}
}

// Value is a tagged union holding exactly one field value.
//
// The zero Value has no kind and fails any pack with a kind mismatch;
// always construct values with Int, Uint, Float, Str, Bytes or Time.
type Value struct {
	num  uint64 // Int (two's complement), Uint, or Float (IEEE bits)
	str  string
	raw  []byte
	tm   Timestamp
	kind ValueKind
}

// Int constructs a signed integer value.
func Int(v int64) Value {
	return Value{kind: ValueInt, num: uint64(v)}
}

// Uint constructs an unsigned integer value.
func Uint(v uint64) Value {
	return Value{kind: ValueUint, num: v}
}

// Float constructs a floating-point value.
func Float(v float64) Value {
	return Value{kind: ValueFloat, num: math.Float64bits(v)}
}

// Str constructs a text value for 's' fields.
func Str(s string) Value {
	return Value{kind: ValueStr, str: s}
}

// Bytes constructs an opaque byte value for 'o' fields.
// The Value references b without copying; the caller must not modify b
// until the value is packed.
func Bytes(b []byte) Value {
	return Value{kind: ValueBytes, raw: b}
}

// Time constructs a time record value for 't' fields.
func Time(ts Timestamp) Value {
	return Value{kind: ValueTime, tm: ts}
}

// Kind returns the variant this value holds.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Int returns the signed integer payload, or 0 if the kind is not ValueInt.
func (v Value) Int() int64 {
	if v.kind != ValueInt {
		return 0
	}

	return int64(v.num)
}

// Uint returns the unsigned integer payload, or 0 if the kind is not ValueUint.
func (v Value) Uint() uint64 {
	if v.kind != ValueUint {
		return 0
	}

	return v.num
}

// Float returns the floating-point payload, or 0 if the kind is not ValueFloat.
func (v Value) Float() float64 {
	if v.kind != ValueFloat {
		return 0
	}

	return math.Float64frombits(v.num)
}

// Str returns the text payload, or "" if the kind is not ValueStr.
func (v Value) Str() string {
	if v.kind != ValueStr {
		return ""
	}

	return v.str
}

// Bytes returns the byte payload, or nil if the kind is not ValueBytes.
// The returned slice is the stored payload; the caller must not modify it.
func (v Value) Bytes() []byte {
	if v.kind != ValueBytes {
		return nil
	}

	return v.raw
}

// Time returns the time record payload, or the zero Timestamp if the kind
// is not ValueTime.
func (v Value) Time() Timestamp {
	if v.kind != ValueTime {
		return Timestamp{}
	}

	return v.tm
}
