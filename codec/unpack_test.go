package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/structpack/errs"
)

func TestUnpack_FixedWidthRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		format string
		values []Value
	}{
		{"signed bytes", "<2b", []Value{Int(-128), Int(127)}},
		{"unsigned bytes", "<2B", []Value{Uint(0), Uint(255)}},
		{"shorts", ">2h2H", []Value{Int(-32768), Int(32767), Uint(0), Uint(65535)}},
		{"ints", "<2i2I", []Value{Int(math.MinInt32), Int(math.MaxInt32), Uint(0), Uint(math.MaxUint32)}},
		{"longs", "!2q2Q", []Value{Int(math.MinInt64), Int(math.MaxInt64), Uint(0), Uint(math.MaxUint64)}},
		{"floats", "<fd", []Value{Float(3.5), Float(-2.25)}},
		{"mixed", ">bHiQd", []Value{Int(-1), Uint(512), Int(-70000), Uint(1 << 50), Float(1.5)}},
		{"native order", "=hi", []Value{Int(42), Int(-42)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cf := mustCompile(t, tt.format)

			buf, err := Pack(cf, tt.values)
			require.NoError(t, err)

			decoded, err := Unpack(cf, buf)
			require.NoError(t, err)
			require.Equal(t, tt.values, decoded)
		})
	}
}

func TestUnpack_VariableFieldRoundTrip(t *testing.T) {
	cf := mustCompile(t, "!s2o")
	values := []Value{
		Str("hello"),
		Bytes([]byte{0xDE, 0xAD, 0xBE, 0xEF}),
		Bytes(nil),
	}

	buf, err := Pack(cf, values)
	require.NoError(t, err)

	decoded, err := Unpack(cf, buf)
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	require.Equal(t, "hello", decoded[0].Str())
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, decoded[1].Bytes())
	require.Empty(t, decoded[2].Bytes())
}

func TestUnpack_CStringWithInteriorNul(t *testing.T) {
	// The length prefix, not the terminator, is authoritative.
	cf := mustCompile(t, "s")
	values := []Value{Str("ab\x00cd")}

	buf, err := Pack(cf, values)
	require.NoError(t, err)

	decoded, err := Unpack(cf, buf)
	require.NoError(t, err)
	require.Equal(t, "ab\x00cd", decoded[0].Str())
}

func TestUnpack_ByteOrder(t *testing.T) {
	little, err := Unpack(mustCompile(t, "<i"), []byte{0x78, 0x56, 0x34, 0x12})
	require.NoError(t, err)
	require.Equal(t, int64(0x12345678), little[0].Int())

	big, err := Unpack(mustCompile(t, ">i"), []byte{0x12, 0x34, 0x56, 0x78})
	require.NoError(t, err)
	require.Equal(t, int64(0x12345678), big[0].Int())
}

func TestUnpack_SignExtension(t *testing.T) {
	decoded, err := Unpack(mustCompile(t, ">bhiq"), []byte{
		0xFF,
		0xFF, 0xFE,
		0xFF, 0xFF, 0xFF, 0xFD,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFC,
	})
	require.NoError(t, err)
	require.Equal(t, int64(-1), decoded[0].Int())
	require.Equal(t, int64(-2), decoded[1].Int())
	require.Equal(t, int64(-3), decoded[2].Int())
	require.Equal(t, int64(-4), decoded[3].Int())
}

func TestUnpack_BufferTooShort(t *testing.T) {
	tests := []struct {
		name   string
		format string
		buf    []byte
	}{
		{"empty buffer fixed field", "i", nil},
		{"truncated fixed field", "q", make([]byte, 7)},
		{"second field missing", "2i", make([]byte, 4)},
		{"missing length prefix", "s", []byte{0x01, 0x02}},
		{"content shorter than prefix", "<s", []byte{0x0A, 0x00, 0x00, 0x00, 'a', 'b'}},
		{"missing padding", "<o", []byte{0x03, 0x00, 0x00, 0x00, 'a', 'b', 'c'}},
		{"truncated time record", "t", make([]byte, 13)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unpack(mustCompile(t, tt.format), tt.buf)
			require.ErrorIs(t, err, errs.ErrBufferTooShort)
		})
	}
}

func TestUnpack_PaddingSkippedNotValidated(t *testing.T) {
	cf := mustCompile(t, "<o")

	// Length 2, content, then 2 garbage padding bytes.
	buf := []byte{0x02, 0x00, 0x00, 0x00, 0x11, 0x22, 0xAB, 0xCD}

	decoded, err := Unpack(cf, buf)
	require.NoError(t, err, "non-zero padding must not fail a default decode")
	require.Equal(t, []byte{0x11, 0x22}, decoded[0].Bytes())
}

func TestUnpack_StrictPadding(t *testing.T) {
	cf := mustCompile(t, "<o")
	corrupt := []byte{0x02, 0x00, 0x00, 0x00, 0x11, 0x22, 0xAB, 0xCD}

	_, err := Unpack(cf, corrupt, WithStrictPadding())
	require.ErrorIs(t, err, errs.ErrCorruptPadding)

	clean := []byte{0x02, 0x00, 0x00, 0x00, 0x11, 0x22, 0x00, 0x00}
	decoded, err := Unpack(cf, clean, WithStrictPadding())
	require.NoError(t, err)
	require.Equal(t, []byte{0x11, 0x22}, decoded[0].Bytes())
}

func TestUnpack_BlobDoesNotAliasSource(t *testing.T) {
	cf := mustCompile(t, "<o")
	buf := []byte{0x02, 0x00, 0x00, 0x00, 0x11, 0x22, 0x00, 0x00}

	decoded, err := Unpack(cf, buf)
	require.NoError(t, err)

	buf[4] = 0xFF
	require.Equal(t, []byte{0x11, 0x22}, decoded[0].Bytes(), "decoded blob must not alias the source buffer")
}

func TestUnpackFrom_Offset(t *testing.T) {
	cf := mustCompile(t, ">h")
	buf := []byte{0xAA, 0xAA, 0x01, 0x02, 0xAA}

	decoded, n, err := UnpackFrom(cf, 2, buf)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, int64(0x0102), decoded[0].Int())
}

func TestUnpackFrom_BytesReadIncludesPadding(t *testing.T) {
	cf := mustCompile(t, "!s")
	buf, err := Pack(cf, []Value{Str("test")})
	require.NoError(t, err)
	require.Len(t, buf, 12)

	_, n, err := UnpackFrom(cf, 0, buf)
	require.NoError(t, err)
	require.Equal(t, 12, n)
}

func TestUnpackFrom_InvalidOffset(t *testing.T) {
	cf := mustCompile(t, "b")

	_, _, err := UnpackFrom(cf, -1, []byte{0x01})
	require.ErrorIs(t, err, errs.ErrBufferTooShort)

	_, _, err = UnpackFrom(cf, 2, []byte{0x01})
	require.ErrorIs(t, err, errs.ErrBufferTooShort)
}

func TestUnpack_TrailingBytesIgnored(t *testing.T) {
	cf := mustCompile(t, ">h")

	decoded, n, err := UnpackFrom(cf, 0, []byte{0x01, 0x02, 0xFF, 0xFF})
	require.NoError(t, err)
	require.Equal(t, 2, n, "bytes past the last field are not consumed")
	require.Equal(t, int64(0x0102), decoded[0].Int())
}

func TestUnpack_HugeLengthPrefix(t *testing.T) {
	// A length prefix far beyond the buffer must fail cleanly.
	cf := mustCompile(t, "<o")
	buf := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0x00, 0x00, 0x00}

	_, err := Unpack(cf, buf)
	require.ErrorIs(t, err, errs.ErrBufferTooShort)
}

func TestUnpack_EmptyFormat(t *testing.T) {
	decoded, n, err := UnpackFrom(mustCompile(t, ""), 0, []byte{0x01})
	require.NoError(t, err)
	require.Empty(t, decoded)
	require.Equal(t, 0, n)
}

func TestUnpack_SpecialFloats(t *testing.T) {
	cf := mustCompile(t, "<fd")
	buf, err := Pack(cf, []Value{Float(math.Inf(-1)), Float(math.NaN())})
	require.NoError(t, err)

	decoded, err := Unpack(cf, buf)
	require.NoError(t, err)
	require.True(t, math.IsInf(decoded[0].Float(), -1))
	require.True(t, math.IsNaN(decoded[1].Float()))
}

func BenchmarkUnpack_FixedWidth(b *testing.B) {
	cf := mustCompile(b, "<4h2i2q")
	buf, _ := Pack(cf, []Value{
		Int(1), Int(2), Int(3), Int(4),
		Int(100000), Int(-100000),
		Int(1 << 40), Int(-(1 << 40)),
	})
	b.ResetTimer()
	for b.Loop() {
		_, _ = Unpack(cf, buf)
	}
}

func BenchmarkUnpack_VariableFields(b *testing.B) {
	cf := mustCompile(b, "!2s1o")
	buf, _ := Pack(cf, []Value{Str("metric.name"), Str("some longer payload text"), Bytes(make([]byte, 64))})
	b.ResetTimer()
	for b.Loop() {
		_, _ = Unpack(cf, buf)
	}
}
