package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValue_Constructors(t *testing.T) {
	require.Equal(t, ValueInt, Int(-5).Kind())
	require.Equal(t, int64(-5), Int(-5).Int())

	require.Equal(t, ValueUint, Uint(5).Kind())
	require.Equal(t, uint64(5), Uint(5).Uint())

	require.Equal(t, ValueFloat, Float(1.5).Kind())
	require.Equal(t, 1.5, Float(1.5).Float())

	require.Equal(t, ValueStr, Str("x").Kind())
	require.Equal(t, "x", Str("x").Str())

	require.Equal(t, ValueBytes, Bytes([]byte{1}).Kind())
	require.Equal(t, []byte{1}, Bytes([]byte{1}).Bytes())

	ts := Timestamp{Seconds: 100, Millis: 250}
	require.Equal(t, ValueTime, Time(ts).Kind())
	require.Equal(t, ts, Time(ts).Time())
}

func TestValue_AccessorsOnWrongKind(t *testing.T) {
	v := Str("hello")

	require.Equal(t, int64(0), v.Int())
	require.Equal(t, uint64(0), v.Uint())
	require.Equal(t, float64(0), v.Float())
	require.Nil(t, v.Bytes())
	require.Equal(t, Timestamp{}, v.Time())

	require.Equal(t, "", Int(7).Str())
}

func TestValue_ZeroValue(t *testing.T) {
	var v Value
	require.Equal(t, ValueKind(0), v.Kind())
	require.Equal(t, "Unknown", v.Kind().String())
}

func TestValueKind_String(t *testing.T) {
	require.Equal(t, "Int", ValueInt.String())
	require.Equal(t, "Uint", ValueUint.String())
	require.Equal(t, "Float", ValueFloat.String())
	require.Equal(t, "Str", ValueStr.String())
	require.Equal(t, "Bytes", ValueBytes.String())
	require.Equal(t, "Time", ValueTime.String())
}
