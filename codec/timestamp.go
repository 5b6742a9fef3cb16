package codec

import (
	"time"

	"github.com/arloliu/structpack/endian"
	"github.com/arloliu/structpack/format"
)

// Timestamp is the fixed 14-byte time record encoded by 't' fields.
//
// Wire layout, multi-byte subfields in the active byte order:
//
//	offset 0:  int64  Seconds
//	offset 8:  uint16 Millis
//	offset 10: int16  TimezoneMin
//	offset 12: uint16 DST
//
// The record is encoded verbatim: no subfield is validated or normalized,
// so a round trip preserves whatever the caller stored.
type Timestamp struct {
	// Seconds is the Unix time in seconds.
	Seconds int64
	// Millis is the fractional part in milliseconds.
	Millis uint16
	// TimezoneMin is the local offset from UTC in minutes west.
	TimezoneMin int16
	// DST is non-zero when daylight saving time is in effect.
	DST uint16
}

// TimestampOf converts a time.Time into a Timestamp in UTC with no
// timezone offset or DST flag.
func TimestampOf(t time.Time) Timestamp {
	return Timestamp{
		Seconds: t.Unix(),
		Millis:  uint16(t.Nanosecond() / int(time.Millisecond)), //nolint:gosec
	}
}

// AsTime converts the record back into a time.Time in UTC, ignoring the
// TimezoneMin and DST subfields.
func (ts Timestamp) AsTime() time.Time {
	return time.Unix(ts.Seconds, int64(ts.Millis)*int64(time.Millisecond)).UTC()
}

func appendTimestamp(dst []byte, engine endian.EndianEngine, ts Timestamp) []byte {
	dst = engine.AppendUint64(dst, uint64(ts.Seconds)) //nolint:gosec
	dst = engine.AppendUint16(dst, ts.Millis)
	dst = engine.AppendUint16(dst, uint16(ts.TimezoneMin)) //nolint:gosec
	dst = engine.AppendUint16(dst, ts.DST)

	return dst
}

// decodeTimestamp reads a Timestamp from data, which must hold at least
// format.TimeRecordSize bytes.
func decodeTimestamp(data []byte, engine endian.EndianEngine) Timestamp {
	_ = data[format.TimeRecordSize-1]

	return Timestamp{
		Seconds:     int64(engine.Uint64(data[0:8])), //nolint:gosec
		Millis:      engine.Uint16(data[8:10]),
		TimezoneMin: int16(engine.Uint16(data[10:12])), //nolint:gosec
		DST:         engine.Uint16(data[12:14]),
	}
}
