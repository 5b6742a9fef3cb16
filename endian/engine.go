// Package endian provides byte order utilities for the structpack codec.
//
// It combines the ByteOrder and AppendByteOrder interfaces from the standard
// encoding/binary package into a single EndianEngine interface, and adds a
// runtime probe of the host's native byte order. The native order is never
// assumed: it is resolved lazily the first time a format with native byte
// order is packed or unpacked, and reported through the Endianness enum.
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, value)
//
// For formats that request native byte order:
//
//	engine := endian.NativeEngine() // resolved once, then cached
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned
// EndianEngine instances are immutable and stateless, and native-order
// resolution is guarded by sync.Once.
package endian

import (
	"encoding/binary"
	"sync"
	"sync/atomic"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for byte order operations.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian, so any
// standard byte order value can drive the codec directly.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Endianness reports a resolved host byte order.
//
// EndianNotSet means the native order has not been probed yet; it is the
// state of a process that has never packed or unpacked with native order.
type Endianness uint8

const (
	EndianNotSet Endianness = 0 // native order not yet resolved
	EndianBig    Endianness = 1 // most-significant byte first
	EndianLittle Endianness = 2 // least-significant byte first
)

// String returns the human-readable name of the endianness.
func (e Endianness) String() string {
	switch e {
	case EndianBig:
		return "Big"
	case EndianLittle:
		return "Little"
	default:
		return "NotSet"
	}
}

// CheckEndianness probes the host's byte order with a fixed integer value.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. On a little-endian host the LSB (0x00) sits at the
	// lowest address; on a big-endian host the MSB (0x01) does.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host stores integers little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// IsNativeBigEndian reports whether the host stores integers big-endian.
func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

var (
	nativeOnce   sync.Once
	nativeEngine EndianEngine
	nativeKind   atomic.Uint32 // holds an Endianness; atomic so Resolved never races
)

func resolveNative() {
	nativeOnce.Do(func() {
		if CheckEndianness() == binary.BigEndian {
			nativeEngine = binary.BigEndian
			nativeKind.Store(uint32(EndianBig))
		} else {
			nativeEngine = binary.LittleEndian
			nativeKind.Store(uint32(EndianLittle))
		}
	})
}

// NativeEngine returns the engine matching the host's byte order.
//
// The order is probed on first call and cached for the lifetime of the
// process.
func NativeEngine() EndianEngine {
	resolveNative()
	return nativeEngine
}

// NativeEndianness resolves (if necessary) and reports the host's byte
// order. It never returns EndianNotSet.
func NativeEndianness() Endianness {
	resolveNative()
	return Endianness(nativeKind.Load())
}

// Resolved reports the native byte order without forcing resolution.
//
// It returns EndianNotSet until the first call to NativeEngine or
// NativeEndianness anywhere in the process.
func Resolved() Endianness {
	return Endianness(nativeKind.Load())
}
