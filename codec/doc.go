// Package codec implements the pack engine: it walks a compiled format
// against a value list or a byte buffer, producing the other side.
//
// # Core Types
//
// **Value**: A tagged union carrying one typed field value. Values are
// constructed with Int, Uint, Float, Str, Bytes and Time, and inspected
// with Kind plus the matching accessor. Passing values as an explicit
// ordered slice gives the engine static arity checking instead of
// vararg matching.
//
// **Timestamp**: The fixed 14-byte time record encoded by 't' fields.
//
// # Operations
//
//   - Pack / PackInto: encode a value list into a new buffer, or into a
//     caller-owned buffer at an offset.
//   - Unpack / UnpackFrom: decode a buffer into a value list, optionally
//     starting at an offset and reporting bytes consumed.
//   - EncodedSize: the exact encoded size of a value list under a format.
//
// # Wire Layout
//
// Fixed-width fields are written in the compiled format's byte order.
// Variable-length fields (CString, Blob) share one envelope:
//
//	offset 0:   uint32 length n (active byte order)
//	offset 4:   n content bytes
//	offset 4+n: r zero bytes, r >= 1, (n+r) % 4 == 0
//
// For CString the first zero byte is the terminator; n never includes it.
// Padding is a write-time guarantee: decoding skips it without validation
// unless WithStrictPadding is given.
//
// # Concurrency
//
// Every operation is a pure function over its inputs. Concurrent calls
// need no coordination as long as they do not share a destination buffer.
package codec
