package pickle

import (
	"encoding/binary"
	"math"

	"golang.org/x/exp/constraints"
)

var (
	BE = binary.BigEndian
	LE = binary.LittleEndian
	// Order is the byte order of every primitive layout: little-endian,
	// fixed and identical between write and read.
	Order binary.ByteOrder = LE
)

// Fixed-width numeric primitives. Each occupies exactly its width in
// Order byte order; reading fails with ErrUnderflow when fewer bytes
// remain.
var (
	Bool = Primitive(
		func(s *Sink, v bool) { s.PutBool(v) },
		func(src *Source) bool { return src.TakeBool() },
		1)

	Byte = Primitive(
		func(s *Sink, v byte) { s.PutUint8(v) },
		func(src *Source) byte { return src.TakeUint8() },
		1)

	Uint8 = Primitive(
		func(s *Sink, v uint8) { s.PutUint8(v) },
		func(src *Source) uint8 { return src.TakeUint8() },
		1)

	Uint16 = Primitive(
		func(s *Sink, v uint16) { s.PutUint16(v) },
		func(src *Source) uint16 { return src.TakeUint16() },
		2)

	Uint32 = Primitive(
		func(s *Sink, v uint32) { s.PutUint32(v) },
		func(src *Source) uint32 { return src.TakeUint32() },
		4)

	Uint64 = Primitive(
		func(s *Sink, v uint64) { s.PutUint64(v) },
		func(src *Source) uint64 { return src.TakeUint64() },
		8)

	Int8 = Primitive(
		func(s *Sink, v int8) { s.PutInt8(v) },
		func(src *Source) int8 { return src.TakeInt8() },
		1)

	Int16 = Primitive(
		func(s *Sink, v int16) { s.PutInt16(v) },
		func(src *Source) int16 { return src.TakeInt16() },
		2)

	Int32 = Primitive(
		func(s *Sink, v int32) { s.PutInt32(v) },
		func(src *Source) int32 { return src.TakeInt32() },
		4)

	Int64 = Primitive(
		func(s *Sink, v int64) { s.PutInt64(v) },
		func(src *Source) int64 { return src.TakeInt64() },
		8)

	// Float32 is a true single-precision codec: 4 bytes, IEEE 754 bit
	// pattern in Order byte order.
	Float32 = Primitive(
		func(s *Sink, v float32) { s.PutUint32(math.Float32bits(v)) },
		func(src *Source) float32 { return math.Float32frombits(src.TakeUint32()) },
		4)

	Float64 = Primitive(
		func(s *Sink, v float64) { s.PutUint64(math.Float64bits(v)) },
		func(src *Source) float64 { return math.Float64frombits(src.TakeUint64()) },
		8)
)

// Ordinal returns a pickler for any integer-typed value stored as a
// uint32, the common case for enumerations and counts carried in a typed
// Go integer. Values outside uint32 range are truncated; use a wider
// primitive with Wrap when that matters.
func Ordinal[T constraints.Integer]() Pickler[T] {
	return Wrap(
		func(u uint32) T { return T(u) },
		func(v T) uint32 { return uint32(v) },
		Uint32)
}
