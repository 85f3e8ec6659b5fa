// Package pickle builds bidirectional binary codecs from composable parts.
//
// A Pickler[T] bundles the write and read halves of one binary layout in a
// single value, so the decode path is derived from the same description as
// the encode path and the two cannot drift apart. Leaf picklers come from
// Primitive (or the stock primitives in this package); everything else is
// assembled with the combinators: Tuple2/3/4, Wrap, Array, List, Choice.
//
// Picklers are immutable, hold no state, and are safe to share across
// goroutines. Each Pickle or Unpickle call owns its Sink or Source for the
// whole call.
package pickle

// Pickler describes how values of type T are laid out in binary form.
// The write and read functions are required to visit bytes in the same
// order; every combinator in this package preserves that property, so a
// composed pickler is round-trip consistent whenever its leaves are.
type Pickler[T any] struct {
	write func(s *Sink, v T)
	read  func(src *Source) T
	min   int
}

// Primitive builds a leaf pickler from a write/read pair and the minimum
// number of bytes one value occupies. It is the only way to introduce new
// leaf layouts; derived picklers go through the combinators.
//
// The pair must agree on layout: read(write(v)) == v for every v in the
// domain. Conversion or validation failures inside the pair are reported
// via Sink.Fail or Source.Fail, never by partial output.
func Primitive[T any](write func(*Sink, T), read func(*Source) T, minSize int) Pickler[T] {
	return Pickler[T]{write: write, read: read, min: minSize}
}

// MinSize returns a lower bound on the encoded size of one value: the
// exact width for fixed-width layouts, the prefix width alone for
// length-prefixed ones.
func (p Pickler[T]) MinSize() int { return p.min }

// Write appends the encoding of v to s. After s has latched an error this
// is a no-op.
func (p Pickler[T]) Write(s *Sink, v T) {
	if s.err != nil {
		return
	}
	p.write(s, v)
}

// Read consumes the encoding of one value from src. After src has latched
// an error this is a no-op returning the zero value.
func (p Pickler[T]) Read(src *Source) (v T) {
	if src.err != nil {
		return v
	}
	return p.read(src)
}

// Pickle encodes v into a fresh byte slice. The buffer is produced
// atomically: on error nothing is returned. Encoding fails only through a
// failing Wrap conversion, an Array length mismatch, or an unknown Choice
// tag.
func Pickle[T any](p Pickler[T], v T) ([]byte, error) {
	s := NewSink(p.min)
	p.Write(s, v)
	if err := s.Err(); err != nil {
		return nil, err
	}
	return s.Bytes(), nil
}

// Unpickle decodes one value from the front of data. Trailing bytes are
// not an error, which permits picklers for prefixes of larger streams;
// running out of bytes mid-value is ErrUnderflow.
func Unpickle[T any](p Pickler[T], data []byte) (T, error) {
	src := NewSource(data)
	v := p.Read(src)
	if err := src.Err(); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Skip advances src past one encoded value of p by reading and discarding
// it. There is no positional shortcut: length-prefixed layouts make the
// consumed size known only while reading.
func Skip[T any](p Pickler[T], src *Source) {
	_ = p.Read(src)
}
