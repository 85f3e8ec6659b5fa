package pickle

import "fmt"

// Pair is the carrier type for Tuple2.
type Pair[A, B any] struct {
	A A
	B B
}

// Triple is the carrier type for Tuple3.
type Triple[A, B, C any] struct {
	A A
	B B
	C C
}

// Quad is the carrier type for Tuple4.
type Quad[A, B, C, D any] struct {
	A A
	B B
	C C
	D D
}

// Tuple2 groups two picklers. Components are written and read in the same
// left-to-right order; that symmetry is the correctness invariant every
// combinator here maintains.
func Tuple2[A, B any](a Pickler[A], b Pickler[B]) Pickler[Pair[A, B]] {
	return Pickler[Pair[A, B]]{
		write: func(s *Sink, v Pair[A, B]) {
			a.Write(s, v.A)
			b.Write(s, v.B)
		},
		read: func(src *Source) Pair[A, B] {
			first := a.Read(src)
			second := b.Read(src)
			return Pair[A, B]{first, second}
		},
		min: a.min + b.min,
	}
}

// Tuple3 groups three picklers, left to right.
func Tuple3[A, B, C any](a Pickler[A], b Pickler[B], c Pickler[C]) Pickler[Triple[A, B, C]] {
	return Pickler[Triple[A, B, C]]{
		write: func(s *Sink, v Triple[A, B, C]) {
			a.Write(s, v.A)
			b.Write(s, v.B)
			c.Write(s, v.C)
		},
		read: func(src *Source) Triple[A, B, C] {
			first := a.Read(src)
			second := b.Read(src)
			third := c.Read(src)
			return Triple[A, B, C]{first, second, third}
		},
		min: a.min + b.min + c.min,
	}
}

// Tuple4 groups four picklers, left to right.
func Tuple4[A, B, C, D any](a Pickler[A], b Pickler[B], c Pickler[C], d Pickler[D]) Pickler[Quad[A, B, C, D]] {
	return Pickler[Quad[A, B, C, D]]{
		write: func(s *Sink, v Quad[A, B, C, D]) {
			a.Write(s, v.A)
			b.Write(s, v.B)
			c.Write(s, v.C)
			d.Write(s, v.D)
		},
		read: func(src *Source) Quad[A, B, C, D] {
			first := a.Read(src)
			second := b.Read(src)
			third := c.Read(src)
			fourth := d.Read(src)
			return Quad[A, B, C, D]{first, second, third, fourth}
		},
		min: a.min + b.min + c.min + d.min,
	}
}

// Wrap adapts a pickler for A into one for B through an isomorphism pair:
// to lifts a decoded A into a B, from lowers a B back to its A. The
// caller guarantees from(to(a)) == a over the domain of interest; that is
// how user record types obtain a codec, by expressing themselves as a
// tuple of primitives.
//
// The conversion functions may report failure through Sink.Fail or
// Source.Fail; the error propagates verbatim to the driver.
func Wrap[A, B any](to func(A) B, from func(B) A, base Pickler[A]) Pickler[B] {
	return Pickler[B]{
		write: func(s *Sink, v B) {
			base.Write(s, from(v))
		},
		read: func(src *Source) B {
			a := base.Read(src)
			if src.err != nil {
				var zero B
				return zero
			}
			return to(a)
		},
		min: base.min,
	}
}

// Array returns a pickler for a sequence of exactly count elements. The
// count is not part of the encoding; it comes from the surrounding format
// (a header field, a known file layout). Composing an Array is free, so a
// count learned at decode time is handled by composing Array(elem, n)
// right before unpickling.
//
// Writing a slice whose length differs from count, or using a negative
// count, fails with ErrLengthMismatch. Reading count zero consumes no
// bytes and yields an empty slice.
func Array[T any](elem Pickler[T], count int) Pickler[[]T] {
	size := 0
	if count > 0 {
		size = count * elem.min
	}
	return Pickler[[]T]{
		write: func(s *Sink, v []T) {
			if count < 0 || len(v) != count {
				s.Fail(fmt.Errorf("%w: have %d elements, want %d", ErrLengthMismatch, len(v), count))
				return
			}
			for _, e := range v {
				elem.Write(s, e)
			}
		},
		read: func(src *Source) []T {
			if count < 0 {
				src.Fail(fmt.Errorf("%w: negative element count %d", ErrLengthMismatch, count))
				return nil
			}
			out := make([]T, 0, count)
			for i := 0; i < count; i++ {
				out = append(out, elem.Read(src))
				if src.err != nil {
					return nil
				}
			}
			return out
		},
		min: size,
	}
}

// List returns a self-framing sequence pickler: a uint32 element count
// followed by the elements. Use Array when the surrounding format already
// carries the count.
func List[T any](elem Pickler[T]) Pickler[[]T] {
	return Pickler[[]T]{
		write: func(s *Sink, v []T) {
			s.PutUint32(uint32(len(v)))
			for _, e := range v {
				elem.Write(s, e)
			}
		},
		read: func(src *Source) []T {
			count := int(src.TakeUint32())
			if src.err != nil {
				return nil
			}
			out := make([]T, 0, min(count, maxPrealloc))
			for i := 0; i < count; i++ {
				out = append(out, elem.Read(src))
				if src.err != nil {
					return nil
				}
			}
			return out
		},
		min: lenPrefixSize,
	}
}

// Choice returns a pickler for a sum type: the discriminant is written
// first, then the selected variant's encoding. tagOf names the variant a
// value belongs to; variants maps each discriminant to its pickler. A
// discriminant with no mapping fails with ErrUnknownTag on either side.
//
// MinSize is the discriminant's plus the smallest variant's, a lower
// bound in the same sense as a length prefix.
func Choice[K comparable, T any](tag Pickler[K], variants map[K]Pickler[T], tagOf func(T) K) Pickler[T] {
	smallest := -1
	for _, p := range variants {
		if smallest < 0 || p.min < smallest {
			smallest = p.min
		}
	}
	if smallest < 0 {
		smallest = 0
	}
	return Pickler[T]{
		write: func(s *Sink, v T) {
			k := tagOf(v)
			variant, ok := variants[k]
			if !ok {
				s.Fail(fmt.Errorf("%w: tag %v", ErrUnknownTag, k))
				return
			}
			tag.Write(s, k)
			variant.Write(s, v)
		},
		read: func(src *Source) T {
			k := tag.Read(src)
			if src.err != nil {
				var zero T
				return zero
			}
			variant, ok := variants[k]
			if !ok {
				src.Fail(fmt.Errorf("%w: tag %v at offset %d", ErrUnknownTag, k, src.off))
				var zero T
				return zero
			}
			return variant.Read(src)
		},
		min: tag.min + smallest,
	}
}
