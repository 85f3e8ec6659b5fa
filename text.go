package pickle

import (
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// lenPrefixSize is the width of the uint32 count prefix used by every
// length-prefixed layout in this package (UTF8, Decimal, List).
const lenPrefixSize = 4

// maxPrealloc caps the capacity allocated up front from an untrusted
// length prefix. Larger sequences still decode; they just grow the slice
// as elements actually arrive.
const maxPrealloc = 4096

// Raw returns a pickler for an opaque block of exactly width bytes.
func Raw(width int) Pickler[[]byte] {
	return Primitive(
		func(s *Sink, v []byte) {
			if len(v) != width {
				s.Fail(fmt.Errorf("%w: have %d raw bytes, want %d", ErrLengthMismatch, len(v), width))
				return
			}
			s.PutBytes(v)
		},
		func(src *Source) []byte {
			return src.TakeBytes(width)
		},
		width)
}

// ASCII returns a pickler for fixed-width ASCII text. Shorter values are
// NUL-padded on write and the padding is trimmed on read; values longer
// than width or containing non-ASCII bytes fail with ErrMalformed.
func ASCII(width int) Pickler[string] {
	return Primitive(
		func(s *Sink, v string) {
			if len(v) > width {
				s.Fail(fmt.Errorf("%w: %q exceeds fixed width %d", ErrMalformed, v, width))
				return
			}
			if err := checkASCII(v); err != nil {
				s.Fail(err)
				return
			}
			s.PutString(v)
			s.PutZeros(width - len(v))
		},
		func(src *Source) string {
			at := src.Offset()
			buf := src.take(width)
			if src.err != nil {
				return ""
			}
			end := len(buf)
			for end > 0 && buf[end-1] == 0 {
				end--
			}
			text := string(buf[:end])
			if err := checkASCII(text); err != nil {
				src.Fail(fmt.Errorf("%w at offset %d", err, at))
				return ""
			}
			return text
		},
		width)
}

func checkASCII(v string) error {
	for i := 0; i < len(v); i++ {
		if v[i] == 0 || v[i] > 0x7F {
			return fmt.Errorf("%w: byte 0x%02x is not printable ASCII", ErrMalformed, v[i])
		}
	}
	return nil
}

// UTF8 is a length-prefixed string pickler: a uint32 byte count followed
// by that many bytes of UTF-8. MinSize is the prefix width alone; the
// true size is known only once the prefix is read. Invalid UTF-8 on the
// read side fails with ErrMalformed.
var UTF8 = Primitive(
	func(s *Sink, v string) {
		s.PutUint32(uint32(len(v)))
		s.PutString(v)
	},
	func(src *Source) string {
		n := src.TakeUint32()
		at := src.Offset()
		buf := src.take(int(n))
		if src.err != nil {
			return ""
		}
		if !utf8.Valid(buf) {
			src.Fail(fmt.Errorf("%w: invalid UTF-8 at offset %d", ErrMalformed, at))
			return ""
		}
		return string(buf)
	},
	lenPrefixSize)

// Decimal is an arbitrary-precision decimal pickler. The layout is the
// canonical decimal string (as produced by decimal.Decimal.String) in the
// UTF8 length-prefixed framing, so "1.50" and "1.5" pickle differently
// but compare equal after a round trip. Unparsable text fails with
// ErrMalformed.
var Decimal = Primitive(
	func(s *Sink, v decimal.Decimal) {
		text := v.String()
		s.PutUint32(uint32(len(text)))
		s.PutString(text)
	},
	func(src *Source) decimal.Decimal {
		n := src.TakeUint32()
		at := src.Offset()
		buf := src.take(int(n))
		if src.err != nil {
			return decimal.Decimal{}
		}
		d, err := decimal.NewFromString(string(buf))
		if err != nil {
			src.Fail(fmt.Errorf("%w: invalid decimal %q at offset %d", ErrMalformed, buf, at))
			return decimal.Decimal{}
		}
		return d
	},
	lenPrefixSize)
