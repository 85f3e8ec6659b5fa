package pickle

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// sourceReader is the capability a Source needs from its backing store.
type sourceReader interface {
	io.Reader
	io.ByteReader
}

// Source is the read cursor a pickler decodes from. The position is
// explicit and only ever moves forward; running out of bytes latches
// ErrUnderflow with the offset at which it happened, and all further
// takes become no-ops.
//
// A Source is owned by a single Unpickle or DecodeFrom call and is not
// safe for concurrent use.
type Source struct {
	r   sourceReader
	off int64
	err error // first error encountered. Subsequent takes become no-ops.
}

// NewSource creates a Source reading from the front of data. The slice is
// not copied; the caller must not mutate it for the duration of the call.
func NewSource(data []byte) *Source {
	return &Source{r: &bytesCursor{b: data}}
}

// NewStreamSource creates a Source over an arbitrary stream, buffering it
// unless the reader is already buffer-backed. Blocking on the underlying
// stream is the caller's concern; the pickler core only ever sees bytes.
func NewStreamSource(r io.Reader) (*Source, error) {
	if r == nil {
		return nil, ErrNilStream
	}
	switch rr := r.(type) {
	// Already buffer-backed: wrapping again would double-buffer.
	case *bufio.Reader:
		return &Source{r: rr}, nil
	case *bytes.Reader:
		return &Source{r: rr}, nil
	case *bytes.Buffer:
		return &Source{r: rr}, nil
	}
	return &Source{r: bufio.NewReader(r)}, nil
}

// Offset returns the number of bytes consumed so far.
func (s *Source) Offset() int64 { return s.off }

// Err returns the latched error, if any.
func (s *Source) Err() error { return s.err }

// Fail latches err as the source's error. The first error sticks; later
// calls are ignored so the root cause is preserved.
func (s *Source) Fail(err error) {
	if s.err == nil && err != nil {
		s.err = err
	}
}

// take consumes exactly n bytes. The returned slice may alias the backing
// buffer of a slice-backed source; callers that retain it must copy.
func (s *Source) take(n int) []byte {
	if s.err != nil {
		return nil
	}
	if n < 0 {
		s.err = fmt.Errorf("%w: negative byte count %d at offset %d", ErrLengthMismatch, n, s.off)
		return nil
	}
	if n == 0 {
		return nil
	}

	// Fast path for slice-backed sources: no copy, exact availability check.
	if c, ok := s.r.(*bytesCursor); ok {
		if len(c.b)-c.n < n {
			s.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrUnderflow, n, s.off, len(c.b)-c.n)
			return nil
		}
		buf := c.b[c.n : c.n+n]
		c.n += n
		s.off += int64(n)
		return buf
	}

	buf := make([]byte, n)
	read, err := io.ReadFull(s.r, buf)
	s.off += int64(read)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			// A partial read is reported the same way as a clean end of
			// stream: the value could not be completed.
			err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrUnderflow, n, s.off-int64(read), read)
		}
		s.err = err
		return nil
	}
	return buf
}

// TakeBytes consumes n bytes and returns them in a fresh slice that does
// not alias the source's backing store.
func (s *Source) TakeBytes(n int) []byte {
	buf := s.take(n)
	if buf == nil {
		return nil
	}
	return bytes.Clone(buf)
}

// --- Primitive Take Operations ---

func (s *Source) TakeBool() bool {
	return s.TakeUint8() != 0
}

func (s *Source) TakeUint8() uint8 {
	if s.err != nil {
		return 0
	}
	b, err := s.r.ReadByte()
	if err != nil {
		s.err = fmt.Errorf("%w: need 1 byte at offset %d, have 0", ErrUnderflow, s.off)
		return 0
	}
	s.off++
	return b
}

func (s *Source) TakeUint16() uint16 {
	buf := s.take(2)
	if s.err != nil {
		return 0
	}
	return Order.Uint16(buf)
}

func (s *Source) TakeUint32() uint32 {
	buf := s.take(4)
	if s.err != nil {
		return 0
	}
	return Order.Uint32(buf)
}

func (s *Source) TakeUint64() uint64 {
	buf := s.take(8)
	if s.err != nil {
		return 0
	}
	return Order.Uint64(buf)
}

func (s *Source) TakeInt8() int8   { return int8(s.TakeUint8()) }
func (s *Source) TakeInt16() int16 { return int16(s.TakeUint16()) }
func (s *Source) TakeInt32() int32 { return int32(s.TakeUint32()) }
func (s *Source) TakeInt64() int64 { return int64(s.TakeUint64()) }

// bytesCursor is the slice-backed sourceReader used by NewSource.
type bytesCursor struct {
	b []byte // backing slice
	n int    // current read position
}

func (c *bytesCursor) Read(p []byte) (int, error) {
	if c.n >= len(c.b) {
		return 0, io.EOF
	}
	n := copy(p, c.b[c.n:])
	c.n += n
	return n, nil
}

func (c *bytesCursor) ReadByte() (byte, error) {
	if c.n >= len(c.b) {
		return 0, io.EOF
	}
	b := c.b[c.n]
	c.n++
	return b, nil
}
