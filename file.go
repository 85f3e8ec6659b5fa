package pickle

import (
	"io"
	"os"
)

// This file is the boundary to the effectful I/O layer: the pickler core
// never holds a file handle, it only exchanges buffers and streams with
// these drivers.

// EncodeTo pickles v and writes the buffer to w in one call, returning
// the byte count written.
func EncodeTo[T any](p Pickler[T], w io.Writer, v T) (int64, error) {
	if w == nil {
		return 0, ErrNilStream
	}
	data, err := Pickle(p, v)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	return int64(n), err
}

// DecodeFrom reads one value of p incrementally from a stream. Bytes
// after the value are left in the stream, so consecutive calls decode
// consecutive records.
func DecodeFrom[T any](p Pickler[T], r io.Reader) (T, error) {
	src, err := NewStreamSource(r)
	if err != nil {
		var zero T
		return zero, err
	}
	return DecodeNext(p, src)
}

// DecodeNext decodes one value from an existing Source, for callers
// reading a sequence of records from the same stream.
func DecodeNext[T any](p Pickler[T], src *Source) (T, error) {
	v := p.Read(src)
	if err := src.Err(); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// WriteFile pickles v and persists the buffer at path.
func WriteFile[T any](p Pickler[T], path string, v T) error {
	data, err := Pickle(p, v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile decodes one value of p from the file at path, reading the
// file incrementally rather than slurping it.
func ReadFile[T any](p Pickler[T], path string) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()
	return DecodeFrom(p, f)
}
