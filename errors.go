package pickle

import "errors"

var (
	// ErrUnderflow indicates the source ran out of bytes before a pickler
	// finished reading a value.
	ErrUnderflow = errors.New("pickle: source exhausted before value was fully read")

	// ErrMalformed indicates bytes were present but do not form a valid
	// encoding of the target type (bad UTF-8, unparsable decimal, ...).
	ErrMalformed = errors.New("pickle: bytes are not a valid encoding of the target type")

	// ErrLengthMismatch indicates a sequence pickler was asked to write or
	// read an element count it cannot satisfy.
	ErrLengthMismatch = errors.New("pickle: element count cannot be satisfied")

	// ErrUnknownTag indicates a choice pickler met a discriminant with no
	// registered variant.
	ErrUnknownTag = errors.New("pickle: discriminant does not map to a known variant")

	// ErrNilStream indicates a stream driver was called with a nil
	// io.Reader or io.Writer.
	ErrNilStream = errors.New("pickle: nil reader or writer")
)
