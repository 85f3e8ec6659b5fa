package pickle

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// sizeCache avoids the high performance cost of reflection in
// `binary.Size` every time a Native pickler is composed. A concurrent map
// keeps composition safe from multiple goroutines.
var sizeCache = xsync.NewMap[reflect.Type, int]()

func nativeSize(t reflect.Type) int {
	if size, ok := sizeCache.Load(t); ok {
		return size
	}
	size := binary.Size(reflect.New(t).Interface())
	sizeCache.Store(t, size)
	return size
}

// Native returns a pickler for a struct composed entirely of fixed-size
// fields, laid out field by field in Order byte order via encoding/binary
// reflection. It is the low-ceremony alternative to spelling the struct
// out as a wrapped tuple of primitives.
//
// T must not contain variable-size fields (slices, maps, strings);
// composing a Native pickler for such a type panics, since the pickler
// could never encode anything.
func Native[T any]() Pickler[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	size := nativeSize(t)
	if size < 0 {
		panic(fmt.Sprintf("pickle: Native[%v]: type has no fixed binary size", t))
	}
	return Primitive(
		func(s *Sink, v T) {
			buf := make([]byte, size)
			if _, err := binary.Encode(buf, Order, &v); err != nil {
				s.Fail(fmt.Errorf("%w: %v does not encode as %d fixed bytes", ErrMalformed, t, size))
				return
			}
			s.PutBytes(buf)
		},
		func(src *Source) T {
			var v T
			at := src.Offset()
			buf := src.take(size)
			if src.err != nil {
				return v
			}
			if _, err := binary.Decode(buf, Order, &v); err != nil {
				src.Fail(fmt.Errorf("%w: invalid %v at offset %d", ErrMalformed, t, at))
			}
			return v
		},
		size)
}
