package pickle

// Sink is the append-only byte buffer a pickler writes into. It grows as
// needed and tracks the first error; after an error all further puts
// become no-ops, so a failure deep inside a composition surfaces once at
// the driver without partial-write bookkeeping along the way.
//
// A Sink is owned by a single Pickle call and is not safe for concurrent
// use.
type Sink struct {
	buf []byte
	err error // first error encountered. Subsequent puts become no-ops.
}

// NewSink creates a Sink with the given initial capacity, typically the
// pickler's MinSize.
func NewSink(capacity int) *Sink {
	if capacity < 0 {
		capacity = 0
	}
	return &Sink{buf: make([]byte, 0, capacity)}
}

// Bytes returns the accumulated buffer.
func (s *Sink) Bytes() []byte { return s.buf }

// Count returns the number of bytes written so far.
func (s *Sink) Count() int64 { return int64(len(s.buf)) }

// Err returns the latched error, if any.
func (s *Sink) Err() error { return s.err }

// Fail latches err as the sink's error. The first error sticks; later
// calls are ignored so the root cause is preserved.
func (s *Sink) Fail(err error) {
	if s.err == nil && err != nil {
		s.err = err
	}
}

// PutBytes appends buf.
func (s *Sink) PutBytes(buf []byte) {
	if s.err != nil {
		return
	}
	s.buf = append(s.buf, buf...)
}

// PutString appends the raw bytes of str.
func (s *Sink) PutString(str string) {
	if s.err != nil {
		return
	}
	s.buf = append(s.buf, str...)
}

// PutZeros appends n zero bytes, typically for fixed-width padding.
func (s *Sink) PutZeros(n int) {
	if s.err != nil || n <= 0 {
		return
	}
	s.buf = append(s.buf, make([]byte, n)...)
}

// --- Primitive Put Operations ---

func (s *Sink) PutBool(v bool) {
	if s.err != nil {
		return
	}
	if v {
		s.buf = append(s.buf, 1)
	} else {
		s.buf = append(s.buf, 0)
	}
}

func (s *Sink) PutUint8(v uint8) {
	if s.err != nil {
		return
	}
	s.buf = append(s.buf, v)
}

func (s *Sink) PutUint16(v uint16) {
	if s.err != nil {
		return
	}
	var buf [2]byte
	Order.PutUint16(buf[:], v)
	s.buf = append(s.buf, buf[:]...)
}

func (s *Sink) PutUint32(v uint32) {
	if s.err != nil {
		return
	}
	var buf [4]byte
	Order.PutUint32(buf[:], v)
	s.buf = append(s.buf, buf[:]...)
}

func (s *Sink) PutUint64(v uint64) {
	if s.err != nil {
		return
	}
	var buf [8]byte
	Order.PutUint64(buf[:], v)
	s.buf = append(s.buf, buf[:]...)
}

func (s *Sink) PutInt8(v int8)   { s.PutUint8(uint8(v)) }
func (s *Sink) PutInt16(v int16) { s.PutUint16(uint16(v)) }
func (s *Sink) PutInt32(v int32) { s.PutUint32(uint32(v)) }
func (s *Sink) PutInt64(v int64) { s.PutUint64(uint64(v)) }
