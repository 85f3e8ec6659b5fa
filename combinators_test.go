package pickle

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// point is a user record type adapted to a codec via Wrap over a tuple
// of primitives, the standard way structured types obtain picklers.
type point struct {
	X, Y int32
}

var pointPickler = Wrap(
	func(p Pair[int32, int32]) point { return point{X: p.A, Y: p.B} },
	func(v point) Pair[int32, int32] { return Pair[int32, int32]{v.X, v.Y} },
	Tuple2(Int32, Int32))

type CombinatorSuite struct {
	suite.Suite
}

func (s *CombinatorSuite) TestTuple2() {
	s.T().Run("BytesAreComponentConcatenation", func(t *testing.T) {
		p := Tuple2(Int32, UTF8)
		data, err := Pickle(p, Pair[int32, string]{7, "ok"})
		require.NoError(t, err)

		intPart, _ := Pickle(Int32, 7)
		strPart, _ := Pickle(UTF8, "ok")
		assert.Equal(t, append(intPart, strPart...), data)

		v, err := Unpickle(p, data)
		require.NoError(t, err)
		assert.Equal(t, Pair[int32, string]{7, "ok"}, v)
	})

	s.T().Run("OrderIsNotCommutative", func(t *testing.T) {
		ab, err := Pickle(Tuple2(Uint8, Uint16), Pair[uint8, uint16]{1, 0x0203})
		require.NoError(t, err)
		ba, err := Pickle(Tuple2(Uint16, Uint8), Pair[uint16, uint8]{0x0203, 1})
		require.NoError(t, err)

		assert.Equal(t, []byte{1, 0x03, 0x02}, ab)
		assert.Equal(t, []byte{0x03, 0x02, 1}, ba)
		assert.NotEqual(t, ab, ba)
	})
}

func (s *CombinatorSuite) TestTuple3AndTuple4() {
	t3 := Tuple3(Uint8, Uint16, UTF8)
	in3 := Triple[uint8, uint16, string]{9, 0xAABB, "three"}
	data, err := Pickle(t3, in3)
	s.Require().NoError(err)
	out3, err := Unpickle(t3, data)
	s.Require().NoError(err)
	s.Assert().Equal(in3, out3)

	t4 := Tuple4(Bool, Int64, Float64, UTF8)
	in4 := Quad[bool, int64, float64, string]{true, -5, 2.5, "four"}
	data, err = Pickle(t4, in4)
	s.Require().NoError(err)
	out4, err := Unpickle(t4, data)
	s.Require().NoError(err)
	s.Assert().Equal(in4, out4)
}

func (s *CombinatorSuite) TestWrap() {
	s.T().Run("IsomorphismRoundTrip", func(t *testing.T) {
		in := point{X: -3, Y: 12}
		data, err := Pickle(pointPickler, in)
		require.NoError(t, err)
		require.Len(t, data, 8)

		out, err := Unpickle(pointPickler, data)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	s.T().Run("ChildUnderflowPropagates", func(t *testing.T) {
		_, err := Unpickle(pointPickler, []byte{1, 2, 3})
		assert.ErrorIs(t, err, ErrUnderflow)
	})

	s.T().Run("MinSizeIsBase", func(t *testing.T) {
		assert.Equal(t, 8, pointPickler.MinSize())
	})
}

func (s *CombinatorSuite) TestArray() {
	s.T().Run("RoundTrip", func(t *testing.T) {
		p := Array(Uint16, 3)
		data, err := Pickle(p, []uint16{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 0, 2, 0, 3, 0}, data)

		v, err := Unpickle(p, data)
		require.NoError(t, err)
		assert.Equal(t, []uint16{1, 2, 3}, v)
	})

	s.T().Run("CountZeroConsumesNothing", func(t *testing.T) {
		v, err := Unpickle(Array(Uint32, 0), nil)
		require.NoError(t, err)
		assert.Empty(t, v)
		assert.NotNil(t, v)
	})

	s.T().Run("CountBeyondDataUnderflows", func(t *testing.T) {
		_, err := Unpickle(Array(Uint32, 5), []byte{1, 0, 0, 0})
		assert.ErrorIs(t, err, ErrUnderflow)
	})

	s.T().Run("WriteLengthMismatch", func(t *testing.T) {
		_, err := Pickle(Array(Uint16, 3), []uint16{1, 2})
		assert.ErrorIs(t, err, ErrLengthMismatch)
	})

	s.T().Run("NegativeCount", func(t *testing.T) {
		_, err := Unpickle(Array(Uint16, -1), []byte{1, 0})
		assert.ErrorIs(t, err, ErrLengthMismatch)
		_, err = Pickle(Array(Uint16, -1), nil)
		assert.ErrorIs(t, err, ErrLengthMismatch)
	})
}

func (s *CombinatorSuite) TestList() {
	s.T().Run("SelfFraming", func(t *testing.T) {
		p := List(UTF8)
		in := []string{"a", "bc", ""}
		data, err := Pickle(p, in)
		require.NoError(t, err)

		v, err := Unpickle(p, data)
		require.NoError(t, err)
		assert.Equal(t, in, v)
	})

	s.T().Run("EmptyIsJustThePrefix", func(t *testing.T) {
		data, err := Pickle(List(Uint64), []uint64{})
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 0, 0, 0}, data)
	})

	s.T().Run("PrefixBeyondDataUnderflows", func(t *testing.T) {
		_, err := Unpickle(List(Uint8), []byte{200, 0, 0, 0, 1, 2})
		assert.ErrorIs(t, err, ErrUnderflow)
	})
}

func (s *CombinatorSuite) TestChoice() {
	// A sum of two number widths: tag 0 carries a full int64, tag 1 a
	// compact int32.
	compact := Wrap(
		func(v int32) int64 { return int64(v) },
		func(v int64) int32 { return int32(v) },
		Int32)
	variants := map[uint8]Pickler[int64]{0: Int64, 1: compact}
	tagOf := func(v int64) uint8 {
		if v >= -1<<31 && v < 1<<31 {
			return 1
		}
		return 0
	}
	p := Choice(Uint8, variants, tagOf)

	s.T().Run("SelectsVariantByValue", func(t *testing.T) {
		data, err := Pickle(p, 40)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 40, 0, 0, 0}, data)

		wide := int64(1) << 40
		data, err = Pickle(p, wide)
		require.NoError(t, err)
		require.Len(t, data, 9)

		v, err := Unpickle(p, data)
		require.NoError(t, err)
		assert.Equal(t, wide, v)
	})

	s.T().Run("UnknownTagOnRead", func(t *testing.T) {
		_, err := Unpickle(p, []byte{7, 1, 2, 3, 4})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownTag)
	})

	s.T().Run("UnknownTagOnWrite", func(t *testing.T) {
		partial := Choice(Uint8, map[uint8]Pickler[int64]{0: Int64}, tagOf)
		_, err := Pickle(partial, 40) // tagOf says 1, which is unmapped
		assert.ErrorIs(t, err, ErrUnknownTag)
	})

	s.T().Run("MinSizeIsTagPlusSmallestVariant", func(t *testing.T) {
		assert.Equal(t, 1+4, p.MinSize())
	})
}

func (s *CombinatorSuite) TestOrdinal() {
	type level uint8
	p := Ordinal[level]()
	data, err := Pickle(p, level(3))
	s.Require().NoError(err)
	s.Assert().Equal([]byte{3, 0, 0, 0}, data)

	v, err := Unpickle(p, data)
	s.Require().NoError(err)
	s.Assert().Equal(level(3), v)
}

func TestCombinators(t *testing.T) {
	suite.Run(t, new(CombinatorSuite))
}

// --- Native Pickler Tests ---

type header struct {
	ID    uint32
	Flags [4]byte
}

func TestNative(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		p := Native[header]()
		assert.Equal(t, 8, p.MinSize())

		in := header{ID: 0xDEADBEEF, Flags: [4]byte{1, 2, 3, 4}}
		data, err := Pickle(p, in)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xEF, 0xBE, 0xAD, 0xDE, 1, 2, 3, 4}, data)

		out, err := Unpickle(p, data)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := Unpickle(Native[header](), []byte{1, 2, 3})
		assert.ErrorIs(t, err, ErrUnderflow)
	})

	t.Run("PanicsOnVariableSizeType", func(t *testing.T) {
		type bad struct{ Name string }
		assert.Panics(t, func() { Native[bad]() })
	})
}

// --- File and Stream Driver Tests ---

func TestStreamDrivers(t *testing.T) {
	record := Tuple2(Uint16, UTF8)

	t.Run("EncodeDecode", func(t *testing.T) {
		var buf bytes.Buffer
		in := Pair[uint16, string]{7, "stream"}
		n, err := EncodeTo(record, &buf, in)
		require.NoError(t, err)
		assert.EqualValues(t, buf.Len(), n)

		out, err := DecodeFrom(record, &buf)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("ConsecutiveRecords", func(t *testing.T) {
		var buf bytes.Buffer
		first := Pair[uint16, string]{1, "one"}
		second := Pair[uint16, string]{2, "two"}
		_, err := EncodeTo(record, &buf, first)
		require.NoError(t, err)
		_, err = EncodeTo(record, &buf, second)
		require.NoError(t, err)

		src, err := NewStreamSource(&buf)
		require.NoError(t, err)

		out, err := DecodeNext(record, src)
		require.NoError(t, err)
		assert.Equal(t, first, out)

		out, err = DecodeNext(record, src)
		require.NoError(t, err)
		assert.Equal(t, second, out)
	})

	t.Run("NilStream", func(t *testing.T) {
		_, err := DecodeFrom(record, nil)
		assert.ErrorIs(t, err, ErrNilStream)
		_, err = EncodeTo(record, nil, Pair[uint16, string]{})
		assert.ErrorIs(t, err, ErrNilStream)
	})
}

func TestFileDrivers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "point.bin")
	in := point{X: 11, Y: -7}

	require.NoError(t, WriteFile(pointPickler, path, in))

	out, err := ReadFile(pointPickler, path)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = ReadFile(pointPickler, filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}
