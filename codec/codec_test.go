package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foglayer/fogpack/errs"
	"github.com/foglayer/fogpack/value"
)

func TestEncodeIntBoundaries(t *testing.T) {
	tests := []struct {
		name string
		in   int64
		want []byte
	}{
		{"127 fixint", 127, []byte{0x7f}},
		{"128 uint8", 128, []byte{0xcc, 0x80}},
		{"-1 negfixint", -1, []byte{0xff}},
		{"-33 int8", -33, []byte{0xd0, 0xdf}},
		{"255 uint8", 255, []byte{0xcc, 0xff}},
		{"256 uint16", 256, []byte{0xcd, 0x01, 0x00}},
		{"65535 uint16", 65535, []byte{0xcd, 0xff, 0xff}},
		{"65536 uint32", 65536, []byte{0xce, 0x00, 0x01, 0x00, 0x00}},
		{"-32 negfixint", -32, []byte{0xe0}},
		{"-128 int8", -128, []byte{0xd0, 0x80}},
		{"-129 int16", -129, []byte{0xd1, 0xff, 0x7f}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(value.FromI64(tt.in))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeIntMaxU64(t *testing.T) {
	got, err := Encode(value.FromU64(1<<64 - 1))
	require.NoError(t, err)
	require.Equal(t, byte(0xcf), got[0])
}

func TestIntSignUnsignedSameEncoding(t *testing.T) {
	signed, err := Encode(value.FromI64(1000))
	require.NoError(t, err)
	unsigned, err := Encode(value.FromU64(1000))
	require.NoError(t, err)
	require.Equal(t, signed, unsigned)
}

func TestEncodeStrLengths(t *testing.T) {
	tests := []struct {
		n        int
		wantHead []byte
	}{
		{0, []byte{0xa0}},
		{31, []byte{0xbf}},
		{32, []byte{0xd9, 0x20}},
		{255, []byte{0xd9, 0xff}},
		{256, []byte{0xda, 0x01, 0x00}},
		{65535, []byte{0xda, 0xff, 0xff}},
		{65536, []byte{0xdb, 0x00, 0x01, 0x00, 0x00}},
	}
	for _, tt := range tests {
		s := make([]byte, tt.n)
		for i := range s {
			s[i] = 'a'
		}
		v, err := value.Str(string(s))
		require.NoError(t, err)
		got, err := Encode(v)
		require.NoError(t, err)
		require.Equal(t, tt.wantHead, got[:len(tt.wantHead)])
	}
}

func TestCanonicalMapKeyOrderIndependentOfInsertion(t *testing.T) {
	m1 := value.NewMap()
	require.NoError(t, m1.Set("b", value.FromI64(2)))
	require.NoError(t, m1.Set("a", value.FromI64(1)))

	m2 := value.NewMap()
	require.NoError(t, m2.Set("a", value.FromI64(1)))
	require.NoError(t, m2.Set("b", value.FromI64(2)))

	b1, err := Encode(value.Obj(m1))
	require.NoError(t, err)
	b2, err := Encode(value.Obj(m2))
	require.NoError(t, err)
	require.Equal(t, b1, b2)
}

func TestDecodeRejectsNonCanonicalUint8(t *testing.T) {
	_, err := Decode([]byte{0xcc, 0x01}, DefaultLimits())
	require.ErrorIs(t, err, errs.ErrNonCanonical)
}

func TestDecodeRejectsOutOfOrderMapKeys(t *testing.T) {
	m := value.NewMap()
	require.NoError(t, m.Set("a", value.Null()))
	require.NoError(t, m.Set("b", value.Null()))
	good, err := Encode(value.Obj(m))
	require.NoError(t, err)

	// good is fixmap(2) "a" nil "b" nil; swap the two key/value pairs to
	// produce an out-of-order encoding by hand.
	bad := append([]byte{}, good[0])
	bad = append(bad, good[4:7]...) // "b" nil
	bad = append(bad, good[1:4]...) // "a" nil

	_, err = Decode(bad, DefaultLimits())
	require.ErrorIs(t, err, errs.ErrNonCanonical)
}

func TestRoundTripLaw(t *testing.T) {
	m := value.NewMap()
	require.NoError(t, m.Set("title", value.MustStr("hi")))
	require.NoError(t, m.Set("n", value.FromI64(-7)))

	arr, err := value.Array([]value.Value{value.FromI64(1), value.Bool(true), value.Null()})
	require.NoError(t, err)
	require.NoError(t, m.Set("arr", arr))

	v := value.Obj(m)
	encoded, err := Encode(v)
	require.NoError(t, err)

	decoded, err := Decode(encoded, DefaultLimits())
	require.NoError(t, err)
	require.True(t, value.Equal(v, decoded))

	reencoded, err := Encode(decoded)
	require.NoError(t, err)
	require.Equal(t, encoded, reencoded)
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	_, err := Decode([]byte{0xc0, 0xc0}, DefaultLimits())
	require.ErrorIs(t, err, errs.ErrTrailingData)
}

func TestDecodeRejectsUnknownExtType(t *testing.T) {
	_, err := Decode([]byte{0xd4, 0x05, 0x00}, DefaultLimits())
	require.ErrorIs(t, err, errs.ErrUnknownExtType)
}

func TestDecodeRejectsDepthLimit(t *testing.T) {
	limits := Limits{MaxSize: 1024, MaxDepth: 2}
	// [[[1]]] -- three levels of array nesting against a depth cap of 2.
	encoded := []byte{0x91, 0x91, 0x91, 0x01}
	_, err := Decode(encoded, limits)
	require.ErrorIs(t, err, errs.ErrDepthLimit)
}
