package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foglayer/fogpack/errs"
)

func TestStrRejectsInvalidUTF8(t *testing.T) {
	_, err := Str(string([]byte{0xff, 0xfe}))
	require.ErrorIs(t, err, errs.ErrInvalidUTF8)
}

func TestMapRejectsDuplicateKey(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Set("a", FromI64(1)))
	err := m.Set("a", FromI64(2))
	require.ErrorIs(t, err, errs.ErrDuplicateKey)
}

func TestMapKeepsSortedOrderRegardlessOfInsertOrder(t *testing.T) {
	m1 := NewMap()
	require.NoError(t, m1.Set("b", FromI64(2)))
	require.NoError(t, m1.Set("a", FromI64(1)))

	m2 := NewMap()
	require.NoError(t, m2.Set("a", FromI64(1)))
	require.NoError(t, m2.Set("b", FromI64(2)))

	require.True(t, mapEqual(m1, m2))

	var keys []string
	m1.Range(func(k string, _ Value) bool {
		keys = append(keys, k)
		return true
	})
	require.Equal(t, []string{"a", "b"}, keys)
}

func TestIntAsymmetricRange(t *testing.T) {
	maxU64 := FromU64(math.MaxUint64)
	u, ok := maxU64.AsInt()
	require.True(t, ok)
	asU64, ok := u.U64()
	require.True(t, ok)
	require.Equal(t, uint64(math.MaxUint64), asU64)
	_, ok = u.I64()
	require.False(t, ok)

	minI64 := FromI64(math.MinInt64)
	n, _ := minI64.AsInt()
	asI64, ok := n.I64()
	require.True(t, ok)
	require.Equal(t, int64(math.MinInt64), asI64)
	_, ok = n.U64()
	require.False(t, ok)
}

func TestIntCompareAcrossSign(t *testing.T) {
	neg := IntFromI64(-1)
	pos := IntFromU64(1)
	require.Equal(t, -1, neg.Compare(pos))
	require.Equal(t, 1, pos.Compare(neg))
	require.Equal(t, 0, neg.Compare(IntFromI64(-1)))
}

func TestCompareFloatTotalOrderHandlesNegativeZeroAndNaN(t *testing.T) {
	require.Equal(t, -1, CompareF64(math.Copysign(0, -1), 0))
	require.Equal(t, 1, CompareF64(0, math.Copysign(0, -1)))

	negNaN := math.Float64frombits(math.Float64bits(math.NaN()) | (1 << 63))
	posNaN := math.NaN()
	require.Equal(t, -1, CompareF64(negNaN, math.Inf(-1)))
	require.Equal(t, 1, CompareF64(posNaN, math.Inf(1)))
}

func TestCompareBinTreatsShorterAsZeroPadded(t *testing.T) {
	c, ok := Compare(mustBin(t, []byte{0x01}), mustBin(t, []byte{0x01, 0x00}))
	require.True(t, ok)
	require.Equal(t, 0, c)

	c, ok = Compare(mustBin(t, []byte{0x01}), mustBin(t, []byte{0x00, 0x01}))
	require.True(t, ok)
	require.Equal(t, -1, c)
}

func TestCompareRejectsMismatchedKinds(t *testing.T) {
	_, ok := Compare(FromI64(1), MustStr("1"))
	require.False(t, ok)
}

func TestEqualRecursesIntoArrayAndMap(t *testing.T) {
	m1 := NewMap()
	require.NoError(t, m1.Set("k", FromI64(1)))
	m2 := NewMap()
	require.NoError(t, m2.Set("k", FromI64(1)))

	arr1, err := Array([]Value{Obj(m1), FromI64(2)})
	require.NoError(t, err)
	arr2, err := Array([]Value{Obj(m2), FromI64(2)})
	require.NoError(t, err)

	require.True(t, Equal(arr1, arr2))
}

func mustBin(t *testing.T, b []byte) Value {
	t.Helper()
	v, err := Bin(b)
	require.NoError(t, err)
	return v
}
