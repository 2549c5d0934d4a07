package value

import (
	"bytes"
	"math"

	"github.com/foglayer/fogpack/format"
)

// totalOrderKey32 maps f to a uint32 whose natural ascending order matches
// the IEEE-754 total-order predicate: negative NaNs order below all other
// negatives, -0 orders strictly below +0, and positive NaNs order above
// everything else (spec.md §4.1).
func totalOrderKey32(f float32) uint32 {
	bits := math.Float32bits(f)
	if bits&0x8000_0000 != 0 {
		return ^bits
	}

	return bits | 0x8000_0000
}

func totalOrderKey64(f float64) uint64 {
	bits := math.Float64bits(f)
	if bits&0x8000_0000_0000_0000 != 0 {
		return ^bits
	}

	return bits | 0x8000_0000_0000_0000
}

// CompareF32 implements the IEEE-754 total-order predicate for float32.
func CompareF32(a, b float32) int { return compareU32(totalOrderKey32(a), totalOrderKey32(b)) }

// CompareF64 implements the IEEE-754 total-order predicate for float64.
func CompareF64(a, b float64) int { return compareU64(totalOrderKey64(a), totalOrderKey64(b)) }

func compareU32(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CompareBin orders two Bin payloads by treating each as a little-endian
// arbitrary-precision unsigned integer (spec.md §4.1): the byte at index 0
// is least significant, and a shorter slice is treated as zero-padded on
// its high end.
func CompareBin(a, b []byte) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	for i := n - 1; i >= 0; i-- {
		var av, bv byte
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			if av < bv {
				return -1
			}

			return 1
		}
	}

	return 0
}

// Compare returns an ordering between a and b and whether the pair is
// ordered at all: only values of the same kind, and only kinds with a
// defined total order (Int, F32, F64, Bin, Str, Time, Hash, Identity),
// are ordered.
func Compare(a, b Value) (int, bool) {
	if a.Kind() != b.Kind() {
		return 0, false
	}

	switch a.Kind() {
	case format.KindInt:
		return a.intVal.Compare(b.intVal), true
	case format.KindF32:
		return CompareF32(a.f32, b.f32), true
	case format.KindF64:
		return CompareF64(a.f64, b.f64), true
	case format.KindBin:
		return CompareBin(a.bin, b.bin), true
	case format.KindStr:
		return bytes.Compare([]byte(a.str), []byte(b.str)), true
	case format.KindTime:
		return a.time.Compare(b.time), true
	case format.KindHash:
		return a.hash.Compare(b.hash), true
	case format.KindIdentity:
		return a.ident.Compare(b.ident), true
	default:
		return 0, false
	}
}

// Equal reports deep structural equality, recursing into Array and Map.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}

	switch a.Kind() {
	case format.KindNull:
		return true
	case format.KindBool:
		return a.boolean == b.boolean
	case format.KindInt:
		return a.intVal.Equal(b.intVal)
	case format.KindF32:
		return math.Float32bits(a.f32) == math.Float32bits(b.f32)
	case format.KindF64:
		return math.Float64bits(a.f64) == math.Float64bits(b.f64)
	case format.KindStr:
		return a.str == b.str
	case format.KindBin:
		return bytes.Equal(a.bin, b.bin)
	case format.KindTime:
		return a.time.Equal(b.time)
	case format.KindHash:
		return a.hash.Equal(b.hash)
	case format.KindIdentity:
		return a.ident.Equal(b.ident)
	case format.KindLockbox:
		return lockboxEqual(a.lockbox, b.lockbox)
	case format.KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}

		return true
	case format.KindMap:
		return mapEqual(a.obj, b.obj)
	default:
		return false
	}
}

func lockboxEqual(a, b Lockbox) bool {
	return a.Version == b.Version && a.Tag == b.Tag &&
		bytes.Equal(a.SignerKey, b.SignerKey) &&
		bytes.Equal(a.EphemeralPub, b.EphemeralPub) &&
		bytes.Equal(a.StreamID, b.StreamID) &&
		bytes.Equal(a.Nonce, b.Nonce) &&
		bytes.Equal(a.Ciphertext, b.Ciphertext) &&
		bytes.Equal(a.AuthTag, b.AuthTag)
}

func mapEqual(a, b *Map) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i, e := range a.entries {
		other := b.entries[i]
		if e.Key != other.Key || !Equal(e.Val, other.Val) {
			return false
		}
	}

	return true
}
