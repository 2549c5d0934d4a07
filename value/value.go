// Package value implements fog-pack's in-memory value model: the closed
// set of kinds from spec.md §3, their construction, and the invariants
// that make a value safe to canonically encode (valid UTF-8, sorted
// unique map keys, exact-width cryptographic payloads).
//
// Values are immutable once constructed. A Map is built incrementally
// with Set, which maintains sorted order and rejects duplicate keys at
// construction time rather than at encode time, so a caller never builds
// a tree that cannot be encoded.
package value

import (
	"unicode/utf8"

	"github.com/foglayer/fogpack/errs"
	"github.com/foglayer/fogpack/format"
)

// Value is a single fog-pack value of any kind. The zero Value is Null.
type Value struct {
	kind format.Kind

	boolean bool
	intVal  Int
	f32     float32
	f64     float64
	str     string
	bin     []byte
	arr     []Value
	obj     *Map
	hash    Hash
	ident   Identity
	lockbox Lockbox
	time    Time
}

// Kind reports the value's kind.
func (v Value) Kind() format.Kind {
	if v.kind == format.KindInvalid {
		return format.KindNull
	}

	return v.kind
}

// Null returns the Null value.
func Null() Value { return Value{kind: format.KindNull} }

// Bool returns a Bool value.
func Bool(b bool) Value { return Value{kind: format.KindBool, boolean: b} }

// AsBool returns the value's boolean payload and whether it was a Bool.
func (v Value) AsBool() (bool, bool) {
	if v.Kind() != format.KindBool {
		return false, false
	}

	return v.boolean, true
}

// FromI64 returns an Int value built from a signed host integer.
func FromI64(i int64) Value { return Value{kind: format.KindInt, intVal: IntFromI64(i)} }

// FromU64 returns an Int value built from an unsigned host integer.
func FromU64(u uint64) Value { return Value{kind: format.KindInt, intVal: IntFromU64(u)} }

// AsInt returns the value's Int payload and whether it was an Int.
func (v Value) AsInt() (Int, bool) {
	if v.Kind() != format.KindInt {
		return Int{}, false
	}

	return v.intVal, true
}

// F32 returns an F32 value.
func F32(f float32) Value { return Value{kind: format.KindF32, f32: f} }

// AsF32 returns the value's float32 payload and whether it was an F32.
func (v Value) AsF32() (float32, bool) {
	if v.Kind() != format.KindF32 {
		return 0, false
	}

	return v.f32, true
}

// F64 returns an F64 value.
func F64(f float64) Value { return Value{kind: format.KindF64, f64: f} }

// AsF64 returns the value's float64 payload and whether it was an F64.
func (v Value) AsF64() (float64, bool) {
	if v.Kind() != format.KindF64 {
		return 0, false
	}

	return v.f64, true
}

// Str returns a Str value after checking it is valid UTF-8 and under the
// 2^32 length ceiling.
func Str(s string) (Value, error) {
	if !utf8.ValidString(s) {
		return Value{}, errs.ErrInvalidUTF8
	}
	if uint64(len(s)) >= 1<<32 {
		return Value{}, errs.ErrRange
	}

	return Value{kind: format.KindStr, str: s}, nil
}

// MustStr is Str, panicking on error. Intended for literals known at
// compile time to be valid.
func MustStr(s string) Value {
	v, err := Str(s)
	if err != nil {
		panic(err)
	}

	return v
}

// AsStr returns the value's string payload and whether it was a Str.
func (v Value) AsStr() (string, bool) {
	if v.Kind() != format.KindStr {
		return "", false
	}

	return v.str, true
}

// Bin returns a Bin value. The slice is retained, not copied; callers
// must not mutate it afterward.
func Bin(b []byte) (Value, error) {
	if uint64(len(b)) >= 1<<32 {
		return Value{}, errs.ErrRange
	}

	return Value{kind: format.KindBin, bin: b}, nil
}

// AsBin returns the value's byte payload and whether it was a Bin.
func (v Value) AsBin() ([]byte, bool) {
	if v.Kind() != format.KindBin {
		return nil, false
	}

	return v.bin, true
}

// Array returns an Array value wrapping elems in order.
func Array(elems []Value) (Value, error) {
	if uint64(len(elems)) >= 1<<32 {
		return Value{}, errs.ErrRange
	}

	return Value{kind: format.KindArray, arr: elems}, nil
}

// AsArray returns the value's element slice and whether it was an Array.
func (v Value) AsArray() ([]Value, bool) {
	if v.Kind() != format.KindArray {
		return nil, false
	}

	return v.arr, true
}

// Obj wraps a built Map as a Value.
func Obj(m *Map) Value { return Value{kind: format.KindMap, obj: m} }

// AsMap returns the value's Map and whether it was a Map.
func (v Value) AsMap() (*Map, bool) {
	if v.Kind() != format.KindMap {
		return nil, false
	}

	return v.obj, true
}

// HashValue wraps a Hash as a Value.
func HashValue(h Hash) Value { return Value{kind: format.KindHash, hash: h} }

// AsHash returns the value's Hash and whether it was a Hash.
func (v Value) AsHash() (Hash, bool) {
	if v.Kind() != format.KindHash {
		return Hash{}, false
	}

	return v.hash, true
}

// IdentityValue wraps an Identity as a Value.
func IdentityValue(id Identity) Value { return Value{kind: format.KindIdentity, ident: id} }

// AsIdentity returns the value's Identity and whether it was an Identity.
func (v Value) AsIdentity() (Identity, bool) {
	if v.Kind() != format.KindIdentity {
		return Identity{}, false
	}

	return v.ident, true
}

// LockboxValue wraps a Lockbox as a Value.
func LockboxValue(l Lockbox) Value { return Value{kind: format.KindLockbox, lockbox: l} }

// AsLockbox returns the value's Lockbox and whether it was a Lockbox.
func (v Value) AsLockbox() (Lockbox, bool) {
	if v.Kind() != format.KindLockbox {
		return Lockbox{}, false
	}

	return v.lockbox, true
}

// TimeValue wraps a Time as a Value after range-checking its nanoseconds.
func TimeValue(t Time) (Value, error) {
	if t.Nanos >= 2_000_000_000 {
		return Value{}, errs.ErrRange
	}

	return Value{kind: format.KindTime, time: t}, nil
}

// AsTime returns the value's Time and whether it was a Time.
func (v Value) AsTime() (Time, bool) {
	if v.Kind() != format.KindTime {
		return Time{}, false
	}

	return v.time, true
}
