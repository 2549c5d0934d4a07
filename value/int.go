package value

// Int is fog-pack's single wide integer type, covering the full
// [-2^63, 2^64-1] range spec.md §3 requires. It stores a sign flag and a
// magnitude so that values above math.MaxInt64 are representable without
// widening to a bignum type.
type Int struct {
	neg bool
	mag uint64 // for neg, the two's-complement magnitude: 0 < mag <= 2^63
}

// IntFromI64 builds an Int from a signed host integer.
func IntFromI64(i int64) Int {
	if i >= 0 {
		return Int{neg: false, mag: uint64(i)}
	}

	return Int{neg: true, mag: uint64(-(i + 1)) + 1} // avoids overflow at math.MinInt64
}

// IntFromU64 builds an Int from an unsigned host integer.
func IntFromU64(u uint64) Int {
	return Int{neg: false, mag: u}
}

// IsNegative reports whether the value is strictly less than zero.
func (n Int) IsNegative() bool { return n.neg && n.mag != 0 }

// I64 returns the value as an int64 and whether it fits without loss.
func (n Int) I64() (int64, bool) {
	if !n.neg {
		if n.mag > 1<<63-1 {
			return 0, false
		}

		return int64(n.mag), true
	}
	if n.mag == 0 {
		return 0, true
	}
	if n.mag > 1<<63 {
		return 0, false
	}

	return -int64(n.mag-1) - 1, true
}

// U64 returns the value as a uint64 and whether it fits (i.e. is
// non-negative).
func (n Int) U64() (uint64, bool) {
	if n.neg && n.mag != 0 {
		return 0, false
	}

	return n.mag, true
}

// Compare returns -1, 0, or 1 comparing n to other as mathematical
// integers, used by the validator's min/max/in/nin clauses and by value
// equality checks.
func (n Int) Compare(other Int) int {
	switch {
	case n.IsNegative() && !other.IsNegative():
		return -1
	case !n.IsNegative() && other.IsNegative():
		return 1
	case !n.IsNegative() && !other.IsNegative():
		return compareU64(n.mag, other.mag)
	default: // both negative: larger magnitude is smaller value
		return -compareU64(n.mag, other.mag)
	}
}

func compareU64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Equal reports whether n and other denote the same mathematical integer,
// regardless of which constructor built them (spec.md §8 law 6).
func (n Int) Equal(other Int) bool { return n.Compare(other) == 0 }
