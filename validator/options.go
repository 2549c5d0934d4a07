package validator

import "github.com/foglayer/fogpack/value"

// IntOpts is the Int validator's kind-specific clauses (spec.md §4.2):
// inclusive/exclusive bounds and bitmask membership tests.
type IntOpts struct {
	Min   *value.Int
	Max   *value.Int
	ExMin bool // Min is exclusive rather than inclusive
	ExMax bool // Max is exclusive rather than inclusive

	BitsSet uint64 // these bits must all be set
	BitsClr uint64 // these bits must all be clear
}

// FloatOpts is shared by F32 and F64: inclusive/exclusive bounds compared
// with the IEEE-754 total order (spec.md §4.1), not raw <, so NaN and
// signed zero behave predictably.
type FloatOpts struct {
	Min   *float64
	Max   *float64
	ExMin bool
	ExMax bool
}

// StrOpts is the Str validator's kind-specific clauses.
type StrOpts struct {
	MinLen *uint64 // inclusive lower bound on UTF-8 byte length
	MaxLen *uint64 // inclusive upper bound on UTF-8 byte length
	MinChar *uint64 // inclusive lower bound on rune count
	MaxChar *uint64 // inclusive upper bound on rune count

	Matches   []string // regex patterns; a string must match all of them
	Normalize NormalizeMode
}

// NormalizeMode selects a Unicode normalization form applied before
// length, rune-count, and regex checks (spec.md §4.2's `normalize`
// option).
type NormalizeMode byte

const (
	NormalizeNone NormalizeMode = iota
	NormalizeNFC
	NormalizeNFKC
)

// BinOpts is the Bin validator's kind-specific clauses. Bits masks are
// compared byte-for-byte against the value's leading bytes; a mask
// longer than the value always fails BitsSet and always passes BitsClr
// for the bytes beyond the value's length.
type BinOpts struct {
	MinLen *uint64
	MaxLen *uint64

	BitsSet []byte
	BitsClr []byte
}

// ArrayOpts is the Array validator's kind-specific clauses.
type ArrayOpts struct {
	MinLen *uint64
	MaxLen *uint64

	// Items validates a fixed positional prefix of the array, one
	// validator per index. Elements beyond len(Items) are governed by
	// ExtraItems: nil rejects any extra element, non-nil validates each
	// of them.
	Items      []*Validator
	ExtraItems *Validator

	// Contains requires, for each validator in the list, that at least
	// one array element satisfy it (spec.md §4.2's `contains`).
	Contains []*Validator

	Unique bool
}

// MapOpts is the Map validator's kind-specific clauses.
type MapOpts struct {
	Req map[string]*Validator // required fields
	Opt map[string]*Validator // optional fields
	Ban []string              // fields that must not be present

	// FieldType validates every field not named in Req or Opt, when
	// UnknownOk is true. When UnknownOk is false, any field not in Req
	// or Opt fails validation outright and FieldType is not consulted.
	FieldType *Validator
	UnknownOk bool

	MinFields *uint64
	MaxFields *uint64
}

// HashOpts is the Hash validator's kind-specific clauses.
type HashOpts struct {
	// Link is the validator that applies to the document this hash
	// points to. It is consulted only by the query-admissibility check
	// (query package); validating a
	// bare Hash value never dereferences it, since doing so would
	// require storage access this package does not have.
	Link *Validator

	// Schema, if set, names the schema hash the referenced document
	// carries. Validating a bare Hash value does not check it.
	Schema *value.Hash
}

// LockboxOpts is the Lockbox validator's kind-specific clauses.
type LockboxOpts struct {
	MaxLen *uint64 // inclusive upper bound on the encoded ext body length
	Size   *uint64 // exact required encoded ext body length
}
