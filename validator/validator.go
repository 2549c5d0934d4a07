// Package validator implements fog-pack's recursive validator tree
// (spec.md §4.2): a closed set of per-kind predicates, an alias table for
// recursive/shared validator definitions, and the validation procedure
// that walks a Value against a Validator and either accepts it or
// produces a structured failure naming the offending path and clause.
package validator

import "github.com/foglayer/fogpack/value"

// Kind is the validator's own discriminator. It extends format.Kind with
// the three non-primitive validator forms: Empty, Alias, and Multi.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindAlias
	KindMulti
	KindNull
	KindBool
	KindInt
	KindF32
	KindF64
	KindStr
	KindBin
	KindArray
	KindMap
	KindHash
	KindIdentity
	KindLockbox
	KindTime
)

func (k Kind) String() string {
	names := [...]string{
		"Empty", "Alias", "Multi", "Null", "Bool", "Int", "F32", "F64",
		"Str", "Bin", "Array", "Map", "Hash", "Identity", "Lockbox", "Time",
	}
	if int(k) < len(names) {
		return names[k]
	}

	return "Unknown"
}

// Validator is a single node of the recursive predicate tree described by
// spec.md §4.2. At most one of the kind-specific option pointers is
// non-nil, the one selected by Kind; for KindAlias, AliasName names an entry in
// the owning Schema's types table; for KindMulti, Options holds the
// any_of alternatives.
type Validator struct {
	Kind Kind

	// Common options (spec.md §4.2), valid on every typed (non-Empty,
	// non-Alias, non-Multi) validator.
	Comment string
	Default *value.Value
	In      []value.Value
	Nin     []value.Value
	Query   bool

	Null     *NullOpts
	Bool     *BoolOpts
	Int      *IntOpts
	F32      *FloatOpts
	F64      *FloatOpts
	Str      *StrOpts
	Bin      *BinOpts
	Array    *ArrayOpts
	Map      *MapOpts
	Hash     *HashOpts
	Identity *IdentityOpts
	Lockbox  *LockboxOpts
	Time     *TimeOpts

	AliasName string
	Options   []*Validator // KindMulti's any_of list

	resolved *Validator // alias resolution cache, set by Table.Resolve
	regex    []compiledPattern
}

// NullOpts, BoolOpts, IdentityOpts, TimeOpts carry no kind-specific
// fields beyond the common options; they exist so Validator's shape is
// uniform and callers can distinguish "this position is typed Null" from
// "this position is Empty".
type NullOpts struct{}
type BoolOpts struct{}
type IdentityOpts struct{}
type TimeOpts struct{}

// Empty returns the validator that accepts any value and has no
// queryable sub-fields (spec.md §4.2).
func Empty() *Validator { return &Validator{Kind: KindEmpty} }

// Alias returns a validator that defers to name in the owning schema's
// types table.
func Alias(name string) *Validator { return &Validator{Kind: KindAlias, AliasName: name} }

// Multi returns an any_of validator: a value is accepted if any option
// accepts it.
func Multi(options ...*Validator) *Validator {
	return &Validator{Kind: KindMulti, Options: options}
}
