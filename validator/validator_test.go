package validator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foglayer/fogpack/errs"
	"github.com/foglayer/fogpack/value"
)

func mustStr(s string) value.Value { return value.MustStr(s) }

func TestValidateKindMismatch(t *testing.T) {
	v := &Validator{Kind: KindInt}
	err := Validate(v, mustStr("nope"), "")
	require.ErrorIs(t, err, errs.ErrValidationFailed)
}

func TestValidateIntBounds(t *testing.T) {
	min := value.IntFromI64(0)
	max := value.IntFromI64(100)
	v := &Validator{Kind: KindInt, Int: &IntOpts{Min: &min, Max: &max}}

	require.NoError(t, Validate(v, value.FromI64(50), ""))
	require.Error(t, Validate(v, value.FromI64(-1), ""))
	require.Error(t, Validate(v, value.FromI64(101), ""))
}

func TestValidateIntExclusiveBounds(t *testing.T) {
	min := value.IntFromI64(0)
	v := &Validator{Kind: KindInt, Int: &IntOpts{Min: &min, ExMin: true}}

	require.Error(t, Validate(v, value.FromI64(0), ""))
	require.NoError(t, Validate(v, value.FromI64(1), ""))
}

func TestValidateIntBits(t *testing.T) {
	v := &Validator{Kind: KindInt, Int: &IntOpts{BitsSet: 0b0110, BitsClr: 0b1000}}

	require.NoError(t, Validate(v, value.FromU64(0b0110), ""))
	require.Error(t, Validate(v, value.FromU64(0b0010), "")) // missing a required bit
	require.Error(t, Validate(v, value.FromU64(0b1110), "")) // a clear bit is set
}

func TestValidateStrLenAndMatches(t *testing.T) {
	minLen := uint64(2)
	maxLen := uint64(5)
	v := &Validator{Kind: KindStr, Str: &StrOpts{
		MinLen:  &minLen,
		MaxLen:  &maxLen,
		Matches: []string{"^[a-z]+$"},
	}}
	require.NoError(t, CompileRegexes(v))

	require.NoError(t, Validate(v, mustStr("abc"), ""))
	require.Error(t, Validate(v, mustStr("a"), ""))      // too short
	require.Error(t, Validate(v, mustStr("abcdef"), "")) // too long
	require.Error(t, Validate(v, mustStr("ABC"), ""))    // fails matches
}

func TestValidateStrMatchesRequiresEveryPattern(t *testing.T) {
	v := &Validator{Kind: KindStr, Str: &StrOpts{
		Matches: []string{"^[a-z]+$", "e"},
	}}
	require.NoError(t, CompileRegexes(v))

	require.NoError(t, Validate(v, mustStr("apple"), "")) // matches both patterns
	require.Error(t, Validate(v, mustStr("plum"), ""))    // matches only the first pattern
	require.Error(t, Validate(v, mustStr("Pear"), ""))    // matches only the second pattern
}

func TestValidateArrayItemsAndExtra(t *testing.T) {
	v := &Validator{Kind: KindArray, Array: &ArrayOpts{
		Items:      []*Validator{{Kind: KindInt}, {Kind: KindStr}},
		ExtraItems: Empty(),
	}}

	arr, err := value.Array([]value.Value{value.FromI64(1), mustStr("x"), value.Bool(true)})
	require.NoError(t, err)
	require.NoError(t, Validate(v, arr, ""))

	bad, err := value.Array([]value.Value{mustStr("not an int"), mustStr("x")})
	require.NoError(t, err)
	require.Error(t, Validate(v, bad, ""))
}

func TestValidateArrayNoExtraItemsRejectsOverflow(t *testing.T) {
	v := &Validator{Kind: KindArray, Array: &ArrayOpts{Items: []*Validator{{Kind: KindInt}}}}

	arr, err := value.Array([]value.Value{value.FromI64(1), value.FromI64(2)})
	require.NoError(t, err)
	require.Error(t, Validate(v, arr, ""))
}

func TestValidateArrayUnique(t *testing.T) {
	v := &Validator{Kind: KindArray, Array: &ArrayOpts{ExtraItems: Empty(), Unique: true}}

	dup, err := value.Array([]value.Value{value.FromI64(1), value.FromI64(1)})
	require.NoError(t, err)
	require.Error(t, Validate(v, dup, ""))
}

func TestValidateMapReqOptBan(t *testing.T) {
	v := &Validator{Kind: KindMap, Map: &MapOpts{
		Req: map[string]*Validator{"name": {Kind: KindStr}},
		Opt: map[string]*Validator{"age": {Kind: KindInt}},
		Ban: []string{"secret"},
	}}

	m := value.NewMap()
	require.NoError(t, m.Set("name", mustStr("alice")))
	require.NoError(t, Validate(v, value.Obj(m), ""))

	m2 := value.NewMap()
	require.Error(t, Validate(v, value.Obj(m2), "")) // missing required field

	m3 := value.NewMap()
	require.NoError(t, m3.Set("name", mustStr("alice")))
	require.NoError(t, m3.Set("secret", value.Bool(true)))
	require.Error(t, Validate(v, value.Obj(m3), "")) // banned field present
}

func TestValidateMapUnknownFields(t *testing.T) {
	strict := &Validator{Kind: KindMap, Map: &MapOpts{Req: map[string]*Validator{}}}
	m := value.NewMap()
	require.NoError(t, m.Set("extra", value.Bool(true)))
	require.Error(t, Validate(strict, value.Obj(m), "")) // unknown_ok defaults false

	lenient := &Validator{Kind: KindMap, Map: &MapOpts{UnknownOk: true, FieldType: &Validator{Kind: KindBool}}}
	require.NoError(t, Validate(lenient, value.Obj(m), ""))
}

func TestValidateMulti(t *testing.T) {
	v := Multi(&Validator{Kind: KindInt}, &Validator{Kind: KindStr})

	require.NoError(t, Validate(v, value.FromI64(1), ""))
	require.NoError(t, Validate(v, mustStr("x"), ""))
	require.Error(t, Validate(v, value.Bool(true), ""))
}

func TestValidateInNin(t *testing.T) {
	v := &Validator{Kind: KindInt, In: []value.Value{value.FromI64(1), value.FromI64(2)}}
	require.NoError(t, Validate(v, value.FromI64(1), ""))
	require.Error(t, Validate(v, value.FromI64(3), ""))

	v2 := &Validator{Kind: KindInt, Nin: []value.Value{value.FromI64(1)}}
	require.Error(t, Validate(v2, value.FromI64(1), ""))
	require.NoError(t, Validate(v2, value.FromI64(2), ""))
}

func TestResolveAliasCycleThroughArrayIsLegal(t *testing.T) {
	table := Table{}
	node := &Validator{Kind: KindArray, Array: &ArrayOpts{ExtraItems: Alias("node")}}
	table["node"] = node

	require.NoError(t, table.Resolve())
}

func TestResolveAliasDirectCycleIsRejected(t *testing.T) {
	table := Table{
		"a": Alias("b"),
		"b": Alias("a"),
	}

	err := table.Resolve()
	require.ErrorIs(t, err, errs.ErrAliasCycle)
}

func TestResolveAliasMissingTarget(t *testing.T) {
	table := Table{"a": Alias("ghost")}
	err := table.Resolve()
	require.ErrorIs(t, err, errs.ErrAliasMissing)
}

func TestCompileRegexesEnforcesLimit(t *testing.T) {
	patterns := make([]string, MaxRegexes+1)
	for i := range patterns {
		patterns[i] = "^a$"
	}
	v := &Validator{Kind: KindStr, Str: &StrOpts{Matches: patterns}}

	err := CompileRegexes(v)
	require.ErrorIs(t, err, errs.ErrRegexLimit)
}

func TestCompileRegexesRejectsBadPattern(t *testing.T) {
	v := &Validator{Kind: KindStr, Str: &StrOpts{Matches: []string{"("}}}
	err := CompileRegexes(v)
	require.ErrorIs(t, err, errs.ErrRegexCompile)
}
