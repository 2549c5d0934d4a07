package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foglayer/fogpack/errs"
	"github.com/foglayer/fogpack/validator"
	"github.com/foglayer/fogpack/value"
)

func typeSpec(t *testing.T, kind string, fields map[string]value.Value) value.Value {
	t.Helper()
	m := value.NewMap()
	require.NoError(t, m.Set("type", value.MustStr(kind)))
	for k, v := range fields {
		require.NoError(t, m.Set(k, v))
	}

	return value.Obj(m)
}

func TestCoreSchemaValidatesItself(t *testing.T) {
	// A literal schema document using this module's validator-spec
	// dialect, built to mirror coreSchemaValidator's own shape (spec.md
	// §8 law 7: the core schema validates itself).
	root := typeSpec(t, "Map", map[string]value.Value{
		"unknown_ok": value.Bool(true),
	})
	doc := value.NewMap()
	require.NoError(t, doc.Set("root", root))
	require.NoError(t, doc.Set("max_regex", value.FromI64(255)))

	require.NoError(t, validator.Validate(coreSchemaValidator(), value.Obj(doc), ""))
}

func TestCoreSchemaRejectsMissingRoot(t *testing.T) {
	doc := value.NewMap()
	err := validator.Validate(coreSchemaValidator(), value.Obj(doc), "")
	require.Error(t, err)
}

func buildTestSchema(t *testing.T) *Schema {
	t.Helper()

	nameField := typeSpec(t, "Str", map[string]value.Value{"query": value.Bool(true)})
	reqMap := value.NewMap()
	require.NoError(t, reqMap.Set("name", nameField))

	root := typeSpec(t, "Map", map[string]value.Value{
		"req":        value.Obj(reqMap),
		"unknown_ok": value.Bool(false),
		"query":      value.Bool(true),
	})

	doc := value.NewMap()
	require.NoError(t, doc.Set("root", root))

	s, err := Build(value.Obj(doc))
	require.NoError(t, err)

	return s
}

func TestBuildAndValidateDoc(t *testing.T) {
	s := buildTestSchema(t)

	good := value.NewMap()
	require.NoError(t, good.Set("name", value.MustStr("alice")))
	require.NoError(t, good.Set("", value.HashValue(s.Hash())))
	require.NoError(t, s.ValidateDoc(value.Obj(good)))

	missingSchema := value.NewMap()
	require.NoError(t, missingSchema.Set("name", value.MustStr("alice")))
	require.ErrorIs(t, s.ValidateDoc(value.Obj(missingSchema)), errs.ErrNoSchema)

	wrongField := value.NewMap()
	require.NoError(t, wrongField.Set("", value.HashValue(s.Hash())))
	require.Error(t, s.ValidateDoc(value.Obj(wrongField))) // missing required "name"
}

func TestBuildRejectsBadValidatorSpec(t *testing.T) {
	root := value.NewMap() // missing "type"
	doc := value.NewMap()
	require.NoError(t, doc.Set("root", value.Obj(root)))

	_, err := Build(value.Obj(doc))
	require.Error(t, err)
}

func TestCheckQueryAgainstRoot(t *testing.T) {
	s := buildTestSchema(t)

	q := typeSpec(t, "Map", map[string]value.Value{})
	qv, err := parseValidator(q)
	require.NoError(t, err)
	reqQuery := map[string]*validator.Validator{"name": {Kind: validator.KindStr}}
	qv.Map = &validator.MapOpts{Req: reqQuery}

	require.NoError(t, s.CheckQuery("", qv))
}
