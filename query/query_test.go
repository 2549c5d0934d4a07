package query

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foglayer/fogpack/errs"
	"github.com/foglayer/fogpack/validator"
)

func TestCheckRequiresQueryFlag(t *testing.T) {
	schema := &validator.Validator{Kind: validator.KindInt}
	q := &validator.Validator{Kind: validator.KindInt, Int: &validator.IntOpts{}}

	err := Check(schema, q, "amount")
	require.ErrorIs(t, err, errs.ErrQueryIncompatible)

	schema.Query = true
	require.NoError(t, Check(schema, q, "amount"))
}

func TestCheckKindMismatch(t *testing.T) {
	schema := &validator.Validator{Kind: validator.KindInt, Query: true}
	q := &validator.Validator{Kind: validator.KindStr}

	err := Check(schema, q, "amount")
	require.ErrorIs(t, err, errs.ErrQueryIncompatible)
}

func TestCheckBitsRequiresSchemaMask(t *testing.T) {
	schema := &validator.Validator{Kind: validator.KindInt, Query: true}
	q := &validator.Validator{Kind: validator.KindInt, Int: &validator.IntOpts{BitsSet: 1}}

	err := Check(schema, q, "flags")
	require.ErrorIs(t, err, errs.ErrQueryIncompatible)

	schema.Int = &validator.IntOpts{BitsSet: 1}
	require.NoError(t, Check(schema, q, "flags"))
}

func TestCheckMapFieldNotAdmitted(t *testing.T) {
	schema := &validator.Validator{Kind: validator.KindMap, Query: true, Map: &validator.MapOpts{
		Req: map[string]*validator.Validator{"name": {Kind: validator.KindStr, Query: true}},
	}}
	q := &validator.Validator{Kind: validator.KindMap, Map: &validator.MapOpts{
		Req: map[string]*validator.Validator{"secret": {Kind: validator.KindStr}},
	}}

	err := Check(schema, q, "")
	require.ErrorIs(t, err, errs.ErrQueryIncompatible)
}

func TestCheckMapFieldAdmitted(t *testing.T) {
	schema := &validator.Validator{Kind: validator.KindMap, Query: true, Map: &validator.MapOpts{
		Req: map[string]*validator.Validator{"name": {Kind: validator.KindStr, Query: true}},
	}}
	q := &validator.Validator{Kind: validator.KindMap, Map: &validator.MapOpts{
		Req: map[string]*validator.Validator{"name": {Kind: validator.KindStr}},
	}}

	require.NoError(t, Check(schema, q, ""))
}

func TestCheckEmptyQueryAlwaysAdmissible(t *testing.T) {
	schema := &validator.Validator{Kind: validator.KindInt}
	require.NoError(t, Check(schema, validator.Empty(), ""))
}
