package schema

import "github.com/foglayer/fogpack/validator"

// validatorSpecValidator is the coarse shape every validator-spec Value
// must have, used both as a piece of the hard-coded core schema and
// recursively wherever a schema document embeds a nested validator-spec
// (array items, map fields, any_of alternatives, ...). It checks only
// that the spec is a Map carrying a "type" field; parseValidator (in
// parse.go) does the detailed per-kind field validation and is where a
// malformed option (wrong value kind, unknown normalize form, ...)
// actually surfaces as errs.ErrBadCoreShape.
func validatorSpecValidator() *validator.Validator {
	return &validator.Validator{
		Kind: validator.KindMap,
		Map: &validator.MapOpts{
			Req:       map[string]*validator.Validator{"type": {Kind: validator.KindStr}},
			Opt:       map[string]*validator.Validator{},
			UnknownOk: true,
			FieldType: validator.Empty(),
		},
	}
}

// namedValidatorSpecMap is the shape of `entries` and `types`: a Map
// whose every field is itself a validator-spec.
func namedValidatorSpecMap() *validator.Validator {
	return &validator.Validator{
		Kind: validator.KindMap,
		Map: &validator.MapOpts{
			Req:       map[string]*validator.Validator{},
			Opt:       map[string]*validator.Validator{},
			UnknownOk: true,
			FieldType: validatorSpecValidator(),
		},
	}
}

// coreSchemaValidator is the hard-coded bootstrap validator spec.md §4.4
// requires: every candidate schema document is checked against this
// before being parsed. It is written directly as a Validator tree, not
// parsed from a document, since nothing exists yet to parse it with.
func coreSchemaValidator() *validator.Validator {
	return &validator.Validator{
		Kind: validator.KindMap,
		Map: &validator.MapOpts{
			Req: map[string]*validator.Validator{
				"root": validatorSpecValidator(),
			},
			Opt: map[string]*validator.Validator{
				"":          {Kind: validator.KindHash},
				"entries":   namedValidatorSpecMap(),
				"types":     namedValidatorSpecMap(),
				"compress":  validator.Empty(),
				"max_regex": {Kind: validator.KindInt},
			},
			UnknownOk: false,
		},
	}
}
