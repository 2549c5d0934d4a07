// Package schema implements fog-pack's Schema object (spec.md §4.4): a
// validated document defining a root validator, per-entry-key
// validators, an alias table, and compression settings, cached by its
// own content hash.
package schema

import (
	"fmt"

	"github.com/foglayer/fogpack/codec"
	"github.com/foglayer/fogpack/compress"
	"github.com/foglayer/fogpack/errs"
	"github.com/foglayer/fogpack/fogcrypto"
	"github.com/foglayer/fogpack/internal/options"
	"github.com/foglayer/fogpack/query"
	"github.com/foglayer/fogpack/validator"
	"github.com/foglayer/fogpack/value"
)

// Schema is an immutable, built schema: its validator tree is fully
// alias-resolved and every `matches` regex is compiled (spec.md §4.4).
// A *Schema is safe to share across any number of concurrent
// encoders/decoders (spec.md §5).
type Schema struct {
	hash value.Hash

	root    *validator.Validator
	entries map[string]*validator.Validator
	types   validator.Table

	docCompression   compressionSpec
	entryCompression map[string]compressionSpec

	limits codec.Limits
}

// Config holds the functional options Build accepts, generalising the
// teacher's internal/options.Option[T] mechanism to Schema construction
// limits (SPEC_FULL.md's ambient-stack decision).
type Config struct {
	Limits codec.Limits
}

// WithLimits overrides the codec.Limits used for encode/decode-time size
// and depth enforcement.
func WithLimits(l codec.Limits) options.Option[*Config] {
	return options.NoError(func(c *Config) { c.Limits = l })
}

func defaultConfig() Config {
	return Config{Limits: codec.DefaultLimits()}
}

// Build validates candidate against the hard-coded core schema, then
// parses its root validator, entries map, types table, and compression
// settings, resolving every alias and compiling every regex before
// returning (spec.md §4.4). It bails at the first structural defect.
func Build(candidate value.Value, opts ...options.Option[*Config]) (*Schema, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	if err := validator.Validate(coreSchemaValidator(), candidate, ""); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrBadCoreShape, err)
	}

	m, _ := candidate.AsMap()

	rootSpec, _ := m.Get("root")
	root, err := parseValidator(rootSpec)
	if err != nil {
		return nil, err
	}

	types := validator.Table{}
	if typesVal, ok := m.Get("types"); ok {
		typesMap, _ := typesVal.AsMap()
		var rangeErr error
		typesMap.Range(func(name string, spec value.Value) bool {
			switch name {
			case "Any", "Multi", "Null", "Bool", "Int", "F32", "F64", "Str", "Bin", "Array", "Map", "Hash", "Identity", "Lockbox", "Time":
				rangeErr = fmt.Errorf("%w: %q", errs.ErrAliasShadowsKind, name)
				return false
			}
			parsed, err := parseValidator(spec)
			if err != nil {
				rangeErr = err
				return false
			}
			types[name] = parsed

			return true
		})
		if rangeErr != nil {
			return nil, rangeErr
		}
	}

	entries := map[string]*validator.Validator{}
	if entriesVal, ok := m.Get("entries"); ok {
		entriesMap, _ := entriesVal.AsMap()
		var rangeErr error
		entriesMap.Range(func(key string, spec value.Value) bool {
			parsed, err := parseValidator(spec)
			if err != nil {
				rangeErr = err
				return false
			}
			entries[key] = parsed

			return true
		})
		if rangeErr != nil {
			return nil, rangeErr
		}
	}

	if err := types.Resolve(); err != nil {
		return nil, err
	}
	// One Multi wrapper over every tree, so the regex budget is shared
	// by the whole schema.
	all := &validator.Validator{Kind: validator.KindMulti, Options: []*validator.Validator{root}}
	for _, v := range entries {
		all.Options = append(all.Options, v)
	}
	for _, v := range types {
		all.Options = append(all.Options, v)
	}
	if err := validator.CompileRegexes(all); err != nil {
		return nil, err
	}

	docCompression, entryCompression, err := parseCompression(m)
	if err != nil {
		return nil, err
	}

	encoded, err := codec.Encode(candidate)
	if err != nil {
		return nil, err
	}

	s := &Schema{
		hash:             fogcrypto.Hash(encoded),
		root:             root,
		entries:          entries,
		types:            types,
		docCompression:   docCompression,
		entryCompression: entryCompression,
		limits:           cfg.Limits,
	}

	return s, nil
}

func parseCompression(m *value.Map) (compressionSpec, map[string]compressionSpec, error) {
	entryCompression := map[string]compressionSpec{}

	compressVal, ok := m.Get("compress")
	if !ok {
		return compressionSpec{}, entryCompression, nil
	}
	compressMap, ok := compressVal.AsMap()
	if !ok {
		return compressionSpec{}, nil, fmt.Errorf("%w: \"compress\" must be a Map", errs.ErrBadCoreShape)
	}

	var docSpec compressionSpec
	if docVal, ok := compressMap.Get("doc"); ok {
		spec, err := parseCompressionSpec(docVal)
		if err != nil {
			return compressionSpec{}, nil, err
		}
		docSpec = spec
	}

	if entriesVal, ok := compressMap.Get("entries"); ok {
		entriesMap, ok := entriesVal.AsMap()
		if !ok {
			return compressionSpec{}, nil, fmt.Errorf("%w: \"compress.entries\" must be a Map", errs.ErrBadCoreShape)
		}
		var rangeErr error
		entriesMap.Range(func(key string, spec value.Value) bool {
			parsed, err := parseCompressionSpec(spec)
			if err != nil {
				rangeErr = err
				return false
			}
			entryCompression[key] = parsed

			return true
		})
		if rangeErr != nil {
			return compressionSpec{}, nil, rangeErr
		}
	}

	return docSpec, entryCompression, nil
}

// Hash returns the schema's own content hash: H(canonical_encode(the
// schema document it was built from)).
func (s *Schema) Hash() value.Hash { return s.hash }

// schemaHashField is the document key a document or entry binds its
// schema reference through (spec.md §6).
const schemaHashField = ""

// ValidateDoc rejects val if its "" schema-hash field does not match
// this schema's hash, or if validation against the root validator fails.
// The "" field itself is not passed to the root validator.
func (s *Schema) ValidateDoc(val value.Value) error {
	m, ok := val.AsMap()
	if !ok {
		return fmt.Errorf("%w: document root must be a Map", errs.ErrValidationFailed)
	}
	if err := s.checkSchemaField(m); err != nil {
		return err
	}

	body := m.Clone()
	body.Delete(schemaHashField)

	return validator.Validate(s.root, value.Obj(body), "")
}

func (s *Schema) checkSchemaField(m *value.Map) error {
	bound, ok := m.Get(schemaHashField)
	if !ok {
		return errs.ErrNoSchema
	}
	h, ok := bound.AsHash()
	if !ok || !h.Equal(s.hash) {
		return errs.ErrSchemaMismatch
	}

	return nil
}

// ValidateEntry rejects val against the validator registered for key,
// or accepts anything if the schema declares no validator for that key.
func (s *Schema) ValidateEntry(key string, val value.Value) error {
	v, ok := s.entries[key]
	if !ok {
		return nil
	}

	return validator.Validate(v, val, key)
}

// CheckQuery runs the compatibility checker (spec.md §4.3) for a query
// validator against the entry-key validator registered under key, or
// against the root validator if key is empty.
func (s *Schema) CheckQuery(key string, q *validator.Validator) error {
	target := s.root
	if key != "" {
		v, ok := s.entries[key]
		if !ok {
			return errs.NewQueryIncompatibility(key, "entry", "schema declares no validator for this entry key")
		}
		target = v
	}

	return query.Check(target, q, key)
}

// Limits returns the codec.Limits this schema enforces on encode/decode.
func (s *Schema) Limits() codec.Limits { return s.limits }

// DocCompression returns the compression policy for the document body.
func (s *Schema) DocCompression() compress.Policy { return s.docCompression.policy }

// EntryCompression returns the compression policy for entry key, or
// compress.KindNone if the schema declares no policy for it.
func (s *Schema) EntryCompression(key string) compress.Policy {
	if spec, ok := s.entryCompression[key]; ok {
		return spec.policy
	}

	return compress.Policy{Kind: compress.KindNone}
}

// CheckDocDict verifies a decoder-supplied document dictionary against
// the hash recorded when this schema was built (spec.md §4.6).
func (s *Schema) CheckDocDict(dict []byte) error { return s.docCompression.checkDict(dict) }

// CheckEntryDict is CheckDocDict for an entry key's dictionary.
func (s *Schema) CheckEntryDict(key string, dict []byte) error {
	if spec, ok := s.entryCompression[key]; ok {
		return spec.checkDict(dict)
	}

	return nil
}
