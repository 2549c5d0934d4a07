// Package query implements fog-pack's query-admissibility check
// (spec.md §4.3): given a schema's validator tree and a candidate query
// validator, decide whether every feature the query exercises was
// explicitly marked queryable at the corresponding position in the
// schema. This is a compatibility check only — it never runs the query
// against data, it only certifies that the query *could* be run without
// the storage layer falling back to a full scan of unindexed fields.
package query

import (
	"fmt"

	"github.com/foglayer/fogpack/errs"
	"github.com/foglayer/fogpack/validator"
)

// Check walks query and schema in lockstep and returns nil if query is
// admissible against schema, or an *errs.QueryIncompatibility (via
// errs.ErrQueryIncompatible) naming the first feature the schema did not
// permit.
func Check(schema, query *validator.Validator, path string) error {
	if query == nil || query.Kind == validator.KindEmpty {
		return nil
	}
	if schema == nil {
		return errs.NewQueryIncompatibility(path, "kind", "schema has no validator at this position")
	}

	s := schema.Resolved()
	q := query.Resolved()

	if !s.Query {
		return errs.NewQueryIncompatibility(path, "query", "schema did not mark this position queryable")
	}

	if q.Kind == validator.KindMulti {
		for i, opt := range q.Options {
			if err := Check(s, opt, fmt.Sprintf("%s/any_of[%d]", path, i)); err != nil {
				return err
			}
		}

		return nil
	}

	if s.Kind != validator.KindMulti && q.Kind != s.Kind {
		return errs.NewQueryIncompatibility(path, "kind", fmt.Sprintf("query kind %s does not match schema kind %s", q.Kind, s.Kind))
	}
	if s.Kind == validator.KindMulti {
		// A query may target any one branch of a schema any_of.
		for _, opt := range s.Options {
			if Check(opt, q, path) == nil {
				return nil
			}
		}

		return errs.NewQueryIncompatibility(path, "kind", "query kind matched no schema any_of branch")
	}

	switch q.Kind {
	case validator.KindInt:
		return checkOrdAndBits(s, q.Int != nil && (q.Int.Min != nil || q.Int.Max != nil), q.Int != nil && (q.Int.BitsSet != 0 || q.Int.BitsClr != 0), path)
	case validator.KindF32, validator.KindF64:
		return checkOrd(s, hasFloatOrd(q), path)
	case validator.KindStr:
		return checkStr(s, q, path)
	case validator.KindBin:
		return checkBin(s, q, path)
	case validator.KindArray:
		return checkArray(s, q, path)
	case validator.KindMap:
		return checkMap(s, q, path)
	case validator.KindHash:
		return checkHash(s, q, path)
	case validator.KindTime:
		return checkOrd(s, hasTimeOrd(q), path)
	default:
		return nil
	}
}

func hasFloatOrd(v *validator.Validator) bool {
	var opts *validator.FloatOpts
	if v.Kind == validator.KindF32 {
		opts = v.F32
	} else {
		opts = v.F64
	}

	return opts != nil && (opts.Min != nil || opts.Max != nil)
}

func hasTimeOrd(v *validator.Validator) bool {
	// Time orders only via In/Nin at present; min/max on Time are not
	// part of the base option set, so ordering admissibility degrades to
	// whether the schema marked this position queryable at all.
	return false
}

func checkOrd(s *validator.Validator, wantsOrd bool, path string) error {
	if wantsOrd && !s.Query {
		return errs.NewQueryIncompatibility(path, "ord", "schema did not mark this position range-queryable")
	}

	return nil
}

func checkOrdAndBits(s *validator.Validator, wantsOrd, wantsBits bool, path string) error {
	if wantsOrd && !s.Query {
		return errs.NewQueryIncompatibility(path, "ord", "schema did not mark this position range-queryable")
	}
	if wantsBits && (s.Int == nil || (s.Int.BitsSet == 0 && s.Int.BitsClr == 0)) {
		// The schema itself must constrain bits for a bit-test query to
		// be meaningful against an index built from that constraint.
		return errs.NewQueryIncompatibility(path, "bit", "schema does not define a bit mask at this position")
	}

	return nil
}

func checkStr(s, q *validator.Validator, path string) error {
	if q.Str == nil {
		return nil
	}
	if len(q.Str.Matches) > 0 {
		if s.Str == nil || len(s.Str.Matches) == 0 {
			return errs.NewQueryIncompatibility(path, "regex", "schema declares no matches pattern to query against")
		}
	}
	if (q.Str.MinLen != nil || q.Str.MaxLen != nil || q.Str.MinChar != nil || q.Str.MaxChar != nil) && !s.Query {
		return errs.NewQueryIncompatibility(path, "size", "schema did not mark this position size-queryable")
	}

	return nil
}

func checkBin(s, q *validator.Validator, path string) error {
	if q.Bin == nil {
		return nil
	}
	if (q.Bin.MinLen != nil || q.Bin.MaxLen != nil) && !s.Query {
		return errs.NewQueryIncompatibility(path, "size", "schema did not mark this position size-queryable")
	}
	if (len(q.Bin.BitsSet) > 0 || len(q.Bin.BitsClr) > 0) && (s.Bin == nil || (len(s.Bin.BitsSet) == 0 && len(s.Bin.BitsClr) == 0)) {
		return errs.NewQueryIncompatibility(path, "bit", "schema does not define a bit mask at this position")
	}

	return nil
}

func checkArray(s, q *validator.Validator, path string) error {
	if q.Array == nil {
		return nil
	}
	if len(q.Array.Contains) > 0 {
		if s.Array == nil || !s.Query {
			return errs.NewQueryIncompatibility(path, "contains_ok", "schema did not mark this position contains-queryable")
		}
		for i, c := range q.Array.Contains {
			var itemSchema *validator.Validator
			if s.Array.ExtraItems != nil {
				itemSchema = s.Array.ExtraItems
			} else if len(s.Array.Items) > 0 {
				itemSchema = s.Array.Items[0]
			}
			if err := Check(itemSchema, c, fmt.Sprintf("%s/contains[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	if q.Array.Unique && (s.Array == nil || !s.Array.Unique) {
		return errs.NewQueryIncompatibility(path, "unique_ok", "schema does not require uniqueness at this position")
	}
	for i, item := range q.Array.Items {
		var itemSchema *validator.Validator
		if s.Array != nil {
			if i < len(s.Array.Items) {
				itemSchema = s.Array.Items[i]
			} else {
				itemSchema = s.Array.ExtraItems
			}
		}
		if err := Check(itemSchema, item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}

	return nil
}

func checkMap(s, q *validator.Validator, path string) error {
	if q.Map == nil {
		return nil
	}
	if s.Map == nil {
		return errs.NewQueryIncompatibility(path, "map_ok", "schema has no field validators at this position")
	}
	for key, field := range q.Map.Req {
		schemaField, ok := s.Map.Req[key]
		if !ok {
			schemaField, ok = s.Map.Opt[key]
		}
		if !ok {
			if s.Map.FieldType == nil || !s.Map.UnknownOk {
				return errs.NewQueryIncompatibility(path+"."+key, "obj_ok", "schema does not admit this field for query")
			}
			schemaField = s.Map.FieldType
		}
		if err := Check(schemaField, field, path+"."+key); err != nil {
			return err
		}
	}
	for key, field := range q.Map.Opt {
		schemaField, ok := s.Map.Req[key]
		if !ok {
			schemaField, ok = s.Map.Opt[key]
		}
		if !ok {
			if s.Map.FieldType == nil || !s.Map.UnknownOk {
				return errs.NewQueryIncompatibility(path+"."+key, "obj_ok", "schema does not admit this field for query")
			}
			schemaField = s.Map.FieldType
		}
		if err := Check(schemaField, field, path+"."+key); err != nil {
			return err
		}
	}

	return nil
}

func checkHash(s, q *validator.Validator, path string) error {
	if q.Hash == nil {
		return nil
	}
	if q.Hash.Link != nil {
		if s.Hash == nil || s.Hash.Link == nil {
			return errs.NewQueryIncompatibility(path, "link_ok", "schema does not define a link to query through")
		}
		if err := Check(s.Hash.Link, q.Hash.Link, path+"/link"); err != nil {
			return err
		}
	}
	if q.Hash.Schema != nil {
		if s.Hash == nil || !s.Query {
			return errs.NewQueryIncompatibility(path, "schema_ok", "schema did not mark this position schema-queryable")
		}
	}

	return nil
}
