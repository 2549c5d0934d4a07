package schema

import (
	"fmt"

	"github.com/foglayer/fogpack/errs"
	"github.com/foglayer/fogpack/validator"
	"github.com/foglayer/fogpack/value"
)

// parseValidator turns a validator-spec Value — a Map using the field
// names below — into a *validator.Validator. This module picks the
// "older dialect" spec.md §9 describes (`"type":"Str"`, `req`/`opt` at
// the validator's own top level) over the newer tagged-union dialect,
// since the older one is the one spec.md's prose works through in full;
// interop with the tagged-union dialect is out of scope (spec.md §9).
//
// A validator-spec recognises these fields, all optional except `type`:
//
//   - type: Str — one of the base kind names (Null, Bool, Int, F32, F64,
//     Str, Bin, Array, Map, Hash, Identity, Lockbox, Time), "Any" for
//     the Empty validator, "Multi" for an any_of, or any other string,
//     taken as an alias name into the schema's types table.
//   - comment, default, in, nin, query — common options (spec.md §4.2).
//   - Int: min, max (Int), ex_min, ex_max (Bool), bits_set, bits_clr (Int)
//   - F32/F64: min, max (F32/F64), ex_min, ex_max (Bool)
//   - Str: min_len, max_len, min_char, max_char (Int), matches (Array of
//     Str), normalize (Str: "nfc" or "nfkc")
//   - Bin: min_len, max_len (Int), bits_set, bits_clr (Bin)
//   - Array: min_len, max_len (Int), items (Array of validator-spec),
//     extra_items (validator-spec), contains (Array of validator-spec),
//     unique (Bool)
//   - Map: req, opt (Map of Str -> validator-spec), ban (Array of Str),
//     field_type (validator-spec), unknown_ok (Bool), min_fields,
//     max_fields (Int)
//   - Hash: link (validator-spec), schema (Hash)
//   - Lockbox: max_len, size (Int)
//   - Multi: any_of (Array of validator-spec)
func parseValidator(v value.Value) (*validator.Validator, error) {
	m, ok := v.AsMap()
	if !ok {
		return nil, fmt.Errorf("%w: validator-spec must be a Map", errs.ErrBadCoreShape)
	}

	typeName, ok := fieldStr(m, "type")
	if !ok {
		return nil, fmt.Errorf("%w: validator-spec missing \"type\"", errs.ErrBadCoreShape)
	}

	out := &validator.Validator{}
	if s, ok := fieldStr(m, "comment"); ok {
		out.Comment = s
	}
	if dv, ok := m.Get("default"); ok {
		out.Default = &dv
	}
	if arr, ok := fieldArray(m, "in"); ok {
		out.In = arr
	}
	if arr, ok := fieldArray(m, "nin"); ok {
		out.Nin = arr
	}
	if b, ok := fieldBool(m, "query"); ok {
		out.Query = b
	}

	switch typeName {
	case "Any":
		out.Kind = validator.KindEmpty
	case "Multi":
		out.Kind = validator.KindMulti
		specs, ok := fieldRawArray(m, "any_of")
		if !ok {
			return nil, fmt.Errorf("%w: Multi validator-spec missing \"any_of\"", errs.ErrBadCoreShape)
		}
		for _, s := range specs {
			opt, err := parseValidator(s)
			if err != nil {
				return nil, err
			}
			out.Options = append(out.Options, opt)
		}
	case "Null":
		out.Kind = validator.KindNull
	case "Bool":
		out.Kind = validator.KindBool
	case "Int":
		out.Kind = validator.KindInt
		if err := parseIntOpts(m, out); err != nil {
			return nil, err
		}
	case "F32":
		out.Kind = validator.KindF32
		out.F32 = parseFloatOpts(m)
	case "F64":
		out.Kind = validator.KindF64
		out.F64 = parseFloatOpts(m)
	case "Str":
		out.Kind = validator.KindStr
		if err := parseStrOpts(m, out); err != nil {
			return nil, err
		}
	case "Bin":
		out.Kind = validator.KindBin
		if err := parseBinOpts(m, out); err != nil {
			return nil, err
		}
	case "Array":
		out.Kind = validator.KindArray
		if err := parseArrayOpts(m, out); err != nil {
			return nil, err
		}
	case "Map":
		out.Kind = validator.KindMap
		if err := parseMapOpts(m, out); err != nil {
			return nil, err
		}
	case "Hash":
		out.Kind = validator.KindHash
		if err := parseHashOpts(m, out); err != nil {
			return nil, err
		}
	case "Identity":
		out.Kind = validator.KindIdentity
	case "Lockbox":
		out.Kind = validator.KindLockbox
		if err := parseLockboxOpts(m, out); err != nil {
			return nil, err
		}
	case "Time":
		out.Kind = validator.KindTime
	default:
		out.Kind = validator.KindAlias
		out.AliasName = typeName
	}

	return out, nil
}

func fieldStr(m *value.Map, key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}

	return v.AsStr()
}

func fieldBool(m *value.Map, key string) (bool, bool) {
	v, ok := m.Get(key)
	if !ok {
		return false, false
	}

	return v.AsBool()
}

func fieldUint(m *value.Map, key string) (*uint64, error) {
	v, ok := m.Get(key)
	if !ok {
		return nil, nil
	}
	n, ok := v.AsInt()
	if !ok {
		return nil, fmt.Errorf("%w: field %q must be Int", errs.ErrBadCoreShape, key)
	}
	u, ok := n.U64()
	if !ok {
		return nil, fmt.Errorf("%w: field %q must be non-negative", errs.ErrBadCoreShape, key)
	}

	return &u, nil
}

func fieldIntPtr(m *value.Map, key string) (*value.Int, error) {
	v, ok := m.Get(key)
	if !ok {
		return nil, nil
	}
	n, ok := v.AsInt()
	if !ok {
		return nil, fmt.Errorf("%w: field %q must be Int", errs.ErrBadCoreShape, key)
	}

	return &n, nil
}

func fieldF64Ptr(m *value.Map, key string) *float64 {
	v, ok := m.Get(key)
	if !ok {
		return nil
	}
	if f, ok := v.AsF64(); ok {
		return &f
	}
	if f, ok := v.AsF32(); ok {
		f64 := float64(f)
		return &f64
	}

	return nil
}

func fieldBin(m *value.Map, key string) []byte {
	v, ok := m.Get(key)
	if !ok {
		return nil
	}
	b, _ := v.AsBin()

	return b
}

func fieldArray(m *value.Map, key string) ([]value.Value, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}

	return v.AsArray()
}

func fieldRawArray(m *value.Map, key string) ([]value.Value, bool) {
	return fieldArray(m, key)
}

func fieldStrArray(m *value.Map, key string) []string {
	arr, ok := fieldArray(m, key)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.AsStr(); ok {
			out = append(out, s)
		}
	}

	return out
}

func parseIntOpts(m *value.Map, out *validator.Validator) error {
	opts := &validator.IntOpts{}
	var err error
	if opts.Min, err = fieldIntPtr(m, "min"); err != nil {
		return err
	}
	if opts.Max, err = fieldIntPtr(m, "max"); err != nil {
		return err
	}
	opts.ExMin, _ = fieldBool(m, "ex_min")
	opts.ExMax, _ = fieldBool(m, "ex_max")
	if bs, err := fieldUint(m, "bits_set"); err != nil {
		return err
	} else if bs != nil {
		opts.BitsSet = *bs
	}
	if bc, err := fieldUint(m, "bits_clr"); err != nil {
		return err
	} else if bc != nil {
		opts.BitsClr = *bc
	}
	out.Int = opts

	return nil
}

func parseFloatOpts(m *value.Map) *validator.FloatOpts {
	opts := &validator.FloatOpts{Min: fieldF64Ptr(m, "min"), Max: fieldF64Ptr(m, "max")}
	opts.ExMin, _ = fieldBool(m, "ex_min")
	opts.ExMax, _ = fieldBool(m, "ex_max")

	return opts
}

func parseStrOpts(m *value.Map, out *validator.Validator) error {
	opts := &validator.StrOpts{}
	var err error
	if opts.MinLen, err = fieldUint(m, "min_len"); err != nil {
		return err
	}
	if opts.MaxLen, err = fieldUint(m, "max_len"); err != nil {
		return err
	}
	if opts.MinChar, err = fieldUint(m, "min_char"); err != nil {
		return err
	}
	if opts.MaxChar, err = fieldUint(m, "max_char"); err != nil {
		return err
	}
	opts.Matches = fieldStrArray(m, "matches")
	if norm, ok := fieldStr(m, "normalize"); ok {
		switch norm {
		case "nfc":
			opts.Normalize = validator.NormalizeNFC
		case "nfkc":
			opts.Normalize = validator.NormalizeNFKC
		default:
			return fmt.Errorf("%w: unknown normalize form %q", errs.ErrBadCoreShape, norm)
		}
	}
	out.Str = opts

	return nil
}

func parseBinOpts(m *value.Map, out *validator.Validator) error {
	opts := &validator.BinOpts{}
	var err error
	if opts.MinLen, err = fieldUint(m, "min_len"); err != nil {
		return err
	}
	if opts.MaxLen, err = fieldUint(m, "max_len"); err != nil {
		return err
	}
	opts.BitsSet = fieldBin(m, "bits_set")
	opts.BitsClr = fieldBin(m, "bits_clr")
	out.Bin = opts

	return nil
}

func parseArrayOpts(m *value.Map, out *validator.Validator) error {
	opts := &validator.ArrayOpts{}
	var err error
	if opts.MinLen, err = fieldUint(m, "min_len"); err != nil {
		return err
	}
	if opts.MaxLen, err = fieldUint(m, "max_len"); err != nil {
		return err
	}

	if items, ok := fieldRawArray(m, "items"); ok {
		for _, spec := range items {
			item, err := parseValidator(spec)
			if err != nil {
				return err
			}
			opts.Items = append(opts.Items, item)
		}
	}
	if extra, ok := m.Get("extra_items"); ok {
		opts.ExtraItems, err = parseValidator(extra)
		if err != nil {
			return err
		}
	}
	if contains, ok := fieldRawArray(m, "contains"); ok {
		for _, spec := range contains {
			c, err := parseValidator(spec)
			if err != nil {
				return err
			}
			opts.Contains = append(opts.Contains, c)
		}
	}
	opts.Unique, _ = fieldBool(m, "unique")
	out.Array = opts

	return nil
}

func parseMapOpts(m *value.Map, out *validator.Validator) error {
	opts := &validator.MapOpts{Req: map[string]*validator.Validator{}, Opt: map[string]*validator.Validator{}}
	var err error

	if req, ok := m.Get("req"); ok {
		if opts.Req, err = parseFieldMap(req); err != nil {
			return err
		}
	}
	if optMap, ok := m.Get("opt"); ok {
		if opts.Opt, err = parseFieldMap(optMap); err != nil {
			return err
		}
	}
	opts.Ban = fieldStrArray(m, "ban")
	if ft, ok := m.Get("field_type"); ok {
		opts.FieldType, err = parseValidator(ft)
		if err != nil {
			return err
		}
	}
	opts.UnknownOk, _ = fieldBool(m, "unknown_ok")
	if opts.MinFields, err = fieldUint(m, "min_fields"); err != nil {
		return err
	}
	if opts.MaxFields, err = fieldUint(m, "max_fields"); err != nil {
		return err
	}
	out.Map = opts

	return nil
}

func parseFieldMap(v value.Value) (map[string]*validator.Validator, error) {
	m, ok := v.AsMap()
	if !ok {
		return nil, fmt.Errorf("%w: field list must be a Map", errs.ErrBadCoreShape)
	}

	out := map[string]*validator.Validator{}
	var rangeErr error
	m.Range(func(key string, fieldVal value.Value) bool {
		parsed, err := parseValidator(fieldVal)
		if err != nil {
			rangeErr = err
			return false
		}
		out[key] = parsed

		return true
	})

	return out, rangeErr
}

func parseHashOpts(m *value.Map, out *validator.Validator) error {
	opts := &validator.HashOpts{}
	if link, ok := m.Get("link"); ok {
		parsed, err := parseValidator(link)
		if err != nil {
			return err
		}
		opts.Link = parsed
	}
	if sv, ok := m.Get("schema"); ok {
		h, ok := sv.AsHash()
		if !ok {
			return fmt.Errorf("%w: \"schema\" must be a Hash", errs.ErrBadCoreShape)
		}
		opts.Schema = &h
	}
	out.Hash = opts

	return nil
}

func parseLockboxOpts(m *value.Map, out *validator.Validator) error {
	opts := &validator.LockboxOpts{}
	var err error
	if opts.MaxLen, err = fieldUint(m, "max_len"); err != nil {
		return err
	}
	if opts.Size, err = fieldUint(m, "size"); err != nil {
		return err
	}
	out.Lockbox = opts

	return nil
}
