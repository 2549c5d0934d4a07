package validator

import (
	"fmt"
	"unicode/utf8"

	"github.com/foglayer/fogpack/errs"
	"github.com/foglayer/fogpack/format"
	"github.com/foglayer/fogpack/value"
)

// Validate checks val against v, returning an *errs.ValidationFailure
// (via errs.ErrValidationFailed) on the first clause that rejects it.
// path is the dotted/bracketed location of val within the document being
// validated, for error reporting; callers validating a document root
// pass "".
func Validate(v *Validator, val value.Value, path string) error {
	if v == nil {
		return nil
	}

	root := v.Resolved()

	if len(v.In) > 0 && !inSet(v.In, val) {
		return errs.NewValidationFailure(path, "in", "value not in the allowed set")
	}
	if len(v.Nin) > 0 && inSet(v.Nin, val) {
		return errs.NewValidationFailure(path, "nin", "value is in the disallowed set")
	}

	switch root.Kind {
	case KindEmpty:
		return nil
	case KindMulti:
		return validateMulti(root, val, path)
	case KindNull:
		return validateKindOnly(val, format.KindNull, path)
	case KindBool:
		return validateKindOnly(val, format.KindBool, path)
	case KindInt:
		return validateInt(root, val, path)
	case KindF32:
		return validateF32(root, val, path)
	case KindF64:
		return validateF64(root, val, path)
	case KindStr:
		return validateStr(root, val, path)
	case KindBin:
		return validateBin(root, val, path)
	case KindArray:
		return validateArray(root, val, path)
	case KindMap:
		return validateMap(root, val, path)
	case KindHash:
		return validateKindOnly(val, format.KindHash, path) // Schema/Link are not checked against a bare Hash
	case KindIdentity:
		return validateKindOnly(val, format.KindIdentity, path)
	case KindLockbox:
		return validateLockbox(root, val, path)
	case KindTime:
		return validateKindOnly(val, format.KindTime, path)
	default:
		return fmt.Errorf("%w: unhandled validator kind %s", errs.ErrValidationFailed, root.Kind)
	}
}

func inSet(set []value.Value, val value.Value) bool {
	for _, s := range set {
		if value.Equal(s, val) {
			return true
		}
	}

	return false
}

func validateMulti(v *Validator, val value.Value, path string) error {
	if len(v.Options) == 0 {
		return errs.NewValidationFailure(path, "any_of", "no alternatives in an empty any_of")
	}
	for _, opt := range v.Options {
		if Validate(opt, val, path) == nil {
			return nil
		}
	}

	return errs.NewValidationFailure(path, "any_of", "value matched no alternative")
}

func validateKindOnly(val value.Value, want format.Kind, path string) error {
	if val.Kind() != want {
		return errs.NewValidationFailure(path, "kind", fmt.Sprintf("expected %s, got %s", want, val.Kind()))
	}

	return nil
}

func validateInt(v *Validator, val value.Value, path string) error {
	n, ok := val.AsInt()
	if !ok {
		return errs.NewValidationFailure(path, "kind", "expected Int")
	}
	if v.Int == nil {
		return nil
	}

	opts := v.Int
	if opts.Min != nil {
		c := n.Compare(*opts.Min)
		if c < 0 || (opts.ExMin && c == 0) {
			return errs.NewValidationFailure(path, "min", "below minimum")
		}
	}
	if opts.Max != nil {
		c := n.Compare(*opts.Max)
		if c > 0 || (opts.ExMax && c == 0) {
			return errs.NewValidationFailure(path, "max", "above maximum")
		}
	}
	if opts.BitsSet != 0 || opts.BitsClr != 0 {
		u, fits := n.U64()
		if !fits {
			return errs.NewValidationFailure(path, "bits_set", "negative value has no bit pattern to test")
		}
		if u&opts.BitsSet != opts.BitsSet {
			return errs.NewValidationFailure(path, "bits_set", "required bits not all set")
		}
		if u&opts.BitsClr != 0 {
			return errs.NewValidationFailure(path, "bits_clr", "required bits not all clear")
		}
	}

	return nil
}

func validateF32(v *Validator, val value.Value, path string) error {
	f, ok := val.AsF32()
	if !ok {
		return errs.NewValidationFailure(path, "kind", "expected F32")
	}

	return validateFloatOpts(v.F32, float64(f), path)
}

func validateF64(v *Validator, val value.Value, path string) error {
	f, ok := val.AsF64()
	if !ok {
		return errs.NewValidationFailure(path, "kind", "expected F64")
	}

	return validateFloatOpts(v.F64, f, path)
}

func validateFloatOpts(opts *FloatOpts, f float64, path string) error {
	if opts == nil {
		return nil
	}
	if opts.Min != nil {
		c := value.CompareF64(f, *opts.Min)
		if c < 0 || (opts.ExMin && c == 0) {
			return errs.NewValidationFailure(path, "min", "below minimum")
		}
	}
	if opts.Max != nil {
		c := value.CompareF64(f, *opts.Max)
		if c > 0 || (opts.ExMax && c == 0) {
			return errs.NewValidationFailure(path, "max", "above maximum")
		}
	}

	return nil
}

func validateStr(v *Validator, val value.Value, path string) error {
	s, ok := val.AsStr()
	if !ok {
		return errs.NewValidationFailure(path, "kind", "expected Str")
	}
	if v.Str == nil {
		return nil
	}

	opts := v.Str
	normalized := applyNormalize(s, opts.Normalize)

	byteLen := uint64(len(normalized))
	if opts.MinLen != nil && byteLen < *opts.MinLen {
		return errs.NewValidationFailure(path, "min_len", "string shorter than minimum byte length")
	}
	if opts.MaxLen != nil && byteLen > *opts.MaxLen {
		return errs.NewValidationFailure(path, "max_len", "string longer than maximum byte length")
	}

	if opts.MinChar != nil || opts.MaxChar != nil {
		charLen := uint64(utf8.RuneCountInString(normalized))
		if opts.MinChar != nil && charLen < *opts.MinChar {
			return errs.NewValidationFailure(path, "min_char", "string has fewer runes than minimum")
		}
		if opts.MaxChar != nil && charLen > *opts.MaxChar {
			return errs.NewValidationFailure(path, "max_char", "string has more runes than maximum")
		}
	}

	if !matchesAll(v.regex, normalized) {
		return errs.NewValidationFailure(path, "matches", "string did not match all required patterns")
	}

	return nil
}

func validateBin(v *Validator, val value.Value, path string) error {
	b, ok := val.AsBin()
	if !ok {
		return errs.NewValidationFailure(path, "kind", "expected Bin")
	}
	if v.Bin == nil {
		return nil
	}

	opts := v.Bin
	n := uint64(len(b))
	if opts.MinLen != nil && n < *opts.MinLen {
		return errs.NewValidationFailure(path, "min_len", "shorter than minimum length")
	}
	if opts.MaxLen != nil && n > *opts.MaxLen {
		return errs.NewValidationFailure(path, "max_len", "longer than maximum length")
	}
	if len(opts.BitsSet) > 0 && !binBitsMatch(b, opts.BitsSet, true) {
		return errs.NewValidationFailure(path, "bits_set", "required bits not all set")
	}
	if len(opts.BitsClr) > 0 && !binBitsMatch(b, opts.BitsClr, false) {
		return errs.NewValidationFailure(path, "bits_clr", "required bits not all clear")
	}

	return nil
}

// binBitsMatch tests b against a same-shaped mask: for want==true every
// bit set in mask must be set in b; for want==false every bit set in
// mask must be clear in b. A mask byte beyond b's length fails want==true
// (the bits it names cannot be set in a too-short value) and trivially
// passes want==false.
func binBitsMatch(b, mask []byte, want bool) bool {
	for i, m := range mask {
		var bv byte
		if i < len(b) {
			bv = b[i]
		} else if want {
			return false
		}

		if want {
			if bv&m != m {
				return false
			}
		} else if bv&m != 0 {
			return false
		}
	}

	return true
}

func validateArray(v *Validator, val value.Value, path string) error {
	elems, ok := val.AsArray()
	if !ok {
		return errs.NewValidationFailure(path, "kind", "expected Array")
	}
	if v.Array == nil {
		return nil
	}

	opts := v.Array
	n := uint64(len(elems))
	if opts.MinLen != nil && n < *opts.MinLen {
		return errs.NewValidationFailure(path, "min_len", "fewer elements than minimum")
	}
	if opts.MaxLen != nil && n > *opts.MaxLen {
		return errs.NewValidationFailure(path, "max_len", "more elements than maximum")
	}

	for i, elem := range elems {
		elemPath := fmt.Sprintf("%s[%d]", path, i)
		if i < len(opts.Items) {
			if err := Validate(opts.Items[i], elem, elemPath); err != nil {
				return err
			}

			continue
		}
		if opts.ExtraItems == nil {
			return errs.NewValidationFailure(elemPath, "extra_items", "array has more elements than items allows")
		}
		if err := Validate(opts.ExtraItems, elem, elemPath); err != nil {
			return err
		}
	}

	for _, want := range opts.Contains {
		found := false
		for _, elem := range elems {
			if Validate(want, elem, path) == nil {
				found = true
				break
			}
		}
		if !found {
			return errs.NewValidationFailure(path, "contains", "no element satisfied a required contains clause")
		}
	}

	if opts.Unique {
		for i := range elems {
			for j := i + 1; j < len(elems); j++ {
				if value.Equal(elems[i], elems[j]) {
					return errs.NewValidationFailure(path, "unique", "array contains duplicate elements")
				}
			}
		}
	}

	return nil
}

func validateMap(v *Validator, val value.Value, path string) error {
	m, ok := val.AsMap()
	if !ok {
		return errs.NewValidationFailure(path, "kind", "expected Map")
	}
	if v.Map == nil {
		return nil
	}

	opts := v.Map
	n := uint64(m.Len())
	if opts.MinFields != nil && n < *opts.MinFields {
		return errs.NewValidationFailure(path, "min_fields", "fewer fields than minimum")
	}
	if opts.MaxFields != nil && n > *opts.MaxFields {
		return errs.NewValidationFailure(path, "max_fields", "more fields than maximum")
	}

	for key := range opts.Req {
		if !m.Has(key) {
			return errs.NewValidationFailure(path, "req", fmt.Sprintf("missing required field %q", key))
		}
	}
	for _, key := range opts.Ban {
		if m.Has(key) {
			return errs.NewValidationFailure(path, "ban", fmt.Sprintf("banned field %q present", key))
		}
	}

	var rangeErr error
	m.Range(func(key string, fieldVal value.Value) bool {
		fieldPath := key
		if path != "" {
			fieldPath = path + "." + key
		}
		if field, ok := opts.Req[key]; ok {
			rangeErr = Validate(field, fieldVal, fieldPath)
			return rangeErr == nil
		}
		if field, ok := opts.Opt[key]; ok {
			rangeErr = Validate(field, fieldVal, fieldPath)
			return rangeErr == nil
		}
		if !opts.UnknownOk {
			rangeErr = errs.NewValidationFailure(fieldPath, "unknown_ok", fmt.Sprintf("unexpected field %q", key))
			return false
		}
		if opts.FieldType != nil {
			rangeErr = Validate(opts.FieldType, fieldVal, fieldPath)
			return rangeErr == nil
		}

		return true
	})

	return rangeErr
}

func validateLockbox(v *Validator, val value.Value, path string) error {
	box, ok := val.AsLockbox()
	if !ok {
		return errs.NewValidationFailure(path, "kind", "expected Lockbox")
	}
	if v.Lockbox == nil {
		return nil
	}

	opts := v.Lockbox
	size := uint64(box.Body())
	if opts.Size != nil && size != *opts.Size {
		return errs.NewValidationFailure(path, "size", "encoded body length does not match required size")
	}
	if opts.MaxLen != nil && size > *opts.MaxLen {
		return errs.NewValidationFailure(path, "max_len", "encoded body longer than maximum")
	}

	return nil
}
