package validator

import (
	"fmt"
	"regexp"

	"golang.org/x/text/unicode/norm"

	"github.com/foglayer/fogpack/errs"
)

// MaxRegexes is the hard cap on distinct compiled regular expressions a
// single schema may register across every Str validator's `matches`
// clause (SPEC_FULL.md's resource-bounds decision): compiling is the
// most expensive part of loading an untrusted schema, so the limit is
// enforced once at compile time rather than per-match.
const MaxRegexes = 255

type compiledPattern struct {
	source string
	re     *regexp.Regexp
}

// compileRegexes compiles every Matches pattern in the tree rooted at v,
// storing the result on each Str validator's regex field and counting
// toward budget. It returns errs.ErrRegexLimit once budget is exhausted
// and errs.ErrRegexCompile on the first pattern stdlib regexp rejects;
// regexp's RE2 engine has no backreferences or lookaround by
// construction, which is exactly the restriction spec.md §4.2 asks for,
// so no additional guarding is needed there.
func compileRegexes(v *Validator, budget *int) error {
	if v == nil {
		return nil
	}

	switch v.Kind {
	case KindStr:
		if v.Str == nil || len(v.Str.Matches) == 0 {
			return nil
		}

		v.regex = make([]compiledPattern, 0, len(v.Str.Matches))
		for _, pattern := range v.Str.Matches {
			if *budget <= 0 {
				return fmt.Errorf("%w: exceeds %d", errs.ErrRegexLimit, MaxRegexes)
			}

			re, err := regexp.Compile(pattern)
			if err != nil {
				return fmt.Errorf("%w: %q: %v", errs.ErrRegexCompile, pattern, err)
			}

			v.regex = append(v.regex, compiledPattern{source: pattern, re: re})
			*budget--
		}

		return nil

	case KindMulti:
		for _, opt := range v.Options {
			if err := compileRegexes(opt, budget); err != nil {
				return err
			}
		}

		return nil

	case KindArray:
		if v.Array == nil {
			return nil
		}
		for _, item := range v.Array.Items {
			if err := compileRegexes(item, budget); err != nil {
				return err
			}
		}
		if err := compileRegexes(v.Array.ExtraItems, budget); err != nil {
			return err
		}
		for _, c := range v.Array.Contains {
			if err := compileRegexes(c, budget); err != nil {
				return err
			}
		}

		return nil

	case KindMap:
		if v.Map == nil {
			return nil
		}
		for _, field := range v.Map.Req {
			if err := compileRegexes(field, budget); err != nil {
				return err
			}
		}
		for _, field := range v.Map.Opt {
			if err := compileRegexes(field, budget); err != nil {
				return err
			}
		}

		return compileRegexes(v.Map.FieldType, budget)

	case KindHash:
		if v.Hash == nil {
			return nil
		}

		return compileRegexes(v.Hash.Link, budget)

	default:
		return nil
	}
}

// CompileRegexes compiles every regex reachable from the root validator,
// enforcing MaxRegexes across the whole tree.
func CompileRegexes(root *Validator) error {
	budget := MaxRegexes

	return compileRegexes(root, &budget)
}

func normalizeForm(mode NormalizeMode) norm.Form {
	switch mode {
	case NormalizeNFC:
		return norm.NFC
	case NormalizeNFKC:
		return norm.NFKC
	default:
		return norm.NFC
	}
}

func applyNormalize(s string, mode NormalizeMode) string {
	if mode == NormalizeNone {
		return s
	}

	return normalizeForm(mode).String(s)
}

// matchesAll reports whether s matches every pattern (spec.md §4.2: a
// Str validator's matches clause requires all patterns to match, not
// just one).
func matchesAll(patterns []compiledPattern, s string) bool {
	for _, p := range patterns {
		if !p.re.MatchString(s) {
			return false
		}
	}

	return true
}
