package errs

import "fmt"

// ValidationFailure carries the path and clause of a failed validation, in
// addition to satisfying errors.Is(err, ErrValidationFailed).
type ValidationFailure struct {
	// Path is the dotted/bracketed path to the offending value, e.g.
	// `title` or `tags[2]`. Empty for a failure at the document root.
	Path string

	// Clause names the validator option that rejected the value, e.g.
	// "max_len", "req", "kind".
	Clause string

	// Detail is a short human-readable explanation, free of the
	// offending value's content (errors must not leak sensitive data).
	Detail string
}

func (f *ValidationFailure) Error() string {
	if f.Path == "" {
		return fmt.Sprintf("fogpack: validation failed: clause %q: %s", f.Clause, f.Detail)
	}

	return fmt.Sprintf("fogpack: validation failed at %q: clause %q: %s", f.Path, f.Clause, f.Detail)
}

func (f *ValidationFailure) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationFailure builds a ValidationFailure error.
func NewValidationFailure(path, clause, detail string) error {
	return &ValidationFailure{Path: path, Clause: clause, Detail: detail}
}

// QueryIncompatibility carries the path and feature of a rejected query.
type QueryIncompatibility struct {
	Path    string
	Feature string
	Detail  string
}

func (f *QueryIncompatibility) Error() string {
	return fmt.Sprintf("fogpack: query not admissible at %q: feature %q: %s", f.Path, f.Feature, f.Detail)
}

func (f *QueryIncompatibility) Unwrap() error {
	return ErrQueryIncompatible
}

// NewQueryIncompatibility builds a QueryIncompatibility error.
func NewQueryIncompatibility(path, feature, detail string) error {
	return &QueryIncompatibility{Path: path, Feature: feature, Detail: detail}
}
