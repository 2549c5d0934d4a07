// Package errs defines the sentinel errors produced by every fog-pack
// package. Call sites wrap a sentinel with contextual detail using
// fmt.Errorf("%w: detail", errs.ErrXxx, ...); callers identify the kind of
// failure with errors.Is, never by parsing the message.
package errs

import "errors"

// Encoding errors: a value cannot be represented on the wire at all.
var (
	// ErrRange is returned when a value's magnitude or length exceeds what
	// the wire format can carry (Str/Bin length >= 2^32, Int overflow,
	// Time nanoseconds out of band).
	ErrRange = errors.New("fogpack: value out of range for encoding")

	// ErrDuplicateKey is returned when a map is built with two identical
	// string keys.
	ErrDuplicateKey = errors.New("fogpack: duplicate map key")

	// ErrInvalidUTF8 is returned when a Str value is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("fogpack: string is not valid UTF-8")
)

// Decoding errors: the byte stream is malformed or not canonical.
var (
	// ErrMalformed is returned for truncated input, an unknown opcode, or
	// an ill-formed ext body (an unreserved ext type byte is
	// ErrUnknownExtType instead).
	ErrMalformed = errors.New("fogpack: malformed encoding")

	// ErrNonCanonical is returned when the bytes decode to a value but use
	// a wider-than-necessary container, out-of-order or duplicate map
	// keys, a non-canonical ext framing, or any other non-minimal form.
	ErrNonCanonical = errors.New("fogpack: non-canonical encoding")

	// ErrTrailingData is returned when a decode leaves unconsumed bytes at
	// the top level.
	ErrTrailingData = errors.New("fogpack: trailing bytes after value")

	// ErrUnknownAlgorithm is returned when a Hash or Identity ext carries
	// an algorithm byte this implementation does not recognise.
	ErrUnknownAlgorithm = errors.New("fogpack: unknown algorithm byte")

	// ErrUnknownExtType is returned when an ext wrapper's type byte is not
	// one of the reserved ones (Time, Hash, Identity, Lockbox).
	ErrUnknownExtType = errors.New("fogpack: unreserved ext type")
)

// Resource-limit errors (denial-of-service hardening, spec.md §5).
var (
	// ErrSizeLimit is returned when an encoded value exceeds the
	// configured maximum document/entry size.
	ErrSizeLimit = errors.New("fogpack: encoded size exceeds limit")

	// ErrDepthLimit is returned when decode nesting exceeds the
	// configured maximum depth.
	ErrDepthLimit = errors.New("fogpack: nesting depth exceeds limit")

	// ErrRegexLimit is returned when a schema would need to compile more
	// regular expressions than its max_regex budget allows.
	ErrRegexLimit = errors.New("fogpack: too many compiled regexes")
)

// Validator / schema-build errors.
var (
	// ErrValidationFailed is returned when a value fails a validator. Use
	// AsValidationFailure to recover the path and clause.
	ErrValidationFailed = errors.New("fogpack: validation failed")

	// ErrQueryIncompatible is returned when a query validator uses a
	// feature the schema did not mark queryable at that position.
	ErrQueryIncompatible = errors.New("fogpack: query not admissible against schema")

	// ErrAliasMissing is returned when a validator references a type name
	// absent from the schema's types table.
	ErrAliasMissing = errors.New("fogpack: alias not found in types table")

	// ErrAliasShadowsKind is returned when an alias name collides with a
	// base validator kind name.
	ErrAliasShadowsKind = errors.New("fogpack: alias shadows a base kind")

	// ErrAliasCycle is returned when alias references form a cycle that
	// does not pass through a boxing kind (Array items, Map values, Hash
	// link).
	ErrAliasCycle = errors.New("fogpack: alias cycle not broken by a boxing kind")

	// ErrRegexCompile is returned when a Str validator's matches pattern
	// fails to compile.
	ErrRegexCompile = errors.New("fogpack: regex failed to compile")

	// ErrBadCoreShape is returned when a candidate schema document does
	// not match the fog-pack core bootstrap schema.
	ErrBadCoreShape = errors.New("fogpack: document is not a well-formed schema")
)

// Cryptographic errors.
var (
	// ErrHashMismatch is returned when a recomputed hash does not match
	// the hash carried by a document, entry, or schema reference.
	ErrHashMismatch = errors.New("fogpack: hash mismatch")

	// ErrSignatureInvalid is returned when a signature fails verification.
	ErrSignatureInvalid = errors.New("fogpack: signature verification failed")

	// ErrDecryptFailed is returned when lockbox decryption fails
	// (authentication tag mismatch, wrong recipient, malformed body).
	ErrDecryptFailed = errors.New("fogpack: lockbox decryption failed")

	// ErrDictMismatch is returned when a compressed body names a
	// dictionary whose hash does not match the schema's declared
	// dictionary.
	ErrDictMismatch = errors.New("fogpack: compression dictionary hash mismatch")
)

// ErrNoSchema is returned when an operation that requires a schema
// reference is attempted on a document with no schema-hash key.
var ErrNoSchema = errors.New("fogpack: document carries no schema reference")

// ErrSchemaMismatch is returned when a document or entry's schema-hash
// does not match the schema it is being validated/encoded/decoded against.
var ErrSchemaMismatch = errors.New("fogpack: schema hash does not match this schema")
