// Package compress implements fog-pack's compression pipeline (spec.md
// §4.6): the Codec interface the document and schema packages compress
// and decompress bodies through.
//
// # Policies
//
// A schema declares one Policy per document and, independently, one per
// entry key:
//
//   - None: the body is stored uncompressed.
//   - General{algorithm, level}: zstd without a shared dictionary.
//   - Dict{algorithm, level, dict}: zstd with a shared dictionary,
//     letting small, structurally similar documents compress well by
//     training against a corpus-wide dictionary instead of their own
//     (necessarily short) body.
//
// Compression always operates on the canonical-encoded body, never on
// appended signatures (spec.md §4.6) — signing happens over the
// document hash, which is computed before compression, so compressing
// or recompressing a document never invalidates its signatures.
//
// # Resource bounds
//
// Decompress enforces spec.md §5's rule that decompressed size can never
// exceed the schema's configured maximum document size; callers pass
// that limit in explicitly rather than relying on a package-wide default.
package compress
