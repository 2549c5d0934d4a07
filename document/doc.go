// Package document implements fog-pack's Document and Entry types
// (spec.md §4.5, §4.6): the framing, hashing, signing and compression
// glue layered on top of codec's canonical encoder and schema's
// validator.
//
// # Framing
//
// A document or entry is encoded as:
//
//	header byte || body length (big-endian uint32) || body bytes || signatures
//
// The header byte is format.EncodeFrameHeader's schema-presence flag and
// compression id. body bytes is the (possibly compressed)
// canonical-encoded root value. signatures is a canonical-encoded Array
// of [Identity, Bin] pairs running to the end of the frame — empty when
// nothing signed it.
//
// # Hashing and signing
//
// A document's hash is H(canonical_encode(root value)); an entry's hash
// additionally binds its parent document hash and key:
// H(canonical_encode([parent_hash, key, value])). Both are computed
// before compression and signed directly, so recompressing or
// reframing never invalidates a signature (spec.md §4.5).
package document
