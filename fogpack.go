// Package fogpack provides a canonical, content-addressed binary
// serialization format built on a MessagePack-family wire encoding, a
// recursive schema validator, and a Document/Entry pipeline with
// built-in signing, encryption, and compression.
//
// # Core features
//
//   - Canonical encode/decode: every value has exactly one valid byte
//     representation, so two documents with the same content always
//     hash identically.
//   - Cryptographic value kinds: Hash (BLAKE2b-512), Identity and
//     signatures (Ed25519), Lockbox (X25519 + XChaCha20-Poly1305).
//   - A recursive validator/schema engine with an alias table, query
//     compatibility checking, and self-hosting bootstrap schema.
//   - A Document/Entry pipeline: content-addressed documents, signed
//     over their hash, with optional zstd compression.
//
// # Basic usage
//
// Building a schema and encoding a document against it:
//
//	root := value.NewMap()
//	root.Set("type", value.MustStr("Map"))
//	doc := value.NewMap()
//	doc.Set("root", value.Obj(root))
//	s, err := schema.Build(value.Obj(doc))
//
//	body := value.NewMap()
//	body.Set("", value.HashValue(s.Hash()))
//	encoded, frame, err := document.Encode(s, value.Obj(body))
//
// Decoding it back:
//
//	decoded, err := document.Decode(s, frame, nil)
//
// # Package structure
//
// This file provides convenient top-level wrappers around the codec,
// schema, and document packages for the most common operations. For
// advanced usage — custom validators, alias tables, compression
// dictionaries, lockboxes — use those packages directly.
package fogpack

import (
	"github.com/foglayer/fogpack/codec"
	"github.com/foglayer/fogpack/document"
	"github.com/foglayer/fogpack/fogcrypto"
	"github.com/foglayer/fogpack/internal/options"
	"github.com/foglayer/fogpack/schema"
	"github.com/foglayer/fogpack/value"
)

// Encode canonically encodes v with no schema and no size or depth
// limit, returning the hash of the encoded bytes alongside them. Use schema.Build and document.Encode directly for
// schema-validated, signed, or compressed documents.
func Encode(v value.Value) (value.Hash, []byte, error) {
	b, err := codec.Encode(v)
	if err != nil {
		return value.Hash{}, nil, err
	}

	return fogcrypto.Hash(b), b, nil
}

// Decode canonically decodes b under codec.DefaultLimits.
func Decode(b []byte) (value.Value, error) {
	return codec.Decode(b, codec.DefaultLimits())
}

// BuildSchema is schema.Build.
func BuildSchema(candidate value.Value, opts ...options.Option[*schema.Config]) (*schema.Schema, error) {
	return schema.Build(candidate, opts...)
}

// EncodeDoc is document.Encode.
func EncodeDoc(s *schema.Schema, root value.Value, signers ...*fogcrypto.SigningKey) (document.Document, []byte, error) {
	return document.Encode(s, root, signers...)
}

// DecodeDoc is document.Decode.
func DecodeDoc(s *schema.Schema, data []byte, expectedHash *value.Hash, opts ...options.Option[*document.DecodeConfig]) (document.Document, error) {
	return document.Decode(s, data, expectedHash, opts...)
}
