package document

import (
	"fmt"

	"github.com/foglayer/fogpack/codec"
	"github.com/foglayer/fogpack/errs"
	"github.com/foglayer/fogpack/fogcrypto"
	"github.com/foglayer/fogpack/internal/options"
	"github.com/foglayer/fogpack/schema"
	"github.com/foglayer/fogpack/value"
)

// DecodeConfig holds the functional options Decode and DecodeEntry
// accept.
type DecodeConfig struct {
	// Dict is the raw dictionary bytes to decompress a Dict-policy body
	// with. A decoder that does not carry its own copy of the schema's
	// dictionary supplies one here; it is checked against the schema's
	// recorded dictionary hash (spec.md §4.6) before use, so a stale or
	// wrong dictionary is rejected rather than silently misdecoding.
	Dict []byte
}

// WithDict supplies a caller-held dictionary for Decode/DecodeEntry to
// verify and decompress with, instead of trusting a dictionary bundled
// in the schema itself.
func WithDict(dict []byte) options.Option[*DecodeConfig] {
	return options.NoError(func(c *DecodeConfig) { c.Dict = dict })
}

// Document is a validated, hashed, and possibly signed fog-pack document
// (spec.md §4.5).
type Document struct {
	Value      value.Value
	Hash       value.Hash
	Signatures []Signature
}

// Encode validates root against s, computes its hash, and frames it for
// the wire: header byte, compressed body, then a trailing signature
// array built from signers. root must already carry the "" schema-hash
// key if s binds one (spec.md §6); Encode does not add it.
func Encode(s *schema.Schema, root value.Value, signers ...*fogcrypto.SigningKey) (Document, []byte, error) {
	if err := s.ValidateDoc(root); err != nil {
		return Document{}, nil, err
	}

	body, err := codec.Encode(root)
	if err != nil {
		return Document{}, nil, err
	}
	if len(body) > s.Limits().MaxSize {
		return Document{}, nil, fmt.Errorf("%w: document body %d bytes exceeds limit %d", errs.ErrSizeLimit, len(body), s.Limits().MaxSize)
	}

	hash := fogcrypto.Hash(body)
	sigs := signAll(hash, signers)

	_, schemaPresent := checkSchemaPresent(root)

	frame, err := encodeFrame(s.DocCompression(), schemaPresent, body, sigs)
	if err != nil {
		return Document{}, nil, err
	}

	return Document{Value: root, Hash: hash, Signatures: sigs}, frame, nil
}

// Decode parses a document frame produced by Encode, decompressing and
// decoding its body against s's limits, verifying its signatures, and
// validating the resulting value against s. expectedHash, if non-nil,
// is compared against the recomputed hash before signatures are
// checked. If opts supplies WithDict, that dictionary is checked
// against the schema's recorded hash (errs.ErrDictMismatch on
// mismatch) and used in place of any dictionary bundled in the schema.
func Decode(s *schema.Schema, data []byte, expectedHash *value.Hash, opts ...options.Option[*DecodeConfig]) (Document, error) {
	cfg := DecodeConfig{}
	if err := options.Apply(&cfg, opts...); err != nil {
		return Document{}, err
	}

	policy := s.DocCompression()
	if cfg.Dict != nil {
		if err := s.CheckDocDict(cfg.Dict); err != nil {
			return Document{}, err
		}
		policy.Dict = cfg.Dict
	}

	frame, err := decodeFrame(data, policy, s.Limits())
	if err != nil {
		return Document{}, err
	}

	root, err := codec.Decode(frame.body, s.Limits())
	if err != nil {
		return Document{}, err
	}

	hash := fogcrypto.Hash(frame.body)
	if expectedHash != nil && !hash.Equal(*expectedHash) {
		return Document{}, fmt.Errorf("%w: document hash does not match expected", errs.ErrHashMismatch)
	}

	if err := verifyAll(hash, frame.sigs); err != nil {
		return Document{}, err
	}

	if err := s.ValidateDoc(root); err != nil {
		return Document{}, err
	}

	return Document{Value: root, Hash: hash, Signatures: frame.sigs}, nil
}

func checkSchemaPresent(root value.Value) (value.Hash, bool) {
	m, ok := root.AsMap()
	if !ok {
		return value.Hash{}, false
	}
	bound, ok := m.Get("")
	if !ok {
		return value.Hash{}, false
	}
	h, ok := bound.AsHash()

	return h, ok
}
