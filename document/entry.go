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

// Entry is a validated, hashed, and possibly signed fog-pack entry
// (spec.md §4.5): a value keyed under a parent document's hash.
type Entry struct {
	Parent     value.Hash
	Key        string
	Value      value.Value
	Hash       value.Hash
	Signatures []Signature
}

// entryHash computes H(canonical_encode([parent_hash, key, value])),
// binding the entry to both its parent document and its key so the same
// value filed under a different key or parent hashes differently.
func entryHash(parent value.Hash, key string, val value.Value) (value.Hash, error) {
	triple, err := value.Array([]value.Value{value.HashValue(parent), value.MustStr(key), val})
	if err != nil {
		return value.Hash{}, err
	}

	encoded, err := codec.Encode(triple)
	if err != nil {
		return value.Hash{}, err
	}

	return fogcrypto.Hash(encoded), nil
}

// EncodeEntry validates val against s's validator for key, computes its
// entry hash, and frames it like Encode does for documents.
func EncodeEntry(s *schema.Schema, parent value.Hash, key string, val value.Value, signers ...*fogcrypto.SigningKey) (Entry, []byte, error) {
	if err := s.ValidateEntry(key, val); err != nil {
		return Entry{}, nil, err
	}

	body, err := codec.Encode(val)
	if err != nil {
		return Entry{}, nil, err
	}
	if len(body) > s.Limits().MaxSize {
		return Entry{}, nil, fmt.Errorf("%w: entry body %d bytes exceeds limit %d", errs.ErrSizeLimit, len(body), s.Limits().MaxSize)
	}

	hash, err := entryHash(parent, key, val)
	if err != nil {
		return Entry{}, nil, err
	}
	sigs := signAll(hash, signers)

	frame, err := encodeFrame(s.EntryCompression(key), false, body, sigs)
	if err != nil {
		return Entry{}, nil, err
	}

	return Entry{Parent: parent, Key: key, Value: val, Hash: hash, Signatures: sigs}, frame, nil
}

// DecodeEntry parses an entry frame produced by EncodeEntry, verifying
// its signatures against the recomputed entry hash and validating the
// resulting value against s's validator for key. If opts supplies
// WithDict, that dictionary is checked against key's recorded
// dictionary hash (errs.ErrDictMismatch on mismatch) and used in place
// of any dictionary bundled in the schema.
func DecodeEntry(s *schema.Schema, parent value.Hash, key string, data []byte, opts ...options.Option[*DecodeConfig]) (Entry, error) {
	cfg := DecodeConfig{}
	if err := options.Apply(&cfg, opts...); err != nil {
		return Entry{}, err
	}

	policy := s.EntryCompression(key)
	if cfg.Dict != nil {
		if err := s.CheckEntryDict(key, cfg.Dict); err != nil {
			return Entry{}, err
		}
		policy.Dict = cfg.Dict
	}

	frame, err := decodeFrame(data, policy, s.Limits())
	if err != nil {
		return Entry{}, err
	}

	val, err := codec.Decode(frame.body, s.Limits())
	if err != nil {
		return Entry{}, err
	}

	hash, err := entryHash(parent, key, val)
	if err != nil {
		return Entry{}, err
	}

	if err := verifyAll(hash, frame.sigs); err != nil {
		return Entry{}, err
	}

	if err := s.ValidateEntry(key, val); err != nil {
		return Entry{}, err
	}

	return Entry{Parent: parent, Key: key, Value: val, Hash: hash, Signatures: frame.sigs}, nil
}
