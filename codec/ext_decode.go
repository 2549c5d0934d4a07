package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/foglayer/fogpack/errs"
	"github.com/foglayer/fogpack/format"
	"github.com/foglayer/fogpack/value"
)

func decodeTimeBody(body []byte) (value.Value, error) {
	switch len(body) {
	case 4:
		sec := binary.BigEndian.Uint32(body)

		return value.TimeValue(value.Time{Sec: int64(sec)})

	case 8:
		combined := binary.BigEndian.Uint64(body)
		nanos := uint32(combined >> 34)
		sec := int64(combined & ((1 << 34) - 1))
		if nanos == 0 && sec <= 0xffffffff {
			return value.Value{}, fmt.Errorf("%w: timestamp could use 4-byte form", errs.ErrNonCanonical)
		}

		return value.TimeValue(value.Time{Sec: sec, Nanos: nanos})

	case 12:
		nanos := binary.BigEndian.Uint32(body[0:4])
		sec := int64(binary.BigEndian.Uint64(body[4:12]))
		if nanos >= 2_000_000_000 {
			return value.Value{}, fmt.Errorf("%w: timestamp nanos %d", errs.ErrRange, nanos)
		}
		if sec >= 0 && sec < (1<<34) && nanos < (1<<30) {
			return value.Value{}, fmt.Errorf("%w: timestamp could use 8-byte form", errs.ErrNonCanonical)
		}

		return value.TimeValue(value.Time{Sec: sec, Nanos: nanos})

	default:
		return value.Value{}, fmt.Errorf("%w: timestamp body length %d", errs.ErrMalformed, len(body))
	}
}

func decodeHashBody(body []byte) (value.Value, error) {
	if len(body) < 1 {
		return value.Value{}, fmt.Errorf("%w: empty hash body", errs.ErrMalformed)
	}

	algo := body[0]
	switch algo {
	case format.HashAlgoNull:
		if len(body) != 1 {
			return value.Value{}, fmt.Errorf("%w: null hash must have empty digest", errs.ErrMalformed)
		}

		return value.HashValue(value.NullHash()), nil

	case format.HashAlgoBlake2b:
		if len(body) != 1+format.Blake2bDigestSize {
			return value.Value{}, fmt.Errorf("%w: blake2b digest length %d", errs.ErrMalformed, len(body)-1)
		}
		digest := make([]byte, format.Blake2bDigestSize)
		copy(digest, body[1:])

		return value.HashValue(value.Hash{Algo: algo, Digest: digest}), nil

	default:
		return value.Value{}, fmt.Errorf("%w: hash algo %d", errs.ErrUnknownAlgorithm, algo)
	}
}

func decodeIdentityBody(body []byte) (value.Value, error) {
	if len(body) < 1 {
		return value.Value{}, fmt.Errorf("%w: empty identity body", errs.ErrMalformed)
	}

	algo := body[0]
	switch algo {
	case format.IdentityAlgoEd25519:
		if len(body) != 1+format.Ed25519PubKeySize {
			return value.Value{}, fmt.Errorf("%w: ed25519 key length %d", errs.ErrMalformed, len(body)-1)
		}
		pub := make([]byte, format.Ed25519PubKeySize)
		copy(pub, body[1:])

		return value.IdentityValue(value.Identity{Algo: algo, Public: pub}), nil

	default:
		return value.Value{}, fmt.Errorf("%w: identity algo %d", errs.ErrUnknownAlgorithm, algo)
	}
}

func decodeLockboxBody(body []byte) (value.Value, error) {
	if len(body) < 2 {
		return value.Value{}, fmt.Errorf("%w: lockbox body too short", errs.ErrMalformed)
	}

	version := body[0]
	if version != format.LockboxVersion1 {
		return value.Value{}, fmt.Errorf("%w: lockbox version %d", errs.ErrMalformed, version)
	}

	tag := body[1]
	rest := body[2:]

	var (
		signerKey, ephemeralPub, streamID []byte
	)

	switch tag {
	case format.LockboxRecipientPublicKey:
		need := 2 * format.X25519KeySize
		if len(rest) < need {
			return value.Value{}, fmt.Errorf("%w: lockbox public-key recipient fields truncated", errs.ErrMalformed)
		}
		signerKey = cloneBytes(rest[:format.X25519KeySize])
		ephemeralPub = cloneBytes(rest[format.X25519KeySize : 2*format.X25519KeySize])
		rest = rest[need:]

	case format.LockboxRecipientSymmetric:
		if len(rest) < format.StreamIDSize {
			return value.Value{}, fmt.Errorf("%w: lockbox symmetric recipient fields truncated", errs.ErrMalformed)
		}
		streamID = cloneBytes(rest[:format.StreamIDSize])
		rest = rest[format.StreamIDSize:]

	default:
		return value.Value{}, fmt.Errorf("%w: lockbox recipient tag %d", errs.ErrMalformed, tag)
	}

	if len(rest) < format.LockboxNonceSize+format.LockboxTagSize {
		return value.Value{}, fmt.Errorf("%w: lockbox nonce/tag fields truncated", errs.ErrMalformed)
	}

	nonce := cloneBytes(rest[:format.LockboxNonceSize])
	rest = rest[format.LockboxNonceSize:]

	cipherLen := len(rest) - format.LockboxTagSize
	ciphertext := cloneBytes(rest[:cipherLen])
	authTag := cloneBytes(rest[cipherLen:])

	return value.LockboxValue(value.Lockbox{
		Version:      version,
		Tag:          tag,
		SignerKey:    signerKey,
		EphemeralPub: ephemeralPub,
		StreamID:     streamID,
		Nonce:        nonce,
		Ciphertext:   ciphertext,
		AuthTag:      authTag,
	}), nil
}

func cloneBytes(b []byte) []byte {
	cp := make([]byte, len(b))
	copy(cp, b)

	return cp
}
