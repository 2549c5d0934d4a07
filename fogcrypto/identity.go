package fogcrypto

import (
	"crypto/ed25519"
	"fmt"

	"github.com/foglayer/fogpack/errs"
	"github.com/foglayer/fogpack/format"
	"github.com/foglayer/fogpack/value"
)

// SigningKey is an Ed25519 keypair, addressable by its public half as a
// value.Identity.
type SigningKey struct {
	Identity value.Identity
	private  ed25519.PrivateKey
}

// GenerateSigningKey creates a fresh Ed25519 keypair.
func GenerateSigningKey() (*SigningKey, error) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, fmt.Errorf("fogcrypto: generate signing key: %w", err)
	}

	return &SigningKey{
		Identity: value.Identity{Algo: format.IdentityAlgoEd25519, Public: []byte(pub)},
		private:  priv,
	}, nil
}

// Sign signs a document/entry hash's digest bytes, returning the raw
// 64-byte Ed25519 signature. Signing is over the hash, not the raw
// encoded bytes, so re-compressing or re-framing a document never
// invalidates a signature (spec.md §4.5).
func (k *SigningKey) Sign(hash value.Hash) []byte {
	return ed25519.Sign(k.private, hash.Digest)
}

// Verify checks sig against hash under the public key carried by id. It
// returns errs.ErrUnknownAlgorithm for an unrecognised algorithm and
// errs.ErrSignatureInvalid for a wrong-length key or any other failure.
func Verify(id value.Identity, hash value.Hash, sig []byte) error {
	if id.Algo != format.IdentityAlgoEd25519 {
		return fmt.Errorf("%w: %d", errs.ErrUnknownAlgorithm, id.Algo)
	}
	if len(id.Public) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: identity key length %d", errs.ErrSignatureInvalid, len(id.Public))
	}
	if !ed25519.Verify(ed25519.PublicKey(id.Public), hash.Digest, sig) {
		return errs.ErrSignatureInvalid
	}

	return nil
}
