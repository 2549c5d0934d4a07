// Package fogcrypto wraps the cryptographic primitives fog-pack treats as
// an external collaborator (spec.md §1): BLAKE2b-512 hashing, Ed25519
// signing, and XChaCha20-Poly1305/X25519 lockbox encryption. Nothing here
// is a novel cryptographic design; it is a thin, spec-shaped façade over
// golang.org/x/crypto and the standard library's crypto/ed25519.
package fogcrypto

import (
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/foglayer/fogpack/errs"
	"github.com/foglayer/fogpack/format"
	"github.com/foglayer/fogpack/value"
)

// Hash computes the BLAKE2b-512 digest of data and wraps it as a
// value.Hash with algorithm 1 (spec.md §4.5, §6).
func Hash(data []byte) value.Hash {
	digest := blake2b.Sum512(data)
	out := make([]byte, len(digest))
	copy(out, digest[:])

	return value.Hash{Algo: format.HashAlgoBlake2b, Digest: out}
}

// VerifyHash recomputes the BLAKE2b-512 digest of data and compares it to
// want, returning errs.ErrUnknownAlgorithm if want is not a BLAKE2b-512
// hash and errs.ErrHashMismatch if the digests differ.
func VerifyHash(want value.Hash, data []byte) error {
	if want.Algo != format.HashAlgoBlake2b {
		return fmt.Errorf("%w: %d", errs.ErrUnknownAlgorithm, want.Algo)
	}
	got := Hash(data)
	if !got.Equal(want) {
		return errs.ErrHashMismatch
	}

	return nil
}
