package value

import (
	"bytes"

	"github.com/foglayer/fogpack/format"
)

// Hash is the (algorithm, digest) pair from spec.md §3/§6. Algorithm 0 is
// the reserved "null hash" used only during handshakes and carries an
// empty digest; algorithm 1 is BLAKE2b-512 and carries a 64-byte digest.
// fogcrypto.Hash computes these; this package only holds the wire shape.
type Hash struct {
	Algo   byte
	Digest []byte
}

// NullHash returns the reserved algorithm-0 hash.
func NullHash() Hash { return Hash{Algo: format.HashAlgoNull} }

// IsNull reports whether h is the reserved null hash.
func (h Hash) IsNull() bool { return h.Algo == format.HashAlgoNull }

// Equal reports byte-wise equality over the full encoded form, including
// the algorithm byte (spec.md §4.1 ordering rules).
func (h Hash) Equal(other Hash) bool {
	return h.Algo == other.Algo && bytes.Equal(h.Digest, other.Digest)
}

// Compare orders h against other byte-wise over algorithm-then-digest.
func (h Hash) Compare(other Hash) int {
	if h.Algo != other.Algo {
		return compareU64(uint64(h.Algo), uint64(other.Algo))
	}

	return bytes.Compare(h.Digest, other.Digest)
}

// Identity is the (algorithm, public key) pair from spec.md §3/§6.
// Algorithm 1 is Ed25519 and carries a 32-byte public key.
type Identity struct {
	Algo   byte
	Public []byte
}

// Equal reports byte-wise equality over algorithm and public key.
func (id Identity) Equal(other Identity) bool {
	return id.Algo == other.Algo && bytes.Equal(id.Public, other.Public)
}

// Compare orders id against other byte-wise over algorithm-then-key.
func (id Identity) Compare(other Identity) int {
	if id.Algo != other.Algo {
		return compareU64(uint64(id.Algo), uint64(other.Algo))
	}

	return bytes.Compare(id.Public, other.Public)
}
