package fogcrypto

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/curve25519"

	"github.com/foglayer/fogpack/errs"
	"github.com/foglayer/fogpack/format"
	"github.com/foglayer/fogpack/value"
)

// EncryptionKey is an X25519 keypair used as a lockbox recipient.
type EncryptionKey struct {
	Public  [32]byte
	private [32]byte
}

// GenerateEncryptionKey creates a fresh X25519 keypair.
func GenerateEncryptionKey() (*EncryptionKey, error) {
	var priv [32]byte
	if _, err := rand.Read(priv[:]); err != nil {
		return nil, fmt.Errorf("fogcrypto: generate encryption key: %w", err)
	}
	// Clamp per RFC 7748 so the scalar is a valid X25519 private key.
	priv[0] &= 248
	priv[31] &= 127
	priv[31] |= 64

	pub, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("fogcrypto: derive public key: %w", err)
	}

	k := &EncryptionKey{private: priv}
	copy(k.Public[:], pub)

	return k, nil
}

func sharedAEADKey(priv, pub [32]byte) ([]byte, error) {
	shared, err := curve25519.X25519(priv[:], pub[:])
	if err != nil {
		return nil, fmt.Errorf("%w: key agreement failed: %v", errs.ErrDecryptFailed, err)
	}
	// Hash the raw ECDH output rather than using it directly as the AEAD
	// key, so a small-subgroup or low-entropy shared point doesn't leak
	// directly into ciphertext.
	key := blake2b.Sum256(shared)

	return key[:], nil
}

// SealPublicKey encrypts plaintext (prefixed with innerType) for
// recipientPub, using a fresh ephemeral X25519 keypair and reporting the
// sender's signing identity in the SignerKey field for provenance
// (spec.md §6). The plaintext's first byte must be one of
// format.LockboxInnerPrivateKey/SecretKey/Data.
func SealPublicKey(sender value.Identity, recipientPub [32]byte, innerType byte, plaintext []byte) (value.Lockbox, error) {
	ephemeral, err := GenerateEncryptionKey()
	if err != nil {
		return value.Lockbox{}, err
	}

	key, err := sharedAEADKey(ephemeral.private, recipientPub)
	if err != nil {
		return value.Lockbox{}, err
	}

	return seal(value.Lockbox{
		Version:      format.LockboxVersion1,
		Tag:          format.LockboxRecipientPublicKey,
		SignerKey:    append([]byte(nil), sender.Public...),
		EphemeralPub: append([]byte(nil), ephemeral.Public[:]...),
	}, key, innerType, plaintext)
}

// OpenPublicKey decrypts a public-key-recipient lockbox using the
// recipient's own private key.
func OpenPublicKey(recipient *EncryptionKey, box value.Lockbox) (innerType byte, plaintext []byte, err error) {
	if !box.IsPublicKeyRecipient() {
		return 0, nil, fmt.Errorf("%w: not a public-key recipient lockbox", errs.ErrDecryptFailed)
	}
	if len(box.EphemeralPub) != 32 {
		return 0, nil, fmt.Errorf("%w: malformed ephemeral key", errs.ErrDecryptFailed)
	}

	var ephemeralPub [32]byte
	copy(ephemeralPub[:], box.EphemeralPub)

	key, err := sharedAEADKey(recipient.private, ephemeralPub)
	if err != nil {
		return 0, nil, err
	}

	return open(box, key)
}

// SealSymmetric encrypts plaintext under a pre-shared key identified on
// the wire by streamID, the "symmetric recipient" form (spec.md §6).
func SealSymmetric(streamID [32]byte, key []byte, innerType byte, plaintext []byte) (value.Lockbox, error) {
	return seal(value.Lockbox{
		Version:  format.LockboxVersion1,
		Tag:      format.LockboxRecipientSymmetric,
		StreamID: append([]byte(nil), streamID[:]...),
	}, key, innerType, plaintext)
}

// OpenSymmetric decrypts a symmetric-recipient lockbox given the
// pre-shared key for its stream id.
func OpenSymmetric(key []byte, box value.Lockbox) (innerType byte, plaintext []byte, err error) {
	if !box.IsSymmetricRecipient() {
		return 0, nil, fmt.Errorf("%w: not a symmetric recipient lockbox", errs.ErrDecryptFailed)
	}

	return open(box, key)
}

func seal(box value.Lockbox, key []byte, innerType byte, plaintext []byte) (value.Lockbox, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return value.Lockbox{}, fmt.Errorf("fogcrypto: %w", err)
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return value.Lockbox{}, fmt.Errorf("fogcrypto: nonce: %w", err)
	}

	inner := make([]byte, 0, 1+len(plaintext))
	inner = append(inner, innerType)
	inner = append(inner, plaintext...)

	sealed := aead.Seal(nil, nonce, inner, nil)
	cipherLen := len(sealed) - chacha20poly1305.Overhead

	box.Nonce = nonce
	box.Ciphertext = sealed[:cipherLen]
	box.AuthTag = sealed[cipherLen:]

	return box, nil
}

func open(box value.Lockbox, key []byte) (byte, []byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return 0, nil, fmt.Errorf("fogcrypto: %w", err)
	}
	if len(box.Nonce) != chacha20poly1305.NonceSizeX {
		return 0, nil, fmt.Errorf("%w: malformed nonce", errs.ErrDecryptFailed)
	}

	sealed := make([]byte, 0, len(box.Ciphertext)+len(box.AuthTag))
	sealed = append(sealed, box.Ciphertext...)
	sealed = append(sealed, box.AuthTag...)

	inner, err := aead.Open(nil, box.Nonce, sealed, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", errs.ErrDecryptFailed, err)
	}
	if len(inner) < 1 {
		return 0, nil, fmt.Errorf("%w: empty plaintext", errs.ErrDecryptFailed)
	}

	return inner[0], inner[1:], nil
}
