package value

import "github.com/foglayer/fogpack/format"

// Lockbox is the wire shape of an encrypted payload (spec.md §6). Exactly
// one of the two recipient forms is populated, selected by Tag:
//
//   - Tag == LockboxRecipientPublicKey: SignerKey, EphemeralPub, Nonce,
//     Ciphertext, AuthTag are all set; StreamID is empty.
//   - Tag == LockboxRecipientSymmetric: StreamID, Nonce, Ciphertext,
//     AuthTag are set; SignerKey and EphemeralPub are empty.
//
// fogcrypto builds and opens Lockbox values; this package only holds the
// framed byte layout so the codec can encode/decode it without importing
// cryptographic code.
type Lockbox struct {
	Version byte
	Tag     byte

	SignerKey    []byte // 32 bytes, public-key recipient only
	EphemeralPub []byte // 32 bytes, public-key recipient only
	StreamID     []byte // 32 bytes, symmetric recipient only

	Nonce      []byte // 24 bytes
	Ciphertext []byte // inner-type byte || plaintext, AEAD-sealed
	AuthTag    []byte // 16 bytes
}

// IsPublicKeyRecipient reports whether this is the Ed25519/X25519
// recipient form.
func (l Lockbox) IsPublicKeyRecipient() bool {
	return l.Tag == format.LockboxRecipientPublicKey
}

// IsSymmetricRecipient reports whether this is the stream-id recipient
// form.
func (l Lockbox) IsSymmetricRecipient() bool {
	return l.Tag == format.LockboxRecipientSymmetric
}

// Body returns the byte length of the framed ext body this Lockbox would
// encode to, without actually encoding it; used by the validator's
// Lockbox `size` option and by the codec to size its encode buffer.
func (l Lockbox) Body() int {
	n := 2 + len(l.Nonce) + len(l.Ciphertext) + len(l.AuthTag) // version + tag + shared fields
	if l.IsPublicKeyRecipient() {
		n += len(l.SignerKey) + len(l.EphemeralPub)
	} else {
		n += len(l.StreamID)
	}

	return n
}
