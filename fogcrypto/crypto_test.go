package fogcrypto

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foglayer/fogpack/format"
	"github.com/foglayer/fogpack/value"
)

func TestHashBlake2bDocumentedVector(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09}
	h := Hash(data)
	require.Equal(t, format.HashAlgoBlake2b, h.Algo)
	require.Len(t, h.Digest, format.Blake2bDigestSize)
	require.NoError(t, VerifyHash(h, data))

	tampered := append([]byte(nil), data...)
	tampered[0] ^= 0xff
	require.Error(t, VerifyHash(h, tampered))
}

func TestSignVerifyRoundTrip(t *testing.T) {
	key, err := GenerateSigningKey()
	require.NoError(t, err)

	h := Hash([]byte("a document body"))
	sig := key.Sign(h)
	require.NoError(t, Verify(key.Identity, h, sig))

	otherHash := Hash([]byte("a different body"))
	require.Error(t, Verify(key.Identity, otherHash, sig))
}

func TestLockboxPublicKeyRoundTrip(t *testing.T) {
	sender, err := GenerateSigningKey()
	require.NoError(t, err)

	recipient, err := GenerateEncryptionKey()
	require.NoError(t, err)

	box, err := SealPublicKey(sender.Identity, recipient.Public, format.LockboxInnerData, []byte("secret payload"))
	require.NoError(t, err)
	require.True(t, box.IsPublicKeyRecipient())

	innerType, plaintext, err := OpenPublicKey(recipient, box)
	require.NoError(t, err)
	require.Equal(t, format.LockboxInnerData, innerType)
	require.Equal(t, "secret payload", string(plaintext))
}

func TestLockboxSymmetricRoundTrip(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	var streamID [32]byte
	streamID[0] = 0x42

	box, err := SealSymmetric(streamID, key, format.LockboxInnerSecretKey, []byte("shared stream payload"))
	require.NoError(t, err)
	require.True(t, box.IsSymmetricRecipient())

	innerType, plaintext, err := OpenSymmetric(key, box)
	require.NoError(t, err)
	require.Equal(t, format.LockboxInnerSecretKey, innerType)
	require.Equal(t, "shared stream payload", string(plaintext))
}

func TestVaultSignAndOpen(t *testing.T) {
	v := NewVault()
	id, err := v.NewIdentity("alice")
	require.NoError(t, err)

	h := Hash([]byte("vault test"))
	sig, err := v.Sign("alice", h)
	require.NoError(t, err)
	require.NoError(t, Verify(id, h, sig))

	recipientPub, err := v.NewEncryptionKey("bob")
	require.NoError(t, err)

	box, err := SealPublicKey(id, recipientPub, format.LockboxInnerData, []byte("vault lockbox"))
	require.NoError(t, err)

	innerType, plaintext, err := v.Open("bob", box)
	require.NoError(t, err)
	require.Equal(t, format.LockboxInnerData, innerType)
	require.Equal(t, "vault lockbox", string(plaintext))
}

func TestLockboxCodecRoundTrip(t *testing.T) {
	sender, err := GenerateSigningKey()
	require.NoError(t, err)
	recipient, err := GenerateEncryptionKey()
	require.NoError(t, err)

	box, err := SealPublicKey(sender.Identity, recipient.Public, format.LockboxInnerData, []byte("wire round trip"))
	require.NoError(t, err)

	v := value.LockboxValue(box)
	got, ok := v.AsLockbox()
	require.True(t, ok)
	require.Equal(t, box.Ciphertext, got.Ciphertext)
}
