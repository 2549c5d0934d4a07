package fogcrypto

import (
	"fmt"
	"sync"

	"github.com/foglayer/fogpack/value"
)

// Vault is an in-memory keyring: the collaborator spec.md §1 describes as
// exposing sign/verify/encrypt/decrypt "and a Vault over keys". It holds
// one signing keypair and one encryption keypair per named entry and is
// safe for concurrent use.
type Vault struct {
	mu      sync.RWMutex
	signing map[string]*SigningKey
	encrypt map[string]*EncryptionKey
}

// NewVault returns an empty Vault.
func NewVault() *Vault {
	return &Vault{
		signing: make(map[string]*SigningKey),
		encrypt: make(map[string]*EncryptionKey),
	}
}

// NewIdentity generates a fresh Ed25519 signing keypair under name and
// returns its public Identity.
func (v *Vault) NewIdentity(name string) (value.Identity, error) {
	key, err := GenerateSigningKey()
	if err != nil {
		return value.Identity{}, err
	}

	v.mu.Lock()
	v.signing[name] = key
	v.mu.Unlock()

	return key.Identity, nil
}

// NewEncryptionKey generates a fresh X25519 keypair under name and
// returns its public half.
func (v *Vault) NewEncryptionKey(name string) ([32]byte, error) {
	key, err := GenerateEncryptionKey()
	if err != nil {
		return [32]byte{}, err
	}

	v.mu.Lock()
	v.encrypt[name] = key
	v.mu.Unlock()

	return key.Public, nil
}

// Sign signs hash with the named signing key.
func (v *Vault) Sign(name string, hash value.Hash) ([]byte, error) {
	v.mu.RLock()
	key, ok := v.signing[name]
	v.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("fogcrypto: no signing key named %q", name)
	}

	return key.Sign(hash), nil
}

// Identity returns the public Identity of the named signing key.
func (v *Vault) Identity(name string) (value.Identity, error) {
	v.mu.RLock()
	key, ok := v.signing[name]
	v.mu.RUnlock()
	if !ok {
		return value.Identity{}, fmt.Errorf("fogcrypto: no signing key named %q", name)
	}

	return key.Identity, nil
}

// Open decrypts a public-key-recipient lockbox using the named
// encryption key.
func (v *Vault) Open(name string, box value.Lockbox) (byte, []byte, error) {
	v.mu.RLock()
	key, ok := v.encrypt[name]
	v.mu.RUnlock()
	if !ok {
		return 0, nil, fmt.Errorf("fogcrypto: no encryption key named %q", name)
	}

	return OpenPublicKey(key, box)
}
