package crypto

import (
	"crypto/ed25519"
	"errors"
)

const (
	PublicKeyLength = ed25519.PublicKeySize
	SignatureLength = ed25519.SignatureSize
	SeedLength      = ed25519.SeedSize
)

var (
	ErrInvalidSeed      = errors.New("invalid private key seed")
	ErrInvalidPublicKey = errors.New("invalid public key")
)

// PrivateKeyAccount holds an ed25519 key pair and the address derived from
// its public key.
type PrivateKeyAccount struct {
	key     ed25519.PrivateKey
	address string
}

// NewPrivateKeyAccount derives a key pair from a 32-byte seed.
func NewPrivateKeyAccount(seed []byte) (*PrivateKeyAccount, error) {
	if len(seed) != SeedLength {
		return nil, ErrInvalidSeed
	}
	key := ed25519.NewKeyFromSeed(seed)
	return &PrivateKeyAccount{
		key:     key,
		address: PublicKeyToAddress(key.Public().(ed25519.PublicKey)),
	}, nil
}

// PublicKey returns the 32-byte public key.
func (a *PrivateKeyAccount) PublicKey() []byte {
	pub := a.key.Public().(ed25519.PublicKey)
	out := make([]byte, len(pub))
	copy(out, pub)
	return out
}

// Address returns the base58 address of the account.
func (a *PrivateKeyAccount) Address() string {
	return a.address
}

// Sign signs message with the account's private key.
func (a *PrivateKeyAccount) Sign(message []byte) []byte {
	return ed25519.Sign(a.key, message)
}

// Verify checks an ed25519 signature. Malformed keys or signatures verify as false.
func Verify(publicKey, message, signature []byte) bool {
	if len(publicKey) != PublicKeyLength || len(signature) != SignatureLength {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), message, signature)
}
