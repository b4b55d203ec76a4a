package testing

import (
	"crypto/sha256"
	"fmt"

	"github.com/LeJamon/goQortald/internal/crypto"
)

// Account represents a test account with an ed25519 key pair derived
// deterministically from its name.
type Account struct {
	// Name is a human-readable identifier for the account (used for debugging).
	Name string

	// Address is the base58 account address.
	Address string

	// PublicKey is the 32-byte ed25519 public key.
	PublicKey []byte

	key *crypto.PrivateKeyAccount
}

// NewAccount creates a test account whose seed is the SHA-256 of name.
// Using the same name always produces the same account.
func NewAccount(name string) *Account {
	seed := sha256.Sum256([]byte(name))
	key, err := crypto.NewPrivateKeyAccount(seed[:])
	if err != nil {
		panic("failed to derive key pair for account " + name + ": " + err.Error())
	}
	return &Account{
		Name:      name,
		Address:   key.Address(),
		PublicKey: key.PublicKey(),
		key:       key,
	}
}

// Sign signs message with the account's private key.
func (a *Account) Sign(message []byte) []byte {
	return a.key.Sign(message)
}

// Human returns the account address.
func (a *Account) Human() string {
	return a.Address
}

func (a *Account) String() string {
	return fmt.Sprintf("%s(%s)", a.Name, a.Address)
}
