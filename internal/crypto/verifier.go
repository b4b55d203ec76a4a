package crypto

import (
	"crypto/sha256"
	"sync/atomic"

	"github.com/hashicorp/golang-lru/v2"
)

// DefaultVerifierCacheSize is used when NewVerifier is given a non-positive size.
const DefaultVerifierCacheSize = 4096

// Verifier verifies ed25519 signatures and remembers recent successes, so a
// transaction checked on arrival is not verified again when its block is applied.
// It is safe for concurrent use.
type Verifier struct {
	verified *lru.Cache[[32]byte, struct{}]

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewVerifier creates a verifier remembering up to size successful checks.
func NewVerifier(size int) (*Verifier, error) {
	if size <= 0 {
		size = DefaultVerifierCacheSize
	}
	cache, err := lru.New[[32]byte, struct{}](size)
	if err != nil {
		return nil, err
	}
	return &Verifier{verified: cache}, nil
}

// Verify reports whether signature is a valid signature of message by publicKey.
func (v *Verifier) Verify(publicKey, message, signature []byte) bool {
	key := cacheKey(publicKey, message, signature)
	if v.verified.Contains(key) {
		v.hits.Add(1)
		return true
	}
	v.misses.Add(1)

	if !Verify(publicKey, message, signature) {
		return false
	}
	v.verified.Add(key, struct{}{})
	return true
}

// Stats returns cache hit and miss counts.
func (v *Verifier) Stats() (hits, misses uint64) {
	return v.hits.Load(), v.misses.Load()
}

func cacheKey(publicKey, message, signature []byte) [32]byte {
	h := sha256.New()
	h.Write(publicKey)
	h.Write(signature)
	h.Write(message)
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}
