package crypto

import (
	"bytes"
	"crypto/sha256"
	"errors"

	"github.com/decred/dcrd/crypto/ripemd160"
	"github.com/mr-tron/base58"
)

const (
	// AddressLength is the size of a decoded address: version byte,
	// 20-byte public key hash and 4-byte checksum.
	AddressLength = 25

	// AddressVersion prefixes addresses derived from account public keys.
	AddressVersion byte = 58

	// ATAddressVersion prefixes addresses of automated transaction accounts.
	ATAddressVersion byte = 23

	checksumLength = 4
)

var ErrInvalidAddress = errors.New("invalid address")

// Digest returns SHA-256 of data.
func Digest(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

// DoubleDigest returns SHA-256 of SHA-256 of data.
func DoubleDigest(data []byte) []byte {
	return Digest(Digest(data))
}

// Hash160 computes RIPEMD160(SHA256(data)).
func Hash160(data []byte) []byte {
	sha := sha256.Sum256(data)
	hasher := ripemd160.New()
	hasher.Write(sha[:])
	return hasher.Sum(nil)
}

// PublicKeyToAddress derives the base58 address of an account public key.
func PublicKeyToAddress(publicKey []byte) string {
	return toAddress(AddressVersion, Hash160(publicKey))
}

// ATAddress derives the address of an automated transaction from its
// creation signature.
func ATAddress(signature []byte) string {
	return toAddress(ATAddressVersion, Hash160(signature))
}

func toAddress(version byte, hash []byte) string {
	raw := make([]byte, 0, AddressLength)
	raw = append(raw, version)
	raw = append(raw, hash...)
	checksum := DoubleDigest(raw)[:checksumLength]
	raw = append(raw, checksum...)
	return base58.Encode(raw)
}

// IsValidAddress reports whether address decodes to 25 bytes with a known
// version byte and a correct checksum.
func IsValidAddress(address string) bool {
	raw, err := base58.Decode(address)
	if err != nil || len(raw) != AddressLength {
		return false
	}
	if raw[0] != AddressVersion && raw[0] != ATAddressVersion {
		return false
	}
	body := raw[:AddressLength-checksumLength]
	return bytes.Equal(DoubleDigest(body)[:checksumLength], raw[AddressLength-checksumLength:])
}

// AddressToBytes decodes an address into its 25-byte wire form. The checksum
// is not verified; validity is a separate concern.
func AddressToBytes(address string) ([]byte, error) {
	raw, err := base58.Decode(address)
	if err != nil {
		return nil, ErrInvalidAddress
	}
	if len(raw) != AddressLength {
		return nil, ErrInvalidAddress
	}
	return raw, nil
}

// AddressFromBytes encodes a 25-byte wire address.
func AddressFromBytes(raw []byte) (string, error) {
	if len(raw) != AddressLength {
		return "", ErrInvalidAddress
	}
	return base58.Encode(raw), nil
}
