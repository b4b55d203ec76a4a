package crypto

import (
	"bytes"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAccount(t *testing.T, fill byte) *PrivateKeyAccount {
	t.Helper()
	acc, err := NewPrivateKeyAccount(bytes.Repeat([]byte{fill}, SeedLength))
	require.NoError(t, err)
	return acc
}

func TestPublicKeyToAddress(t *testing.T) {
	acc := testAccount(t, 1)

	address := acc.Address()
	assert.True(t, IsValidAddress(address))
	assert.Equal(t, address, PublicKeyToAddress(acc.PublicKey()))
	assert.Equal(t, byte('Q'), address[0], "version 58 addresses start with Q")

	raw, err := AddressToBytes(address)
	require.NoError(t, err)
	require.Len(t, raw, AddressLength)
	assert.Equal(t, AddressVersion, raw[0])
	assert.Equal(t, Hash160(acc.PublicKey()), raw[1:21])
}

func TestATAddress(t *testing.T) {
	address := ATAddress(bytes.Repeat([]byte{9}, SignatureLength))
	assert.True(t, IsValidAddress(address))
	assert.Equal(t, byte('A'), address[0])
}

func TestIsValidAddress(t *testing.T) {
	good := testAccount(t, 2).Address()
	raw, err := AddressToBytes(good)
	require.NoError(t, err)

	badChecksum := append([]byte(nil), raw...)
	badChecksum[AddressLength-1] ^= 0xff

	badVersion := append([]byte(nil), raw...)
	badVersion[0] = 0x01

	tests := []struct {
		name    string
		address string
		valid   bool
	}{
		{"derived", good, true},
		{"empty", "", false},
		{"not base58", "0OIl", false},
		{"short", base58.Encode(raw[:20]), false},
		{"bad checksum", base58.Encode(badChecksum), false},
		{"bad version", base58.Encode(badVersion), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidAddress(tt.address))
		})
	}
}

func TestAddressBytesRoundTrip(t *testing.T) {
	address := testAccount(t, 3).Address()
	raw, err := AddressToBytes(address)
	require.NoError(t, err)

	back, err := AddressFromBytes(raw)
	require.NoError(t, err)
	assert.Equal(t, address, back)

	_, err = AddressFromBytes(raw[:24])
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestSignAndVerify(t *testing.T) {
	acc := testAccount(t, 4)
	msg := []byte("transfer 1 coin")

	sig := acc.Sign(msg)
	require.Len(t, sig, SignatureLength)
	assert.True(t, Verify(acc.PublicKey(), msg, sig))
	assert.False(t, Verify(acc.PublicKey(), []byte("transfer 2 coins"), sig))
	assert.False(t, Verify(acc.PublicKey()[:31], msg, sig))
}

func TestVerifierCachesSuccess(t *testing.T) {
	v, err := NewVerifier(8)
	require.NoError(t, err)

	acc := testAccount(t, 5)
	msg := []byte("payload")
	sig := acc.Sign(msg)

	require.True(t, v.Verify(acc.PublicKey(), msg, sig))
	require.True(t, v.Verify(acc.PublicKey(), msg, sig))
	require.False(t, v.Verify(acc.PublicKey(), []byte("other"), sig))

	hits, misses := v.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(2), misses)
}

func TestNewPrivateKeyAccountRejectsShortSeed(t *testing.T) {
	_, err := NewPrivateKeyAccount([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrInvalidSeed)
}
