package compression

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/LeJamon/goQortald/internal/storage/database"
	"github.com/LeJamon/goQortald/internal/storage/database/memory"
	"github.com/LeJamon/goQortald/internal/storage/database/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressedDB(t *testing.T) {
	storetest.Run(t, func(t *testing.T) database.DB {
		return Wrap(memory.New())
	})
}

func TestCompressRoundTrip(t *testing.T) {
	cases := map[string][]byte{
		"empty":          {},
		"short":          []byte("abc"),
		"repetitive":     bytes.Repeat([]byte("qortal"), 500),
		"incompressible": []byte("0123456789abcdefghijklmnopqrstuvwxyz"),
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			stored, err := Compress(value)
			require.NoError(t, err)
			got, err := Decompress(stored)
			require.NoError(t, err)
			assert.Equal(t, value, got)
		})
	}
}

func TestCompressShrinksRepetitiveValues(t *testing.T) {
	value := bytes.Repeat([]byte{0xab}, 4096)
	stored, err := Compress(value)
	require.NoError(t, err)
	assert.Equal(t, headerLZ4, stored[0])
	assert.Less(t, len(stored), len(value)/4)

	inner := memory.New()
	db := Wrap(inner)
	ctx := context.Background()
	require.NoError(t, db.Write(ctx, []byte("k"), value))

	raw, err := inner.Read(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, stored, raw)
}

func TestCompressIsDeterministic(t *testing.T) {
	value := bytes.Repeat([]byte("ledger"), 300)
	first, err := Compress(value)
	require.NoError(t, err)

	// Compressing unrelated data in between must not change the output.
	_, err = Compress(bytes.Repeat([]byte{0xab, 0xcd, 0xef}, 2000))
	require.NoError(t, err)

	second, err := Compress(value)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecompressRejectsCorruptValues(t *testing.T) {
	_, err := Decompress(nil)
	assert.ErrorIs(t, err, ErrCorrupt)
	_, err = Decompress([]byte{9, 1, 2})
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestDecompressRejectsImplausibleLength(t *testing.T) {
	stored := []byte{headerLZ4}
	stored = binary.AppendUvarint(stored, 1<<40)
	stored = append(stored, 0x10, 0x00)

	_, err := Decompress(stored)
	assert.ErrorIs(t, err, ErrCorrupt)

	zero := append(binary.AppendUvarint([]byte{headerLZ4}, 0), 0x00)
	_, err = Decompress(zero)
	assert.ErrorIs(t, err, ErrCorrupt)
}
