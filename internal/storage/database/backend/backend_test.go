package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/LeJamon/goQortald/internal/storage/database/compression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{Type: TypeMemory}, false},
		{"pebble with path", Config{Type: TypePebble, Path: "/tmp/x"}, false},
		{"pebble without path", Config{Type: TypePebble}, true},
		{"leveldb without path", Config{Type: TypeLevelDB}, true},
		{"sqlite", Config{Type: TypeSQL, Driver: "sqlite", DSN: "file::memory:"}, false},
		{"sql without dsn", Config{Type: TypeSQL, Driver: "postgres"}, true},
		{"unknown driver", Config{Type: TypeSQL, Driver: "oracle", DSN: "x"}, true},
		{"missing type", Config{}, true},
		{"unknown type", Config{Type: "nudb", Path: "/tmp/x"}, true},
		{"case insensitive", Config{Type: "Pebble", Path: "/tmp/x"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	configs := []Config{
		{Type: TypeMemory},
		{Type: TypePebble, Path: filepath.Join(dir, "pebble")},
		{Type: TypeBolt, Path: filepath.Join(dir, "ledger.bolt")},
		{Type: TypeLevelDB, Path: filepath.Join(dir, "leveldb")},
		{Type: TypeSQL, Driver: "sqlite", DSN: filepath.Join(dir, "ledger.sqlite")},
	}
	for _, cfg := range configs {
		t.Run(cfg.Type, func(t *testing.T) {
			db, err := Open(ctx, cfg)
			require.NoError(t, err)
			defer db.Close()

			require.NoError(t, db.Write(ctx, []byte("k"), []byte("v")))
			got, err := db.Read(ctx, []byte("k"))
			require.NoError(t, err)
			assert.Equal(t, []byte("v"), got)
		})
	}
}

func TestOpenWithCompression(t *testing.T) {
	ctx := context.Background()

	db, err := Open(ctx, Config{Type: TypeMemory, Compression: true})
	require.NoError(t, err)
	defer db.Close()
	require.IsType(t, &compression.DB{}, db)

	value := make([]byte, 4096)
	require.NoError(t, db.Write(ctx, []byte("k"), value))
	got, err := db.Read(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestOpenRejectsInvalidConfig(t *testing.T) {
	_, err := Open(context.Background(), Config{Type: TypePebble})
	assert.Error(t, err)
}
