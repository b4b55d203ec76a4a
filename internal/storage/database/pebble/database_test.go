package pebble

import (
	"path/filepath"
	"testing"

	"github.com/LeJamon/goQortald/internal/storage/database"
	"github.com/LeJamon/goQortald/internal/storage/database/storetest"
	"github.com/stretchr/testify/require"
)

func TestPebbleDB(t *testing.T) {
	storetest.Run(t, func(t *testing.T) database.DB {
		db, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		return db
	})
}
