package leveldb

import (
	"path/filepath"
	"testing"

	"github.com/LeJamon/goQortald/internal/storage/database"
	"github.com/LeJamon/goQortald/internal/storage/database/storetest"
	"github.com/stretchr/testify/require"
)

func TestLevelDB(t *testing.T) {
	storetest.Run(t, func(t *testing.T) database.DB {
		db, err := Open(filepath.Join(t.TempDir(), "ledger"))
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		return db
	})
}
