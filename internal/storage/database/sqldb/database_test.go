package sqldb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/LeJamon/goQortald/internal/storage/database"
	"github.com/LeJamon/goQortald/internal/storage/database/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDB(t *testing.T) {
	storetest.Run(t, func(t *testing.T) database.DB {
		db, err := Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "ledger.sqlite"))
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		return db
	})
}

func TestRebind(t *testing.T) {
	q := "SELECT k, v FROM t WHERE k >= ? AND k < ?"
	assert.Equal(t, q, SQLite.rebind(q))
	assert.Equal(t, "SELECT k, v FROM t WHERE k >= $1 AND k < $2", Postgres.rebind(q))
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("postgres")
	require.NoError(t, err)
	assert.Equal(t, "BYTEA", d.BlobType)

	_, err = DialectFor("mysql")
	assert.Error(t, err)
}
