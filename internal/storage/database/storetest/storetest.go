// Package storetest holds the behaviour every database backend must share.
package storetest

import (
	"context"
	"testing"

	"github.com/LeJamon/goQortald/internal/storage/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises db against the database contract. open must return a fresh,
// empty database for each call.
func Run(t *testing.T, open func(t *testing.T) database.DB) {
	t.Run("ReadWriteDelete", func(t *testing.T) { testReadWriteDelete(t, open(t)) })
	t.Run("Batch", func(t *testing.T) { testBatch(t, open(t)) })
	t.Run("IteratorBounds", func(t *testing.T) { testIteratorBounds(t, open(t)) })
	t.Run("TxnCommit", func(t *testing.T) { testTxnCommit(t, open(t)) })
	t.Run("TxnDiscard", func(t *testing.T) { testTxnDiscard(t, open(t)) })
	t.Run("TxnIteratorSeesOwnWrites", func(t *testing.T) { testTxnIterator(t, open(t)) })
}

func collect(t *testing.T, it database.Iterator) (keys, values []string) {
	t.Helper()
	defer it.Close()
	for it.Next() {
		keys = append(keys, string(it.Key()))
		values = append(values, string(it.Value()))
	}
	require.NoError(t, it.Error())
	return keys, values
}

func testReadWriteDelete(t *testing.T, db database.DB) {
	ctx := context.Background()

	_, err := db.Read(ctx, []byte("missing"))
	assert.ErrorIs(t, err, database.ErrKeyNotFound)

	require.NoError(t, db.Write(ctx, []byte("k1"), []byte("v1")))
	got, err := db.Read(ctx, []byte("k1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, db.Write(ctx, []byte("k1"), []byte("v2")))
	got, err = db.Read(ctx, []byte("k1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, db.Delete(ctx, []byte("k1")))
	_, err = db.Read(ctx, []byte("k1"))
	assert.ErrorIs(t, err, database.ErrKeyNotFound)

	// Deleting an absent key is not an error.
	require.NoError(t, db.Delete(ctx, []byte("k1")))

	assert.ErrorIs(t, db.Write(ctx, nil, []byte("v")), database.ErrEmptyKey)
}

func testBatch(t *testing.T, db database.DB) {
	ctx := context.Background()
	require.NoError(t, db.Write(ctx, []byte("gone"), []byte("x")))

	err := db.Batch(ctx, []database.BatchOperation{
		{Type: database.BatchPut, Key: []byte("a"), Value: []byte("1")},
		{Type: database.BatchPut, Key: []byte("b"), Value: []byte("2")},
		{Type: database.BatchDelete, Key: []byte("gone")},
	})
	require.NoError(t, err)

	it, err := db.Iterator(ctx, nil, nil)
	require.NoError(t, err)
	keys, values := collect(t, it)
	assert.Equal(t, []string{"a", "b"}, keys)
	assert.Equal(t, []string{"1", "2"}, values)
}

func testIteratorBounds(t *testing.T, db database.DB) {
	ctx := context.Background()
	for _, k := range []string{"p/a", "p/b", "p/c", "q/a", "o/z"} {
		require.NoError(t, db.Write(ctx, []byte(k), []byte("v:"+k)))
	}

	it, err := db.Iterator(ctx, []byte("p/"), database.PrefixEnd([]byte("p/")))
	require.NoError(t, err)
	keys, values := collect(t, it)
	assert.Equal(t, []string{"p/a", "p/b", "p/c"}, keys)
	assert.Equal(t, []string{"v:p/a", "v:p/b", "v:p/c"}, values)

	// End is exclusive.
	it, err = db.Iterator(ctx, []byte("p/a"), []byte("p/c"))
	require.NoError(t, err)
	keys, _ = collect(t, it)
	assert.Equal(t, []string{"p/a", "p/b"}, keys)

	it, err = db.Iterator(ctx, []byte("p/b"), nil)
	require.NoError(t, err)
	keys, _ = collect(t, it)
	assert.Equal(t, []string{"p/b", "p/c", "q/a"}, keys)
}

func testTxnCommit(t *testing.T, db database.DB) {
	ctx := context.Background()
	require.NoError(t, db.Write(ctx, []byte("old"), []byte("1")))

	txn, err := db.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, txn.Write(ctx, []byte("new"), []byte("2")))
	require.NoError(t, txn.Delete(ctx, []byte("old")))

	got, err := txn.Read(ctx, []byte("new"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
	_, err = txn.Read(ctx, []byte("old"))
	assert.ErrorIs(t, err, database.ErrKeyNotFound)

	require.NoError(t, txn.Commit(ctx))
	require.NoError(t, txn.Discard())

	got, err = db.Read(ctx, []byte("new"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
	_, err = db.Read(ctx, []byte("old"))
	assert.ErrorIs(t, err, database.ErrKeyNotFound)
}

func testTxnDiscard(t *testing.T, db database.DB) {
	ctx := context.Background()
	require.NoError(t, db.Write(ctx, []byte("keep"), []byte("1")))

	txn, err := db.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, txn.Write(ctx, []byte("drop"), []byte("2")))
	require.NoError(t, txn.Delete(ctx, []byte("keep")))
	require.NoError(t, txn.Discard())

	_, err = db.Read(ctx, []byte("drop"))
	assert.ErrorIs(t, err, database.ErrKeyNotFound)
	got, err := db.Read(ctx, []byte("keep"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)

	_, err = txn.Read(ctx, []byte("keep"))
	assert.Error(t, err)
}

func testTxnIterator(t *testing.T, db database.DB) {
	ctx := context.Background()
	require.NoError(t, db.Write(ctx, []byte("g/1"), []byte("a")))
	require.NoError(t, db.Write(ctx, []byte("g/2"), []byte("b")))

	txn, err := db.Begin(ctx)
	require.NoError(t, err)
	defer txn.Discard()

	require.NoError(t, txn.Delete(ctx, []byte("g/1")))
	require.NoError(t, txn.Write(ctx, []byte("g/3"), []byte("c")))

	it, err := txn.Iterator(ctx, []byte("g/"), database.PrefixEnd([]byte("g/")))
	require.NoError(t, err)
	keys, values := collect(t, it)
	assert.Equal(t, []string{"g/2", "g/3"}, keys)
	assert.Equal(t, []string{"b", "c"}, values)
}
