package leveldb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/LeJamon/goQortald/internal/storage/database"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

type DB struct {
	db *leveldb.DB
}

func NewDB(db *leveldb.DB) *DB {
	return &DB{db: db}
}

// Open opens (creating if needed) a leveldb directory at path.
func Open(path string) (*DB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb database %s: %w", path, err)
	}
	return NewDB(db), nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, leveldb.ErrNotFound):
		return database.ErrKeyNotFound
	case errors.Is(err, leveldb.ErrClosed):
		return database.ErrDBClosed
	}
	return err
}

func keyRange(start, end []byte) *ldb_util.Range {
	if start == nil && end == nil {
		return nil
	}
	return &ldb_util.Range{Start: start, Limit: end}
}

func (l *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if l.db == nil {
		return nil, database.ErrDBClosed
	}
	val, err := l.db.Get(key, nil)
	if err != nil {
		return nil, translate(err)
	}
	return val, nil
}

func (l *DB) Write(ctx context.Context, key, value []byte) error {
	if l.db == nil {
		return database.ErrDBClosed
	}
	if len(key) == 0 {
		return database.ErrEmptyKey
	}
	return translate(l.db.Put(key, value, nil))
}

func (l *DB) Delete(ctx context.Context, key []byte) error {
	if l.db == nil {
		return database.ErrDBClosed
	}
	return translate(l.db.Delete(key, nil))
}

func (l *DB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	if l.db == nil {
		return database.ErrDBClosed
	}
	batch := new(leveldb.Batch)
	for _, op := range ops {
		switch op.Type {
		case database.BatchPut:
			batch.Put(op.Key, op.Value)
		case database.BatchDelete:
			batch.Delete(op.Key)
		default:
			return fmt.Errorf("%w: %d", database.ErrUnknownBatchOp, op.Type)
		}
	}
	return translate(l.db.Write(batch, nil))
}

func (l *DB) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	if l.db == nil {
		return nil, database.ErrDBClosed
	}
	return &Iterator{iter: l.db.NewIterator(keyRange(start, end), nil)}, nil
}

// Begin opens a leveldb transaction. Writes to the database outside the
// transaction block until it is committed or discarded.
func (l *DB) Begin(ctx context.Context) (database.Txn, error) {
	if l.db == nil {
		return nil, database.ErrDBClosed
	}
	tr, err := l.db.OpenTransaction()
	if err != nil {
		return nil, translate(err)
	}
	return &Txn{tr: tr}, nil
}

func (l *DB) Close() error {
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

type Txn struct {
	tr *leveldb.Transaction
}

func (t *Txn) Read(ctx context.Context, key []byte) ([]byte, error) {
	if t.tr == nil {
		return nil, database.ErrTxnClosed
	}
	val, err := t.tr.Get(key, nil)
	if err != nil {
		return nil, translate(err)
	}
	return val, nil
}

func (t *Txn) Write(ctx context.Context, key, value []byte) error {
	if t.tr == nil {
		return database.ErrTxnClosed
	}
	if len(key) == 0 {
		return database.ErrEmptyKey
	}
	return translate(t.tr.Put(key, value, nil))
}

func (t *Txn) Delete(ctx context.Context, key []byte) error {
	if t.tr == nil {
		return database.ErrTxnClosed
	}
	return translate(t.tr.Delete(key, nil))
}

func (t *Txn) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	if t.tr == nil {
		return nil, database.ErrTxnClosed
	}
	return &Iterator{iter: t.tr.NewIterator(keyRange(start, end), nil)}, nil
}

func (t *Txn) Commit(ctx context.Context) error {
	if t.tr == nil {
		return nil
	}
	tr := t.tr
	t.tr = nil
	return translate(tr.Commit())
}

func (t *Txn) Discard() error {
	if t.tr == nil {
		return nil
	}
	t.tr.Discard()
	t.tr = nil
	return nil
}

// Iterator copies keys and values; leveldb reuses its buffers between steps.
type Iterator struct {
	iter iterator.Iterator
}

func (it *Iterator) Next() bool {
	return it.iter.Next()
}

func (it *Iterator) Key() []byte {
	return bytes.Clone(it.iter.Key())
}

func (it *Iterator) Value() []byte {
	return bytes.Clone(it.iter.Value())
}

func (it *Iterator) Error() error {
	return it.iter.Error()
}

func (it *Iterator) Close() error {
	it.iter.Release()
	return nil
}
