package pebble

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/LeJamon/goQortald/internal/storage/database"
	"github.com/cockroachdb/pebble"
)

type DB struct {
	db *pebble.DB
}

func NewDB(db *pebble.DB) *DB {
	return &DB{db: db}
}

// Open opens (creating if needed) a pebble database at path.
func Open(path string) (*DB, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble database %s: %w", path, err)
	}
	return NewDB(db), nil
}

// pebbleReader is satisfied by both *pebble.DB and an indexed *pebble.Batch.
type pebbleReader interface {
	Get(key []byte) ([]byte, io.Closer, error)
	NewIter(o *pebble.IterOptions) (*pebble.Iterator, error)
}

func read(r pebbleReader, key []byte) ([]byte, error) {
	val, closer, err := r.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, database.ErrKeyNotFound
		}
		return nil, err
	}
	defer closer.Close()

	// Copy the value out
	return bytes.Clone(val), nil
}

func iterate(r pebbleReader, start, end []byte) (database.Iterator, error) {
	iter, err := r.NewIter(&pebble.IterOptions{
		LowerBound: start,
		UpperBound: end,
	})
	if err != nil {
		return nil, err
	}
	return &Iterator{iter: iter}, nil
}

func (p *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if p.db == nil {
		return nil, database.ErrDBClosed
	}
	return read(p.db, key)
}

func (p *DB) Write(ctx context.Context, key, value []byte) error {
	if p.db == nil {
		return database.ErrDBClosed
	}
	if len(key) == 0 {
		return database.ErrEmptyKey
	}
	return p.db.Set(key, value, pebble.Sync)
}

func (p *DB) Delete(ctx context.Context, key []byte) error {
	if p.db == nil {
		return database.ErrDBClosed
	}
	return p.db.Delete(key, pebble.Sync)
}

func (p *DB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	if p.db == nil {
		return database.ErrDBClosed
	}

	batch := p.db.NewBatch()
	defer batch.Close()

	for _, op := range ops {
		switch op.Type {
		case database.BatchPut:
			if err := batch.Set(op.Key, op.Value, nil); err != nil {
				return err
			}
		case database.BatchDelete:
			if err := batch.Delete(op.Key, nil); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %d", database.ErrUnknownBatchOp, op.Type)
		}
	}

	return batch.Commit(pebble.Sync)
}

func (p *DB) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	if p.db == nil {
		return nil, database.ErrDBClosed
	}
	return iterate(p.db, start, end)
}

// Begin returns an indexed batch so reads see the transaction's own writes.
func (p *DB) Begin(ctx context.Context) (database.Txn, error) {
	if p.db == nil {
		return nil, database.ErrDBClosed
	}
	return &Txn{batch: p.db.NewIndexedBatch()}, nil
}

func (p *DB) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

type Txn struct {
	batch *pebble.Batch
}

func (t *Txn) Read(ctx context.Context, key []byte) ([]byte, error) {
	if t.batch == nil {
		return nil, database.ErrTxnClosed
	}
	return read(t.batch, key)
}

func (t *Txn) Write(ctx context.Context, key, value []byte) error {
	if t.batch == nil {
		return database.ErrTxnClosed
	}
	if len(key) == 0 {
		return database.ErrEmptyKey
	}
	return t.batch.Set(key, value, nil)
}

func (t *Txn) Delete(ctx context.Context, key []byte) error {
	if t.batch == nil {
		return database.ErrTxnClosed
	}
	return t.batch.Delete(key, nil)
}

func (t *Txn) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	if t.batch == nil {
		return nil, database.ErrTxnClosed
	}
	return iterate(t.batch, start, end)
}

func (t *Txn) Commit(ctx context.Context) error {
	if t.batch == nil {
		return nil
	}
	batch := t.batch
	t.batch = nil
	defer batch.Close()
	return batch.Commit(pebble.Sync)
}

func (t *Txn) Discard() error {
	if t.batch == nil {
		return nil
	}
	err := t.batch.Close()
	t.batch = nil
	return err
}

type Iterator struct {
	iter    *pebble.Iterator
	started bool

	current struct {
		key, value []byte
	}
}

func (it *Iterator) Next() bool {
	if !it.started {
		it.started = true
		it.iter.First()
	} else {
		it.iter.Next()
	}

	if !it.iter.Valid() {
		it.current.key, it.current.value = nil, nil
		return false
	}

	it.current.key = bytes.Clone(it.iter.Key())
	it.current.value = bytes.Clone(it.iter.Value())
	return true
}

func (it *Iterator) Key() []byte {
	return it.current.key
}

func (it *Iterator) Value() []byte {
	return it.current.value
}

func (it *Iterator) Error() error {
	return it.iter.Error()
}

func (it *Iterator) Close() error {
	return it.iter.Close()
}
