package bbolt

import (
	"bytes"
	"context"
	"fmt"

	"github.com/LeJamon/goQortald/internal/storage/database"
	"go.etcd.io/bbolt"
)

// DefaultBucket holds every key when no bucket name is given.
var DefaultBucket = []byte("ledger")

type DB struct {
	db     *bbolt.DB
	bucket []byte
}

func NewDB(db *bbolt.DB, bucket []byte) *DB {
	return &DB{
		db:     db,
		bucket: bucket,
	}
}

// Open opens (creating if needed) a bolt file at path with a single bucket.
func Open(path string) (*DB, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt database %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(DefaultBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket %s: %w", DefaultBucket, err)
	}
	return NewDB(db, DefaultBucket), nil
}

func (b *DB) bucketOf(tx *bbolt.Tx) (*bbolt.Bucket, error) {
	bucket := tx.Bucket(b.bucket)
	if bucket == nil {
		return nil, fmt.Errorf("bucket %s not found", string(b.bucket))
	}
	return bucket, nil
}

func (b *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if b.db == nil {
		return nil, database.ErrDBClosed
	}

	var value []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket, err := b.bucketOf(tx)
		if err != nil {
			return err
		}
		value, err = get(bucket, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// get copies the value out since bbolt's slice is only valid during the
// transaction.
func get(bucket *bbolt.Bucket, key []byte) ([]byte, error) {
	value := bucket.Get(key)
	if value == nil {
		return nil, database.ErrKeyNotFound
	}
	return bytes.Clone(value), nil
}

func (b *DB) Write(ctx context.Context, key []byte, value []byte) error {
	if b.db == nil {
		return database.ErrDBClosed
	}
	if len(key) == 0 {
		return database.ErrEmptyKey
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := b.bucketOf(tx)
		if err != nil {
			return err
		}
		return bucket.Put(key, nonNil(value))
	})
}

func (b *DB) Delete(ctx context.Context, key []byte) error {
	if b.db == nil {
		return database.ErrDBClosed
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := b.bucketOf(tx)
		if err != nil {
			return err
		}
		return bucket.Delete(key)
	})
}

func (b *DB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	if b.db == nil {
		return database.ErrDBClosed
	}

	return b.db.Batch(func(tx *bbolt.Tx) error {
		bucket, err := b.bucketOf(tx)
		if err != nil {
			return err
		}

		for _, op := range ops {
			var err error
			switch op.Type {
			case database.BatchPut:
				err = bucket.Put(op.Key, nonNil(op.Value))
			case database.BatchDelete:
				err = bucket.Delete(op.Key)
			default:
				return fmt.Errorf("%w: %d", database.ErrUnknownBatchOp, op.Type)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *DB) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	if b.db == nil {
		return nil, database.ErrDBClosed
	}

	tx, err := b.db.Begin(false) // Read-only transaction
	if err != nil {
		return nil, err
	}

	bucket, err := b.bucketOf(tx)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	return &Iterator{
		tx:     tx,
		cursor: bucket.Cursor(),
		start:  start,
		end:    end,
	}, nil
}

// Begin starts a writable bolt transaction. Bolt allows one writer at a
// time; a second Begin blocks until the first commits or discards.
func (b *DB) Begin(ctx context.Context) (database.Txn, error) {
	if b.db == nil {
		return nil, database.ErrDBClosed
	}
	tx, err := b.db.Begin(true)
	if err != nil {
		return nil, err
	}
	bucket, err := b.bucketOf(tx)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	return &Txn{tx: tx, bucket: bucket}, nil
}

func (b *DB) Close() error {
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}

// bbolt stores a nil value as a bucket marker; empty values are written as a
// zero-length slice instead.
func nonNil(v []byte) []byte {
	if v == nil {
		return []byte{}
	}
	return v
}

type Txn struct {
	tx     *bbolt.Tx
	bucket *bbolt.Bucket
}

func (t *Txn) Read(ctx context.Context, key []byte) ([]byte, error) {
	if t.tx == nil {
		return nil, database.ErrTxnClosed
	}
	return get(t.bucket, key)
}

func (t *Txn) Write(ctx context.Context, key, value []byte) error {
	if t.tx == nil {
		return database.ErrTxnClosed
	}
	if len(key) == 0 {
		return database.ErrEmptyKey
	}
	return t.bucket.Put(key, nonNil(value))
}

func (t *Txn) Delete(ctx context.Context, key []byte) error {
	if t.tx == nil {
		return database.ErrTxnClosed
	}
	return t.bucket.Delete(key)
}

// Iterator materialises the range: a bolt cursor is invalidated by writes
// made through the same transaction.
func (t *Txn) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	if t.tx == nil {
		return nil, database.ErrTxnClosed
	}
	var keys, values [][]byte
	c := t.bucket.Cursor()
	var k, v []byte
	if start == nil {
		k, v = c.First()
	} else {
		k, v = c.Seek(start)
	}
	for ; k != nil && database.InRange(k, start, end); k, v = c.Next() {
		keys = append(keys, bytes.Clone(k))
		values = append(values, bytes.Clone(v))
	}
	return database.NewSliceIterator(keys, values), nil
}

func (t *Txn) Commit(ctx context.Context) error {
	if t.tx == nil {
		return nil
	}
	tx := t.tx
	t.tx, t.bucket = nil, nil
	return tx.Commit()
}

func (t *Txn) Discard() error {
	if t.tx == nil {
		return nil
	}
	tx := t.tx
	t.tx, t.bucket = nil, nil
	return tx.Rollback()
}

type Iterator struct {
	tx      *bbolt.Tx
	cursor  *bbolt.Cursor
	current struct {
		key, value []byte
	}
	start, end []byte
	started    bool
}

func (it *Iterator) Next() bool {
	var k, v []byte
	if !it.started {
		it.started = true
		if it.start == nil {
			k, v = it.cursor.First()
		} else {
			k, v = it.cursor.Seek(it.start)
		}
	} else {
		k, v = it.cursor.Next()
	}

	if k == nil || !database.InRange(k, it.start, it.end) {
		it.current.key = nil
		it.current.value = nil
		return false
	}

	it.current.key = bytes.Clone(k)
	it.current.value = bytes.Clone(v)
	return true
}

func (it *Iterator) Key() []byte {
	return it.current.key
}

func (it *Iterator) Value() []byte {
	return it.current.value
}

func (it *Iterator) Error() error {
	return nil
}

func (it *Iterator) Close() error {
	return it.tx.Rollback()
}
