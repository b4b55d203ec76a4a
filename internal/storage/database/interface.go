package database

import (
	"bytes"
	"context"
)

// Reader is the read side shared by databases and transactions.
type Reader interface {
	// Read returns the value stored under key, or ErrKeyNotFound.
	Read(ctx context.Context, key []byte) ([]byte, error)

	// Iterator walks keys in [start, end) in ascending byte order. A nil end
	// means no upper bound.
	Iterator(ctx context.Context, start, end []byte) (Iterator, error)
}

// Writer is the write side shared by databases and transactions.
type Writer interface {
	Write(ctx context.Context, key []byte, value []byte) error
	Delete(ctx context.Context, key []byte) error
}

// DB defines the basic operations any database implementation must support
type DB interface {
	Reader
	Writer

	// Batch applies ops atomically.
	Batch(ctx context.Context, ops []BatchOperation) error

	// Begin opens a read-write transaction. Reads through the transaction
	// observe its own uncommitted writes.
	Begin(ctx context.Context) (Txn, error)

	Close() error
}

// Txn is an atomic unit of work. Exactly one of Commit or Discard must be
// called; both are no-ops afterwards.
type Txn interface {
	Reader
	Writer

	Commit(ctx context.Context) error
	Discard() error
}

// Iterator allows traversing over database entries
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Close() error
}

// BatchOperation represents a single operation in a batch
type BatchOperation struct {
	Type  BatchOpType
	Key   []byte
	Value []byte
}

type BatchOpType int

const (
	BatchPut BatchOpType = iota
	BatchDelete
)

// PrefixEnd returns the smallest key greater than every key starting with
// prefix, or nil if there is none.
func PrefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

// ApplyBatch runs ops through a transaction. Backends without a native batch
// primitive use it to implement DB.Batch.
func ApplyBatch(ctx context.Context, db DB, ops []BatchOperation) error {
	txn, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer txn.Discard()

	for _, op := range ops {
		switch op.Type {
		case BatchPut:
			err = txn.Write(ctx, op.Key, op.Value)
		case BatchDelete:
			err = txn.Delete(ctx, op.Key)
		default:
			err = ErrUnknownBatchOp
		}
		if err != nil {
			return err
		}
	}
	return txn.Commit(ctx)
}

// SliceIterator iterates over materialised key/value pairs. Backends whose
// native cursors cannot outlive a statement, and in-memory overlays, use it.
type SliceIterator struct {
	keys, values [][]byte
	pos          int
}

// NewSliceIterator returns an iterator over pairs already in key order.
func NewSliceIterator(keys, values [][]byte) *SliceIterator {
	return &SliceIterator{keys: keys, values: values, pos: -1}
}

func (it *SliceIterator) Next() bool {
	if it.pos+1 >= len(it.keys) {
		it.pos = len(it.keys)
		return false
	}
	it.pos++
	return true
}

func (it *SliceIterator) Key() []byte {
	if it.pos < 0 || it.pos >= len(it.keys) {
		return nil
	}
	return it.keys[it.pos]
}

func (it *SliceIterator) Value() []byte {
	if it.pos < 0 || it.pos >= len(it.values) {
		return nil
	}
	return it.values[it.pos]
}

func (it *SliceIterator) Error() error { return nil }

func (it *SliceIterator) Close() error { return nil }

// InRange reports whether key lies in [start, end).
func InRange(key, start, end []byte) bool {
	if start != nil && bytes.Compare(key, start) < 0 {
		return false
	}
	return end == nil || bytes.Compare(key, end) < 0
}
