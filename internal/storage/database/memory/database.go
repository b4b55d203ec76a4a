// Package memory provides a map-backed database for tests and throwaway
// nodes. Nothing is persisted.
package memory

import (
	"bytes"
	"context"
	"slices"
	"sync"

	"github.com/LeJamon/goQortald/internal/storage/database"
)

type DB struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

func New() *DB {
	return &DB{data: make(map[string][]byte)}
}

func (m *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, database.ErrDBClosed
	}
	v, ok := m.data[string(key)]
	if !ok {
		return nil, database.ErrKeyNotFound
	}
	return bytes.Clone(v), nil
}

func (m *DB) Write(ctx context.Context, key, value []byte) error {
	if len(key) == 0 {
		return database.ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return database.ErrDBClosed
	}
	m.data[string(key)] = bytes.Clone(value)
	return nil
}

func (m *DB) Delete(ctx context.Context, key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return database.ErrDBClosed
	}
	delete(m.data, string(key))
	return nil
}

func (m *DB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	return database.ApplyBatch(ctx, m, ops)
}

func (m *DB) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, database.ErrDBClosed
	}
	return m.snapshot(start, end, nil), nil
}

// snapshot materialises [start, end) with overlay applied on top.
// Callers hold at least the read lock.
func (m *DB) snapshot(start, end []byte, overlay map[string]pending) *database.SliceIterator {
	merged := make(map[string][]byte)
	for k, v := range m.data {
		if database.InRange([]byte(k), start, end) {
			merged[k] = v
		}
	}
	for k, p := range overlay {
		if !database.InRange([]byte(k), start, end) {
			continue
		}
		if p.deleted {
			delete(merged, k)
		} else {
			merged[k] = p.value
		}
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	outKeys := make([][]byte, len(keys))
	outValues := make([][]byte, len(keys))
	for i, k := range keys {
		outKeys[i] = []byte(k)
		outValues[i] = bytes.Clone(merged[k])
	}
	return database.NewSliceIterator(outKeys, outValues)
}

func (m *DB) Begin(ctx context.Context) (database.Txn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, database.ErrDBClosed
	}
	return &txn{db: m, writes: make(map[string]pending)}, nil
}

func (m *DB) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.data = nil
	return nil
}

// Len returns the number of stored keys.
func (m *DB) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

type pending struct {
	value   []byte
	deleted bool
}

// txn buffers writes until Commit.
type txn struct {
	db     *DB
	writes map[string]pending
	done   bool
}

func (t *txn) Read(ctx context.Context, key []byte) ([]byte, error) {
	if t.done {
		return nil, database.ErrTxnClosed
	}
	if p, ok := t.writes[string(key)]; ok {
		if p.deleted {
			return nil, database.ErrKeyNotFound
		}
		return bytes.Clone(p.value), nil
	}
	return t.db.Read(ctx, key)
}

func (t *txn) Write(ctx context.Context, key, value []byte) error {
	if t.done {
		return database.ErrTxnClosed
	}
	if len(key) == 0 {
		return database.ErrEmptyKey
	}
	t.writes[string(key)] = pending{value: bytes.Clone(value)}
	return nil
}

func (t *txn) Delete(ctx context.Context, key []byte) error {
	if t.done {
		return database.ErrTxnClosed
	}
	t.writes[string(key)] = pending{deleted: true}
	return nil
}

func (t *txn) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	if t.done {
		return nil, database.ErrTxnClosed
	}
	t.db.mu.RLock()
	defer t.db.mu.RUnlock()
	if t.db.closed {
		return nil, database.ErrDBClosed
	}
	return t.db.snapshot(start, end, t.writes), nil
}

func (t *txn) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	if t.db.closed {
		return database.ErrDBClosed
	}
	for k, p := range t.writes {
		if p.deleted {
			delete(t.db.data, k)
		} else {
			t.db.data[k] = p.value
		}
	}
	t.done = true
	t.writes = nil
	return nil
}

func (t *txn) Discard() error {
	t.done = true
	t.writes = nil
	return nil
}
