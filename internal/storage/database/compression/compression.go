// Package compression wraps a database so stored values are LZ4 compressed.
package compression

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/LeJamon/goQortald/internal/storage/database"
	"github.com/pierrec/lz4"
)

// Stored values start with a one-byte header.
const (
	headerRaw byte = 0
	headerLZ4 byte = 1
)

const (
	// hashTableSize is the lz4 block hash table length.
	hashTableSize = 1 << 16
	// maxRatio bounds how far an lz4 block can expand when decoded.
	maxRatio = 255
)

var ErrCorrupt = errors.New("corrupt compressed value")

// Compress encodes value as header | uvarint(len) | lz4 block, or as
// header | value when LZ4 does not shrink it.
func Compress(value []byte) ([]byte, error) {
	if len(value) == 0 {
		return []byte{headerRaw}, nil
	}

	out := make([]byte, 1+binary.MaxVarintLen64+lz4.CompressBlockBound(len(value)))
	out[0] = headerLZ4
	n := 1 + binary.PutUvarint(out[1:], uint64(len(value)))

	// A zeroed table keeps the output a function of value alone; a nil
	// table is taken from a pool that is not cleared between calls.
	size, err := lz4.CompressBlock(value, out[n:], make([]int, hashTableSize))
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	// CompressBlock reports 0 for incompressible input.
	if size == 0 || n+size >= 1+len(value) {
		raw := make([]byte, 1+len(value))
		raw[0] = headerRaw
		copy(raw[1:], value)
		return raw, nil
	}
	return out[:n+size], nil
}

// Decompress reverses Compress.
func Decompress(stored []byte) ([]byte, error) {
	if len(stored) == 0 {
		return nil, ErrCorrupt
	}
	switch stored[0] {
	case headerRaw:
		return append([]byte{}, stored[1:]...), nil
	case headerLZ4:
		length, n := binary.Uvarint(stored[1:])
		if n <= 0 {
			return nil, ErrCorrupt
		}
		block := stored[1+n:]
		if length == 0 || length > uint64(len(block))*maxRatio {
			return nil, fmt.Errorf("%w: declared length %d for %d stored bytes", ErrCorrupt, length, len(block))
		}
		out := make([]byte, length)
		size, err := lz4.UncompressBlock(stored[1+n:], out)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
		if uint64(size) != length {
			return nil, ErrCorrupt
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: header %d", ErrCorrupt, stored[0])
}

// DB compresses values on the way in and decompresses them on the way out.
// Keys are stored unchanged so ordering is preserved.
type DB struct {
	inner database.DB
}

func Wrap(inner database.DB) *DB {
	return &DB{inner: inner}
}

func read(ctx context.Context, r database.Reader, key []byte) ([]byte, error) {
	stored, err := r.Read(ctx, key)
	if err != nil {
		return nil, err
	}
	return Decompress(stored)
}

func write(ctx context.Context, w database.Writer, key, value []byte) error {
	stored, err := Compress(value)
	if err != nil {
		return err
	}
	return w.Write(ctx, key, stored)
}

func iterate(ctx context.Context, r database.Reader, start, end []byte) (database.Iterator, error) {
	it, err := r.Iterator(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return &Iterator{inner: it}, nil
}

func (c *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	return read(ctx, c.inner, key)
}

func (c *DB) Write(ctx context.Context, key, value []byte) error {
	return write(ctx, c.inner, key, value)
}

func (c *DB) Delete(ctx context.Context, key []byte) error {
	return c.inner.Delete(ctx, key)
}

func (c *DB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	compressed := make([]database.BatchOperation, len(ops))
	for i, op := range ops {
		compressed[i] = op
		if op.Type == database.BatchPut {
			v, err := Compress(op.Value)
			if err != nil {
				return err
			}
			compressed[i].Value = v
		}
	}
	return c.inner.Batch(ctx, compressed)
}

func (c *DB) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	return iterate(ctx, c.inner, start, end)
}

func (c *DB) Begin(ctx context.Context) (database.Txn, error) {
	txn, err := c.inner.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &Txn{inner: txn}, nil
}

func (c *DB) Close() error {
	return c.inner.Close()
}

type Txn struct {
	inner database.Txn
}

func (t *Txn) Read(ctx context.Context, key []byte) ([]byte, error) {
	return read(ctx, t.inner, key)
}

func (t *Txn) Write(ctx context.Context, key, value []byte) error {
	return write(ctx, t.inner, key, value)
}

func (t *Txn) Delete(ctx context.Context, key []byte) error {
	return t.inner.Delete(ctx, key)
}

func (t *Txn) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	return iterate(ctx, t.inner, start, end)
}

func (t *Txn) Commit(ctx context.Context) error {
	return t.inner.Commit(ctx)
}

func (t *Txn) Discard() error {
	return t.inner.Discard()
}

type Iterator struct {
	inner database.Iterator
	value []byte
	err   error
}

func (it *Iterator) Next() bool {
	if it.err != nil || !it.inner.Next() {
		it.value = nil
		return false
	}
	it.value, it.err = Decompress(it.inner.Value())
	return it.err == nil
}

func (it *Iterator) Key() []byte {
	return it.inner.Key()
}

func (it *Iterator) Value() []byte {
	return it.value
}

func (it *Iterator) Error() error {
	if it.err != nil {
		return it.err
	}
	return it.inner.Error()
}

func (it *Iterator) Close() error {
	return it.inner.Close()
}
