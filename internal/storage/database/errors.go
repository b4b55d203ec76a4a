package database

import "errors"

var (
	// ErrDBClosed is returned when trying to operate on a closed database
	ErrDBClosed = errors.New("database is closed")

	// ErrKeyNotFound is returned when a key doesn't exist in the database
	ErrKeyNotFound = errors.New("key not found")

	// ErrTxnClosed is returned when using a committed or discarded transaction
	ErrTxnClosed = errors.New("transaction is closed")

	// ErrEmptyKey is returned when writing a zero-length key
	ErrEmptyKey = errors.New("empty key")

	// ErrUnknownBatchOp is returned for batch operations of unknown type
	ErrUnknownBatchOp = errors.New("unknown batch operation type")
)
