package repository

import (
	"errors"
	"fmt"
)

// ErrorKind categorises repository failures.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindConnection
	KindTransaction
	KindQuery
	KindEncoding
	KindClosed
)

var kindNames = map[ErrorKind]string{
	KindUnknown:     "unknown",
	KindNotFound:    "not found",
	KindConnection:  "connection",
	KindTransaction: "transaction",
	KindQuery:       "query",
	KindEncoding:    "encoding",
	KindClosed:      "closed",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrNotFound    = errors.New("record not found")
	ErrConnection  = errors.New("repository connection failed")
	ErrTransaction = errors.New("repository transaction failed")
	ErrQuery       = errors.New("repository query failed")
	ErrEncoding    = errors.New("repository record encoding failed")
	ErrClosed      = errors.New("repository is closed")
)

var kindSentinels = map[error]ErrorKind{
	ErrNotFound:    KindNotFound,
	ErrConnection:  KindConnection,
	ErrTransaction: KindTransaction,
	ErrQuery:       KindQuery,
	ErrEncoding:    KindEncoding,
	ErrClosed:      KindClosed,
}

// Error is a storage failure surfaced by a repository. It aborts the
// enclosing unit of work.
type Error struct {
	Kind      ErrorKind
	Operation string
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s error (caused by: %v)", e.Operation, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s: %s error", e.Operation, e.Kind)
}

// Unwrap returns the underlying cause error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel of the same kind.
func (e *Error) Is(target error) bool {
	if kind, ok := kindSentinels[target]; ok {
		return e.Kind == kind
	}
	if other, ok := target.(*Error); ok {
		return e.Kind == other.Kind && e.Operation == other.Operation
	}
	return false
}

// NewError creates a new Error
func NewError(kind ErrorKind, operation string, cause error) *Error {
	return &Error{Kind: kind, Operation: operation, Cause: cause}
}

func NewQueryError(operation string, cause error) *Error {
	return NewError(KindQuery, operation, cause)
}

func NewEncodingError(operation string, cause error) *Error {
	return NewError(KindEncoding, operation, cause)
}

func NewTransactionError(operation string, cause error) *Error {
	return NewError(KindTransaction, operation, cause)
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRepositoryError reports whether err came from the storage layer.
func IsRepositoryError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
