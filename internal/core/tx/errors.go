package tx

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed matches every decoding failure via errors.Is.
	ErrMalformed = errors.New("malformed transaction")

	ErrUnsupportedType = errors.New("unsupported transaction type")
	ErrShortBuffer     = errors.New("byte data too short")
	ErrTrailingBytes   = errors.New("unexpected trailing bytes")
	ErrSizeExceeded    = errors.New("declared size exceeds maximum")
)

// MalformedError describes why a byte payload could not be decoded.
type MalformedError struct {
	Type  Type
	Field string
	Err   error
}

func (e *MalformedError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed %s transaction: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("malformed %s transaction: %s: %v", e.Type, e.Field, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// Is makes every MalformedError match ErrMalformed.
func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformed
}

// IsMalformed reports whether err came from decoding.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformed)
}
