package tx

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/LeJamon/goQortald/internal/core/amount"
	"github.com/LeJamon/goQortald/internal/crypto"
)

// writer accumulates big-endian fields.
type writer struct {
	buf bytes.Buffer
}

func (w *writer) putInt32(v int32) {
	var b [IntLength]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	w.buf.Write(b[:])
}

func (w *writer) putInt64(v int64) {
	var b [LongLength]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	w.buf.Write(b[:])
}

func (w *writer) putAmount(a amount.Amount) {
	w.putInt64(a.Units())
}

func (w *writer) putBool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

func (w *writer) putByte(b byte) {
	w.buf.WriteByte(b)
}

func (w *writer) putFixed(field string, b []byte, length int) error {
	if len(b) != length {
		return fmt.Errorf("%s must be %d bytes, got %d", field, length, len(b))
	}
	w.buf.Write(b)
	return nil
}

func (w *writer) putAddress(field, address string) error {
	raw, err := crypto.AddressToBytes(address)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	w.buf.Write(raw)
	return nil
}

func (w *writer) putSizedBytes(b []byte) {
	w.putInt32(int32(len(b)))
	w.buf.Write(b)
}

func (w *writer) putSizedString(s string) {
	w.putSizedBytes([]byte(s))
}

func (w *writer) bytes() []byte {
	return w.buf.Bytes()
}

// reader consumes big-endian fields. Every failure is reported as a
// MalformedError naming the field being read.
type reader struct {
	data []byte
	pos  int
	typ  Type
}

func (r *reader) fail(field string, err error) error {
	return &MalformedError{Type: r.typ, Field: field, Err: err}
}

func (r *reader) remaining() int {
	return len(r.data) - r.pos
}

func (r *reader) take(field string, n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, r.fail(field, ErrShortBuffer)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) getInt32(field string) (int32, error) {
	b, err := r.take(field, IntLength)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (r *reader) getInt64(field string) (int64, error) {
	b, err := r.take(field, LongLength)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

func (r *reader) getAmount(field string) (amount.Amount, error) {
	v, err := r.getInt64(field)
	return amount.New(v), err
}

func (r *reader) getBool(field string) (bool, error) {
	b, err := r.take(field, BooleanLength)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

func (r *reader) getByte(field string) (byte, error) {
	b, err := r.take(field, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// getFixed returns a copy so records never alias the input buffer.
func (r *reader) getFixed(field string, n int) ([]byte, error) {
	b, err := r.take(field, n)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

func (r *reader) getAddress(field string) (string, error) {
	b, err := r.take(field, AddressLength)
	if err != nil {
		return "", err
	}
	address, err := crypto.AddressFromBytes(b)
	if err != nil {
		return "", r.fail(field, err)
	}
	return address, nil
}

func (r *reader) getSizedBytes(field string, maxSize int) ([]byte, error) {
	size, err := r.getInt32(field)
	if err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, r.fail(field, fmt.Errorf("negative size %d", size))
	}
	if int(size) > maxSize {
		return nil, r.fail(field, fmt.Errorf("%w: %d > %d", ErrSizeExceeded, size, maxSize))
	}
	return r.getFixed(field, int(size))
}

func (r *reader) getSizedString(field string, maxSize int) (string, error) {
	b, err := r.getSizedBytes(field, maxSize)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", r.fail(field, fmt.Errorf("invalid UTF-8"))
	}
	return string(b), nil
}

// sizedLength is the encoded length of a length-prefixed string or byte slice.
func sizedLength[T string | []byte](v T) int {
	return IntLength + len(v)
}
