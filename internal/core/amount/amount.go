package amount

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount is a fixed-point decimal with 8 fractional digits, stored as an
// integer count of the smallest unit. No floating point is used anywhere.
type Amount int64

// Scale is the number of units in one whole coin.
const Scale Amount = 100_000_000

// Decimals is the number of fractional digits carried by an Amount.
const Decimals = 8

// Zero is the zero amount.
const Zero Amount = 0

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrOverflow      = errors.New("amount overflow")
)

// New returns an amount from a raw unit count.
func New(units int64) Amount {
	return Amount(units)
}

// FromWhole returns an amount of n whole coins.
func FromWhole(n int64) Amount {
	return Amount(n) * Scale
}

// Parse parses a plain decimal string such as "12.5" or "-0.00000001".
// More than 8 fractional digits is an error rather than a rounding.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac, hasPoint := strings.Cut(s, ".")
	if whole == "" && (!hasPoint || frac == "") {
		return 0, ErrInvalidAmount
	}
	if len(frac) > Decimals {
		return 0, fmt.Errorf("%w: more than %d fractional digits", ErrInvalidAmount, Decimals)
	}

	var w int64
	if whole != "" {
		v, err := strconv.ParseUint(whole, 10, 63)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrInvalidAmount, err)
		}
		if v > uint64(math.MaxInt64/int64(Scale)) {
			return 0, ErrOverflow
		}
		w = int64(v)
	}

	var f int64
	if frac != "" {
		padded := frac + strings.Repeat("0", Decimals-len(frac))
		v, err := strconv.ParseUint(padded, 10, 63)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrInvalidAmount, err)
		}
		f = int64(v)
	}

	a := Amount(w)*Scale + Amount(f)
	if a < 0 {
		return 0, ErrOverflow
	}
	if negative {
		a = -a
	}
	return a, nil
}

// MustParse is Parse for constants and tests.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Units returns the raw unit count.
func (a Amount) Units() int64 {
	return int64(a)
}

// Add and Sub wrap on overflow. Ledger arithmetic uses CheckedAdd and
// CheckedSub.
func (a Amount) Add(other Amount) Amount {
	return a + other
}

func (a Amount) Sub(other Amount) Amount {
	return a - other
}

// CheckedAdd returns a + other, or ErrOverflow if the sum does not fit.
func (a Amount) CheckedAdd(other Amount) (Amount, error) {
	sum := a + other
	if (other > 0 && sum < a) || (other < 0 && sum > a) {
		return 0, ErrOverflow
	}
	return sum, nil
}

// CheckedSub returns a - other, or ErrOverflow if the difference does not fit.
func (a Amount) CheckedSub(other Amount) (Amount, error) {
	diff := a - other
	if (other > 0 && diff > a) || (other < 0 && diff < a) {
		return 0, ErrOverflow
	}
	return diff, nil
}

func (a Amount) Mul(factor int64) Amount {
	return a * Amount(factor)
}

// Cmp returns -1, 0 or +1.
func (a Amount) Cmp(other Amount) int {
	switch {
	case a < other:
		return -1
	case a > other:
		return 1
	}
	return 0
}

func (a Amount) IsPositive() bool {
	return a > 0
}

func (a Amount) IsNegative() bool {
	return a < 0
}

func (a Amount) IsZero() bool {
	return a == 0
}

// IsWhole reports whether the amount has no fractional part.
func (a Amount) IsWhole() bool {
	return a%Scale == 0
}

// String renders the amount with all 8 fractional digits, e.g. "1.50000000".
func (a Amount) String() string {
	sign := ""
	u := uint64(a)
	if a < 0 {
		sign = "-"
		u = uint64(-a)
	}
	return fmt.Sprintf("%s%d.%08d", sign, u/uint64(Scale), u%uint64(Scale))
}

// MarshalText renders the amount as a plain decimal string.
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses a plain decimal string.
func (a *Amount) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
