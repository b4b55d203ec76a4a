package amount

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Amount
	}{
		{"0", 0},
		{"1", 100_000_000},
		{"1.5", 150_000_000},
		{"0.00000001", 1},
		{".5", 50_000_000},
		{"-2.25", -225_000_000},
		{"+3", 300_000_000},
		{"10000000000", 1_000_000_000_000_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{"", "-", ".", "1.000000001", "abc", "1.2.3", "99999999999999999999"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "1.50000000", MustParse("1.5").String())
	assert.Equal(t, "0.00000001", New(1).String())
	assert.Equal(t, "-0.10000000", MustParse("-0.1").String())
	assert.Equal(t, "0.00000000", Zero.String())
}

func TestArithmetic(t *testing.T) {
	a := MustParse("1.5")
	b := MustParse("0.25")

	assert.Equal(t, MustParse("1.75"), a.Add(b))
	assert.Equal(t, MustParse("1.25"), a.Sub(b))
	assert.Equal(t, MustParse("4.5"), a.Mul(3))
	assert.Equal(t, 1, a.Cmp(b))
	assert.Equal(t, -1, b.Cmp(a))
	assert.Equal(t, 0, a.Cmp(a))
}

func TestCheckedArithmetic(t *testing.T) {
	sum, err := FromWhole(2).CheckedAdd(New(5))
	require.NoError(t, err)
	assert.Equal(t, New(200_000_005), sum)

	diff, err := New(5).CheckedSub(FromWhole(1))
	require.NoError(t, err)
	assert.Equal(t, New(-99_999_995), diff)

	_, err = New(math.MaxInt64).CheckedAdd(New(1))
	assert.ErrorIs(t, err, ErrOverflow)
	_, err = New(math.MinInt64).CheckedAdd(New(-1))
	assert.ErrorIs(t, err, ErrOverflow)
	_, err = New(math.MinInt64).CheckedSub(New(1))
	assert.ErrorIs(t, err, ErrOverflow)
	_, err = New(math.MaxInt64).CheckedSub(New(-1))
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestIsWhole(t *testing.T) {
	assert.True(t, MustParse("1.0").IsWhole())
	assert.True(t, FromWhole(7).IsWhole())
	assert.False(t, MustParse("1.5").IsWhole())
	assert.False(t, New(1).IsWhole())
}

func TestTextRoundTrip(t *testing.T) {
	a := MustParse("123.45678901")
	text, err := a.MarshalText()
	require.NoError(t, err)

	var b Amount
	require.NoError(t, b.UnmarshalText(text))
	assert.Equal(t, a, b)
}
