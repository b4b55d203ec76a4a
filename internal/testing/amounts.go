package testing

import "github.com/LeJamon/goQortald/internal/core/amount"

// Coins returns n whole units of any asset.
// For example, Coins(100) returns 100.00000000.
func Coins(n int64) amount.Amount {
	return amount.FromWhole(n)
}

// Units returns an amount of raw units (1e-8 of a coin).
func Units(n int64) amount.Amount {
	return amount.New(n)
}

// Decimal parses a plain decimal string and panics on error.
func Decimal(s string) amount.Amount {
	return amount.MustParse(s)
}
