package testing

import "github.com/LeJamon/goQortald/internal/core/tx"

// TxResult represents the outcome of submitting a transaction.
type TxResult struct {
	// Result is the validation outcome.
	Result tx.Result

	// Applied is true when the transaction was processed.
	Applied bool
}

func (r TxResult) String() string {
	return r.Result.String()
}
