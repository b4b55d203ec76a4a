package block

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goQortald/internal/core/tx"
)

var (
	ErrHeightMismatch     = errors.New("block does not extend the chain tip")
	ErrEmptyChain         = errors.New("chain has no blocks")
	ErrOrphanGenesis      = errors.New("genesis block cannot be orphaned")
	ErrAlreadyInitialized = errors.New("chain already has a genesis block")
)

// ValidationError rejects a block because of the transaction at Index.
type ValidationError struct {
	Index  int
	Result tx.Result
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("transaction %d is invalid: %s", e.Index, e.Result)
}

// AsValidationError returns the ValidationError in err's chain, if any.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
