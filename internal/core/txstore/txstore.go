// Package txstore persists decoded transactions together with the fields the
// ledger maintains on them.
package txstore

import (
	"context"
	"fmt"

	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/repository"
)

// Load returns the stored transaction with its ledger state restored.
func Load(ctx context.Context, repo repository.Repository, codec *tx.Codec, signature []byte) (tx.Transaction, error) {
	data, err := repo.Transactions().FromSignature(ctx, signature)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	return decode(codec, data)
}

// LoadAs is Load for callers that know the kind they expect.
func LoadAs[T tx.Transaction](ctx context.Context, repo repository.Repository, codec *tx.Codec, signature []byte) (T, error) {
	var zero T
	t, err := Load(ctx, repo, codec, signature)
	if err != nil {
		return zero, err
	}
	typed, ok := t.(T)
	if !ok {
		return zero, fmt.Errorf("%w: stored %s is not %T", tx.ErrWrongType, t.TxType(), zero)
	}
	return typed, nil
}

func decode(codec *tx.Codec, data *repository.TransactionData) (tx.Transaction, error) {
	t, err := codec.Decode(data.Raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored transaction: %w", err)
	}
	if err := tx.DecodeLedgerState(t, data.State); err != nil {
		return nil, err
	}
	return t, nil
}

// Save stores t as confirmed at blockHeight.
func Save(ctx context.Context, repo repository.Repository, codec *tx.Codec, t tx.Transaction, blockHeight int) error {
	raw, err := codec.Encode(t)
	if err != nil {
		return fmt.Errorf("failed to encode transaction: %w", err)
	}
	state, err := tx.EncodeLedgerState(t)
	if err != nil {
		return err
	}
	return repo.Transactions().Save(ctx, &repository.TransactionData{
		Signature:   t.Base().Signature,
		Type:        t.TxType(),
		Raw:         raw,
		State:       state,
		BlockHeight: blockHeight,
	})
}

// SaveState rewrites the ledger state of an already stored t. A transaction
// not stored yet is saved with no block height.
func SaveState(ctx context.Context, repo repository.Repository, codec *tx.Codec, t tx.Transaction) error {
	height := 0
	existing, err := repo.Transactions().FromSignature(ctx, t.Base().Signature)
	switch {
	case err == nil:
		height = existing.BlockHeight
	case !repository.IsNotFound(err):
		return fmt.Errorf("failed to load transaction: %w", err)
	}
	return Save(ctx, repo, codec, t, height)
}
