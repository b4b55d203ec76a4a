package handler

import (
	"bytes"
	"context"
	"unicode/utf8"

	"github.com/LeJamon/goQortald/internal/core/account"
	"github.com/LeJamon/goQortald/internal/core/chain"
	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/core/txstore"
	"github.com/LeJamon/goQortald/internal/crypto"
)

// Base provides the default lifecycle of creator-signed transactions: the
// creator pays the fee and the signature becomes its last reference.
// Embed it in handlers and override what differs.
type Base struct {
	Env *Env
	Tx  tx.Transaction
}

// NewBase creates a base handler for t.
func NewBase(env *Env, t tx.Transaction) Base {
	return Base{Env: env, Tx: t}
}

func (b Base) Transaction() tx.Transaction {
	return b.Tx
}

// Creator returns the account that signed the transaction.
func (b Base) Creator() *account.Account {
	return account.FromPublicKey(b.Env.Repo, b.Tx.Base().CreatorPublicKey)
}

// Limits returns the configured field limits.
func (b Base) Limits() chain.Limits {
	return b.Env.Config.Limits
}

// IsProcessable accepts by default.
func (b Base) IsProcessable(ctx context.Context) (tx.Result, error) {
	return tx.OK, nil
}

// HasValidReference compares the creator's last reference with the
// transaction's reference.
func (b Base) HasValidReference(ctx context.Context) (bool, error) {
	ref, err := b.Creator().LastReference(ctx)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ref, b.Tx.Base().Reference), nil
}

// ProcessReferencesAndFees charges the fee and moves the creator's last
// reference to the signature.
func (b Base) ProcessReferencesAndFees(ctx context.Context) error {
	base := b.Tx.Base()
	creator := b.Creator()
	if err := creator.Debit(ctx, chain.NativeAssetID, base.Fee); err != nil {
		return err
	}
	return creator.SetLastReference(ctx, base.Signature)
}

// OrphanReferencesAndFees refunds the fee and restores the creator's last
// reference.
func (b Base) OrphanReferencesAndFees(ctx context.Context) error {
	base := b.Tx.Base()
	creator := b.Creator()
	if err := creator.Credit(ctx, chain.NativeAssetID, base.Fee); err != nil {
		return err
	}
	return creator.SetLastReference(ctx, base.Reference)
}

// CheckFee requires a positive fee the creator can pay in native coin.
func (b Base) CheckFee(ctx context.Context) (tx.Result, error) {
	fee := b.Tx.Base().Fee
	if !fee.IsPositive() {
		return tx.NegativeFee, nil
	}
	balance, err := b.Creator().ConfirmedBalance(ctx, chain.NativeAssetID)
	if err != nil {
		return 0, err
	}
	if balance.Cmp(fee) < 0 {
		return tx.NoBalance, nil
	}
	return tx.OK, nil
}

// SaveState persists the ledger-maintained fields of the transaction.
func (b Base) SaveState(ctx context.Context) error {
	return txstore.SaveState(ctx, b.Env.Repo, b.Env.Codec, b.Tx)
}

// Load returns a stored transaction.
func (b Base) Load(ctx context.Context, signature []byte) (tx.Transaction, error) {
	return txstore.Load(ctx, b.Env.Repo, b.Env.Codec, signature)
}

// ValidLength reports whether s is between 1 and limit bytes of UTF-8.
func ValidLength(s string, limit int) bool {
	return len(s) >= 1 && len(s) <= limit && utf8.ValidString(s)
}

// ValidAddress reports whether address is a well-formed account address.
func ValidAddress(address string) bool {
	return crypto.IsValidAddress(address)
}

// IsNative reports whether assetID is the chain's own coin.
func IsNative(assetID int64) bool {
	return assetID == chain.NativeAssetID
}
