// Package account is the ledger view of a single address.
package account

import (
	"context"
	"fmt"

	"github.com/LeJamon/goQortald/internal/core/amount"
	"github.com/LeJamon/goQortald/internal/crypto"
	"github.com/LeJamon/goQortald/internal/repository"
)

// Account reads and mutates the balances and last reference of one address
// inside a repository unit of work.
type Account struct {
	repo    repository.Repository
	address string
}

// New returns the account at address.
func New(repo repository.Repository, address string) *Account {
	return &Account{repo: repo, address: address}
}

// FromPublicKey returns the account owned by publicKey.
func FromPublicKey(repo repository.Repository, publicKey []byte) *Account {
	return New(repo, crypto.PublicKeyToAddress(publicKey))
}

func (a *Account) Address() string {
	return a.address
}

// ConfirmedBalance returns the balance of assetID, zero if never credited.
func (a *Account) ConfirmedBalance(ctx context.Context, assetID int64) (amount.Amount, error) {
	balance, err := a.repo.Accounts().GetBalance(ctx, a.address, assetID)
	if err != nil {
		return amount.Zero, fmt.Errorf("failed to load balance of %s: %w", a.address, err)
	}
	return balance, nil
}

func (a *Account) SetConfirmedBalance(ctx context.Context, assetID int64, balance amount.Amount) error {
	if err := a.repo.Accounts().SetBalance(ctx, a.address, assetID, balance); err != nil {
		return fmt.Errorf("failed to store balance of %s: %w", a.address, err)
	}
	return nil
}

// Credit adds delta (which may be negative) to the balance of assetID.
func (a *Account) Credit(ctx context.Context, assetID int64, delta amount.Amount) error {
	balance, err := a.ConfirmedBalance(ctx, assetID)
	if err != nil {
		return err
	}
	updated, err := balance.CheckedAdd(delta)
	if err != nil {
		return fmt.Errorf("failed to credit %s to %s: %w", delta, a.address, err)
	}
	return a.SetConfirmedBalance(ctx, assetID, updated)
}

// Debit subtracts delta from the balance of assetID. Validation guarantees
// the balance suffices.
func (a *Account) Debit(ctx context.Context, assetID int64, delta amount.Amount) error {
	balance, err := a.ConfirmedBalance(ctx, assetID)
	if err != nil {
		return err
	}
	updated, err := balance.CheckedSub(delta)
	if err != nil {
		return fmt.Errorf("failed to debit %s from %s: %w", delta, a.address, err)
	}
	return a.SetConfirmedBalance(ctx, assetID, updated)
}

// LastReference returns the signature of the account's last transaction, or
// nil if it has none.
func (a *Account) LastReference(ctx context.Context) ([]byte, error) {
	ref, err := a.repo.Accounts().GetLastReference(ctx, a.address)
	if err != nil {
		return nil, fmt.Errorf("failed to load last reference of %s: %w", a.address, err)
	}
	return ref, nil
}

// SetLastReference stores reference; nil clears it.
func (a *Account) SetLastReference(ctx context.Context, reference []byte) error {
	if err := a.repo.Accounts().SetLastReference(ctx, a.address, reference); err != nil {
		return fmt.Errorf("failed to store last reference of %s: %w", a.address, err)
	}
	return nil
}
