// Package payment implements the value-transfer transactions: GENESIS,
// PAYMENT, TRANSFER_ASSET, MESSAGE and AT.
package payment

import (
	"bytes"
	"context"

	"github.com/LeJamon/goQortald/internal/core/account"
	"github.com/LeJamon/goQortald/internal/core/amount"
	"github.com/LeJamon/goQortald/internal/core/chain"
	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/core/tx/handler"
	"github.com/LeJamon/goQortald/internal/repository"
)

// Transfer is a single movement of an asset to a recipient.
type Transfer struct {
	Recipient string
	AssetID   int64
	Amount    amount.Amount
}

// Helper validates and applies transfers on behalf of payment-bearing
// transactions. The sender pays the fee in native coin.
type Helper struct {
	repo repository.Repository
}

func NewHelper(repo repository.Repository) *Helper {
	return &Helper{repo: repo}
}

// IsValid checks fee, recipients, assets and the sender's balances. The fee
// counts against the native running total.
func (h *Helper) IsValid(ctx context.Context, sender *account.Account, transfers []Transfer, fee amount.Amount, zeroAmountValid bool) (tx.Result, error) {
	if !fee.IsPositive() {
		return tx.NegativeFee, nil
	}
	nativeBalance, err := sender.ConfirmedBalance(ctx, chain.NativeAssetID)
	if err != nil {
		return 0, err
	}
	if nativeBalance.Cmp(fee) < 0 {
		return tx.NoBalance, nil
	}

	totals := map[int64]amount.Amount{chain.NativeAssetID: fee}
	for _, t := range transfers {
		if t.Amount.IsNegative() {
			return tx.NegativeAmount, nil
		}
		if t.Amount.IsZero() && !zeroAmountValid {
			return tx.NegativeAmount, nil
		}
		if !handler.ValidAddress(t.Recipient) {
			return tx.InvalidAddress, nil
		}

		asset, err := h.repo.Assets().FromAssetID(ctx, t.AssetID)
		if err != nil {
			return 0, err
		}
		if asset == nil {
			return tx.AssetDoesNotExist, nil
		}
		if !asset.IsDivisible && !t.Amount.IsWhole() {
			return tx.InvalidAmount, nil
		}

		total, err := totals[t.AssetID].CheckedAdd(t.Amount)
		if err != nil {
			// No balance can cover a total beyond the amount range.
			return tx.NoBalance, nil
		}
		totals[t.AssetID] = total
		balance, err := sender.ConfirmedBalance(ctx, t.AssetID)
		if err != nil {
			return 0, err
		}
		if balance.Cmp(totals[t.AssetID]) < 0 {
			return tx.NoBalance, nil
		}
	}
	return tx.OK, nil
}

// IsProcessable repeats IsValid against the state at processing time.
func (h *Helper) IsProcessable(ctx context.Context, sender *account.Account, transfers []Transfer, fee amount.Amount, zeroAmountValid bool) (tx.Result, error) {
	return h.IsValid(ctx, sender, transfers, fee, zeroAmountValid)
}

// Process moves every transfer from sender to its recipient.
func (h *Helper) Process(ctx context.Context, sender *account.Account, transfers []Transfer) error {
	for _, t := range transfers {
		if err := sender.Debit(ctx, t.AssetID, t.Amount); err != nil {
			return err
		}
		if err := account.New(h.repo, t.Recipient).Credit(ctx, t.AssetID, t.Amount); err != nil {
			return err
		}
	}
	return nil
}

// Orphan reverses Process.
func (h *Helper) Orphan(ctx context.Context, sender *account.Account, transfers []Transfer) error {
	for i := len(transfers) - 1; i >= 0; i-- {
		t := transfers[i]
		if err := account.New(h.repo, t.Recipient).Debit(ctx, t.AssetID, t.Amount); err != nil {
			return err
		}
		if err := sender.Credit(ctx, t.AssetID, t.Amount); err != nil {
			return err
		}
	}
	return nil
}

// ProcessReferencesAndFees charges the fee, moves the sender's reference to
// signature, and gives native-coin recipients without a reference this
// signature as their first one.
func (h *Helper) ProcessReferencesAndFees(ctx context.Context, sender *account.Account, transfers []Transfer, fee amount.Amount, signature []byte) error {
	if err := sender.Debit(ctx, chain.NativeAssetID, fee); err != nil {
		return err
	}
	if err := sender.SetLastReference(ctx, signature); err != nil {
		return err
	}
	for _, t := range transfers {
		if err := SeedReference(ctx, account.New(h.repo, t.Recipient), t.AssetID, signature); err != nil {
			return err
		}
	}
	return nil
}

// OrphanReferencesAndFees refunds the fee, restores the sender's reference
// and clears recipient references that this transaction seeded.
func (h *Helper) OrphanReferencesAndFees(ctx context.Context, sender *account.Account, transfers []Transfer, fee amount.Amount, signature, reference []byte) error {
	if err := sender.Credit(ctx, chain.NativeAssetID, fee); err != nil {
		return err
	}
	if err := sender.SetLastReference(ctx, reference); err != nil {
		return err
	}
	for _, t := range transfers {
		if err := UnseedReference(ctx, account.New(h.repo, t.Recipient), t.AssetID, signature); err != nil {
			return err
		}
	}
	return nil
}

// SeedReference sets recipient's last reference to signature if it has none
// and the transfer is in native coin.
func SeedReference(ctx context.Context, recipient *account.Account, assetID int64, signature []byte) error {
	if !handler.IsNative(assetID) {
		return nil
	}
	ref, err := recipient.LastReference(ctx)
	if err != nil || ref != nil {
		return err
	}
	return recipient.SetLastReference(ctx, signature)
}

// UnseedReference clears recipient's last reference if it is still
// signature. Any later transaction by the recipient would have replaced it.
func UnseedReference(ctx context.Context, recipient *account.Account, assetID int64, signature []byte) error {
	if !handler.IsNative(assetID) {
		return nil
	}
	ref, err := recipient.LastReference(ctx)
	if err != nil || !bytes.Equal(ref, signature) {
		return err
	}
	return recipient.SetLastReference(ctx, nil)
}
