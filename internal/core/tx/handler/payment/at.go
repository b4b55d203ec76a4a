package payment

import (
	"bytes"
	"context"

	"github.com/LeJamon/goQortald/internal/core/account"
	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/core/tx/handler"
)

func init() {
	handler.MustRegister(tx.TypeAT, func(env *handler.Env, t tx.Transaction) (handler.Handler, error) {
		at, err := handler.Typed[*tx.ATTransaction](t)
		if err != nil {
			return nil, err
		}
		return &atHandler{Base: handler.NewBase(env, t), at: at}, nil
	})
}

// atHandler applies a transaction emitted by an automated transaction
// account. It carries either a message or a payment, never both. The AT
// account pays no fee and its reference is left alone.
type atHandler struct {
	handler.Base
	at *tx.ATTransaction
}

func (h *atHandler) sender() *account.Account {
	return account.New(h.Env.Repo, h.at.ATAddress)
}

func (h *atHandler) recipient() *account.Account {
	return account.New(h.Env.Repo, h.at.Recipient)
}

func (h *atHandler) hasPayment() bool {
	return !h.at.Amount.IsZero()
}

func (h *atHandler) HasValidReference(ctx context.Context) (bool, error) {
	ref, err := h.sender().LastReference(ctx)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ref, h.at.Reference), nil
}

func (h *atHandler) IsValid(ctx context.Context) (tx.Result, error) {
	if len(h.at.Message) > h.Limits().MaxATMessageSize {
		return tx.InvalidDataLength, nil
	}

	messageIsEmpty := len(h.at.Message) == 0
	if messageIsEmpty == !h.hasPayment() {
		return tx.InvalidATTransaction, nil
	}
	if !h.hasPayment() {
		return tx.OK, nil
	}

	if h.at.Amount.IsNegative() {
		return tx.NegativeAmount, nil
	}
	if !handler.ValidAddress(h.at.Recipient) {
		return tx.InvalidAddress, nil
	}

	asset, err := h.Env.Repo.Assets().FromAssetID(ctx, h.at.AssetID)
	if err != nil {
		return 0, err
	}
	if asset == nil {
		return tx.AssetDoesNotExist, nil
	}
	if !asset.IsDivisible && !h.at.Amount.IsWhole() {
		return tx.InvalidAmount, nil
	}

	balance, err := h.sender().ConfirmedBalance(ctx, h.at.AssetID)
	if err != nil {
		return 0, err
	}
	if balance.Cmp(h.at.Amount) < 0 {
		return tx.NoBalance, nil
	}
	return tx.OK, nil
}

func (h *atHandler) Process(ctx context.Context) error {
	if !h.hasPayment() {
		return nil
	}
	if err := h.sender().Debit(ctx, h.at.AssetID, h.at.Amount); err != nil {
		return err
	}
	return h.recipient().Credit(ctx, h.at.AssetID, h.at.Amount)
}

func (h *atHandler) ProcessReferencesAndFees(ctx context.Context) error {
	if !h.hasPayment() {
		return nil
	}
	return SeedReference(ctx, h.recipient(), h.at.AssetID, h.at.Signature)
}

func (h *atHandler) Orphan(ctx context.Context) error {
	if !h.hasPayment() {
		return nil
	}
	if err := h.recipient().Debit(ctx, h.at.AssetID, h.at.Amount); err != nil {
		return err
	}
	return h.sender().Credit(ctx, h.at.AssetID, h.at.Amount)
}

func (h *atHandler) OrphanReferencesAndFees(ctx context.Context) error {
	if !h.hasPayment() {
		return nil
	}
	return UnseedReference(ctx, h.recipient(), h.at.AssetID, h.at.Signature)
}
