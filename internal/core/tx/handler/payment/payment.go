package payment

import (
	"context"

	"github.com/LeJamon/goQortald/internal/core/chain"
	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/core/tx/handler"
)

func init() {
	handler.MustRegister(tx.TypePayment, func(env *handler.Env, t tx.Transaction) (handler.Handler, error) {
		p, err := handler.Typed[*tx.PaymentTransaction](t)
		if err != nil {
			return nil, err
		}
		return newTransferHandler(env, t, Transfer{Recipient: p.Recipient, AssetID: chain.NativeAssetID, Amount: p.Amount}, false), nil
	})
	handler.MustRegister(tx.TypeTransferAsset, func(env *handler.Env, t tx.Transaction) (handler.Handler, error) {
		p, err := handler.Typed[*tx.TransferAssetTransaction](t)
		if err != nil {
			return nil, err
		}
		return newTransferHandler(env, t, Transfer{Recipient: p.Recipient, AssetID: p.AssetID, Amount: p.Amount}, false), nil
	})
}

// transferHandler runs a creator-signed transaction that carries a single
// transfer through the payment helper.
type transferHandler struct {
	handler.Base
	helper          *Helper
	transfers       []Transfer
	zeroAmountValid bool
}

func newTransferHandler(env *handler.Env, t tx.Transaction, transfer Transfer, zeroAmountValid bool) *transferHandler {
	return &transferHandler{
		Base:            handler.NewBase(env, t),
		helper:          NewHelper(env.Repo),
		transfers:       []Transfer{transfer},
		zeroAmountValid: zeroAmountValid,
	}
}

func (h *transferHandler) IsValid(ctx context.Context) (tx.Result, error) {
	return h.helper.IsValid(ctx, h.Creator(), h.transfers, h.Tx.Base().Fee, h.zeroAmountValid)
}

func (h *transferHandler) IsProcessable(ctx context.Context) (tx.Result, error) {
	return h.helper.IsProcessable(ctx, h.Creator(), h.transfers, h.Tx.Base().Fee, h.zeroAmountValid)
}

func (h *transferHandler) Process(ctx context.Context) error {
	return h.helper.Process(ctx, h.Creator(), h.transfers)
}

func (h *transferHandler) ProcessReferencesAndFees(ctx context.Context) error {
	base := h.Tx.Base()
	return h.helper.ProcessReferencesAndFees(ctx, h.Creator(), h.transfers, base.Fee, base.Signature)
}

func (h *transferHandler) Orphan(ctx context.Context) error {
	return h.helper.Orphan(ctx, h.Creator(), h.transfers)
}

func (h *transferHandler) OrphanReferencesAndFees(ctx context.Context) error {
	base := h.Tx.Base()
	return h.helper.OrphanReferencesAndFees(ctx, h.Creator(), h.transfers, base.Fee, base.Signature, base.Reference)
}
