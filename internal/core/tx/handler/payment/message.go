package payment

import (
	"context"

	"github.com/LeJamon/goQortald/internal/core/chain"
	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/core/tx/handler"
)

func init() {
	handler.MustRegister(tx.TypeMessage, func(env *handler.Env, t tx.Transaction) (handler.Handler, error) {
		m, err := handler.Typed[*tx.MessageTransaction](t)
		if err != nil {
			return nil, err
		}
		transfer := Transfer{Recipient: m.Recipient, AssetID: m.AssetID, Amount: m.Amount}
		return &messageHandler{
			transferHandler: newTransferHandler(env, t, transfer, m.Version > 1),
			message:         m,
		}, nil
	})
}

// messageHandler carries data to a recipient, optionally with a payment.
// Only version 1 requires a non-zero amount.
type messageHandler struct {
	*transferHandler
	message *tx.MessageTransaction
}

func (h *messageHandler) IsValid(ctx context.Context) (tx.Result, error) {
	rules := h.Env.Config.Rules
	if h.message.Version != rules.TransactionVersion(h.message.Timestamp) {
		return tx.NotYetReleased, nil
	}

	height, err := h.Env.Repo.Blocks().Height(ctx)
	if err != nil {
		return 0, err
	}
	if !rules.ActiveAtHeight(chain.FeatureMessageRelease, height) {
		return tx.NotYetReleased, nil
	}

	if n := len(h.message.Data); n < 1 || n > h.Limits().MaxMessageDataSize {
		return tx.InvalidDataLength, nil
	}

	return h.transferHandler.IsValid(ctx)
}
