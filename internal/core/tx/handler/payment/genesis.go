package payment

import (
	"context"

	"github.com/LeJamon/goQortald/internal/core/account"
	"github.com/LeJamon/goQortald/internal/core/chain"
	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/core/tx/handler"
)

func init() {
	handler.MustRegister(tx.TypeGenesis, func(env *handler.Env, t tx.Transaction) (handler.Handler, error) {
		g, err := handler.Typed[*tx.GenesisTransaction](t)
		if err != nil {
			return nil, err
		}
		return &genesisHandler{Base: handler.NewBase(env, t), genesis: g}, nil
	})
}

// genesisHandler mints native coin for a recipient. There is no fee and no
// sender reference.
type genesisHandler struct {
	handler.Base
	genesis *tx.GenesisTransaction
}

func (h *genesisHandler) recipient() *account.Account {
	return account.New(h.Env.Repo, h.genesis.Recipient)
}

func (h *genesisHandler) IsValid(ctx context.Context) (tx.Result, error) {
	if h.genesis.Amount.IsNegative() {
		return tx.NegativeAmount, nil
	}
	if !handler.ValidAddress(h.genesis.Recipient) {
		return tx.InvalidAddress, nil
	}
	return tx.OK, nil
}

func (h *genesisHandler) HasValidReference(ctx context.Context) (bool, error) {
	return true, nil
}

func (h *genesisHandler) Process(ctx context.Context) error {
	return h.recipient().Credit(ctx, chain.NativeAssetID, h.genesis.Amount)
}

// ProcessReferencesAndFees gives the recipient its starting reference. It
// overwrites unconditionally while OrphanReferencesAndFees only clears a
// matching reference, so the pair is an exact inverse only because genesis
// records appear in the genesis block alone, which is never orphaned.
func (h *genesisHandler) ProcessReferencesAndFees(ctx context.Context) error {
	return h.recipient().SetLastReference(ctx, h.genesis.Signature)
}

func (h *genesisHandler) Orphan(ctx context.Context) error {
	return h.recipient().Debit(ctx, chain.NativeAssetID, h.genesis.Amount)
}

func (h *genesisHandler) OrphanReferencesAndFees(ctx context.Context) error {
	return UnseedReference(ctx, h.recipient(), chain.NativeAssetID, h.genesis.Signature)
}
