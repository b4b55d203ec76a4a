// Package asset implements ISSUE_ASSET.
package asset

import (
	"context"

	assets "github.com/LeJamon/goQortald/internal/core/asset"
	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/core/tx/handler"
)

func init() {
	handler.MustRegister(tx.TypeIssueAsset, func(env *handler.Env, t tx.Transaction) (handler.Handler, error) {
		issue, err := handler.Typed[*tx.IssueAssetTransaction](t)
		if err != nil {
			return nil, err
		}
		return &issueHandler{Base: handler.NewBase(env, t), issue: issue}, nil
	})
}

type issueHandler struct {
	handler.Base
	issue *tx.IssueAssetTransaction
}

func (h *issueHandler) IsValid(ctx context.Context) (tx.Result, error) {
	limits := h.Limits()

	if !handler.ValidAddress(h.issue.Owner) {
		return tx.InvalidAddress, nil
	}
	if !handler.ValidLength(h.issue.AssetName, limits.AssetMaxNameSize) {
		return tx.InvalidNameLength, nil
	}
	if !handler.ValidLength(h.issue.Description, limits.AssetMaxDescriptionSize) {
		return tx.InvalidDescriptionLength, nil
	}
	if h.issue.Quantity < 1 || h.issue.Quantity > limits.AssetMaxQuantity {
		return tx.InvalidQuantity, nil
	}
	return h.CheckFee(ctx)
}

// IsProcessable rejects names already issued, including by an earlier
// transaction in the same block.
func (h *issueHandler) IsProcessable(ctx context.Context) (tx.Result, error) {
	existing, err := h.Env.Repo.Assets().FromAssetName(ctx, h.issue.AssetName)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return tx.AssetAlreadyExists, nil
	}
	return tx.OK, nil
}

func (h *issueHandler) Process(ctx context.Context) error {
	if err := assets.New(h.Env.Repo).Issue(ctx, h.issue); err != nil {
		return err
	}
	return h.SaveState(ctx)
}

func (h *issueHandler) Orphan(ctx context.Context) error {
	if err := assets.New(h.Env.Repo).Deissue(ctx, h.issue); err != nil {
		return err
	}
	return h.SaveState(ctx)
}
