// Package asset issues and withdraws user-defined assets.
package asset

import (
	"context"
	"fmt"

	"github.com/LeJamon/goQortald/internal/core/account"
	"github.com/LeJamon/goQortald/internal/core/amount"
	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/repository"
)

type Asset struct {
	repo repository.Repository
}

func New(repo repository.Repository) *Asset {
	return &Asset{repo: repo}
}

// NextAssetID returns the id the next issued asset will receive.
func (a *Asset) NextAssetID(ctx context.Context) (int64, error) {
	maxID, err := a.repo.Assets().MaxAssetID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load highest asset id: %w", err)
	}
	return maxID + 1, nil
}

// Issue creates the asset described by t, credits the whole quantity to its
// owner and records the new id on t.
func (a *Asset) Issue(ctx context.Context, t *tx.IssueAssetTransaction) error {
	assetID, err := a.NextAssetID(ctx)
	if err != nil {
		return err
	}

	data := &repository.AssetData{
		AssetID:     assetID,
		Owner:       t.Owner,
		Name:        t.AssetName,
		Description: t.Description,
		Quantity:    t.Quantity,
		IsDivisible: t.IsDivisible,
		Reference:   t.Signature,
	}
	if err := a.repo.Assets().Save(ctx, data); err != nil {
		return fmt.Errorf("failed to save asset %d: %w", assetID, err)
	}

	owner := account.New(a.repo, t.Owner)
	if err := owner.SetConfirmedBalance(ctx, assetID, amount.FromWhole(t.Quantity)); err != nil {
		return err
	}

	t.AssetID = assetID
	return nil
}

// Deissue reverses Issue.
func (a *Asset) Deissue(ctx context.Context, t *tx.IssueAssetTransaction) error {
	owner := account.New(a.repo, t.Owner)
	if err := owner.SetConfirmedBalance(ctx, t.AssetID, amount.Zero); err != nil {
		return err
	}
	if err := a.repo.Assets().Delete(ctx, t.AssetID); err != nil {
		return fmt.Errorf("failed to delete asset %d: %w", t.AssetID, err)
	}

	t.AssetID = 0
	return nil
}
