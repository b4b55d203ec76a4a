package builders

import "github.com/LeJamon/goQortald/internal/core/tx"

// IssueAsset issues quantity whole units of a new asset to owner.
func IssueAsset(owner, name string, quantity int64, divisible bool) *tx.IssueAssetTransaction {
	return &tx.IssueAssetTransaction{
		BaseTransaction: base(tx.TypeIssueAsset),
		Owner:           owner,
		AssetName:       name,
		Description:     name + " asset",
		Quantity:        quantity,
		IsDivisible:     divisible,
	}
}
