package asset_test

import (
	"strings"
	"testing"

	"github.com/LeJamon/goQortald/internal/core/amount"
	"github.com/LeJamon/goQortald/internal/core/tx"
	qortalTesting "github.com/LeJamon/goQortald/internal/testing"
	"github.com/LeJamon/goQortald/internal/testing/builders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAsset(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	env.Fund(alice)

	issue := env.Sign(builders.IssueAsset(alice.Address, "gold", 1000, false), alice)
	qortalTesting.RequireTxSuccess(t, env.Submit(issue))

	stored := env.Load(issue).(*tx.IssueAssetTransaction)
	require.Equal(t, int64(1), stored.AssetID)

	asset, err := env.Repo().Assets().FromAssetID(env.Context(), 1)
	require.NoError(t, err)
	require.NotNil(t, asset)
	assert.Equal(t, "gold", asset.Name)
	assert.Equal(t, alice.Address, asset.Owner)
	assert.False(t, asset.IsDivisible)
	assert.Equal(t, issue.Base().Signature, asset.Reference)

	qortalTesting.RequireBalance(t, env, alice, 1, qortalTesting.Coins(1000))
	qortalTesting.RequireNativeBalance(t, env, alice, qortalTesting.DefaultFunding.Sub(builders.DefaultFee))

	// Ids are assigned in issue order.
	second := env.Sign(builders.IssueAsset(alice.Address, "silver", 5, true), alice)
	env.Apply(second)
	assert.Equal(t, int64(2), env.Load(second).(*tx.IssueAssetTransaction).AssetID)
}

func TestIssueAssetIsInvertible(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	env.Fund(alice)

	issue := env.Sign(builders.IssueAsset(alice.Address, "gold", 1000, true), alice)
	qortalTesting.RequireInverse(t, env, issue)

	// The id is free again.
	again := env.Sign(builders.IssueAsset(alice.Address, "gold", 10, true), alice)
	env.Apply(again)
	assert.Equal(t, int64(1), env.Load(again).(*tx.IssueAssetTransaction).AssetID)
}

func TestIssueAssetValidation(t *testing.T) {
	alice := qortalTesting.NewAccount("alice")
	limits := qortalTesting.NewTestEnv(t).Config().Limits

	tests := []struct {
		name   string
		modify func(*tx.IssueAssetTransaction)
		want   tx.Result
	}{
		{"invalid owner", func(i *tx.IssueAssetTransaction) { i.Owner = "nobody" }, tx.InvalidAddress},
		{"empty name", func(i *tx.IssueAssetTransaction) { i.AssetName = "" }, tx.InvalidNameLength},
		{"long name", func(i *tx.IssueAssetTransaction) { i.AssetName = strings.Repeat("g", limits.AssetMaxNameSize+1) }, tx.InvalidNameLength},
		{"empty description", func(i *tx.IssueAssetTransaction) { i.Description = "" }, tx.InvalidDescriptionLength},
		{"zero quantity", func(i *tx.IssueAssetTransaction) { i.Quantity = 0 }, tx.InvalidQuantity},
		{"quantity above max", func(i *tx.IssueAssetTransaction) { i.Quantity = limits.AssetMaxQuantity + 1 }, tx.InvalidQuantity},
		{"max quantity", func(i *tx.IssueAssetTransaction) { i.Quantity = limits.AssetMaxQuantity }, tx.OK},
		{"zero fee", func(i *tx.IssueAssetTransaction) { i.Fee = amount.Zero }, tx.NegativeFee},
		{"fee above balance", func(i *tx.IssueAssetTransaction) { i.Fee = qortalTesting.Coins(1001) }, tx.NoBalance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := qortalTesting.NewTestEnv(t)
			env.Fund(alice)

			issue := builders.IssueAsset(alice.Address, "gold", 100, true)
			tt.modify(issue)
			assert.Equal(t, tt.want, env.Validate(env.Sign(issue, alice)))
		})
	}
}

func TestIssueAssetNameTaken(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	bob := qortalTesting.NewAccount("bob")
	env.Fund(alice, bob)

	env.Apply(env.Sign(builders.IssueAsset(alice.Address, "gold", 100, true), alice))

	dup := env.Sign(builders.IssueAsset(bob.Address, "gold", 100, true), bob)
	assert.Equal(t, tx.AssetAlreadyExists, env.Validate(dup))
}
