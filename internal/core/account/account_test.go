package account_test

import (
	"math"
	"testing"

	"github.com/LeJamon/goQortald/internal/core/account"
	"github.com/LeJamon/goQortald/internal/core/amount"
	"github.com/LeJamon/goQortald/internal/core/chain"
	qortalTesting "github.com/LeJamon/goQortald/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditAndDebit(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	ctx := env.Context()

	acc := account.FromPublicKey(env.Repo(), alice.PublicKey)
	assert.Equal(t, alice.Address, acc.Address())

	balance, err := acc.ConfirmedBalance(ctx, chain.NativeAssetID)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	require.NoError(t, acc.Credit(ctx, chain.NativeAssetID, qortalTesting.Coins(10)))
	require.NoError(t, acc.Debit(ctx, chain.NativeAssetID, qortalTesting.Coins(4)))
	require.NoError(t, acc.Credit(ctx, 3, qortalTesting.Coins(2)))

	balance, err = acc.ConfirmedBalance(ctx, chain.NativeAssetID)
	require.NoError(t, err)
	assert.Equal(t, qortalTesting.Coins(6), balance)

	balances, err := env.Repo().Accounts().GetBalances(ctx, alice.Address)
	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.Equal(t, int64(3), balances[1].AssetID)

	// Debiting to zero removes the balance row.
	require.NoError(t, acc.Debit(ctx, 3, qortalTesting.Coins(2)))
	balances, err = env.Repo().Accounts().GetBalances(ctx, alice.Address)
	require.NoError(t, err)
	assert.Len(t, balances, 1)
}

func TestCreditOverflowLeavesBalance(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	ctx := env.Context()
	acc := account.New(env.Repo(), alice.Address)

	require.NoError(t, acc.Credit(ctx, chain.NativeAssetID, amount.New(math.MaxInt64)))
	assert.ErrorIs(t, acc.Credit(ctx, chain.NativeAssetID, amount.New(1)), amount.ErrOverflow)

	assert.ErrorIs(t, acc.Debit(ctx, 3, amount.New(math.MinInt64)), amount.ErrOverflow)

	balance, err := acc.ConfirmedBalance(ctx, chain.NativeAssetID)
	require.NoError(t, err)
	assert.Equal(t, amount.New(math.MaxInt64), balance)
}

func TestLastReference(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	bob := qortalTesting.NewAccount("bob")
	ctx := env.Context()
	acc := account.New(env.Repo(), bob.Address)

	ref, err := acc.LastReference(ctx)
	require.NoError(t, err)
	assert.Nil(t, ref)

	want := make([]byte, 64)
	want[0] = 9
	require.NoError(t, acc.SetLastReference(ctx, want))
	ref, err = acc.LastReference(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, ref)

	require.NoError(t, acc.SetLastReference(ctx, nil))
	ref, err = acc.LastReference(ctx)
	require.NoError(t, err)
	assert.Nil(t, ref)
}
