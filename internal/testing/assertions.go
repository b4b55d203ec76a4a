package testing

import (
	"testing"

	"github.com/LeJamon/goQortald/internal/core/amount"
	"github.com/LeJamon/goQortald/internal/core/chain"
	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/stretchr/testify/require"
)

// RequireBalance asserts that an account holds the expected amount of an asset.
func RequireBalance(t *testing.T, env *TestEnv, acc *Account, assetID int64, expected amount.Amount) {
	t.Helper()
	actual := env.Balance(acc, assetID)
	require.Equal(t, expected, actual,
		"Account %s balance of asset %d mismatch: expected %s, got %s",
		acc.Name, assetID, expected, actual)
}

// RequireNativeBalance asserts the native coin balance of an account.
func RequireNativeBalance(t *testing.T, env *TestEnv, acc *Account, expected amount.Amount) {
	t.Helper()
	RequireBalance(t, env, acc, chain.NativeAssetID, expected)
}

// RequireTxSuccess asserts that a transaction was applied.
func RequireTxSuccess(t *testing.T, result TxResult) {
	t.Helper()
	require.True(t, result.Applied, "Expected transaction to apply, got %s", result.Result)
	require.Equal(t, tx.OK, result.Result)
}

// RequireTxFail asserts that a transaction was rejected with a specific result.
func RequireTxFail(t *testing.T, result TxResult, expected tx.Result) {
	t.Helper()
	require.False(t, result.Applied,
		"Expected transaction failure with %s, but transaction applied", expected)
	require.Equal(t, expected, result.Result,
		"Expected failure %s, got %s", expected, result.Result)
}

// RequireReference asserts the last reference of an account.
func RequireReference(t *testing.T, env *TestEnv, acc *Account, expected []byte) {
	t.Helper()
	require.Equal(t, expected, env.LastReference(acc),
		"Account %s last reference mismatch", acc.Name)
}

// RequireSameState asserts that two snapshots hold exactly the same keys
// and values.
func RequireSameState(t *testing.T, before, after map[string]string) {
	t.Helper()
	for k, v := range before {
		got, ok := after[k]
		require.True(t, ok, "key %q was removed", k)
		require.Equal(t, v, got, "value of key %q changed", k)
	}
	for k := range after {
		_, ok := before[k]
		require.True(t, ok, "key %q was added", k)
	}
}

// RequireInverse applies t, orphans it and asserts that the store is
// exactly as it was.
func RequireInverse(t *testing.T, env *TestEnv, txn tx.Transaction) {
	t.Helper()
	before := env.Snapshot()
	env.Apply(txn)
	env.Orphan(txn)
	RequireSameState(t, before, env.Snapshot())
}
