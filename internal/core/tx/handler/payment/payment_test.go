package payment_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/LeJamon/goQortald/internal/core/amount"
	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/LeJamon/goQortald/internal/repository"
	qortalTesting "github.com/LeJamon/goQortald/internal/testing"
	"github.com/LeJamon/goQortald/internal/testing/builders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentTransfersCoin(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	bob := qortalTesting.NewAccount("bob")
	env.Fund(alice)

	pay := env.Sign(builders.Pay(bob.Address, qortalTesting.Coins(10)), alice)
	qortalTesting.RequireTxSuccess(t, env.Submit(pay))

	qortalTesting.RequireNativeBalance(t, env, alice, qortalTesting.Decimal("989.999"))
	qortalTesting.RequireNativeBalance(t, env, bob, qortalTesting.Coins(10))

	// Both the sender's reference and the fresh recipient's first
	// reference become the payment's signature.
	qortalTesting.RequireReference(t, env, alice, pay.Base().Signature)
	qortalTesting.RequireReference(t, env, bob, pay.Base().Signature)
}

func TestPaymentConservesBalance(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	bob := qortalTesting.NewAccount("bob")
	carol := qortalTesting.NewAccount("carol")
	env.Fund(alice, bob)

	total := func() amount.Amount {
		return env.NativeBalance(alice).Add(env.NativeBalance(bob)).Add(env.NativeBalance(carol))
	}
	before := total()

	env.Apply(env.Sign(builders.Pay(bob.Address, qortalTesting.Decimal("12.34567891")), alice))
	env.Apply(env.Sign(builders.Pay(carol.Address, qortalTesting.Coins(3)), bob))

	// Only the two fees leave circulation.
	assert.Equal(t, before.Sub(builders.DefaultFee.Mul(2)), total())
}

func TestPaymentValidation(t *testing.T) {
	alice := qortalTesting.NewAccount("alice")
	bob := qortalTesting.NewAccount("bob")

	tests := []struct {
		name   string
		amount amount.Amount
		fee    amount.Amount
		to     string
		want   tx.Result
	}{
		{"zero fee", qortalTesting.Coins(1), amount.Zero, bob.Address, tx.NegativeFee},
		{"negative fee", qortalTesting.Coins(1), qortalTesting.Decimal("-0.001"), bob.Address, tx.NegativeFee},
		{"fee above balance", qortalTesting.Coins(1), qortalTesting.Coins(101), bob.Address, tx.NoBalance},
		{"zero amount", amount.Zero, builders.DefaultFee, bob.Address, tx.NegativeAmount},
		{"negative amount", qortalTesting.Coins(-1), builders.DefaultFee, bob.Address, tx.NegativeAmount},
		{"invalid recipient", qortalTesting.Coins(1), builders.DefaultFee, "not-an-address", tx.InvalidAddress},
		{"amount plus fee above balance", qortalTesting.Coins(100), builders.DefaultFee, bob.Address, tx.NoBalance},
		{"amount plus fee overflows", amount.New(math.MaxInt64), builders.DefaultFee, bob.Address, tx.NoBalance},
		{"amount plus fee equals balance", qortalTesting.Decimal("99.999"), builders.DefaultFee, bob.Address, tx.OK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := qortalTesting.NewTestEnv(t)
			env.FundAmount(alice, qortalTesting.Coins(100))

			pay := builders.Pay(tt.to, tt.amount)
			pay.Fee = tt.fee
			assert.Equal(t, tt.want, env.Validate(env.Sign(pay, alice)))
		})
	}
}

func TestPaymentKeepsExistingRecipientReference(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	bob := qortalTesting.NewAccount("bob")
	env.Fund(alice, bob)
	bobRef := env.LastReference(bob)

	pay := env.Sign(builders.Pay(bob.Address, qortalTesting.Coins(1)), alice)
	env.Apply(pay)
	qortalTesting.RequireReference(t, env, bob, bobRef)

	env.Orphan(pay)
	qortalTesting.RequireReference(t, env, bob, bobRef)
}

func TestPaymentOrphanClearsSeededReference(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	bob := qortalTesting.NewAccount("bob")
	env.Fund(alice)
	aliceRef := env.LastReference(alice)

	pay := env.Sign(builders.Pay(bob.Address, qortalTesting.Coins(1)), alice)
	env.Apply(pay)
	env.Orphan(pay)

	assert.Nil(t, env.LastReference(bob))
	qortalTesting.RequireReference(t, env, alice, aliceRef)
	qortalTesting.RequireNativeBalance(t, env, alice, qortalTesting.DefaultFunding)
	qortalTesting.RequireNativeBalance(t, env, bob, amount.Zero)
}

func TestPaymentIsInvertible(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	bob := qortalTesting.NewAccount("bob")
	carol := qortalTesting.NewAccount("carol")
	env.Fund(alice, carol)

	qortalTesting.RequireInverse(t, env, env.Sign(builders.Pay(bob.Address, qortalTesting.Coins(5)), alice))
	qortalTesting.RequireInverse(t, env, env.Sign(builders.Pay(carol.Address, qortalTesting.Coins(5)), alice))
}

func TestPaymentReferenceCheck(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	bob := qortalTesting.NewAccount("bob")
	env.Fund(alice)

	pay := builders.Pay(bob.Address, qortalTesting.Coins(1))
	pay.Reference = bytes.Repeat([]byte{9}, tx.ReferenceLength)
	ok, err := env.Handler(env.Sign(pay, alice)).HasValidReference(env.Context())
	require.NoError(t, err)
	assert.False(t, ok)

	good := env.Sign(builders.Pay(bob.Address, qortalTesting.Coins(1)), alice)
	ok, err = env.Handler(good).HasValidReference(env.Context())
	require.NoError(t, err)
	assert.True(t, ok)
}

func saveAsset(t *testing.T, env *qortalTesting.TestEnv, id int64, divisible bool) {
	t.Helper()
	require.NoError(t, env.Repo().Assets().Save(env.Context(), &repository.AssetData{
		AssetID:     id,
		Owner:       qortalTesting.NewAccount("issuer").Address,
		Name:        "asset",
		Quantity:    1000,
		IsDivisible: divisible,
	}))
}

func TestTransferAssetDivisibility(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	bob := qortalTesting.NewAccount("bob")
	env.Fund(alice)
	saveAsset(t, env, 1, false)
	env.FundAsset(alice, 1, qortalTesting.Coins(5))

	half := env.Sign(builders.TransferAsset(bob.Address, 1, qortalTesting.Decimal("1.5")), alice)
	assert.Equal(t, tx.InvalidAmount, env.Validate(half))

	whole := env.Sign(builders.TransferAsset(bob.Address, 1, qortalTesting.Coins(1)), alice)
	qortalTesting.RequireTxSuccess(t, env.Submit(whole))
	qortalTesting.RequireBalance(t, env, alice, 1, qortalTesting.Coins(4))
	qortalTesting.RequireBalance(t, env, bob, 1, qortalTesting.Coins(1))

	// The fee is still paid in native coin.
	qortalTesting.RequireNativeBalance(t, env, alice, qortalTesting.DefaultFunding.Sub(builders.DefaultFee))

	// Receiving a non-native asset does not give bob a reference.
	assert.Nil(t, env.LastReference(bob))
}

func TestTransferAssetValidation(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	bob := qortalTesting.NewAccount("bob")
	env.Fund(alice)
	saveAsset(t, env, 1, true)
	env.FundAsset(alice, 1, qortalTesting.Coins(5))

	missing := env.Sign(builders.TransferAsset(bob.Address, 2, qortalTesting.Coins(1)), alice)
	assert.Equal(t, tx.AssetDoesNotExist, env.Validate(missing))

	tooMuch := env.Sign(builders.TransferAsset(bob.Address, 1, qortalTesting.Decimal("5.00000001")), alice)
	assert.Equal(t, tx.NoBalance, env.Validate(tooMuch))

	fractional := env.Sign(builders.TransferAsset(bob.Address, 1, qortalTesting.Decimal("0.00000001")), alice)
	assert.Equal(t, tx.OK, env.Validate(fractional))
}

func TestTransferAssetIsInvertible(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	bob := qortalTesting.NewAccount("bob")
	env.Fund(alice)
	saveAsset(t, env, 1, true)
	env.FundAsset(alice, 1, qortalTesting.Coins(5))

	qortalTesting.RequireInverse(t, env, env.Sign(builders.TransferAsset(bob.Address, 1, qortalTesting.Coins(5)), alice))
}

func TestGenesisMintsAndSeeds(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	bob := qortalTesting.NewAccount("bob")

	genesis := env.Sign(builders.Genesis(bob.Address, qortalTesting.Coins(50)), nil)
	ok, err := env.Handler(genesis).HasValidReference(env.Context())
	require.NoError(t, err)
	assert.True(t, ok)

	env.Apply(genesis)
	qortalTesting.RequireNativeBalance(t, env, bob, qortalTesting.Coins(50))
	qortalTesting.RequireReference(t, env, bob, genesis.Base().Signature)

	env.Orphan(genesis)
	qortalTesting.RequireNativeBalance(t, env, bob, amount.Zero)
	assert.Nil(t, env.LastReference(bob))
}

func TestGenesisValidation(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	bob := qortalTesting.NewAccount("bob")

	negative := env.Sign(builders.Genesis(bob.Address, qortalTesting.Coins(-1)), nil)
	assert.Equal(t, tx.NegativeAmount, env.Validate(negative))

	// Genesis transactions carry no fee.
	zero := env.Sign(builders.Genesis(bob.Address, amount.Zero), nil)
	assert.Equal(t, tx.OK, env.Validate(zero))
}
