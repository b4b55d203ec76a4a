package payment_test

import (
	"bytes"
	"testing"

	"github.com/LeJamon/goQortald/internal/core/amount"
	"github.com/LeJamon/goQortald/internal/core/chain"
	"github.com/LeJamon/goQortald/internal/core/tx"
	qortalTesting "github.com/LeJamon/goQortald/internal/testing"
	"github.com/LeJamon/goQortald/internal/testing/builders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageDataLength(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	bob := qortalTesting.NewAccount("bob")
	env.Fund(alice)
	maxSize := env.Config().Limits.MaxMessageDataSize

	empty := env.Sign(builders.Message(bob.Address, amount.Zero, nil), alice)
	assert.Equal(t, tx.InvalidDataLength, env.Validate(empty))

	// Carrying an amount does not make empty data acceptable.
	emptyWithAmount := env.Sign(builders.Message(bob.Address, qortalTesting.Coins(1), nil), alice)
	assert.Equal(t, tx.InvalidDataLength, env.Validate(emptyWithAmount))

	tooLong := env.Sign(builders.Message(bob.Address, amount.Zero, make([]byte, maxSize+1)), alice)
	assert.Equal(t, tx.InvalidDataLength, env.Validate(tooLong))

	full := env.Sign(builders.Message(bob.Address, amount.Zero, make([]byte, maxSize)), alice)
	assert.Equal(t, tx.OK, env.Validate(full))
}

func TestMessageWithoutPayment(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	bob := qortalTesting.NewAccount("bob")
	env.Fund(alice)

	msg := env.Sign(builders.Message(bob.Address, amount.Zero, []byte("hello")), alice)
	qortalTesting.RequireTxSuccess(t, env.Submit(msg))

	qortalTesting.RequireNativeBalance(t, env, alice, qortalTesting.DefaultFunding.Sub(builders.DefaultFee))
	qortalTesting.RequireNativeBalance(t, env, bob, amount.Zero)
	qortalTesting.RequireReference(t, env, alice, msg.Base().Signature)
}

func TestMessageWithPaymentIsInvertible(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	bob := qortalTesting.NewAccount("bob")
	env.Fund(alice)

	msg := env.Sign(builders.Message(bob.Address, qortalTesting.Coins(2), []byte("rent")), alice)
	qortalTesting.RequireInverse(t, env, msg)
}

func TestMessageVersionMismatch(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	alice := qortalTesting.NewAccount("alice")
	bob := qortalTesting.NewAccount("bob")
	env.Fund(alice)

	msg := builders.Message(bob.Address, qortalTesting.Coins(1), []byte("hi"))
	msg.Version = 1
	assert.Equal(t, tx.NotYetReleased, env.Validate(env.Sign(msg, alice)))
}

func TestMessageBeforeReleaseHeight(t *testing.T) {
	cfg := chain.TestConfig()
	cfg.Rules = chain.QortalRules(0, 5)
	env := qortalTesting.NewTestEnvWithConfig(t, cfg)
	alice := qortalTesting.NewAccount("alice")
	bob := qortalTesting.NewAccount("bob")
	env.Fund(alice)

	msg := env.Sign(builders.Message(bob.Address, qortalTesting.Coins(1), []byte("hi")), alice)
	assert.Equal(t, tx.NotYetReleased, env.Validate(msg))
}

func TestVersionOneMessageNeedsAmount(t *testing.T) {
	cfg := chain.TestConfig()
	// Nothing timestamp-triggered is active yet, so messages are version 1.
	cfg.Rules = chain.QortalRules(1<<62, 0)
	env := qortalTesting.NewTestEnvWithConfig(t, cfg)
	alice := qortalTesting.NewAccount("alice")
	bob := qortalTesting.NewAccount("bob")
	env.Fund(alice)

	zero := env.Sign(builders.Message(bob.Address, amount.Zero, []byte("hi")), alice)
	require.Equal(t, 1, zero.Base().Version)
	assert.Equal(t, tx.NegativeAmount, env.Validate(zero))

	paid := env.Sign(builders.Message(bob.Address, qortalTesting.Coins(1), []byte("hi")), alice)
	assert.Equal(t, tx.OK, env.Validate(paid))
}

// atAccount funds an account standing in for an AT and returns it with its
// current reference.
func atAccount(env *qortalTesting.TestEnv) (*qortalTesting.Account, []byte) {
	at := qortalTesting.NewAccount("at")
	env.FundAmount(at, qortalTesting.Coins(20))
	return at, env.LastReference(at)
}

func TestATPayment(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	bob := qortalTesting.NewAccount("bob")
	at, ref := atAccount(env)

	payment := env.Sign(builders.ATPayment(at.Address, bob.Address, chain.NativeAssetID, qortalTesting.Coins(5), ref), nil)
	ok, err := env.Handler(payment).HasValidReference(env.Context())
	require.NoError(t, err)
	assert.True(t, ok)

	qortalTesting.RequireTxSuccess(t, env.Submit(payment))

	// No fee, and the AT's own reference is untouched.
	qortalTesting.RequireNativeBalance(t, env, at, qortalTesting.Coins(15))
	qortalTesting.RequireNativeBalance(t, env, bob, qortalTesting.Coins(5))
	qortalTesting.RequireReference(t, env, at, ref)
	qortalTesting.RequireReference(t, env, bob, payment.Base().Signature)
}

func TestATPaymentIsInvertible(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	bob := qortalTesting.NewAccount("bob")
	at, ref := atAccount(env)

	qortalTesting.RequireInverse(t, env,
		env.Sign(builders.ATPayment(at.Address, bob.Address, chain.NativeAssetID, qortalTesting.Coins(20), ref), nil))
}

func TestATMessageMovesNothing(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	bob := qortalTesting.NewAccount("bob")
	at, ref := atAccount(env)

	msg := env.Sign(builders.ATMessage(at.Address, bob.Address, []byte{1, 2, 3}, ref), nil)
	before := env.Snapshot()
	qortalTesting.RequireTxSuccess(t, env.Submit(msg))
	env.Orphan(msg)
	qortalTesting.RequireSameState(t, before, env.Snapshot())
}

func TestATValidation(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	bob := qortalTesting.NewAccount("bob")
	at, ref := atAccount(env)
	maxSize := env.Config().Limits.MaxATMessageSize

	both := builders.ATPayment(at.Address, bob.Address, chain.NativeAssetID, qortalTesting.Coins(1), ref)
	both.Message = []byte{1}
	assert.Equal(t, tx.InvalidATTransaction, env.Validate(env.Sign(both, nil)))

	neither := builders.ATMessage(at.Address, bob.Address, nil, ref)
	assert.Equal(t, tx.InvalidATTransaction, env.Validate(env.Sign(neither, nil)))

	tooLong := builders.ATMessage(at.Address, bob.Address, make([]byte, maxSize+1), ref)
	assert.Equal(t, tx.InvalidDataLength, env.Validate(tooLong))

	negative := builders.ATPayment(at.Address, bob.Address, chain.NativeAssetID, qortalTesting.Coins(-1), ref)
	assert.Equal(t, tx.NegativeAmount, env.Validate(env.Sign(negative, nil)))

	badRecipient := builders.ATPayment(at.Address, "nowhere", chain.NativeAssetID, qortalTesting.Coins(1), ref)
	assert.Equal(t, tx.InvalidAddress, env.Validate(badRecipient))

	missingAsset := builders.ATPayment(at.Address, bob.Address, 9, qortalTesting.Coins(1), ref)
	assert.Equal(t, tx.AssetDoesNotExist, env.Validate(env.Sign(missingAsset, nil)))

	overdrawn := builders.ATPayment(at.Address, bob.Address, chain.NativeAssetID, qortalTesting.Coins(21), ref)
	assert.Equal(t, tx.NoBalance, env.Validate(env.Sign(overdrawn, nil)))
}

func TestATReferenceMismatch(t *testing.T) {
	env := qortalTesting.NewTestEnv(t)
	bob := qortalTesting.NewAccount("bob")
	at, _ := atAccount(env)

	stale := bytes.Repeat([]byte{7}, tx.ReferenceLength)
	payment := env.Sign(builders.ATPayment(at.Address, bob.Address, chain.NativeAssetID, qortalTesting.Coins(1), stale), nil)
	ok, err := env.Handler(payment).HasValidReference(env.Context())
	require.NoError(t, err)
	assert.False(t, ok)
}
