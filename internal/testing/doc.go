// Package testing provides test infrastructure for ledger transaction tests.
//
// TestEnv holds a ledger in an in-memory store with the native asset
// created. Accounts are deterministic ed25519 key pairs and are funded by
// writing balances directly. Transactions are built with the builders
// package, signed with TestEnv.Sign and driven through their handlers with
// Submit and Orphan.
//
//	func TestPayment(t *testing.T) {
//	    env := testing.NewTestEnv(t)
//	    alice := testing.NewAccount("alice")
//	    bob := testing.NewAccount("bob")
//	    env.Fund(alice)
//
//	    pay := env.Sign(builders.Pay(bob, testing.Coins(10)), alice)
//	    testing.RequireTxSuccess(t, env.Submit(pay))
//	    testing.RequireNativeBalance(t, env, bob, testing.Coins(10))
//	}
//
// RequireInverse checks that processing followed by orphaning leaves the
// store byte-for-byte unchanged.
package testing
