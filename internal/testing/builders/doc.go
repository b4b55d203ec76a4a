// Package builders constructs transaction records for tests. Every builder
// sets the type tag and the default fee; TestEnv.Sign completes the rest.
//
//	pay := builders.Pay(bob.Address, testing.Coins(10))
//	pay.Fee = testing.Decimal("0.01")
//	env.Sign(pay, alice)
package builders
